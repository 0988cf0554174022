package endpoints

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectPathScopedToSpace(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/spaces/SP1/objects/O1", r.URL.Path)
		w.Write([]byte(`{"id":"O1","space_id":"SP1","object":"ot_task"}`))
	})
	o, err := GetObject(context.Background(), c, "SP1", "O1")
	require.NoError(t, err)
	assert.Equal(t, "ot_task", o.TypeKey)
}

func TestCreateObjectRequiresTypeKey(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight validation must reject a missing type_key before any request")
	})
	_, err := CreateObject(context.Background(), c, "SP1", CreateObjectRequest{})
	require.Error(t, err)
}

func TestDeleteObjectReturnsLastKnownState(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.Write([]byte(`{"object":{"id":"O1","space_id":"SP1","object":"ot_task"}}`))
	})
	o, err := DeleteObject(context.Background(), c, "SP1", "O1")
	require.NoError(t, err)
	assert.Equal(t, "O1", o.ID)
}
