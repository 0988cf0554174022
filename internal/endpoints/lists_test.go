package endpoints

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddObjectsRequiresAtLeastOne(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight validation must reject an empty object_ids before any request")
	})
	_, err := AddObjects(context.Background(), c, "SP1", "L1", nil)
	require.Error(t, err)
}

func TestAddObjectsReturnsAddedIDs(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/spaces/SP1/lists/L1/objects", r.URL.Path)
		w.Write([]byte(`{"message":"ok","added_objects":["O1","O2"]}`))
	})
	added, err := AddObjects(context.Background(), c, "SP1", "L1", []string{"O1", "O2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"O1", "O2"}, added)
}

func TestListObjectsInListPath(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/spaces/SP1/lists/L1/objects", r.URL.Path)
		w.Write([]byte(`{"data":[],"pagination":{"offset":0,"limit":100,"total":0,"has_more":false}}`))
	})
	_, err := ListObjectsInList(context.Background(), c, "SP1", "L1", ListParams{Limit: 100})
	require.NoError(t, err)
}

func TestRemoveObjectFromList(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/v1/spaces/SP1/lists/L1/objects/O1", r.URL.Path)
	})
	err := RemoveObject(context.Background(), c, "SP1", "L1", "O1")
	require.NoError(t, err)
}
