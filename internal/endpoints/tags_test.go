package endpoints

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kbclient/internal/model"
)

func TestTagPathNestedUnderProperty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/spaces/SP1/properties/P1/tags/G1", r.URL.Path)
		w.Write([]byte(`{"tag":{"id":"G1","name":"Done","space_id":"SP1","property_id":"P1"}}`))
	})
	tg, err := GetTag(context.Background(), c, "SP1", "P1", "G1")
	require.NoError(t, err)
	assert.Equal(t, "Done", tg.Name)
}

func TestCreateTagWithColor(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tag":{"id":"G1","name":"Done","color":"lime","space_id":"SP1","property_id":"P1"}}`))
	})
	color := model.ColorLime
	tg, err := CreateTag(context.Background(), c, "SP1", "P1", CreateTagRequest{Name: "Done", Color: &color})
	require.NoError(t, err)
	require.NotNil(t, tg.Color)
	assert.Equal(t, model.ColorLime, *tg.Color)
}

func TestDeleteTag(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.Write([]byte(`{"tag":{"id":"G1","name":"Done","space_id":"SP1","property_id":"P1"}}`))
	})
	_, err := DeleteTag(context.Background(), c, "SP1", "P1", "G1")
	require.NoError(t, err)
}
