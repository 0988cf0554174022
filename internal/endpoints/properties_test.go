package endpoints

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kbclient/internal/apierr"
	"kbclient/internal/model"
)

func TestCreatePropertyValidatesFormatOneOf(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight validation must reject an unknown format before any request")
	})
	_, err := CreateProperty(context.Background(), c, "SP1", CreatePropertyRequest{Name: "Bad", Key: "bad", Format: "not_a_format"})
	require.Error(t, err)
	var bad *apierr.BadRequest
	require.ErrorAs(t, err, &bad)
}

func TestCreatePropertyAcceptsEachClosedFormat(t *testing.T) {
	for _, format := range []model.PropertyFormat{
		model.PropertyFormatText, model.PropertyFormatNumber, model.PropertyFormatSelect,
		model.PropertyFormatMultiSelect, model.PropertyFormatDate, model.PropertyFormatFiles,
		model.PropertyFormatCheckbox, model.PropertyFormatURL, model.PropertyFormatEmail,
		model.PropertyFormatPhone, model.PropertyFormatObjects,
	} {
		t.Run(string(format), func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"property":{"id":"P1","name":"X","key":"x","format":"` + string(format) + `","space_id":"SP1","type_id":"T1"}}`))
			})
			_, err := CreateProperty(context.Background(), c, "SP1", CreatePropertyRequest{Name: "X", Key: "x", Format: format})
			require.NoError(t, err)
		})
	}
}

func TestUpdatePropertyPath(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/spaces/SP1/properties/P1", r.URL.Path)
		w.Write([]byte(`{"property":{"id":"P1","name":"Renamed","key":"x","format":"text","space_id":"SP1","type_id":"T1"}}`))
	})
	name := "Renamed"
	p, err := UpdateProperty(context.Background(), c, "SP1", "P1", UpdatePropertyRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", p.Name)
}
