package endpoints

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatePathNestedUnderType(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/spaces/SP1/types/T1/templates/TPL1", r.URL.Path)
		w.Write([]byte(`{"template":{"id":"TPL1","icon":{"format":"emoji","emoji":"x"},"space_id":"SP1","type_id":"T1"}}`))
	})
	tpl, err := GetTemplate(context.Background(), c, "SP1", "T1", "TPL1")
	require.NoError(t, err)
	assert.Equal(t, "TPL1", tpl.ID)
}

func TestListTemplatesDecodesPage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[],"pagination":{"offset":0,"limit":100,"total":0,"has_more":false}}`))
	})
	page, err := ListTemplates(context.Background(), c, "SP1", "T1", ListParams{Limit: 100})
	require.NoError(t, err)
	assert.Empty(t, page.Data)
}
