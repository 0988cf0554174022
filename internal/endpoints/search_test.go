package endpoints

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kbclient/internal/apierr"
)

// TestSearchRejectsUnknownSortField is the endpoint-level check backing
// scenario S7: an unknown sort value fails client-side, before any
// request reaches the network.
func TestSearchRejectsUnknownSortField(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("unknown sort field must be rejected before any request is sent")
	})
	_, err := Global(context.Background(), c, SearchRequest{Query: "x", Sort: "bogus_field"})
	require.Error(t, err)
	var bad *apierr.BadRequest
	require.ErrorAs(t, err, &bad)
	assert.Contains(t, bad.Details, "sort")
}

func TestSearchRejectsUnknownDirection(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("unknown direction must be rejected before any request is sent")
	})
	_, err := Global(context.Background(), c, SearchRequest{Query: "x", Direction: "sideways"})
	require.Error(t, err)
	var bad *apierr.BadRequest
	require.ErrorAs(t, err, &bad)
	assert.Contains(t, bad.Details, "direction")
}

func TestGlobalSearchPostsToSearchEndpoint(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/search", r.URL.Path)
		w.Write([]byte(`{"data":[{"id":"O1","space_id":"SP1","object":"ot_task"}],"pagination":{"offset":0,"limit":50,"total":1,"has_more":false}}`))
	})
	page, err := Global(context.Background(), c, SearchRequest{Query: "task", Sort: SortName, Direction: DirectionAsc})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
}

func TestInSpaceSearchScopedPath(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/spaces/SP1/search", r.URL.Path)
		w.Write([]byte(`{"data":[],"pagination":{"offset":0,"limit":50,"total":0,"has_more":false}}`))
	})
	_, err := InSpace(context.Background(), c, "SP1", SearchRequest{Query: "task"})
	require.NoError(t, err)
}
