package endpoints

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kbclient/internal/apiclient"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *apiclient.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := apiclient.New(apiclient.Config{BaseURL: srv.URL})
	c.SetAPIKey("test-key")
	return c
}

func TestListSpacesDecodesPage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/spaces", r.URL.Path)
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"data":[{"id":"SP1","name":"Work"}],"pagination":{"offset":0,"limit":50,"total":1,"has_more":false}}`))
	})

	page, err := ListSpaces(context.Background(), c, ListParams{Limit: 50})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "SP1", page.Data[0].ID)
	require.NotNil(t, page.Pagination.Total)
	assert.Equal(t, 1, *page.Pagination.Total)
}

func TestListSpacesRejectsOversizedLimit(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight validation must reject before any request is sent")
	})
	_, err := ListSpaces(context.Background(), c, ListParams{Limit: 5000})
	require.Error(t, err)
}

func TestCreateSpacePostsBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/spaces", r.URL.Path)
		w.Write([]byte(`{"space":{"id":"SP2","name":"New"}}`))
	})
	sp, err := CreateSpace(context.Background(), c, CreateSpaceRequest{Name: "New"})
	require.NoError(t, err)
	assert.Equal(t, "SP2", sp.ID)
}

func TestCreateSpaceRequiresName(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight validation must reject a missing name before any request")
	})
	_, err := CreateSpace(context.Background(), c, CreateSpaceRequest{})
	require.Error(t, err)
}

func TestGetSpaceUsesSpacePath(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/spaces/SP1", r.URL.Path)
		w.Write([]byte(`{"id":"SP1","name":"Work"}`))
	})
	sp, err := GetSpace(context.Background(), c, "SP1")
	require.NoError(t, err)
	assert.Equal(t, "Work", sp.Name)
}
