package resolver

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kbclient/internal/apierr"
)

// fakeDoer is an in-memory endpoints.Doer that serves canned JSON bodies
// keyed by path and counts calls per operation, the same shape as the
// teacher's table-driven httptest fakes but without a real listener,
// since the resolver never needs raw HTTP semantics.
type fakeDoer struct {
	mu      sync.Mutex
	bodies  map[string]any
	calls   map[string]int
	failWith error
}

func newFakeDoer() *fakeDoer {
	return &fakeDoer{bodies: map[string]any{}, calls: map[string]int{}}
}

func (f *fakeDoer) set(path string, body any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bodies[path] = body
}

func (f *fakeDoer) callCount(operation string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[operation]
}

func (f *fakeDoer) serve(operation, path string, out any) error {
	f.mu.Lock()
	f.calls[operation]++
	body, ok := f.bodies[path]
	failWith := f.failWith
	f.mu.Unlock()
	if failWith != nil {
		return failWith
	}
	if !ok {
		return &apierr.NotFound{Entity: "fixture", NameOrID: path, Operation: operation}
	}
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func (f *fakeDoer) Get(ctx context.Context, operation, path string, out any) error {
	return f.serve(operation, path, out)
}
func (f *fakeDoer) Post(ctx context.Context, operation, path string, body, out any) error {
	return f.serve(operation, path, out)
}
func (f *fakeDoer) PostUnauthenticated(ctx context.Context, operation, path string, body, out any) error {
	return f.serve(operation, path, out)
}
func (f *fakeDoer) Patch(ctx context.Context, operation, path string, body, out any) error {
	return f.serve(operation, path, out)
}
func (f *fakeDoer) Delete(ctx context.Context, operation, path string, out any) error {
	return f.serve(operation, path, out)
}

func dataPageBody(items []map[string]any) map[string]any {
	return map[string]any{
		"data":       items,
		"pagination": map[string]any{"offset": 0, "limit": 1000, "total": len(items), "has_more": false},
	}
}

func TestResolveSpaceIDShortCircuit(t *testing.T) {
	d := newFakeDoer()
	r := New(d, NewDefaultOptions())

	id, err := r.ResolveSpace(context.Background(), "550e8400-e29b-41d4-a716-446655440000")
	require.NoError(t, err)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", id)
	assert.Equal(t, 0, d.callCount("spaces.list"), "id-shaped input must not hit the network")
}

func TestResolveTypeFillsCacheAndTypeByKey(t *testing.T) {
	d := newFakeDoer()
	d.set("/v1/spaces/SP1/types?limit=1000", dataPageBody([]map[string]any{
		{"id": "T1", "key": "ot_task", "name": "Task", "icon": map[string]any{"format": "emoji", "emoji": "📋"}, "properties": []any{}, "space_id": "SP1"},
		{"id": "T2", "key": "ot_note", "name": "Note", "icon": map[string]any{"format": "emoji", "emoji": "📝"}, "properties": []any{}, "space_id": "SP1"},
	}))
	r := New(d, NewDefaultOptions())

	id, err := r.ResolveType(context.Background(), "SP1", "Task")
	require.NoError(t, err)
	assert.Equal(t, "T1", id)
	assert.Equal(t, 1, d.callCount("types.list"))

	idByKey, err := r.ResolveTypeByKey(context.Background(), "SP1", "ot_note")
	require.NoError(t, err)
	assert.Equal(t, "T2", idByKey)
	assert.Equal(t, 1, d.callCount("types.list"), "type-by-key lookup reuses the fill from ResolveType")
}

func TestResolveTypeNotFound(t *testing.T) {
	d := newFakeDoer()
	d.set("/v1/spaces/SP1/types?limit=1000", dataPageBody(nil))
	r := New(d, NewDefaultOptions())

	_, err := r.ResolveType(context.Background(), "SP1", "Ghost")
	require.Error(t, err)
	var nf *apierr.NotFound
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "type", nf.Entity)
}

func TestCaseInsensitiveByDefault(t *testing.T) {
	d := newFakeDoer()
	d.set("/v1/spaces?limit=1000", dataPageBody([]map[string]any{
		{"id": "SP1", "name": "Work"},
	}))
	r := New(d, NewDefaultOptions())

	id, err := r.ResolveSpace(context.Background(), "WORK")
	require.NoError(t, err)
	assert.Equal(t, "SP1", id)
}

func TestCacheTTLExpiry(t *testing.T) {
	d := newFakeDoer()
	d.set("/v1/spaces?limit=1000", dataPageBody([]map[string]any{{"id": "SP1", "name": "Work"}}))
	r := New(d, Options{TTL: 20 * time.Millisecond, CaseInsensitive: true})

	_, err := r.ResolveSpace(context.Background(), "Work")
	require.NoError(t, err)
	assert.Equal(t, 1, d.callCount("spaces.list"))

	time.Sleep(40 * time.Millisecond)
	_, err = r.ResolveSpace(context.Background(), "Work")
	require.NoError(t, err)
	assert.Equal(t, 2, d.callCount("spaces.list"), "expired entry must trigger a refetch")
}

func TestCascadeInvalidationClearsDependents(t *testing.T) {
	d := newFakeDoer()
	d.set("/v1/spaces?limit=1000", dataPageBody([]map[string]any{{"id": "SP1", "name": "Work"}}))
	d.set("/v1/spaces/SP1/types?limit=1000", dataPageBody([]map[string]any{
		{"id": "T1", "key": "ot_task", "name": "Task", "icon": map[string]any{"format": "emoji", "emoji": "x"}, "properties": []any{}, "space_id": "SP1"},
	}))
	d.set("/v1/spaces/SP1/properties?limit=1000", dataPageBody([]map[string]any{
		{"id": "P1", "name": "Status", "key": "status", "format": "select", "space_id": "SP1", "type_id": "T1"},
	}))
	d.set("/v1/spaces/SP1/properties/P1/tags?limit=1000", dataPageBody([]map[string]any{
		{"id": "G1", "name": "Done", "space_id": "SP1", "property_id": "P1"},
	}))

	r := New(d, NewDefaultOptions())
	ctx := context.Background()

	_, err := r.ResolveSpace(ctx, "Work")
	require.NoError(t, err)
	_, err = r.ResolveType(ctx, "SP1", "Task")
	require.NoError(t, err)
	_, err = r.ResolveProperty(ctx, "SP1", "T1", "Status")
	require.NoError(t, err)
	_, err = r.ResolveTag(ctx, "SP1", "P1", "Done")
	require.NoError(t, err)

	require.Equal(t, 1, d.callCount("types.list"))
	require.Equal(t, 1, d.callCount("properties.list"))
	require.Equal(t, 1, d.callCount("tags.list"))

	r.InvalidateSpace("SP1")

	_, err = r.ResolveType(ctx, "SP1", "Task")
	require.NoError(t, err)
	assert.Equal(t, 2, d.callCount("types.list"), "type index must be refetched after space invalidation")

	_, err = r.ResolveProperty(ctx, "SP1", "T1", "Status")
	require.NoError(t, err)
	assert.Equal(t, 2, d.callCount("properties.list"), "property index cascades from space invalidation")

	_, err = r.ResolveTag(ctx, "SP1", "P1", "Done")
	require.NoError(t, err)
	assert.Equal(t, 2, d.callCount("tags.list"), "tag index cascades transitively from space invalidation")
}

func TestConcurrentResolveSpaceCoalescesIntoOneNetworkCall(t *testing.T) {
	d := newFakeDoer()
	d.set("/v1/spaces?limit=1000", dataPageBody([]map[string]any{{"id": "SP1", "name": "Work"}}))
	r := New(d, NewDefaultOptions())

	const n = 20
	var wg sync.WaitGroup
	ids := make([]string, n)
	errs := make([]error, n)
	var inFlight int32
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			atomic.AddInt32(&inFlight, 1)
			ids[i], errs[i] = r.ResolveSpace(context.Background(), "Work")
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "SP1", ids[i])
	}
	assert.LessOrEqual(t, d.callCount("spaces.list"), 1, "concurrent misses on an empty cache must coalesce")
}
