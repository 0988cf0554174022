package entityvalue

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kbclient/internal/apierr"
	"kbclient/internal/model"
)

func TestObjectCarriesParentContext(t *testing.T) {
	name := "Spec"
	o := model.Object{ID: "O1", Name: &name}
	v := NewObject(o, "SP1", "T1", "ot_task")

	assert.Equal(t, "O1", v.ID())
	assert.Equal(t, "Spec", v.Name())
	sid, ok := v.SpaceID()
	assert.True(t, ok)
	assert.Equal(t, "SP1", sid)
	tid, ok := v.TypeID()
	assert.True(t, ok)
	assert.Equal(t, "T1", tid)
	tkey, ok := v.TypeKey()
	assert.True(t, ok)
	assert.Equal(t, "ot_task", tkey)
}

func TestSpaceHasNoParentSpaceID(t *testing.T) {
	v := NewSpace(model.Space{ID: "SP1", Name: "Work"})
	_, ok := v.SpaceID()
	assert.False(t, ok, "Space itself has no parent per §3.1")
}

func TestRecordFieldOrderAndTypeDiscriminator(t *testing.T) {
	v := NewObject(model.Object{ID: "O1", Name: strPtr("Spec")}, "SP1", "T1", "ot_task")
	rec := v.Record()
	require.NotEmpty(t, rec.Fields)
	assert.Equal(t, "_type", rec.Fields[0].Key)
	assert.Equal(t, "object", rec.Fields[0].Value)
	assert.Equal(t, "id", rec.Fields[1].Key)
	assert.Equal(t, "O1", rec.Fields[1].Value)

	b, err := json.Marshal(rec)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Equal(t, "object", raw["_type"])
	assert.Equal(t, "SP1", raw["space_id"])
	assert.Equal(t, "T1", raw["type_id"])
	assert.Equal(t, "ot_task", raw["type_key"])
}

type fakeResolver struct {
	spaceCalls int
	typeCalls  int
}

func (f *fakeResolver) ResolveSpace(ctx context.Context, name string) (string, error) {
	f.spaceCalls++
	if name == "Work" {
		return "SP1", nil
	}
	return "", &apierr.NotFound{Entity: "space", NameOrID: name}
}
func (f *fakeResolver) ResolveType(ctx context.Context, spaceID, name string) (string, error) {
	f.typeCalls++
	return "T-" + name, nil
}
func (f *fakeResolver) ResolveProperty(ctx context.Context, spaceID, typeID, name string) (string, error) {
	return "P-" + name, nil
}
func (f *fakeResolver) ResolveList(ctx context.Context, spaceID, name string) (string, error) {
	return "L-" + name, nil
}

func TestResolveSpaceContextPriority(t *testing.T) {
	r := &fakeResolver{}
	ctx := context.Background()
	piped := NewObject(model.Object{ID: "O1"}, "SP-PIPED", "T1", "ot_task")

	// flag wins over everything.
	id, err := ResolveSpaceContext(ctx, r, "Work", &piped, "Default")
	require.NoError(t, err)
	assert.Equal(t, "SP1", id)

	// pipeline wins over default when no flag.
	id, err = ResolveSpaceContext(ctx, r, "", &piped, "Default")
	require.NoError(t, err)
	assert.Equal(t, "SP-PIPED", id)

	// default is used when neither flag nor pipeline is present.
	r2 := &fakeResolver{}
	id, err = ResolveSpaceContext(ctx, r2, "", nil, "Work")
	require.NoError(t, err)
	assert.Equal(t, "SP1", id)

	// no source at all -> MissingContext.
	_, err = ResolveSpaceContext(ctx, r, "", nil, "")
	require.Error(t, err)
	var mc *apierr.MissingContext
	require.ErrorAs(t, err, &mc)
	assert.Equal(t, "space", mc.Needed)
	assert.Equal(t, "--space", mc.Flag)
}

func TestResolveSpaceContextPipedSpaceUsesOwnID(t *testing.T) {
	r := &fakeResolver{}
	space := NewSpace(model.Space{ID: "SP1", Name: "Work"})
	id, err := ResolveSpaceContext(context.Background(), r, "", &space, "")
	require.NoError(t, err)
	assert.Equal(t, "SP1", id)
}

func strPtr(s string) *string { return &s }
