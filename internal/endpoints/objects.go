package endpoints

import (
	"context"

	"kbclient/internal/model"
)

// CreateObjectRequest is the payload for Objects.Create. TypeKey is
// required: the service resolves the space-local TypeID from it.
type CreateObjectRequest struct {
	TypeKey    string                `json:"type_key" validate:"required"`
	Name       *string               `json:"name,omitempty"`
	Body       *string               `json:"body,omitempty"`
	Icon       *model.Icon           `json:"icon,omitempty"`
	TemplateID *string               `json:"template_id,omitempty"`
	Properties []model.PropertyValue `json:"properties,omitempty"`
}

// UpdateObjectRequest is a partial patch.
type UpdateObjectRequest struct {
	Name       *string               `json:"name,omitempty"`
	Body       *string               `json:"body,omitempty"`
	Icon       *model.Icon           `json:"icon,omitempty"`
	Properties []model.PropertyValue `json:"properties,omitempty"`
}

type objectEnvelope struct {
	Object model.Object `json:"object"`
}

func objectPath(spaceID, rest string) string {
	return spacePath(spaceID, "/objects"+rest)
}

// ListObjects lists the objects in a space.
func ListObjects(ctx context.Context, d Doer, spaceID string, p ListParams) (model.Page[model.Object], error) {
	if err := preflight("objects.list", p); err != nil {
		return model.Page[model.Object]{}, err
	}
	var page dataPage[model.Object]
	if err := d.Get(ctx, "objects.list", withQuery(objectPath(spaceID, ""), p.query()), &page); err != nil {
		return model.Page[model.Object]{}, err
	}
	return page.toPage(), nil
}

// GetObject fetches one object by id, scoped to a space. Unlike
// Create/Update/Delete, the get response is a bare Object, not wrapped in
// an "object" envelope — Object itself has an "object" field (the type
// key), so an envelope would collide with it anyway.
func GetObject(ctx context.Context, d Doer, spaceID, id string) (model.Object, error) {
	var o model.Object
	if err := d.Get(ctx, "objects.get", objectPath(spaceID, "/"+id), &o); err != nil {
		return model.Object{}, err
	}
	return o, nil
}

// CreateObject creates a new object of the given type in a space.
func CreateObject(ctx context.Context, d Doer, spaceID string, req CreateObjectRequest) (model.Object, error) {
	if err := preflight("objects.create", req); err != nil {
		return model.Object{}, err
	}
	var env objectEnvelope
	if err := d.Post(ctx, "objects.create", objectPath(spaceID, ""), req, &env); err != nil {
		return model.Object{}, err
	}
	return env.Object, nil
}

// UpdateObject applies a partial patch to an object.
func UpdateObject(ctx context.Context, d Doer, spaceID, id string, req UpdateObjectRequest) (model.Object, error) {
	var env objectEnvelope
	if err := d.Patch(ctx, "objects.update", objectPath(spaceID, "/"+id), req, &env); err != nil {
		return model.Object{}, err
	}
	return env.Object, nil
}

// DeleteObject deletes (archives) an object and returns its last known state.
func DeleteObject(ctx context.Context, d Doer, spaceID, id string) (model.Object, error) {
	var env objectEnvelope
	if err := d.Delete(ctx, "objects.delete", objectPath(spaceID, "/"+id), &env); err != nil {
		return model.Object{}, err
	}
	return env.Object, nil
}
