package endpoints

import (
	"context"

	"kbclient/internal/model"
)

// CreateTypeRequest is the payload for Types.Create.
type CreateTypeRequest struct {
	Name       string                      `json:"name" validate:"required"`
	Key        string                      `json:"key" validate:"required"`
	Icon       model.Icon                  `json:"icon"`
	Layout     *model.Layout               `json:"layout,omitempty"`
	Properties []model.PropertyDescriptor  `json:"properties,omitempty"`
}

// UpdateTypeRequest is a partial patch.
type UpdateTypeRequest struct {
	Name   *string       `json:"name,omitempty"`
	Icon   *model.Icon   `json:"icon,omitempty"`
	Layout *model.Layout `json:"layout,omitempty"`
}

type typeEnvelope struct {
	Type model.Type `json:"type"`
}

func typePath(spaceID, rest string) string {
	return spacePath(spaceID, "/types"+rest)
}

// ListTypes lists the types defined in a space.
func ListTypes(ctx context.Context, d Doer, spaceID string, p ListParams) (model.Page[model.Type], error) {
	if err := preflight("types.list", p); err != nil {
		return model.Page[model.Type]{}, err
	}
	var page dataPage[model.Type]
	if err := d.Get(ctx, "types.list", withQuery(typePath(spaceID, ""), p.query()), &page); err != nil {
		return model.Page[model.Type]{}, err
	}
	return page.toPage(), nil
}

// GetType fetches one type by id.
func GetType(ctx context.Context, d Doer, spaceID, id string) (model.Type, error) {
	var env typeEnvelope
	if err := d.Get(ctx, "types.get", typePath(spaceID, "/"+id), &env); err != nil {
		return model.Type{}, err
	}
	return env.Type, nil
}

// CreateType defines a new type in a space.
func CreateType(ctx context.Context, d Doer, spaceID string, req CreateTypeRequest) (model.Type, error) {
	if err := preflight("types.create", req); err != nil {
		return model.Type{}, err
	}
	var env typeEnvelope
	if err := d.Post(ctx, "types.create", typePath(spaceID, ""), req, &env); err != nil {
		return model.Type{}, err
	}
	return env.Type, nil
}

// UpdateType applies a partial patch to a type.
func UpdateType(ctx context.Context, d Doer, spaceID, id string, req UpdateTypeRequest) (model.Type, error) {
	var env typeEnvelope
	if err := d.Patch(ctx, "types.update", typePath(spaceID, "/"+id), req, &env); err != nil {
		return model.Type{}, err
	}
	return env.Type, nil
}

// DeleteType deletes a type.
func DeleteType(ctx context.Context, d Doer, spaceID, id string) (model.Type, error) {
	var env typeEnvelope
	if err := d.Delete(ctx, "types.delete", typePath(spaceID, "/"+id), &env); err != nil {
		return model.Type{}, err
	}
	return env.Type, nil
}
