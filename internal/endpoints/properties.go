package endpoints

import (
	"context"

	"kbclient/internal/model"
)

// CreatePropertyRequest is the payload for Properties.Create.
type CreatePropertyRequest struct {
	Name   string               `json:"name" validate:"required"`
	Key    string               `json:"key" validate:"required"`
	Format model.PropertyFormat `json:"format" validate:"required,oneof=text number select multi_select date files checkbox url email phone objects"`
}

// UpdatePropertyRequest is a partial patch; format cannot be changed once
// created (§4.1 type-checked encoding relies on a stable format per key).
type UpdatePropertyRequest struct {
	Name *string `json:"name,omitempty"`
}

type propertyEnvelope struct {
	Property model.Property `json:"property"`
}

func propertyPath(spaceID, rest string) string {
	return spacePath(spaceID, "/properties"+rest)
}

// ListProperties lists the properties defined in a space.
func ListProperties(ctx context.Context, d Doer, spaceID string, p ListParams) (model.Page[model.Property], error) {
	if err := preflight("properties.list", p); err != nil {
		return model.Page[model.Property]{}, err
	}
	var page dataPage[model.Property]
	if err := d.Get(ctx, "properties.list", withQuery(propertyPath(spaceID, ""), p.query()), &page); err != nil {
		return model.Page[model.Property]{}, err
	}
	return page.toPage(), nil
}

// GetProperty fetches one property by id.
func GetProperty(ctx context.Context, d Doer, spaceID, id string) (model.Property, error) {
	var env propertyEnvelope
	if err := d.Get(ctx, "properties.get", propertyPath(spaceID, "/"+id), &env); err != nil {
		return model.Property{}, err
	}
	return env.Property, nil
}

// CreateProperty defines a new property in a space.
func CreateProperty(ctx context.Context, d Doer, spaceID string, req CreatePropertyRequest) (model.Property, error) {
	if err := preflight("properties.create", req); err != nil {
		return model.Property{}, err
	}
	var env propertyEnvelope
	if err := d.Post(ctx, "properties.create", propertyPath(spaceID, ""), req, &env); err != nil {
		return model.Property{}, err
	}
	return env.Property, nil
}

// UpdateProperty renames a property.
func UpdateProperty(ctx context.Context, d Doer, spaceID, id string, req UpdatePropertyRequest) (model.Property, error) {
	var env propertyEnvelope
	if err := d.Patch(ctx, "properties.update", propertyPath(spaceID, "/"+id), req, &env); err != nil {
		return model.Property{}, err
	}
	return env.Property, nil
}

// DeleteProperty deletes a property.
func DeleteProperty(ctx context.Context, d Doer, spaceID, id string) (model.Property, error) {
	var env propertyEnvelope
	if err := d.Delete(ctx, "properties.delete", propertyPath(spaceID, "/"+id), &env); err != nil {
		return model.Property{}, err
	}
	return env.Property, nil
}
