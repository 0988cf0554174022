package endpoints

import (
	"context"

	"kbclient/internal/model"
)

// CreateTagRequest is the payload for Tags.Create.
type CreateTagRequest struct {
	Name  string      `json:"name" validate:"required"`
	Color *model.Color `json:"color,omitempty"`
}

// UpdateTagRequest is a partial patch.
type UpdateTagRequest struct {
	Name  *string      `json:"name,omitempty"`
	Color *model.Color `json:"color,omitempty"`
}

type tagEnvelope struct {
	Tag model.Tag `json:"tag"`
}

func tagPath(spaceID, propertyID, rest string) string {
	return propertyPath(spaceID, "/"+propertyID+"/tags"+rest)
}

// ListTags lists the tags defined on a property.
func ListTags(ctx context.Context, d Doer, spaceID, propertyID string, p ListParams) (model.Page[model.Tag], error) {
	if err := preflight("tags.list", p); err != nil {
		return model.Page[model.Tag]{}, err
	}
	var page dataPage[model.Tag]
	if err := d.Get(ctx, "tags.list", withQuery(tagPath(spaceID, propertyID, ""), p.query()), &page); err != nil {
		return model.Page[model.Tag]{}, err
	}
	return page.toPage(), nil
}

// GetTag fetches one tag by id.
func GetTag(ctx context.Context, d Doer, spaceID, propertyID, id string) (model.Tag, error) {
	var env tagEnvelope
	if err := d.Get(ctx, "tags.get", tagPath(spaceID, propertyID, "/"+id), &env); err != nil {
		return model.Tag{}, err
	}
	return env.Tag, nil
}

// CreateTag defines a new tag on a property.
func CreateTag(ctx context.Context, d Doer, spaceID, propertyID string, req CreateTagRequest) (model.Tag, error) {
	if err := preflight("tags.create", req); err != nil {
		return model.Tag{}, err
	}
	var env tagEnvelope
	if err := d.Post(ctx, "tags.create", tagPath(spaceID, propertyID, ""), req, &env); err != nil {
		return model.Tag{}, err
	}
	return env.Tag, nil
}

// UpdateTag renames or recolors a tag.
func UpdateTag(ctx context.Context, d Doer, spaceID, propertyID, id string, req UpdateTagRequest) (model.Tag, error) {
	var env tagEnvelope
	if err := d.Patch(ctx, "tags.update", tagPath(spaceID, propertyID, "/"+id), req, &env); err != nil {
		return model.Tag{}, err
	}
	return env.Tag, nil
}

// DeleteTag deletes a tag.
func DeleteTag(ctx context.Context, d Doer, spaceID, propertyID, id string) (model.Tag, error) {
	var env tagEnvelope
	if err := d.Delete(ctx, "tags.delete", tagPath(spaceID, propertyID, "/"+id), &env); err != nil {
		return model.Tag{}, err
	}
	return env.Tag, nil
}
