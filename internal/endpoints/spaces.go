package endpoints

import (
	"context"

	"kbclient/internal/model"
)

// CreateSpaceRequest is the payload for Spaces.Create.
type CreateSpaceRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description,omitempty"`
}

// UpdateSpaceRequest is a partial patch; only non-nil fields are sent.
type UpdateSpaceRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type spaceEnvelope struct {
	Space model.Space `json:"space"`
}

// ListSpaces lists every space visible to the credential.
func ListSpaces(ctx context.Context, d Doer, p ListParams) (model.Page[model.Space], error) {
	if err := preflight("spaces.list", p); err != nil {
		return model.Page[model.Space]{}, err
	}
	var page dataPage[model.Space]
	if err := d.Get(ctx, "spaces.list", withQuery("/v1/spaces", p.query()), &page); err != nil {
		return model.Page[model.Space]{}, err
	}
	return page.toPage(), nil
}

// GetSpace fetches one space by id. Unlike Create/Update, the get
// response is a bare Space, not wrapped in a "space" envelope.
func GetSpace(ctx context.Context, d Doer, id string) (model.Space, error) {
	var sp model.Space
	if err := d.Get(ctx, "spaces.get", spacePath(id, ""), &sp); err != nil {
		return model.Space{}, err
	}
	return sp, nil
}

// CreateSpace creates a new space.
func CreateSpace(ctx context.Context, d Doer, req CreateSpaceRequest) (model.Space, error) {
	if err := preflight("spaces.create", req); err != nil {
		return model.Space{}, err
	}
	var env spaceEnvelope
	if err := d.Post(ctx, "spaces.create", "/v1/spaces", req, &env); err != nil {
		return model.Space{}, err
	}
	return env.Space, nil
}

// UpdateSpace applies a partial patch to a space.
func UpdateSpace(ctx context.Context, d Doer, id string, req UpdateSpaceRequest) (model.Space, error) {
	var env spaceEnvelope
	if err := d.Patch(ctx, "spaces.update", spacePath(id, ""), req, &env); err != nil {
		return model.Space{}, err
	}
	return env.Space, nil
}
