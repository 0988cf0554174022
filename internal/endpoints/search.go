package endpoints

import (
	"context"

	"kbclient/internal/apierr"
	"kbclient/internal/model"
)

// SortField is the closed set of fields search results may be sorted by.
type SortField string

const (
	SortCreatedDate      SortField = "created_date"
	SortLastModifiedDate SortField = "last_modified_date"
	SortLastOpenedDate   SortField = "last_opened_date"
	SortName             SortField = "name"
)

var validSortFields = map[SortField]bool{
	SortCreatedDate: true, SortLastModifiedDate: true, SortLastOpenedDate: true, SortName: true,
}

// SortDirection is the closed set of sort directions.
type SortDirection string

const (
	DirectionAsc  SortDirection = "asc"
	DirectionDesc SortDirection = "desc"
)

var validSortDirections = map[SortDirection]bool{DirectionAsc: true, DirectionDesc: true}

// SearchRequest is the payload shared by Search.Global and Search.InSpace.
type SearchRequest struct {
	Query     string        `json:"query,omitempty"`
	Limit     int           `json:"limit,omitempty" validate:"omitempty,min=1,max=1000"`
	Offset    int           `json:"offset,omitempty" validate:"omitempty,min=0"`
	Sort      SortField     `json:"sort,omitempty"`
	Direction SortDirection `json:"direction,omitempty"`
}

// validateSort checks sort/direction before any network call (§4.3,
// §8.2 S7): unknown values fail with BadRequest client-side.
func (r SearchRequest) validateSort() error {
	if r.Sort != "" && !validSortFields[r.Sort] {
		return &apierr.BadRequest{Operation: "search", Details: "sort: unknown value '" + string(r.Sort) + "'"}
	}
	if r.Direction != "" && !validSortDirections[r.Direction] {
		return &apierr.BadRequest{Operation: "search", Details: "direction: unknown value '" + string(r.Direction) + "'"}
	}
	return nil
}

// Global searches across every space visible to the credential.
func Global(ctx context.Context, d Doer, req SearchRequest) (model.Page[model.Object], error) {
	if err := req.validateSort(); err != nil {
		return model.Page[model.Object]{}, err
	}
	if err := preflight("search.global", req); err != nil {
		return model.Page[model.Object]{}, err
	}
	var page dataPage[model.Object]
	if err := d.Post(ctx, "search.global", "/v1/search", req, &page); err != nil {
		return model.Page[model.Object]{}, err
	}
	return page.toPage(), nil
}

// InSpace searches within a single space.
func InSpace(ctx context.Context, d Doer, spaceID string, req SearchRequest) (model.Page[model.Object], error) {
	if err := req.validateSort(); err != nil {
		return model.Page[model.Object]{}, err
	}
	if err := preflight("search.in_space", req); err != nil {
		return model.Page[model.Object]{}, err
	}
	var page dataPage[model.Object]
	if err := d.Post(ctx, "search.in_space", spacePath(spaceID, "/search"), req, &page); err != nil {
		return model.Page[model.Object]{}, err
	}
	return page.toPage(), nil
}
