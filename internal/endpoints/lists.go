package endpoints

import (
	"context"

	"kbclient/internal/model"
)

func listPath(spaceID, listID, rest string) string {
	return spacePath(spaceID, "/lists/"+listID+rest)
}

// AddObjectsRequest is the payload for Lists.AddObjects.
type AddObjectsRequest struct {
	ObjectIDs []string `json:"object_ids" validate:"required,min=1"`
}

type addObjectsResponse struct {
	Message      string   `json:"message"`
	AddedObjects []string `json:"added_objects"`
}

// AddObjects adds one or more objects to a list, returning the ids the
// service actually added.
func AddObjects(ctx context.Context, d Doer, spaceID, listID string, objectIDs []string) ([]string, error) {
	req := AddObjectsRequest{ObjectIDs: objectIDs}
	if err := preflight("lists.add_objects", req); err != nil {
		return nil, err
	}
	var resp addObjectsResponse
	if err := d.Post(ctx, "lists.add_objects", listPath(spaceID, listID, "/objects"), req, &resp); err != nil {
		return nil, err
	}
	return resp.AddedObjects, nil
}

// Views returns the saved views (filters/sorts/layout) on a list.
func Views(ctx context.Context, d Doer, spaceID, listID string, p ListParams) (model.Page[model.ListView], error) {
	if err := preflight("lists.views", p); err != nil {
		return model.Page[model.ListView]{}, err
	}
	var page dataPage[model.ListView]
	if err := d.Get(ctx, "lists.views", withQuery(listPath(spaceID, listID, "/views"), p.query()), &page); err != nil {
		return model.Page[model.ListView]{}, err
	}
	return page.toPage(), nil
}

// ListObjectsInList returns the objects currently in a list.
func ListObjectsInList(ctx context.Context, d Doer, spaceID, listID string, p ListParams) (model.Page[model.Object], error) {
	if err := preflight("lists.objects", p); err != nil {
		return model.Page[model.Object]{}, err
	}
	var page dataPage[model.Object]
	if err := d.Get(ctx, "lists.objects", withQuery(listPath(spaceID, listID, "/objects"), p.query()), &page); err != nil {
		return model.Page[model.Object]{}, err
	}
	return page.toPage(), nil
}

// RemoveObject removes one object from a list.
func RemoveObject(ctx context.Context, d Doer, spaceID, listID, objectID string) error {
	return d.Delete(ctx, "lists.remove_object", listPath(spaceID, listID, "/objects/"+objectID), nil)
}
