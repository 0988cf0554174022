// Package endpoints implements C3: one small file per entity family,
// each building a URL and request body, validating pre-flight with
// go-playground/validator, invoking the C2 client, and decoding into C1
// model types. Mirrors the teacher's one-file-per-provider layout under
// internal/llm/client.
package endpoints

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"

	"kbclient/internal/apiclient"
	"kbclient/internal/apierr"
	"kbclient/internal/model"
)

var validate = validator.New()

// Doer is the subset of *apiclient.Client the endpoint layer depends on,
// so endpoint code can be tested against a fake without a real server.
type Doer interface {
	Get(ctx context.Context, operation, path string, out any) error
	Post(ctx context.Context, operation, path string, body, out any) error
	PostUnauthenticated(ctx context.Context, operation, path string, body, out any) error
	Patch(ctx context.Context, operation, path string, body, out any) error
	Delete(ctx context.Context, operation, path string, out any) error
}

var _ Doer = (*apiclient.Client)(nil)

// ListParams are the pagination query parameters shared by every
// collection endpoint.
type ListParams struct {
	Offset int
	Limit  int `validate:"omitempty,min=1,max=1000"`
}

func (p ListParams) query() url.Values {
	v := url.Values{}
	if p.Offset > 0 {
		v.Set("offset", strconv.Itoa(p.Offset))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	return v
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// preflight runs struct-tag validation on req before any network call,
// translating a validator failure into apierr.BadRequest the same shape
// a server-side rejection would take (§8.2 S7).
func preflight(operation string, req any) error {
	if err := validate.Struct(req); err != nil {
		return &apierr.BadRequest{Operation: operation, Details: err.Error()}
	}
	return nil
}

func spacePath(spaceID string, rest string) string {
	return fmt.Sprintf("/v1/spaces/%s%s", spaceID, rest)
}

// dataPage is the {data, pagination} envelope every collection endpoint
// returns.
type dataPage[T any] struct {
	Data       []T               `json:"data"`
	Pagination model.Pagination `json:"pagination"`
}

func (d dataPage[T]) toPage() model.Page[T] {
	return model.Page[T]{Data: d.Data, Pagination: d.Pagination}
}
