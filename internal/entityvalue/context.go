package entityvalue

import (
	"context"

	"kbclient/internal/apierr"
	"kbclient/internal/resolver"
)

// spaceResolver is the subset of *resolver.Resolver the context helpers
// depend on, so they can be tested against a fake without a real cache
// or network.
type spaceResolver interface {
	ResolveSpace(ctx context.Context, name string) (string, error)
	ResolveType(ctx context.Context, spaceID, name string) (string, error)
	ResolveProperty(ctx context.Context, spaceID, typeID, name string) (string, error)
	ResolveList(ctx context.Context, spaceID, name string) (string, error)
}

var _ spaceResolver = (*resolver.Resolver)(nil)

// ResolveSpaceContext implements §4.5's flag -> pipeline -> default
// priority for locating the space a command should act on.
//
//  1. flag, if non-empty, is resolved via r.ResolveSpace (auto-detecting
//     an already-formed id).
//  2. Else, if piped is non-nil and carries a space id, that id is used
//     directly with no resolution call.
//  3. Else, if defaultSpace is non-empty, it is resolved via
//     r.ResolveSpace.
//  4. Else, MissingContext{"space", "--space"}.
func ResolveSpaceContext(ctx context.Context, r spaceResolver, flag string, piped *EntityValue, defaultSpace string) (string, error) {
	if flag != "" {
		return r.ResolveSpace(ctx, flag)
	}
	if piped != nil {
		if id, ok := pipedSpaceID(*piped); ok {
			return id, nil
		}
	}
	if defaultSpace != "" {
		return r.ResolveSpace(ctx, defaultSpace)
	}
	return "", &apierr.MissingContext{Needed: "space", Flag: "--space"}
}

// pipedSpaceID extracts a usable space id from a piped EntityValue: a
// Space reports its own id, everything else reports its SpaceID()
// parent accessor.
func pipedSpaceID(v EntityValue) (string, bool) {
	if v.Kind == KindSpace {
		return v.ID(), true
	}
	return v.SpaceID()
}

// ResolveTypeContext resolves the type a command should act on, within
// an already-resolved spaceID, following the same flag -> pipeline ->
// default priority as ResolveSpaceContext.
func ResolveTypeContext(ctx context.Context, r spaceResolver, spaceID, flag string, piped *EntityValue, defaultType string) (string, error) {
	if flag != "" {
		return r.ResolveType(ctx, spaceID, flag)
	}
	if piped != nil {
		if piped.Kind == KindType {
			return piped.ID(), nil
		}
		if id, ok := piped.TypeID(); ok {
			return id, nil
		}
	}
	if defaultType != "" {
		return r.ResolveType(ctx, spaceID, defaultType)
	}
	return "", &apierr.MissingContext{Needed: "type", Flag: "--type"}
}

// ResolvePropertyContext resolves the property a command should act on,
// within an already-resolved (spaceID, typeID) scope.
func ResolvePropertyContext(ctx context.Context, r spaceResolver, spaceID, typeID, flag string, piped *EntityValue, defaultProperty string) (string, error) {
	if flag != "" {
		return r.ResolveProperty(ctx, spaceID, typeID, flag)
	}
	if piped != nil {
		if piped.Kind == KindProperty {
			return piped.ID(), nil
		}
		if id, ok := piped.PropertyID(); ok {
			return id, nil
		}
	}
	if defaultProperty != "" {
		return r.ResolveProperty(ctx, spaceID, typeID, defaultProperty)
	}
	return "", &apierr.MissingContext{Needed: "property", Flag: "--property"}
}

// ResolveListContext resolves the list a command should act on, within
// an already-resolved spaceID.
func ResolveListContext(ctx context.Context, r spaceResolver, spaceID, flag string, piped *EntityValue, defaultList string) (string, error) {
	if flag != "" {
		return r.ResolveList(ctx, spaceID, flag)
	}
	if piped != nil {
		if id, ok := piped.ListID(); ok {
			return id, nil
		}
	}
	if defaultList != "" {
		return r.ResolveList(ctx, spaceID, defaultList)
	}
	return "", &apierr.MissingContext{Needed: "list", Flag: "--list"}
}
