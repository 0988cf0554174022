// Package resolver implements C4: a concurrent, TTL-bounded name-to-id
// cache layered over the C3 endpoint operations, plus UUID auto-detection
// so identifiers already in canonical shape never touch the network.
package resolver

import (
	"context"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/singleflight"

	"kbclient/internal/apierr"
	"kbclient/internal/endpoints"
)

// Options configures a Resolver at construction.
type Options struct {
	// TTL is the per-entry cache lifetime (§6.5 cache_ttl). Zero uses
	// DefaultTTL.
	TTL time.Duration
	// CaseInsensitive folds cache keys with Unicode case-folding on
	// insert and lookup (§4.4, §6.5 case_insensitive). Defaults to true
	// via NewDefaultOptions; the zero value of Options is
	// case-sensitive, so callers building Options by hand must opt in.
	CaseInsensitive bool
	// OpaquePrefixes widens id-shape detection beyond strict UUIDs
	// (§4.4 identifier-shape rule, opt-in widening).
	OpaquePrefixes bool
	// Logger receives the warning event emitted on a multi-match name
	// resolution (§4.4 step 5). Nil uses a new text-handler logger
	// writing to stderr.
	Logger *slog.Logger
}

// NewDefaultOptions returns Options matching the §6.5 configuration
// defaults: 300s TTL, case-insensitive, no opaque-prefix widening.
func NewDefaultOptions() Options {
	return Options{TTL: DefaultTTL, CaseInsensitive: true}
}

// Resolver is the only correct place in the system to turn a
// human-entered name into an identifier (§4.4). It wraps a Doer (the C2
// client) with a Cache and exposes one resolve method per entity family.
type Resolver struct {
	d               endpoints.Doer
	cache           *Cache
	caseInsensitive bool
	opaquePrefixes  bool
	logger          *slog.Logger

	// group coalesces concurrent list-and-fill calls for the same
	// parent scope into a single network request, satisfying §8.1's
	// property 10 (exactly one list call per concurrent miss) while
	// still tolerating the occasional race §4.4 says is acceptable.
	group singleflight.Group
}

// New builds a Resolver over d with the given Options.
func New(d endpoints.Doer, opts Options) *Resolver {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return &Resolver{
		d:               d,
		cache:           NewCache(opts.TTL),
		caseInsensitive: opts.CaseInsensitive,
		opaquePrefixes:  opts.OpaquePrefixes,
		logger:          opts.Logger,
	}
}

func (r *Resolver) fold(name string) string { return normalizeName(name, r.caseInsensitive) }

func (r *Resolver) warnMultiMatch(entity, name string, candidates []string) {
	r.logger.Warn("name resolved to multiple candidates; using the first",
		"entity", entity, "name", name, "candidates", candidates)
}

// ResolveSpace resolves a space name (or an already-shaped id) to a
// space id (§8.2 S1, S2).
func (r *Resolver) ResolveSpace(ctx context.Context, name string) (string, error) {
	if r.LooksLikeID(name) {
		return name, nil
	}
	key := r.fold(name)
	if id, ok := r.cache.getSpace(key); ok {
		return id, nil
	}
	_, err, _ := r.group.Do("spaces:", func() (any, error) {
		page, err := endpoints.ListSpaces(ctx, r.d, endpoints.ListParams{Limit: 1000})
		if err != nil {
			return nil, err
		}
		matches := map[string][]string{}
		for _, sp := range page.Data {
			k := r.fold(sp.Name)
			if len(matches[k]) == 0 {
				r.cache.putSpace(k, sp.ID)
			}
			matches[k] = append(matches[k], sp.ID)
		}
		for spaceName, ids := range matches {
			if len(ids) > 1 {
				r.warnMultiMatch("space", spaceName, ids)
			}
		}
		return nil, nil
	})
	if err != nil {
		return "", err
	}
	id, ok := r.cache.getSpace(key)
	if !ok {
		return "", &apierr.NotFound{Entity: "space", NameOrID: name, Operation: "resolve_space", SearchedIn: "spaces list"}
	}
	return id, nil
}

// ResolveType resolves a type name within a space to a type id (§8.2 S2).
func (r *Resolver) ResolveType(ctx context.Context, spaceID, name string) (string, error) {
	if r.LooksLikeID(name) {
		return name, nil
	}
	key := r.fold(name)
	if id, ok := r.cache.getType(spaceID, key); ok {
		return id, nil
	}
	if err := r.fillTypes(ctx, spaceID); err != nil {
		return "", err
	}
	id, ok := r.cache.getType(spaceID, key)
	if !ok {
		return "", &apierr.NotFound{Entity: "type", NameOrID: name, Operation: "resolve_type", SearchedIn: "space " + spaceID}
	}
	return id, nil
}

// ResolveTypeByKey resolves a global type key within a space to a
// space-local type id (§4.4 type-key resolution).
func (r *Resolver) ResolveTypeByKey(ctx context.Context, spaceID, typeKey string) (string, error) {
	if id, ok := r.cache.getTypeByKey(spaceID, typeKey); ok {
		return id, nil
	}
	if err := r.fillTypes(ctx, spaceID); err != nil {
		return "", err
	}
	id, ok := r.cache.getTypeByKey(spaceID, typeKey)
	if !ok {
		return "", &apierr.NotFound{Entity: "type", NameOrID: typeKey, Operation: "resolve_type_by_key", SearchedIn: "space " + spaceID}
	}
	return id, nil
}

func (r *Resolver) fillTypes(ctx context.Context, spaceID string) error {
	_, err, _ := r.group.Do("types:"+spaceID, func() (any, error) {
		page, err := endpoints.ListTypes(ctx, r.d, spaceID, endpoints.ListParams{Limit: 1000})
		if err != nil {
			return nil, err
		}
		seen := map[string][]string{}
		for _, t := range page.Data {
			k := r.fold(t.Name)
			seen[k] = append(seen[k], t.ID)
		}
		// Insert in reverse server order so every type key is indexed
		// and, for a duplicated name, the first match is the one kept.
		for i := len(page.Data) - 1; i >= 0; i-- {
			t := page.Data[i]
			r.cache.putType(spaceID, r.fold(t.Name), t.Key, t.ID)
		}
		for name, ids := range seen {
			if len(ids) > 1 {
				r.warnMultiMatch("type", name, ids)
			}
		}
		return nil, nil
	})
	return err
}

// ResolveObject resolves an object name within a space to an object id.
// Unlike types/properties/tags, the objects index is populated lazily
// during "object get" lookups (§4.4 table), not by a bulk list call,
// since object collections can be arbitrarily large; a miss here issues
// a search scoped to the space instead of a full list.
func (r *Resolver) ResolveObject(ctx context.Context, spaceID, name string) (string, error) {
	if r.LooksLikeID(name) {
		return name, nil
	}
	key := r.fold(name)
	if id, ok := r.cache.getObject(spaceID, key); ok {
		return id, nil
	}
	_, err, _ := r.group.Do("objects:"+spaceID+":"+key, func() (any, error) {
		page, err := endpoints.InSpace(ctx, r.d, spaceID, endpoints.SearchRequest{Query: name, Limit: 100})
		if err != nil {
			return nil, err
		}
		var ids []string
		for _, o := range page.Data {
			if r.fold(o.DisplayName()) != key {
				continue
			}
			if len(ids) == 0 {
				r.cache.putObject(spaceID, key, o.ID)
			}
			ids = append(ids, o.ID)
		}
		if len(ids) > 1 {
			r.warnMultiMatch("object", name, ids)
		}
		return nil, nil
	})
	if err != nil {
		return "", err
	}
	id, ok := r.cache.getObject(spaceID, key)
	if !ok {
		return "", &apierr.NotFound{Entity: "object", NameOrID: name, Operation: "resolve_object", SearchedIn: "space " + spaceID}
	}
	return id, nil
}

// ResolveProperty resolves a property name within a type to a property
// id.
func (r *Resolver) ResolveProperty(ctx context.Context, spaceID, typeID, name string) (string, error) {
	if r.LooksLikeID(name) {
		return name, nil
	}
	key := r.fold(name)
	if id, ok := r.cache.getProperty(typeID, key); ok {
		return id, nil
	}
	_, err, _ := r.group.Do("properties:"+typeID, func() (any, error) {
		page, err := endpoints.ListProperties(ctx, r.d, spaceID, endpoints.ListParams{Limit: 1000})
		if err != nil {
			return nil, err
		}
		seen := map[string][]string{}
		for _, p := range page.Data {
			if p.TypeID != typeID {
				continue
			}
			k := r.fold(p.Name)
			if len(seen[k]) == 0 {
				r.cache.putProperty(typeID, k, p.ID)
			}
			seen[k] = append(seen[k], p.ID)
		}
		for pname, ids := range seen {
			if len(ids) > 1 {
				r.warnMultiMatch("property", pname, ids)
			}
		}
		return nil, nil
	})
	if err != nil {
		return "", err
	}
	id, ok := r.cache.getProperty(typeID, key)
	if !ok {
		return "", &apierr.NotFound{Entity: "property", NameOrID: name, Operation: "resolve_property", SearchedIn: "type " + typeID}
	}
	return id, nil
}

// ResolveTag resolves a tag name on a property to a tag id.
func (r *Resolver) ResolveTag(ctx context.Context, spaceID, propertyID, name string) (string, error) {
	if r.LooksLikeID(name) {
		return name, nil
	}
	key := r.fold(name)
	if id, ok := r.cache.getTag(propertyID, key); ok {
		return id, nil
	}
	_, err, _ := r.group.Do("tags:"+propertyID, func() (any, error) {
		page, err := endpoints.ListTags(ctx, r.d, spaceID, propertyID, endpoints.ListParams{Limit: 1000})
		if err != nil {
			return nil, err
		}
		seen := map[string][]string{}
		for _, tg := range page.Data {
			k := r.fold(tg.Name)
			if len(seen[k]) == 0 {
				r.cache.putTag(propertyID, k, tg.ID)
			}
			seen[k] = append(seen[k], tg.ID)
		}
		for tname, ids := range seen {
			if len(ids) > 1 {
				r.warnMultiMatch("tag", tname, ids)
			}
		}
		return nil, nil
	})
	if err != nil {
		return "", err
	}
	id, ok := r.cache.getTag(propertyID, key)
	if !ok {
		return "", &apierr.NotFound{Entity: "tag", NameOrID: name, Operation: "resolve_tag", SearchedIn: "property " + propertyID}
	}
	return id, nil
}

// ResolveList resolves a list name within a space to a list id. The
// service has no dedicated "list the lists" endpoint (lists are a kind
// of object, per original_source/); this resolves via a space-scoped
// name search the same way ResolveObject does, populating the lists index.
func (r *Resolver) ResolveList(ctx context.Context, spaceID, name string) (string, error) {
	if r.LooksLikeID(name) {
		return name, nil
	}
	key := r.fold(name)
	if id, ok := r.cache.getList(spaceID, key); ok {
		return id, nil
	}
	_, err, _ := r.group.Do("lists:"+spaceID+":"+key, func() (any, error) {
		page, err := endpoints.InSpace(ctx, r.d, spaceID, endpoints.SearchRequest{Query: name, Limit: 100})
		if err != nil {
			return nil, err
		}
		var ids []string
		for _, o := range page.Data {
			if r.fold(o.DisplayName()) != key {
				continue
			}
			if len(ids) == 0 {
				r.cache.putList(spaceID, key, o.ID)
			}
			ids = append(ids, o.ID)
		}
		if len(ids) > 1 {
			r.warnMultiMatch("list", name, ids)
		}
		return nil, nil
	})
	if err != nil {
		return "", err
	}
	id, ok := r.cache.getList(spaceID, key)
	if !ok {
		return "", &apierr.NotFound{Entity: "list", NameOrID: name, Operation: "resolve_list", SearchedIn: "space " + spaceID}
	}
	return id, nil
}

// InvalidateSpace, InvalidateType, and InvalidateProperty expose the
// cascade invalidation of §4.4 to callers issuing mutations.
func (r *Resolver) InvalidateSpace(spaceID string)    { r.cache.InvalidateSpace(spaceID) }
func (r *Resolver) InvalidateType(typeID string)      { r.cache.InvalidateType(typeID) }
func (r *Resolver) InvalidateProperty(propertyID string) { r.cache.InvalidateProperty(propertyID) }
