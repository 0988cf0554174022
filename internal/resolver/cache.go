package resolver

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultTTL is the per-entry cache lifetime applied when a Cache is
// built with a zero TTL (§6.5 cache_ttl default).
const DefaultTTL = 300 * time.Second

// cacheSize bounds each index generously; the TTL, not the LRU bound, is
// the active eviction policy at the scale this resolver runs at (a
// handful of spaces, at most a few thousand names per index).
const cacheSize = 8192

type typeKey struct{ SpaceID, Name string }
type typeByKeyKey struct{ SpaceID, TypeKey string }
type objectKey struct{ SpaceID, Name string }
type propertyKey struct{ TypeID, Name string }
type tagKey struct{ PropertyID, Name string }
type listKey struct{ SpaceID, Name string }

// idIndex tracks, for one composite-keyed cache, the reverse mapping
// from an entity id back to the composite key that names it, plus which
// ids belong to which parent — the bookkeeping cascade invalidation
// needs since the forward cache is keyed by name, not id.
type idIndex[K comparable] struct {
	mu       sync.Mutex
	byID     map[string]K
	children map[string]map[string]struct{} // parentID -> child ids
}

func newIDIndex[K comparable]() *idIndex[K] {
	return &idIndex[K]{byID: make(map[string]K), children: make(map[string]map[string]struct{})}
}

func (x *idIndex[K]) record(parentID, id string, key K) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.byID[id] = key
	set, ok := x.children[parentID]
	if !ok {
		set = make(map[string]struct{})
		x.children[parentID] = set
	}
	set[id] = struct{}{}
}

// drained pairs a removed entity id with the composite key that named it
// in the forward cache.
type drained[K comparable] struct {
	ID  string
	Key K
}

// drain removes and returns every id known under parentID, along with
// their composite keys, and forgets the parent scope entirely.
func (x *idIndex[K]) drain(parentID string) []drained[K] {
	x.mu.Lock()
	defer x.mu.Unlock()
	set := x.children[parentID]
	delete(x.children, parentID)
	if len(set) == 0 {
		return nil
	}
	out := make([]drained[K], 0, len(set))
	for id := range set {
		if k, ok := x.byID[id]; ok {
			out = append(out, drained[K]{ID: id, Key: k})
			delete(x.byID, id)
		}
	}
	return out
}

// Cache is the seven-index name/key -> id cache of spec.md §4.4. Each
// index is a github.com/hashicorp/golang-lru/v2/expirable.LRU, the
// teacher's own cache dependency (internal/gateway/repository/
// projectstore/store.go), which gives every entry a genuine per-entry
// TTL instead of a hand-rolled clock check.
type Cache struct {
	ttl time.Duration

	spaces     *expirable.LRU[string, string]
	types      *expirable.LRU[typeKey, string]
	typesByKey *expirable.LRU[typeByKeyKey, string]
	objects    *expirable.LRU[objectKey, string]
	properties *expirable.LRU[propertyKey, string]
	tags       *expirable.LRU[tagKey, string]
	lists      *expirable.LRU[listKey, string]

	typeRev     *idIndex[typeKey]
	typeByKeyR  *idIndex[typeByKeyKey]
	propertyRev *idIndex[propertyKey]
	tagRev      *idIndex[tagKey]
	objectRev   *idIndex[objectKey]
	listRev     *idIndex[listKey]
}

// NewCache builds a Cache whose entries expire ttl after insertion. A
// zero or negative ttl uses DefaultTTL.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:         ttl,
		spaces:      expirable.NewLRU[string, string](cacheSize, nil, ttl),
		types:       expirable.NewLRU[typeKey, string](cacheSize, nil, ttl),
		typesByKey:  expirable.NewLRU[typeByKeyKey, string](cacheSize, nil, ttl),
		objects:     expirable.NewLRU[objectKey, string](cacheSize, nil, ttl),
		properties:  expirable.NewLRU[propertyKey, string](cacheSize, nil, ttl),
		tags:        expirable.NewLRU[tagKey, string](cacheSize, nil, ttl),
		lists:       expirable.NewLRU[listKey, string](cacheSize, nil, ttl),
		typeRev:     newIDIndex[typeKey](),
		typeByKeyR:  newIDIndex[typeByKeyKey](),
		propertyRev: newIDIndex[propertyKey](),
		tagRev:      newIDIndex[tagKey](),
		objectRev:   newIDIndex[objectKey](),
		listRev:     newIDIndex[listKey](),
	}
}

func (c *Cache) putSpace(name, id string)               { c.spaces.Add(name, id) }
func (c *Cache) getSpace(name string) (string, bool)     { return c.spaces.Get(name) }

func (c *Cache) putType(spaceID, name, key, id string) {
	c.types.Add(typeKey{SpaceID: spaceID, Name: name}, id)
	c.typesByKey.Add(typeByKeyKey{SpaceID: spaceID, TypeKey: key}, id)
	c.typeRev.record(spaceID, id, typeKey{SpaceID: spaceID, Name: name})
	c.typeByKeyR.record(spaceID, id, typeByKeyKey{SpaceID: spaceID, TypeKey: key})
}
func (c *Cache) getType(spaceID, name string) (string, bool) {
	return c.types.Get(typeKey{SpaceID: spaceID, Name: name})
}
func (c *Cache) getTypeByKey(spaceID, key string) (string, bool) {
	return c.typesByKey.Get(typeByKeyKey{SpaceID: spaceID, TypeKey: key})
}

func (c *Cache) putObject(spaceID, name, id string) {
	c.objects.Add(objectKey{SpaceID: spaceID, Name: name}, id)
	c.objectRev.record(spaceID, id, objectKey{SpaceID: spaceID, Name: name})
}
func (c *Cache) getObject(spaceID, name string) (string, bool) {
	return c.objects.Get(objectKey{SpaceID: spaceID, Name: name})
}

func (c *Cache) putProperty(typeID, name, id string) {
	c.properties.Add(propertyKey{TypeID: typeID, Name: name}, id)
	c.propertyRev.record(typeID, id, propertyKey{TypeID: typeID, Name: name})
}
func (c *Cache) getProperty(typeID, name string) (string, bool) {
	return c.properties.Get(propertyKey{TypeID: typeID, Name: name})
}

func (c *Cache) putTag(propertyID, name, id string) {
	c.tags.Add(tagKey{PropertyID: propertyID, Name: name}, id)
	c.tagRev.record(propertyID, id, tagKey{PropertyID: propertyID, Name: name})
}
func (c *Cache) getTag(propertyID, name string) (string, bool) {
	return c.tags.Get(tagKey{PropertyID: propertyID, Name: name})
}

func (c *Cache) putList(spaceID, name, id string) {
	c.lists.Add(listKey{SpaceID: spaceID, Name: name}, id)
	c.listRev.record(spaceID, id, listKey{SpaceID: spaceID, Name: name})
}
func (c *Cache) getList(spaceID, name string) (string, bool) {
	return c.lists.Get(listKey{SpaceID: spaceID, Name: name})
}

// InvalidateSpace clears every type, object, and list index entry
// scoped by spaceID, and cascades into InvalidateType for each type
// that was cleared (§4.4 cascade invalidation).
func (c *Cache) InvalidateSpace(spaceID string) {
	typeIDs := c.typeRev.drain(spaceID)
	for _, d := range typeIDs {
		c.types.Remove(d.Key)
	}
	for _, d := range c.typeByKeyR.drain(spaceID) {
		c.typesByKey.Remove(d.Key)
	}
	for _, d := range c.objectRev.drain(spaceID) {
		c.objects.Remove(d.Key)
	}
	for _, d := range c.listRev.drain(spaceID) {
		c.lists.Remove(d.Key)
	}
	for _, d := range typeIDs {
		c.InvalidateType(d.ID)
	}
}

// InvalidateType clears every property index entry scoped by typeID,
// and cascades into InvalidateProperty for each property cleared.
func (c *Cache) InvalidateType(typeID string) {
	propertyIDs := c.propertyRev.drain(typeID)
	for _, d := range propertyIDs {
		c.properties.Remove(d.Key)
	}
	for _, d := range propertyIDs {
		c.InvalidateProperty(d.ID)
	}
}

// InvalidateProperty clears every tag index entry scoped by propertyID.
func (c *Cache) InvalidateProperty(propertyID string) {
	for _, d := range c.tagRev.drain(propertyID) {
		c.tags.Remove(d.Key)
	}
}
