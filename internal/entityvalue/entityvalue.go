// Package entityvalue implements C5: a single tagged-union value with
// one variant per entity kind of spec.md §3.1, carrying both an
// entity's own fields and the parent identifiers a host command needs
// to re-invoke API operations on it (§4.5). Following spec.md §9's
// "Deep inheritance" note, this is a closed set expressed as one struct
// with a Kind discriminator and one embedded payload per variant,
// dispatched with an exhaustive switch — never an interface hierarchy,
// the same shape the teacher uses for its own small closed enums (e.g.
// ModelLevel in internal/llm).
package entityvalue

import "kbclient/internal/model"

// Kind is the discriminator tag of an EntityValue.
type Kind string

const (
	KindSpace    Kind = "space"
	KindType     Kind = "type"
	KindObject   Kind = "object"
	KindProperty Kind = "property"
	KindTag      Kind = "tag"
	KindList     Kind = "list"
	KindTemplate Kind = "template"
	KindMember   Kind = "member"
)

// SpacePayload carries a Space; it has no parent context (§3.1).
type SpacePayload struct {
	Space model.Space
}

// TypePayload carries a Type plus its owning space.
type TypePayload struct {
	Type    model.Type
	SpaceID string
}

// ObjectPayload carries an Object plus every ancestor id needed to
// re-invoke API operations on it: space, space-local type id, and
// global type key (§3.1 invariants).
type ObjectPayload struct {
	Object  model.Object
	SpaceID string
	TypeID  string
	TypeKey string
}

// PropertyPayload carries a Property plus its owning space and type.
type PropertyPayload struct {
	Property model.Property
	SpaceID  string
	TypeID   string
}

// TagPayload carries a Tag plus its owning space and property.
type TagPayload struct {
	Tag        model.Tag
	SpaceID    string
	PropertyID string
}

// ListPayload carries a List plus its owning space.
type ListPayload struct {
	List    model.List
	SpaceID string
}

// TemplatePayload carries a Template plus its owning space and type.
type TemplatePayload struct {
	Template model.Template
	SpaceID  string
	TypeID   string
}

// MemberPayload carries a Member plus its owning space.
type MemberPayload struct {
	Member  model.Member
	SpaceID string
}

// EntityValue is the plugin-visible value every host command hands back
// and accepts on the pipeline (§4.5). Constructors take parent ids as
// explicit arguments so context can never be dropped silently at
// wrap-time.
type EntityValue struct {
	Kind Kind

	space    *SpacePayload
	typ      *TypePayload
	object   *ObjectPayload
	property *PropertyPayload
	tag      *TagPayload
	list     *ListPayload
	template *TemplatePayload
	member   *MemberPayload
}

func NewSpace(sp model.Space) EntityValue {
	return EntityValue{Kind: KindSpace, space: &SpacePayload{Space: sp}}
}

func NewType(t model.Type, spaceID string) EntityValue {
	return EntityValue{Kind: KindType, typ: &TypePayload{Type: t, SpaceID: spaceID}}
}

func NewObject(o model.Object, spaceID, typeID, typeKey string) EntityValue {
	return EntityValue{Kind: KindObject, object: &ObjectPayload{Object: o, SpaceID: spaceID, TypeID: typeID, TypeKey: typeKey}}
}

func NewProperty(p model.Property, spaceID, typeID string) EntityValue {
	return EntityValue{Kind: KindProperty, property: &PropertyPayload{Property: p, SpaceID: spaceID, TypeID: typeID}}
}

func NewTag(tg model.Tag, spaceID, propertyID string) EntityValue {
	return EntityValue{Kind: KindTag, tag: &TagPayload{Tag: tg, SpaceID: spaceID, PropertyID: propertyID}}
}

func NewList(l model.List, spaceID string) EntityValue {
	return EntityValue{Kind: KindList, list: &ListPayload{List: l, SpaceID: spaceID}}
}

func NewTemplate(tp model.Template, spaceID, typeID string) EntityValue {
	return EntityValue{Kind: KindTemplate, template: &TemplatePayload{Template: tp, SpaceID: spaceID, TypeID: typeID}}
}

func NewMember(m model.Member, spaceID string) EntityValue {
	return EntityValue{Kind: KindMember, member: &MemberPayload{Member: m, SpaceID: spaceID}}
}

// ID returns the entity's own identifier.
func (v EntityValue) ID() string {
	switch v.Kind {
	case KindSpace:
		return v.space.Space.ID
	case KindType:
		return v.typ.Type.ID
	case KindObject:
		return v.object.Object.ID
	case KindProperty:
		return v.property.Property.ID
	case KindTag:
		return v.tag.Tag.ID
	case KindList:
		return v.list.List.ID
	case KindTemplate:
		return v.template.Template.ID
	case KindMember:
		return v.member.Member.ID
	default:
		return ""
	}
}

// Name returns the display name, applying the name -> snippet -> id
// fallback of §3.1 for the variants that have one.
func (v EntityValue) Name() string {
	switch v.Kind {
	case KindSpace:
		return v.space.Space.Name
	case KindType:
		return v.typ.Type.Name
	case KindObject:
		return v.object.Object.DisplayName()
	case KindProperty:
		return v.property.Property.Name
	case KindTag:
		return v.tag.Tag.Name
	case KindList:
		return v.list.List.Name
	case KindTemplate:
		return v.template.Template.DisplayName()
	case KindMember:
		return v.member.Member.DisplayName()
	default:
		return ""
	}
}

// SpaceID returns the owning space id, if this variant carries one.
// Space itself has no parent, so KindSpace reports ok=false here and
// callers needing "the space id of this value" should special-case
// KindSpace by calling ID() instead (see ResolveSpaceContext).
func (v EntityValue) SpaceID() (string, bool) {
	switch v.Kind {
	case KindType:
		return v.typ.SpaceID, true
	case KindObject:
		return v.object.SpaceID, true
	case KindProperty:
		return v.property.SpaceID, true
	case KindTag:
		return v.tag.SpaceID, true
	case KindList:
		return v.list.SpaceID, true
	case KindTemplate:
		return v.template.SpaceID, true
	case KindMember:
		return v.member.SpaceID, true
	default:
		return "", false
	}
}

// TypeID returns the owning type id, if this variant carries one.
func (v EntityValue) TypeID() (string, bool) {
	switch v.Kind {
	case KindObject:
		return v.object.TypeID, true
	case KindProperty:
		return v.property.TypeID, true
	case KindTemplate:
		return v.template.TypeID, true
	default:
		return "", false
	}
}

// TypeKey returns the owning type's global key, if this variant carries
// one.
func (v EntityValue) TypeKey() (string, bool) {
	if v.Kind == KindObject {
		return v.object.TypeKey, true
	}
	return "", false
}

// PropertyID returns the owning property id, if this variant carries
// one.
func (v EntityValue) PropertyID() (string, bool) {
	if v.Kind == KindTag {
		return v.tag.PropertyID, true
	}
	return "", false
}

// ListID returns this value's own id when it is a list, so
// ResolveListContext can treat a piped list the same way
// ResolveSpaceContext treats a piped space.
func (v EntityValue) ListID() (string, bool) {
	if v.Kind == KindList {
		return v.list.List.ID, true
	}
	return "", false
}
