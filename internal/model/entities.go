package model

import "encoding/json"

// Layout is the closed set of type layouts surfaced by the service.
// Unlike Icon.Format and PropertyValue.Format, an unrecognized Layout is
// not a decode failure: the original service treats it as an informational
// display field rather than a value that drives further dispatch, so an
// unknown layout is kept verbatim rather than rejected (see DESIGN.md).
type Layout string

const (
	LayoutBasic       Layout = "basic"
	LayoutProfile     Layout = "profile"
	LayoutAction      Layout = "action"
	LayoutNote        Layout = "note"
	LayoutBookmark    Layout = "bookmark"
	LayoutSet         Layout = "set"
	LayoutCollection  Layout = "collection"
	LayoutParticipant Layout = "participant"
)

// MemberRole is the closed set of roles a Member can hold. Like Layout,
// an unrecognized value is kept verbatim rather than rejected.
type MemberRole string

const (
	MemberRoleViewer       MemberRole = "viewer"
	MemberRoleEditor       MemberRole = "editor"
	MemberRoleOwner        MemberRole = "owner"
	MemberRoleNoPermission MemberRole = "no_permission"
)

// MemberStatus is the closed set of membership states. Like Layout, an
// unrecognized value is kept verbatim rather than rejected.
type MemberStatus string

const (
	MemberStatusJoining  MemberStatus = "joining"
	MemberStatusActive   MemberStatus = "active"
	MemberStatusRemoved  MemberStatus = "removed"
	MemberStatusDeclined MemberStatus = "declined"
	MemberStatusRemoving MemberStatus = "removing"
	MemberStatusCanceled MemberStatus = "canceled"
)

// Space is the root of context; it has no parent.
type Space struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Icon        *Icon   `json:"icon,omitempty"`
}

// PropertyDescriptor is the shape a property takes when embedded in a
// Type's properties list: no parent ids of its own, since it inherits the
// owning Type's context.
type PropertyDescriptor struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Key    string         `json:"key"`
	Format PropertyFormat `json:"format"`
}

// Type is a schema describing what properties its Objects carry. Key is
// the globally stable identifier; ID is per-space.
type Type struct {
	ID         string               `json:"id"`
	Name       string               `json:"name"`
	Key        string               `json:"key"`
	Icon       Icon                 `json:"icon"`
	Layout     *Layout              `json:"layout,omitempty"`
	Properties []PropertyDescriptor `json:"properties"`
	SpaceID    string               `json:"space_id"`
}

// Object is a content item inside a Space. TypeID and TypeKey must agree:
// TypeID is the id of the Type in SpaceID whose Key == TypeKey. The wire
// carries only TypeKey (under the field name "object"); TypeID is never
// sent by the service and is filled in by the caller once resolved.
type Object struct {
	ID         string
	Name       *string
	Snippet    *string
	Markdown   *string
	Properties map[string]any
	SpaceID    string
	TypeID     string
	TypeKey    string
}

// objectWire is the shape the service actually sends: the type key rides
// under "object", and properties are an arbitrary JSON object rather than
// the typed PropertyValue array used when writing a create/update request.
type objectWire struct {
	ID         string          `json:"id"`
	Name       *string         `json:"name,omitempty"`
	Snippet    *string         `json:"snippet,omitempty"`
	Markdown   *string         `json:"markdown,omitempty"`
	Object     string          `json:"object"`
	Properties json.RawMessage `json:"properties,omitempty"`
	SpaceID    string          `json:"space_id,omitempty"`
}

func (o Object) MarshalJSON() ([]byte, error) {
	props, err := json.Marshal(o.Properties)
	if err != nil {
		return nil, err
	}
	return json.Marshal(objectWire{
		ID: o.ID, Name: o.Name, Snippet: o.Snippet, Markdown: o.Markdown,
		Object: o.TypeKey, Properties: props, SpaceID: o.SpaceID,
	})
}

func (o *Object) UnmarshalJSON(data []byte) error {
	var w objectWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	var props map[string]any
	if len(w.Properties) > 0 {
		if err := json.Unmarshal(w.Properties, &props); err != nil {
			return malformedField("object.properties", err.Error())
		}
	}
	*o = Object{
		ID: w.ID, Name: w.Name, Snippet: w.Snippet, Markdown: w.Markdown,
		Properties: props, SpaceID: w.SpaceID, TypeKey: w.Object,
	}
	return nil
}

// DisplayName implements the §3.1 fallback: name, then snippet, then id.
func (o Object) DisplayName() string {
	if o.Name != nil && *o.Name != "" {
		return *o.Name
	}
	if o.Snippet != nil && *o.Snippet != "" {
		return *o.Snippet
	}
	return o.ID
}

// Property is a typed field attached to Objects of a Type.
type Property struct {
	PropertyDescriptor
	SpaceID string `json:"space_id"`
	TypeID  string `json:"type_id"`
}

// Tag is a named value an Object may carry for a select/multi_select property.
type Tag struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Key        string `json:"key"`
	Color      *Color `json:"color,omitempty"`
	SpaceID    string `json:"space_id"`
	PropertyID string `json:"property_id"`
}

// List is a user-curated collection of object ids.
type List struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	SpaceID string `json:"space_id"`
}

// Template is a pre-filled Object skeleton associated with a Type.
type Template struct {
	ID       string  `json:"id"`
	Name     *string `json:"name,omitempty"`
	Icon     Icon    `json:"icon"`
	Markdown *string `json:"markdown,omitempty"`
	Snippet  *string `json:"snippet,omitempty"`
	SpaceID  string  `json:"space_id"`
	TypeID   string  `json:"type_id"`
}

func (t Template) DisplayName() string {
	if t.Name != nil && *t.Name != "" {
		return *t.Name
	}
	if t.Snippet != nil && *t.Snippet != "" {
		return *t.Snippet
	}
	return t.ID
}

// Member is a principal with a role in a Space.
type Member struct {
	ID      string       `json:"id"`
	Name    *string      `json:"name,omitempty"`
	Role    MemberRole   `json:"role"`
	Status  MemberStatus `json:"status"`
	SpaceID string       `json:"space_id"`
}

func (m Member) DisplayName() string {
	if m.Name != nil && *m.Name != "" {
		return *m.Name
	}
	return m.ID
}

// ListView describes one saved view (filters/sorts/layout) on a List.
type ListView struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Layout    string             `json:"layout"`
	Filters   []ListViewFilter   `json:"filters"`
	Sorts     []ListViewSort     `json:"sorts"`
}

type ListViewFilter struct {
	ID          string         `json:"id"`
	Condition   string         `json:"condition"`
	Format      PropertyFormat `json:"format"`
	PropertyKey string         `json:"property_key"`
	Value       string         `json:"value"`
}

type ListViewSort struct {
	ID          string         `json:"id"`
	Format      PropertyFormat `json:"format"`
	PropertyKey string         `json:"property_key"`
	SortType    string         `json:"sort_type"`
}
