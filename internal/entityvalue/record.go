package entityvalue

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field is one key/value pair in a Record, preserved in insertion order.
type Field struct {
	Key   string
	Value any
}

// Record is the minimal structured-record projection of §4.5 and the
// plugin value protocol of §6.4: an ordered mapping with "_type" first,
// then "id", the relevant parent ids, and the non-identifier fields.
// Field order is insertion order, not alphabetical — encoding/json's
// map serialization would scramble it, so Record implements its own
// MarshalJSON.
type Record struct {
	Fields []Field
}

// Get returns the value stored under key, if any. Host code (§6.4)
// treats a Record as an opaque key-value map; Get is the read path for
// Go callers that don't round-trip through JSON.
func (r Record) Get(key string) (any, bool) {
	for _, f := range r.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func newRecord(kind Kind, id string) *recordBuilder {
	b := &recordBuilder{}
	b.add("_type", string(kind))
	b.add("id", id)
	return b
}

type recordBuilder struct {
	fields []Field
}

func (b *recordBuilder) add(key string, value any) *recordBuilder {
	b.fields = append(b.fields, Field{Key: key, Value: value})
	return b
}

func (b *recordBuilder) addOptional(key string, value *string) *recordBuilder {
	if value != nil {
		b.add(key, *value)
	}
	return b
}

func (b *recordBuilder) build() Record { return Record{Fields: b.fields} }

// Record projects this EntityValue into the host's display form (§4.5,
// §6.4): "_type" first, then "id", then parent ids, then the
// non-identifier fields specific to the variant.
func (v EntityValue) Record() Record {
	switch v.Kind {
	case KindSpace:
		sp := v.space.Space
		b := newRecord(v.Kind, sp.ID).add("name", sp.Name)
		b.addOptional("description", sp.Description)
		if sp.Icon != nil {
			b.add("icon", sp.Icon)
		}
		return b.build()

	case KindType:
		t := v.typ.Type
		return newRecord(v.Kind, t.ID).
			add("space_id", v.typ.SpaceID).
			add("name", t.Name).
			add("key", t.Key).
			add("icon", t.Icon).
			add("property_count", len(t.Properties)).
			build()

	case KindObject:
		o := v.object.Object
		b := newRecord(v.Kind, o.ID).
			add("space_id", v.object.SpaceID).
			add("type_id", v.object.TypeID).
			add("type_key", v.object.TypeKey).
			add("name", o.DisplayName())
		b.addOptional("snippet", o.Snippet)
		return b.build()

	case KindProperty:
		p := v.property.Property
		return newRecord(v.Kind, p.ID).
			add("space_id", v.property.SpaceID).
			add("type_id", v.property.TypeID).
			add("name", p.Name).
			add("key", p.Key).
			add("format", string(p.Format)).
			build()

	case KindTag:
		tg := v.tag.Tag
		b := newRecord(v.Kind, tg.ID).
			add("space_id", v.tag.SpaceID).
			add("property_id", v.tag.PropertyID).
			add("name", tg.Name).
			add("key", tg.Key)
		if tg.Color != nil {
			b.add("color", string(*tg.Color))
		}
		return b.build()

	case KindList:
		l := v.list.List
		return newRecord(v.Kind, l.ID).
			add("space_id", v.list.SpaceID).
			add("name", l.Name).
			build()

	case KindTemplate:
		tp := v.template.Template
		b := newRecord(v.Kind, tp.ID).
			add("space_id", v.template.SpaceID).
			add("type_id", v.template.TypeID).
			add("name", tp.DisplayName()).
			add("icon", tp.Icon)
		b.addOptional("snippet", tp.Snippet)
		return b.build()

	case KindMember:
		m := v.member.Member
		return newRecord(v.Kind, m.ID).
			add("space_id", v.member.SpaceID).
			add("name", m.DisplayName()).
			add("role", string(m.Role)).
			add("status", string(m.Status)).
			build()

	default:
		panic(fmt.Sprintf("entityvalue: unhandled kind %q", v.Kind))
	}
}
