package model

import (
	"encoding/json"
	"fmt"
)

// PropertyFormat is the closed set of property value kinds (§6.2).
type PropertyFormat string

const (
	PropertyFormatText        PropertyFormat = "text"
	PropertyFormatNumber      PropertyFormat = "number"
	PropertyFormatSelect      PropertyFormat = "select"
	PropertyFormatMultiSelect PropertyFormat = "multi_select"
	PropertyFormatDate        PropertyFormat = "date"
	PropertyFormatFiles       PropertyFormat = "files"
	PropertyFormatCheckbox    PropertyFormat = "checkbox"
	PropertyFormatURL         PropertyFormat = "url"
	PropertyFormatEmail       PropertyFormat = "email"
	PropertyFormatPhone       PropertyFormat = "phone"
	PropertyFormatObjects     PropertyFormat = "objects"
)

var validPropertyFormats = map[PropertyFormat]bool{
	PropertyFormatText: true, PropertyFormatNumber: true, PropertyFormatSelect: true,
	PropertyFormatMultiSelect: true, PropertyFormatDate: true, PropertyFormatFiles: true,
	PropertyFormatCheckbox: true, PropertyFormatURL: true, PropertyFormatEmail: true,
	PropertyFormatPhone: true, PropertyFormatObjects: true,
}

// ValidPropertyFormat reports whether f is a member of the closed format set.
func ValidPropertyFormat(f PropertyFormat) bool { return validPropertyFormats[f] }

// PropertyValue is a type-checked value attached to an Object for one of
// its properties. The discriminator is Format; exactly the field matching
// Format is meaningful.
type PropertyValue struct {
	Key    string
	Format PropertyFormat

	Text        string
	Number      float64
	Select      string   // tag id
	MultiSelect []string // tag ids
	Date        string   // ISO-8601
	Files       []string // object ids
	Checkbox    bool
	URL         string
	Email       string
	Phone       string
	Objects     []string // object ids
}

type propertyValueWire struct {
	Key         string   `json:"key"`
	Format      string   `json:"format"`
	Text        *string  `json:"text,omitempty"`
	Number      *float64 `json:"number,omitempty"`
	Select      *string  `json:"select,omitempty"`
	MultiSelect []string `json:"multi_select,omitempty"`
	Date        *string  `json:"date,omitempty"`
	Files       []string `json:"files,omitempty"`
	Checkbox    *bool    `json:"checkbox,omitempty"`
	URL         *string  `json:"url,omitempty"`
	Email       *string  `json:"email,omitempty"`
	Phone       *string  `json:"phone,omitempty"`
	Objects     []string `json:"objects,omitempty"`
}

func (v PropertyValue) MarshalJSON() ([]byte, error) {
	w := propertyValueWire{Key: v.Key, Format: string(v.Format)}
	switch v.Format {
	case PropertyFormatText:
		w.Text = &v.Text
	case PropertyFormatNumber:
		w.Number = &v.Number
	case PropertyFormatSelect:
		w.Select = &v.Select
	case PropertyFormatMultiSelect:
		w.MultiSelect = v.MultiSelect
	case PropertyFormatDate:
		w.Date = &v.Date
	case PropertyFormatFiles:
		w.Files = v.Files
	case PropertyFormatCheckbox:
		w.Checkbox = &v.Checkbox
	case PropertyFormatURL:
		w.URL = &v.URL
	case PropertyFormatEmail:
		w.Email = &v.Email
	case PropertyFormatPhone:
		w.Phone = &v.Phone
	case PropertyFormatObjects:
		w.Objects = v.Objects
	default:
		return nil, unknownVariant("property_value.format", fmt.Sprintf("unknown property format %q", v.Format))
	}
	return json.Marshal(w)
}

func (v *PropertyValue) UnmarshalJSON(data []byte) error {
	var w propertyValueWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	format := PropertyFormat(w.Format)
	out := PropertyValue{Key: w.Key, Format: format}
	switch format {
	case PropertyFormatText:
		out.Text = deref(w.Text)
	case PropertyFormatNumber:
		if w.Number != nil {
			out.Number = *w.Number
		}
	case PropertyFormatSelect:
		out.Select = deref(w.Select)
	case PropertyFormatMultiSelect:
		out.MultiSelect = w.MultiSelect
	case PropertyFormatDate:
		out.Date = deref(w.Date)
	case PropertyFormatFiles:
		out.Files = w.Files
	case PropertyFormatCheckbox:
		if w.Checkbox != nil {
			out.Checkbox = *w.Checkbox
		}
	case PropertyFormatURL:
		out.URL = deref(w.URL)
	case PropertyFormatEmail:
		out.Email = deref(w.Email)
	case PropertyFormatPhone:
		out.Phone = deref(w.Phone)
	case PropertyFormatObjects:
		out.Objects = w.Objects
	default:
		return unknownVariant("property_value.format", fmt.Sprintf("unknown property format %q", w.Format))
	}
	*v = out
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
