// Package importmap specifies the one contract spec.md §1 keeps in
// scope from the markdown/YAML frontmatter importer: given already-
// parsed frontmatter keys, resolve each to the Property it corresponds
// to and produce type-checked property values. Parsing the markdown or
// YAML itself is an external collaborator's job (§1, §6.6).
package importmap

import (
	"fmt"

	"kbclient/internal/apierr"
	"kbclient/internal/model"
	"kbclient/internal/resolver"
)

// MapFrontmatter resolves each key in fm to the property it names among
// properties (matching by Key, else by Name, case-folded only when
// caseInsensitive is set), and produces a type-checked []model.
// PropertyValue suitable for CreateObjectRequest.Properties (§4.1,
// "type-checked encoding is required for updates"). An unmatched key or
// a value that does not fit its property's format fails with
// apierr.BadRequest naming the offending key.
func MapFrontmatter(fm map[string]any, properties []model.PropertyDescriptor, caseInsensitive bool) ([]model.PropertyValue, error) {
	byKey := make(map[string]model.PropertyDescriptor, len(properties))
	byName := make(map[string]model.PropertyDescriptor, len(properties))
	for _, p := range properties {
		byKey[p.Key] = p
		byName[foldIfNeeded(p.Name, caseInsensitive)] = p
	}

	out := make([]model.PropertyValue, 0, len(fm))
	for fmKey, raw := range fm {
		prop, ok := byKey[fmKey]
		if !ok {
			prop, ok = byName[foldIfNeeded(fmKey, caseInsensitive)]
		}
		if !ok {
			return nil, &apierr.BadRequest{Operation: "importmap.map_frontmatter", Details: fmt.Sprintf("no property matches frontmatter key %q", fmKey)}
		}
		pv, err := coerce(fmKey, prop, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, pv)
	}
	return out, nil
}

func foldIfNeeded(s string, caseInsensitive bool) string {
	if !caseInsensitive {
		return s
	}
	// resolver.Fold is the single Unicode case-folding entry point this
	// module uses (§4.4); importmap reuses it rather than a second
	// ad-hoc folding rule.
	return resolver.Fold(s)
}

func coerce(fmKey string, prop model.PropertyDescriptor, raw any) (model.PropertyValue, error) {
	pv := model.PropertyValue{Key: prop.Key, Format: prop.Format}
	badFormat := func() (model.PropertyValue, error) {
		return model.PropertyValue{}, &apierr.BadRequest{
			Operation: "importmap.map_frontmatter",
			Details:   fmt.Sprintf("frontmatter key %q: value %v does not fit property format %q", fmKey, raw, prop.Format),
		}
	}

	switch prop.Format {
	case model.PropertyFormatText, model.PropertyFormatURL, model.PropertyFormatEmail, model.PropertyFormatPhone, model.PropertyFormatDate, model.PropertyFormatSelect:
		s, ok := raw.(string)
		if !ok {
			return badFormat()
		}
		switch prop.Format {
		case model.PropertyFormatText:
			pv.Text = s
		case model.PropertyFormatURL:
			pv.URL = s
		case model.PropertyFormatEmail:
			pv.Email = s
		case model.PropertyFormatPhone:
			pv.Phone = s
		case model.PropertyFormatDate:
			pv.Date = s
		case model.PropertyFormatSelect:
			pv.Select = s
		}
	case model.PropertyFormatNumber:
		n, ok := asFloat(raw)
		if !ok {
			return badFormat()
		}
		pv.Number = n
	case model.PropertyFormatCheckbox:
		b, ok := raw.(bool)
		if !ok {
			return badFormat()
		}
		pv.Checkbox = b
	case model.PropertyFormatMultiSelect, model.PropertyFormatFiles, model.PropertyFormatObjects:
		ss, ok := asStringSlice(raw)
		if !ok {
			return badFormat()
		}
		switch prop.Format {
		case model.PropertyFormatMultiSelect:
			pv.MultiSelect = ss
		case model.PropertyFormatFiles:
			pv.Files = ss
		case model.PropertyFormatObjects:
			pv.Objects = ss
		}
	default:
		return model.PropertyValue{}, &apierr.BadRequest{Operation: "importmap.map_frontmatter", Details: fmt.Sprintf("property %q has unknown format %q", prop.Key, prop.Format)}
	}
	return pv, nil
}

func asFloat(raw any) (float64, bool) {
	switch n := raw.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func asStringSlice(raw any) ([]string, bool) {
	switch v := raw.(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}
