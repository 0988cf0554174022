package apiclient

import "encoding/json"

// sensitiveBodyKeys are JSON object keys whose values must never reach an
// Observer verbatim. "code" covers the short-lived challenge code; both
// are credential material even though only api_key unlocks the API long
// term.
var sensitiveBodyKeys = map[string]bool{
	"api_key": true,
	"code":    true,
}

// RedactBody returns a copy of a JSON request/response body with any
// credential-bearing field replaced by the fixed marker, at every nesting
// level. Non-JSON or unparsable bodies are returned unchanged, since
// there is nothing structured to redact. Redaction is a correctness
// requirement (§4.2), not a formatting convenience: it runs regardless of
// whether anything is actually listening at TRACE.
func RedactBody(body []byte) []byte {
	if len(body) == 0 {
		return body
	}
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return body
	}
	redactValue(v)
	out, err := json.Marshal(v)
	if err != nil {
		return body
	}
	return out
}

func redactValue(v any) {
	switch t := v.(type) {
	case map[string]any:
		for k, inner := range t {
			if sensitiveBodyKeys[k] {
				t[k] = redacted
				continue
			}
			redactValue(inner)
		}
	case []any:
		for _, inner := range t {
			redactValue(inner)
		}
	}
}
