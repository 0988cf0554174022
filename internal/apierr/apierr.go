// Package apierr implements the eight-case error taxonomy of §7: each
// case is a distinguishable concrete type compared with errors.As, the
// same shape the teacher uses for llmclient.PermanentError rather than a
// single error interface with a Kind() method.
package apierr

import "fmt"

// Auth reports a missing, rejected, or expired credential.
type Auth struct {
	Operation string
	Message   string
}

func (e *Auth) Error() string {
	return fmt.Sprintf("%s: authentication required: %s (re-run the challenge/create-api-key flow)", e.Operation, e.Message)
}

// NotFound reports that name_or_id matched nothing, in cache or at the
// service.
type NotFound struct {
	Entity     string
	NameOrID   string
	Operation  string
	SearchedIn string
}

func (e *NotFound) Error() string {
	if e.SearchedIn != "" {
		return fmt.Sprintf("%s: %s %q not found in %s", e.Operation, e.Entity, e.NameOrID, e.SearchedIn)
	}
	return fmt.Sprintf("%s: %s %q not found", e.Operation, e.Entity, e.NameOrID)
}

// BadRequest reports that the service (or a pre-flight client-side check)
// rejected the payload. Details are surfaced verbatim.
type BadRequest struct {
	Operation string
	Details   string
}

func (e *BadRequest) Error() string {
	return fmt.Sprintf("%s: bad request: %s", e.Operation, e.Details)
}

// Server reports an HTTP 5xx response. Never retried automatically.
type Server struct {
	Operation  string
	StatusCode int
	Message    string
}

func (e *Server) Error() string {
	return fmt.Sprintf("%s: server error (HTTP %d): %s", e.Operation, e.StatusCode, e.Message)
}

// Network reports a transport failure or timeout.
type Network struct {
	Operation string
	Err       error
}

func (e *Network) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Operation, e.Err)
}

func (e *Network) Unwrap() error { return e.Err }

// Decode reports a schema mismatch between the response body and the
// expected type.
type Decode struct {
	Operation string
	Err       error
}

func (e *Decode) Error() string {
	return fmt.Sprintf("%s: failed to decode response: %v", e.Operation, e.Err)
}

func (e *Decode) Unwrap() error { return e.Err }

// MissingContext is raised by the entity-value layer, before any request,
// when no space/type/property/list context could be resolved.
type MissingContext struct {
	Needed string // e.g. "space", "type", "property", "list"
	Flag   string // the flag name the user may supply, e.g. "--space"
}

func (e *MissingContext) Error() string {
	return fmt.Sprintf("missing %s context: supply %s, pipe in a value carrying %s_id, or configure a default_%s", e.Needed, e.Flag, e.Needed, e.Needed)
}

// NameConflict is advisory; raised only when a host opts into strict mode.
// The default resolution returns the first match with a warning event
// instead of this error.
type NameConflict struct {
	Entity     string
	Name       string
	Candidates []string
}

func (e *NameConflict) Error() string {
	return fmt.Sprintf("%s name %q matches %d candidates: %v", e.Entity, e.Name, len(e.Candidates), e.Candidates)
}
