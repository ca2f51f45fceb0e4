package request

import (
	"encoding/json"
)

// CreateSessionRequest optionally seeds a fresh session with a draft payload
// (same shape the hero search widget stores in the draft source).
type CreateSessionRequest struct {
	Draft json.RawMessage `json:"draft,omitempty"`
	Step  int             `json:"step,omitempty" validate:"min=0,max=3"`
}

// StoreDraftRequest pushes a draft payload into the session-scoped draft
// source, to be picked up by a later hydrate.
type StoreDraftRequest struct {
	Draft json.RawMessage `json:"draft" validate:"required"`
}
