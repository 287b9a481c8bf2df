package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// AuthorizeRequest is the per-request input to the authorizer: an opaque
// bearer credential plus the operation descriptor the caller wants to run.
type AuthorizeRequest struct {
	AuthorizationToken string         `json:"authorizationToken"`
	OperationName      string         `json:"operationName"`
	Arguments          map[string]any `json:"arguments"`
}

// Validate checks the request shape. An empty operation name is legal (it is
// the connection-time handshake), so only the payload container is validated.
func (r AuthorizeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.OperationName, validation.Length(0, 256)),
	)
}

// Decision is the outcome of a single checklist-level access check.
type Decision struct {
	Authorized bool   `json:"authorized"`
	Reason     string `json:"reason"`
	Role       Role   `json:"role,omitempty"`
}

// Verdict is the outcome of authorizing a full operation. Only IsAuthorized
// is returned to the invoking layer; the rest exists for the audit log.
type Verdict struct {
	IsAuthorized bool   `json:"isAuthorized"`
	Reason       string `json:"-"`
	Role         Role   `json:"-"`
	CallerID     string `json:"-"`
	ChecklistID  string `json:"-"`
	SectionID    string `json:"-"`
	ItemID       string `json:"-"`
}
