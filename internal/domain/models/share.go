package models

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// PendingUserPrefix marks a share row whose invite token has not been claimed
// yet. The placeholder userID encodes the token instead of a real user, so a
// pending share is not a grant and must be excluded from access listings.
const PendingUserPrefix = "invite#"

// Share is an explicit access grant of a role to a user on a checklist. It is
// the authorization source of truth for non-author access. At most one share
// row exists per (checklistId, userId) pair.
type Share struct {
	ChecklistID string     `json:"checklistId" dynamodbav:"checklistId"`
	UserID      string     `json:"userId" dynamodbav:"userId"`
	Role        string     `json:"role" dynamodbav:"role"`
	SharedBy    string     `json:"sharedBy" dynamodbav:"sharedBy"`
	CreatedAt   time.Time  `json:"createdAt" dynamodbav:"createdAt"`
	ShareToken  string     `json:"shareToken,omitempty" dynamodbav:"shareToken,omitempty"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty" dynamodbav:"expiresAt,omitempty"`
}

// Validate checks the share fields before persistence.
func (s Share) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.ChecklistID, validation.Required),
		validation.Field(&s.UserID, validation.Required),
		validation.Field(&s.Role, validation.Required,
			validation.In(string(RoleOwner), string(RoleEditor), string(RoleViewer))),
		validation.Field(&s.SharedBy, validation.Required),
	)
}

// IsPending reports whether the share is an unclaimed link invite.
func (s Share) IsPending() bool {
	return strings.HasPrefix(s.UserID, PendingUserPrefix)
}

// IsExpired reports whether the share has an expiry in the past relative to
// now.
func (s Share) IsExpired(now time.Time) bool {
	return s.ExpiresAt != nil && s.ExpiresAt.Before(now)
}
