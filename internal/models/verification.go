package models

import "time"

// PendingVerification is the in-flight email-verification state for one user.
// At most one record per username; a new request overwrites the old one.
type PendingVerification struct {
	Username string
	Email    string
	Code     string
	IssuedAt time.Time
}
