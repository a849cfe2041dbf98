package models

import "time"

// SessionInfo is the externally visible session state.
type SessionInfo struct {
	Authenticated bool       `json:"authenticated"`
	Loading       bool       `json:"loading"`
	Subject       string     `json:"subject,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	LastSyncedAt  *time.Time `json:"last_synced_at,omitempty"`
}
