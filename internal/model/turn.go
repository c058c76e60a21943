// Package model defines data structures for the honeypot service.
package model

import (
	"time"
)

// Role represents the sender of a conversation turn.
type Role string

const (
	RoleScammer Role = "scammer"
	RoleUser    Role = "user"
	RoleAgent   Role = "agent"
)

// Turn is one exchanged message in a conversation. Immutable once created.
type Turn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTurn creates a turn stamped with the current time.
func NewTurn(role Role, content string) Turn {
	return Turn{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}
