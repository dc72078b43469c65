// Package domain defines the public-site content entities: agents and their
// prompt revisions.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Agent is a conversational agent displayed on the public site.
type Agent struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AgentPrompt is one prompt revision for an agent. At most one revision per
// agent is active at a time; activating a revision deactivates its siblings.
type AgentPrompt struct {
	ID        uuid.UUID `json:"id"`
	AgentID   uuid.UUID `json:"agentId"`
	Prompt    string    `json:"prompt"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
