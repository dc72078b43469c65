// Package usecase implements the content business rules: agent CRUD and the
// single-active-prompt invariant across prompt revisions.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/nexusai/backoffice/internal/content/domain"
)

// CreateAgentParams carries the fields for a new agent.
type CreateAgentParams struct {
	Title       string
	Description string
	Icon        string
}

// UpdateAgentParams carries a partial agent update. Nil fields keep their
// stored values.
type UpdateAgentParams struct {
	Title       *string
	Description *string
	Icon        *string
}

// CreatePromptParams carries the fields for a new prompt revision.
type CreatePromptParams struct {
	Prompt   string
	IsActive bool
}

// UpdatePromptParams carries a partial prompt update. Nil fields keep their
// stored values.
type UpdatePromptParams struct {
	Prompt   *string
	IsActive *bool
}

// ContentUseCase defines the site-content operations.
type ContentUseCase interface {
	ListAgents(ctx context.Context) ([]*domain.Agent, error)
	GetAgent(ctx context.Context, id uuid.UUID) (*domain.Agent, error)
	CreateAgent(ctx context.Context, params CreateAgentParams) (*domain.Agent, error)
	UpdateAgent(ctx context.Context, id uuid.UUID, params UpdateAgentParams) (*domain.Agent, error)

	// DeleteAgent removes an agent and all of its prompt revisions atomically.
	DeleteAgent(ctx context.Context, id uuid.UUID) error

	ListPrompts(ctx context.Context, agentID uuid.UUID) ([]*domain.AgentPrompt, error)

	// GetActivePrompt returns the agent's active prompt revision, or
	// domain.ErrPromptNotFound when none is active.
	GetActivePrompt(ctx context.Context, agentID uuid.UUID) (*domain.AgentPrompt, error)

	// CreatePrompt adds a revision. An active revision deactivates all
	// existing revisions of the same agent.
	CreatePrompt(ctx context.Context, agentID uuid.UUID, params CreatePromptParams) (*domain.AgentPrompt, error)

	// UpdatePrompt modifies a revision. Activating it deactivates all other
	// revisions of the same agent.
	UpdatePrompt(ctx context.Context, id uuid.UUID, params UpdatePromptParams) (*domain.AgentPrompt, error)

	// DeletePrompt removes a revision. Idempotent.
	DeletePrompt(ctx context.Context, id uuid.UUID) error
}

// AgentRepository defines agent persistence operations.
type AgentRepository interface {
	Create(ctx context.Context, agent *domain.Agent) error
	Update(ctx context.Context, agent *domain.Agent) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Agent, error)
	List(ctx context.Context) ([]*domain.Agent, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AgentPromptRepository defines prompt revision persistence operations.
type AgentPromptRepository interface {
	Create(ctx context.Context, prompt *domain.AgentPrompt) error
	Update(ctx context.Context, prompt *domain.AgentPrompt) error
	Get(ctx context.Context, id uuid.UUID) (*domain.AgentPrompt, error)
	ListByAgent(ctx context.Context, agentID uuid.UUID) ([]*domain.AgentPrompt, error)
	GetActive(ctx context.Context, agentID uuid.UUID) (*domain.AgentPrompt, error)
	DeactivateAll(ctx context.Context, agentID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByAgent(ctx context.Context, agentID uuid.UUID) error
}
