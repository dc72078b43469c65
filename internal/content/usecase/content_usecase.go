package usecase

import (
	"context"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/nexusai/backoffice/internal/content/domain"
	"github.com/nexusai/backoffice/internal/database"
	appValidation "github.com/nexusai/backoffice/internal/validation"
)

// ContentService implements ContentUseCase over the repositories.
type ContentService struct {
	agentRepo  AgentRepository
	promptRepo AgentPromptRepository
	txManager  database.TxManager
}

// NewContentService creates a new ContentService.
func NewContentService(
	agentRepo AgentRepository,
	promptRepo AgentPromptRepository,
	txManager database.TxManager,
) *ContentService {
	return &ContentService{
		agentRepo:  agentRepo,
		promptRepo: promptRepo,
		txManager:  txManager,
	}
}

// ListAgents returns all agents.
func (s *ContentService) ListAgents(ctx context.Context) ([]*domain.Agent, error) {
	return s.agentRepo.List(ctx)
}

// GetAgent returns a single agent by ID.
func (s *ContentService) GetAgent(ctx context.Context, id uuid.UUID) (*domain.Agent, error) {
	return s.agentRepo.Get(ctx, id)
}

// CreateAgent validates and persists a new agent.
func (s *ContentService) CreateAgent(
	ctx context.Context,
	params CreateAgentParams,
) (*domain.Agent, error) {
	err := validation.Errors{
		"title":       validation.Validate(params.Title, validation.Required, appValidation.NotBlank, validation.Length(1, 200)),
		"description": validation.Validate(params.Description, validation.Required, appValidation.NotBlank),
		"icon":        validation.Validate(params.Icon, validation.Required, appValidation.NotBlank, validation.Length(1, 100)),
	}.Filter()
	if err != nil {
		return nil, appValidation.WrapValidationError(err)
	}

	agent := &domain.Agent{
		ID:          uuid.Must(uuid.NewV7()),
		Title:       params.Title,
		Description: params.Description,
		Icon:        params.Icon,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.agentRepo.Create(ctx, agent); err != nil {
		return nil, err
	}

	return agent, nil
}

// UpdateAgent applies a partial update to an agent.
func (s *ContentService) UpdateAgent(
	ctx context.Context,
	id uuid.UUID,
	params UpdateAgentParams,
) (*domain.Agent, error) {
	agent, err := s.agentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		agent.Title = *params.Title
	}
	if params.Description != nil {
		agent.Description = *params.Description
	}
	if params.Icon != nil {
		agent.Icon = *params.Icon
	}

	err = validation.Errors{
		"title":       validation.Validate(agent.Title, validation.Required, appValidation.NotBlank, validation.Length(1, 200)),
		"description": validation.Validate(agent.Description, validation.Required, appValidation.NotBlank),
		"icon":        validation.Validate(agent.Icon, validation.Required, appValidation.NotBlank, validation.Length(1, 100)),
	}.Filter()
	if err != nil {
		return nil, appValidation.WrapValidationError(err)
	}

	if err := s.agentRepo.Update(ctx, agent); err != nil {
		return nil, err
	}

	return agent, nil
}

// DeleteAgent removes an agent and its prompt revisions in one transaction.
func (s *ContentService) DeleteAgent(ctx context.Context, id uuid.UUID) error {
	return s.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := s.promptRepo.DeleteByAgent(ctx, id); err != nil {
			return err
		}
		return s.agentRepo.Delete(ctx, id)
	})
}

// ListPrompts returns all prompt revisions for an agent, newest first.
func (s *ContentService) ListPrompts(
	ctx context.Context,
	agentID uuid.UUID,
) ([]*domain.AgentPrompt, error) {
	if _, err := s.agentRepo.Get(ctx, agentID); err != nil {
		return nil, err
	}
	return s.promptRepo.ListByAgent(ctx, agentID)
}

// GetActivePrompt returns the agent's active revision.
func (s *ContentService) GetActivePrompt(
	ctx context.Context,
	agentID uuid.UUID,
) (*domain.AgentPrompt, error) {
	if _, err := s.agentRepo.Get(ctx, agentID); err != nil {
		return nil, err
	}
	return s.promptRepo.GetActive(ctx, agentID)
}

// CreatePrompt adds a revision for an agent. When the new revision is active,
// all existing revisions of that agent are deactivated in the same transaction.
func (s *ContentService) CreatePrompt(
	ctx context.Context,
	agentID uuid.UUID,
	params CreatePromptParams,
) (*domain.AgentPrompt, error) {
	if err := validation.Validate(params.Prompt, validation.Required, appValidation.NotBlank); err != nil {
		return nil, appValidation.WrapValidationError(validation.Errors{"prompt": err})
	}

	if _, err := s.agentRepo.Get(ctx, agentID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	prompt := &domain.AgentPrompt{
		ID:        uuid.Must(uuid.NewV7()),
		AgentID:   agentID,
		Prompt:    params.Prompt,
		IsActive:  params.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		if prompt.IsActive {
			if err := s.promptRepo.DeactivateAll(ctx, agentID); err != nil {
				return err
			}
		}
		return s.promptRepo.Create(ctx, prompt)
	})
	if err != nil {
		return nil, err
	}

	return prompt, nil
}

// UpdatePrompt applies a partial update to a revision. Activating a revision
// deactivates its siblings in the same transaction.
func (s *ContentService) UpdatePrompt(
	ctx context.Context,
	id uuid.UUID,
	params UpdatePromptParams,
) (*domain.AgentPrompt, error) {
	prompt, err := s.promptRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Prompt != nil {
		prompt.Prompt = *params.Prompt
	}
	activating := params.IsActive != nil && *params.IsActive
	if params.IsActive != nil {
		prompt.IsActive = *params.IsActive
	}
	prompt.UpdatedAt = time.Now().UTC()

	if err := validation.Validate(prompt.Prompt, validation.Required, appValidation.NotBlank); err != nil {
		return nil, appValidation.WrapValidationError(validation.Errors{"prompt": err})
	}

	err = s.txManager.WithTx(ctx, func(ctx context.Context) error {
		if activating {
			if err := s.promptRepo.DeactivateAll(ctx, prompt.AgentID); err != nil {
				return err
			}
		}
		return s.promptRepo.Update(ctx, prompt)
	})
	if err != nil {
		return nil, err
	}

	return prompt, nil
}

// DeletePrompt removes a revision.
func (s *ContentService) DeletePrompt(ctx context.Context, id uuid.UUID) error {
	return s.promptRepo.Delete(ctx, id)
}
