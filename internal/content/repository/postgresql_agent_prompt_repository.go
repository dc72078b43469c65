package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	contentDomain "github.com/nexusai/backoffice/internal/content/domain"
	"github.com/nexusai/backoffice/internal/database"
	apperrors "github.com/nexusai/backoffice/internal/errors"
)

// PostgreSQLAgentPromptRepository implements AgentPrompt persistence for PostgreSQL.
type PostgreSQLAgentPromptRepository struct {
	db *sql.DB
}

// Create inserts a new AgentPrompt into the PostgreSQL database.
func (p *PostgreSQLAgentPromptRepository) Create(
	ctx context.Context,
	prompt *contentDomain.AgentPrompt,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO agent_prompts (id, agent_id, prompt, is_active, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		prompt.ID,
		prompt.AgentID,
		prompt.Prompt,
		prompt.IsActive,
		prompt.CreatedAt,
		prompt.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create agent prompt")
	}
	return nil
}

// Update modifies an existing AgentPrompt in the PostgreSQL database.
func (p *PostgreSQLAgentPromptRepository) Update(
	ctx context.Context,
	prompt *contentDomain.AgentPrompt,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE agent_prompts
			  SET prompt = $1,
			  	  is_active = $2,
				  updated_at = $3
			  WHERE id = $4`

	result, err := querier.ExecContext(
		ctx,
		query,
		prompt.Prompt,
		prompt.IsActive,
		prompt.UpdatedAt,
		prompt.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update agent prompt")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check updated agent prompt")
	}
	if affected == 0 {
		return contentDomain.ErrPromptNotFound
	}
	return nil
}

// Get retrieves an AgentPrompt by ID from the PostgreSQL database.
func (p *PostgreSQLAgentPromptRepository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*contentDomain.AgentPrompt, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, agent_id, prompt, is_active, created_at, updated_at
			  FROM agent_prompts WHERE id = $1`

	var prompt contentDomain.AgentPrompt

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&prompt.ID,
		&prompt.AgentID,
		&prompt.Prompt,
		&prompt.IsActive,
		&prompt.CreatedAt,
		&prompt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, contentDomain.ErrPromptNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get agent prompt")
	}

	return &prompt, nil
}

// ListByAgent retrieves all prompt revisions for an agent, newest first.
func (p *PostgreSQLAgentPromptRepository) ListByAgent(
	ctx context.Context,
	agentID uuid.UUID,
) ([]*contentDomain.AgentPrompt, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, agent_id, prompt, is_active, created_at, updated_at
			  FROM agent_prompts
			  WHERE agent_id = $1
			  ORDER BY created_at DESC`

	rows, err := querier.QueryContext(ctx, query, agentID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list agent prompts")
	}
	defer func() {
		_ = rows.Close()
	}()

	prompts := make([]*contentDomain.AgentPrompt, 0)
	for rows.Next() {
		var prompt contentDomain.AgentPrompt
		err := rows.Scan(
			&prompt.ID,
			&prompt.AgentID,
			&prompt.Prompt,
			&prompt.IsActive,
			&prompt.CreatedAt,
			&prompt.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan agent prompt row")
		}
		prompts = append(prompts, &prompt)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "error iterating agent prompt rows")
	}

	return prompts, nil
}

// GetActive retrieves the active prompt revision for an agent. Returns
// ErrPromptNotFound when no revision is active.
func (p *PostgreSQLAgentPromptRepository) GetActive(
	ctx context.Context,
	agentID uuid.UUID,
) (*contentDomain.AgentPrompt, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, agent_id, prompt, is_active, created_at, updated_at
			  FROM agent_prompts
			  WHERE agent_id = $1 AND is_active = TRUE
			  ORDER BY updated_at DESC
			  LIMIT 1`

	var prompt contentDomain.AgentPrompt

	err := querier.QueryRowContext(ctx, query, agentID).Scan(
		&prompt.ID,
		&prompt.AgentID,
		&prompt.Prompt,
		&prompt.IsActive,
		&prompt.CreatedAt,
		&prompt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, contentDomain.ErrPromptNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get active agent prompt")
	}

	return &prompt, nil
}

// DeactivateAll marks every prompt revision of an agent as inactive.
func (p *PostgreSQLAgentPromptRepository) DeactivateAll(
	ctx context.Context,
	agentID uuid.UUID,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE agent_prompts SET is_active = FALSE WHERE agent_id = $1`

	_, err := querier.ExecContext(ctx, query, agentID)
	if err != nil {
		return apperrors.Wrap(err, "failed to deactivate agent prompts")
	}
	return nil
}

// Delete removes an AgentPrompt from the PostgreSQL database.
func (p *PostgreSQLAgentPromptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM agent_prompts WHERE id = $1`

	_, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete agent prompt")
	}
	return nil
}

// DeleteByAgent removes all prompt revisions for an agent.
func (p *PostgreSQLAgentPromptRepository) DeleteByAgent(
	ctx context.Context,
	agentID uuid.UUID,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM agent_prompts WHERE agent_id = $1`

	_, err := querier.ExecContext(ctx, query, agentID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete agent prompts")
	}
	return nil
}

// NewPostgreSQLAgentPromptRepository creates a new PostgreSQL AgentPrompt repository.
func NewPostgreSQLAgentPromptRepository(db *sql.DB) *PostgreSQLAgentPromptRepository {
	return &PostgreSQLAgentPromptRepository{db: db}
}
