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

// MySQLAgentPromptRepository implements AgentPrompt persistence for MySQL.
// Uses BINARY(16) for UUID storage.
type MySQLAgentPromptRepository struct {
	db *sql.DB
}

// Create inserts a new AgentPrompt into the MySQL database.
func (m *MySQLAgentPromptRepository) Create(
	ctx context.Context,
	prompt *contentDomain.AgentPrompt,
) error {
	querier := database.GetTx(ctx, m.db)

	id, err := prompt.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal prompt id")
	}
	agentID, err := prompt.AgentID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal prompt agent id")
	}

	query := `INSERT INTO agent_prompts (id, agent_id, prompt, is_active, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		agentID,
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

// Update modifies an existing AgentPrompt in the MySQL database.
func (m *MySQLAgentPromptRepository) Update(
	ctx context.Context,
	prompt *contentDomain.AgentPrompt,
) error {
	querier := database.GetTx(ctx, m.db)

	id, err := prompt.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal prompt id")
	}

	query := `UPDATE agent_prompts
			  SET prompt = ?,
			  	  is_active = ?,
				  updated_at = ?
			  WHERE id = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		prompt.Prompt,
		prompt.IsActive,
		prompt.UpdatedAt,
		id,
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

// Get retrieves an AgentPrompt by ID from the MySQL database.
func (m *MySQLAgentPromptRepository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*contentDomain.AgentPrompt, error) {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal prompt id")
	}

	query := `SELECT id, agent_id, prompt, is_active, created_at, updated_at
			  FROM agent_prompts WHERE id = ?`

	return m.scanPrompt(querier.QueryRowContext(ctx, query, idBytes))
}

// ListByAgent retrieves all prompt revisions for an agent, newest first.
func (m *MySQLAgentPromptRepository) ListByAgent(
	ctx context.Context,
	agentID uuid.UUID,
) ([]*contentDomain.AgentPrompt, error) {
	querier := database.GetTx(ctx, m.db)

	agentIDBytes, err := agentID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal prompt agent id")
	}

	query := `SELECT id, agent_id, prompt, is_active, created_at, updated_at
			  FROM agent_prompts
			  WHERE agent_id = ?
			  ORDER BY created_at DESC`

	rows, err := querier.QueryContext(ctx, query, agentIDBytes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list agent prompts")
	}
	defer func() {
		_ = rows.Close()
	}()

	prompts := make([]*contentDomain.AgentPrompt, 0)
	for rows.Next() {
		var prompt contentDomain.AgentPrompt
		var rowID []byte
		var rowAgentID []byte

		err := rows.Scan(
			&rowID,
			&rowAgentID,
			&prompt.Prompt,
			&prompt.IsActive,
			&prompt.CreatedAt,
			&prompt.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan agent prompt row")
		}

		if err := prompt.ID.UnmarshalBinary(rowID); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal prompt id")
		}
		if err := prompt.AgentID.UnmarshalBinary(rowAgentID); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal prompt agent id")
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
func (m *MySQLAgentPromptRepository) GetActive(
	ctx context.Context,
	agentID uuid.UUID,
) (*contentDomain.AgentPrompt, error) {
	querier := database.GetTx(ctx, m.db)

	agentIDBytes, err := agentID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal prompt agent id")
	}

	query := `SELECT id, agent_id, prompt, is_active, created_at, updated_at
			  FROM agent_prompts
			  WHERE agent_id = ? AND is_active = TRUE
			  ORDER BY updated_at DESC
			  LIMIT 1`

	return m.scanPrompt(querier.QueryRowContext(ctx, query, agentIDBytes))
}

// DeactivateAll marks every prompt revision of an agent as inactive.
func (m *MySQLAgentPromptRepository) DeactivateAll(
	ctx context.Context,
	agentID uuid.UUID,
) error {
	querier := database.GetTx(ctx, m.db)

	agentIDBytes, err := agentID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal prompt agent id")
	}

	query := `UPDATE agent_prompts SET is_active = FALSE WHERE agent_id = ?`

	_, err = querier.ExecContext(ctx, query, agentIDBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to deactivate agent prompts")
	}
	return nil
}

// Delete removes an AgentPrompt from the MySQL database.
func (m *MySQLAgentPromptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal prompt id")
	}

	query := `DELETE FROM agent_prompts WHERE id = ?`

	_, err = querier.ExecContext(ctx, query, idBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete agent prompt")
	}
	return nil
}

// DeleteByAgent removes all prompt revisions for an agent.
func (m *MySQLAgentPromptRepository) DeleteByAgent(
	ctx context.Context,
	agentID uuid.UUID,
) error {
	querier := database.GetTx(ctx, m.db)

	agentIDBytes, err := agentID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal prompt agent id")
	}

	query := `DELETE FROM agent_prompts WHERE agent_id = ?`

	_, err = querier.ExecContext(ctx, query, agentIDBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete agent prompts")
	}
	return nil
}

func (m *MySQLAgentPromptRepository) scanPrompt(row *sql.Row) (*contentDomain.AgentPrompt, error) {
	var prompt contentDomain.AgentPrompt
	var rowID []byte
	var rowAgentID []byte

	err := row.Scan(
		&rowID,
		&rowAgentID,
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

	if err := prompt.ID.UnmarshalBinary(rowID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal prompt id")
	}
	if err := prompt.AgentID.UnmarshalBinary(rowAgentID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal prompt agent id")
	}

	return &prompt, nil
}

// NewMySQLAgentPromptRepository creates a new MySQL AgentPrompt repository.
func NewMySQLAgentPromptRepository(db *sql.DB) *MySQLAgentPromptRepository {
	return &MySQLAgentPromptRepository{db: db}
}
