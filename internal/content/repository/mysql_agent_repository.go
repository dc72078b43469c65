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

// MySQLAgentRepository implements Agent persistence for MySQL.
// Uses BINARY(16) for UUID storage.
type MySQLAgentRepository struct {
	db *sql.DB
}

// Create inserts a new Agent into the MySQL database.
func (m *MySQLAgentRepository) Create(ctx context.Context, agent *contentDomain.Agent) error {
	querier := database.GetTx(ctx, m.db)

	id, err := agent.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal agent id")
	}

	query := `INSERT INTO agents (id, title, description, icon, created_at)
			  VALUES (?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		agent.Title,
		agent.Description,
		agent.Icon,
		agent.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create agent")
	}
	return nil
}

// Update modifies an existing Agent in the MySQL database.
func (m *MySQLAgentRepository) Update(ctx context.Context, agent *contentDomain.Agent) error {
	querier := database.GetTx(ctx, m.db)

	id, err := agent.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal agent id")
	}

	query := `UPDATE agents
			  SET title = ?,
			  	  description = ?,
				  icon = ?
			  WHERE id = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		agent.Title,
		agent.Description,
		agent.Icon,
		id,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update agent")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check updated agent")
	}
	if affected == 0 {
		return contentDomain.ErrAgentNotFound
	}
	return nil
}

// Get retrieves an Agent by ID from the MySQL database.
func (m *MySQLAgentRepository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*contentDomain.Agent, error) {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal agent id")
	}

	query := `SELECT id, title, description, icon, created_at FROM agents WHERE id = ?`

	var agent contentDomain.Agent
	var rowID []byte

	err = querier.QueryRowContext(ctx, query, idBytes).Scan(
		&rowID,
		&agent.Title,
		&agent.Description,
		&agent.Icon,
		&agent.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, contentDomain.ErrAgentNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get agent")
	}

	if err := agent.ID.UnmarshalBinary(rowID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal agent id")
	}

	return &agent, nil
}

// List retrieves all agents ordered by creation time.
func (m *MySQLAgentRepository) List(ctx context.Context) ([]*contentDomain.Agent, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, title, description, icon, created_at FROM agents ORDER BY created_at`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list agents")
	}
	defer func() {
		_ = rows.Close()
	}()

	agents := make([]*contentDomain.Agent, 0)
	for rows.Next() {
		var agent contentDomain.Agent
		var rowID []byte

		err := rows.Scan(
			&rowID,
			&agent.Title,
			&agent.Description,
			&agent.Icon,
			&agent.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan agent row")
		}

		if err := agent.ID.UnmarshalBinary(rowID); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal agent id")
		}

		agents = append(agents, &agent)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "error iterating agent rows")
	}

	return agents, nil
}

// Delete removes an Agent from the MySQL database.
func (m *MySQLAgentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal agent id")
	}

	query := `DELETE FROM agents WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, idBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete agent")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check deleted agent")
	}
	if affected == 0 {
		return contentDomain.ErrAgentNotFound
	}
	return nil
}

// NewMySQLAgentRepository creates a new MySQL Agent repository.
func NewMySQLAgentRepository(db *sql.DB) *MySQLAgentRepository {
	return &MySQLAgentRepository{db: db}
}
