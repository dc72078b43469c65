// Package repository implements data persistence for site content entities.
//
// Provides PostgreSQL and MySQL implementations with transaction support via
// database.GetTx(). PostgreSQL uses native UUID types, MySQL uses BINARY(16).
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

// PostgreSQLAgentRepository implements Agent persistence for PostgreSQL.
type PostgreSQLAgentRepository struct {
	db *sql.DB
}

// Create inserts a new Agent into the PostgreSQL database.
func (p *PostgreSQLAgentRepository) Create(ctx context.Context, agent *contentDomain.Agent) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO agents (id, title, description, icon, created_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(
		ctx,
		query,
		agent.ID,
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

// Update modifies an existing Agent in the PostgreSQL database.
func (p *PostgreSQLAgentRepository) Update(ctx context.Context, agent *contentDomain.Agent) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE agents
			  SET title = $1,
			  	  description = $2,
				  icon = $3
			  WHERE id = $4`

	result, err := querier.ExecContext(
		ctx,
		query,
		agent.Title,
		agent.Description,
		agent.Icon,
		agent.ID,
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

// Get retrieves an Agent by ID from the PostgreSQL database.
func (p *PostgreSQLAgentRepository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*contentDomain.Agent, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, title, description, icon, created_at FROM agents WHERE id = $1`

	var agent contentDomain.Agent

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&agent.ID,
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

	return &agent, nil
}

// List retrieves all agents ordered by creation time.
func (p *PostgreSQLAgentRepository) List(ctx context.Context) ([]*contentDomain.Agent, error) {
	querier := database.GetTx(ctx, p.db)

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
		err := rows.Scan(
			&agent.ID,
			&agent.Title,
			&agent.Description,
			&agent.Icon,
			&agent.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan agent row")
		}
		agents = append(agents, &agent)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "error iterating agent rows")
	}

	return agents, nil
}

// Delete removes an Agent from the PostgreSQL database.
func (p *PostgreSQLAgentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM agents WHERE id = $1`

	result, err := querier.ExecContext(ctx, query, id)
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

// NewPostgreSQLAgentRepository creates a new PostgreSQL Agent repository.
func NewPostgreSQLAgentRepository(db *sql.DB) *PostgreSQLAgentRepository {
	return &PostgreSQLAgentRepository{db: db}
}
