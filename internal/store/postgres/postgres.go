// Package postgres implements store.Store on PostgreSQL via pgx. Workflows
// and execution reports are stored whole as JSONB rows; the engine never
// queries inside them.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vk/flowgrid/internal/engine"
	"github.com/vk/flowgrid/internal/store"
	"github.com/vk/flowgrid/internal/workflow"
)

// PGStore implements store.Store backed by a pgx connection pool.
type PGStore struct {
	db *pgxpool.Pool
}

// New creates a PGStore on the given pool.
func New(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) SaveWorkflow(ctx context.Context, wf *workflow.Workflow) error {
	data, err := json.Marshal(wf)
	if err != nil {
		return fmt.Errorf("store: encode workflow: %w", err)
	}
	_, err = s.db.Exec(ctx,
		`INSERT INTO workflows (id, data, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()`,
		wf.Metadata.ID, data,
	)
	if err != nil {
		return fmt.Errorf("store: save workflow: %w", err)
	}
	return nil
}

func (s *PGStore) GetWorkflow(ctx context.Context, id string) (*workflow.Workflow, error) {
	var data []byte
	err := s.db.QueryRow(ctx, `SELECT data FROM workflows WHERE id = $1`, id).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("store: get workflow: %w", err)
	}
	var wf workflow.Workflow
	if err := json.Unmarshal(data, &wf); err != nil {
		return nil, fmt.Errorf("store: decode workflow: %w", err)
	}
	return &wf, nil
}

func (s *PGStore) ListWorkflows(ctx context.Context) ([]workflow.Workflow, error) {
	rows, err := s.db.Query(ctx, `SELECT data FROM workflows ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("store: list workflows: %w", err)
	}
	defer rows.Close()

	out := []workflow.Workflow{}
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("store: scan workflow: %w", err)
		}
		var wf workflow.Workflow
		if err := json.Unmarshal(data, &wf); err != nil {
			return nil, fmt.Errorf("store: decode workflow: %w", err)
		}
		out = append(out, wf)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list workflows: %w", err)
	}
	return out, nil
}

func (s *PGStore) DeleteWorkflow(ctx context.Context, id string) error {
	ct, err := s.db.Exec(ctx, `DELETE FROM workflows WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("store: delete workflow: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *PGStore) SaveExecution(ctx context.Context, exec *engine.Execution) error {
	data, err := json.Marshal(exec)
	if err != nil {
		return fmt.Errorf("store: encode execution: %w", err)
	}
	_, err = s.db.Exec(ctx,
		`INSERT INTO executions (id, workflow_id, data)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data`,
		exec.ExecutionID, exec.WorkflowID, data,
	)
	if err != nil {
		return fmt.Errorf("store: save execution: %w", err)
	}
	return nil
}

func (s *PGStore) GetExecution(ctx context.Context, id string) (*engine.Execution, error) {
	var data []byte
	err := s.db.QueryRow(ctx, `SELECT data FROM executions WHERE id = $1`, id).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("store: get execution: %w", err)
	}
	var exec engine.Execution
	if err := json.Unmarshal(data, &exec); err != nil {
		return nil, fmt.Errorf("store: decode execution: %w", err)
	}
	return &exec, nil
}
