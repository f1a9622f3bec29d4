package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/difurigo/avant-api/model"
)

// Teams is the team store.
type Teams interface {
	Create(ctx context.Context, team *model.Team) (*model.Team, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Team, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type teams struct {
	db *bun.DB
}

var _ Teams = (*teams)(nil)

func NewTeamsRepository(db *bun.DB) Teams {
	return &teams{db: db}
}

func (r *teams) Create(ctx context.Context, team *model.Team) (*model.Team, error) {
	if team.ID == uuid.Nil {
		team.ID = uuid.New()
	}

	_, err := r.db.NewInsert().
		Model(team).
		Exec(ctx)

	if err != nil {
		return nil, err
	}

	return team, nil
}

func (r *teams) GetByID(ctx context.Context, id uuid.UUID) (*model.Team, error) {
	record := &model.Team{}

	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id.String()).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, recordNotFound(map[string]any{"id": id.String()})
		}
		return nil, err
	}

	return record, nil
}

func (r *teams) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.db.NewSelect().
		Model((*model.Team)(nil)).
		Where("id = ?", id.String()).
		Exists(ctx)
}

// Delete removes a team. Member users keep their rows; the schema's
// ON DELETE SET NULL clears their team reference.
func (r *teams) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*model.Team)(nil)).
		Where("id = ?", id.String()).
		Exec(ctx)

	if err != nil {
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return recordNotFound(map[string]any{"id": id.String()})
	}

	return nil
}
