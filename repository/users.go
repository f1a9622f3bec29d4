package repository

import (
	"context"
	"database/sql"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/difurigo/avant-api/model"
)

// Users is the user directory. The generic repository covers the CRUD core;
// the listing and career-plan queries are domain-specific.
type Users interface {
	repository.Repository[*model.User]

	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, record *model.User, criteria ...repository.InsertCriteria) (*model.User, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *model.User, criteria ...repository.InsertCriteria) (*model.User, error)
	GetEmployeeByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetManagerByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	ListEmployees(ctx context.Context, offset, limit int) ([]*model.User, int, error)
	UpdateCareerPlan(ctx context.Context, id uuid.UUID, plan string) error
	DeleteEmployee(ctx context.Context, id uuid.UUID) error
}

type users struct {
	repository.Repository[*model.User]
	db *bun.DB
}

var _ Users = (*users)(nil)

func NewUsersRepository(db *bun.DB) Users {
	repo := repository.NewRepository[*model.User](db, repository.ModelHandlers[*model.User]{
		NewRecord: func() *model.User { return &model.User{} },
		GetID: func(u *model.User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *model.User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
	})

	return &users{
		Repository: repo,
		db:         db,
	}
}

// GetByEmail does a case-sensitive exact match against the email column.
func (a *users) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	record := &model.User{}

	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.email = ?", email).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, recordNotFound(map[string]any{"email": email})
		}
		return nil, err
	}

	return record, nil
}

func (a *users) Create(ctx context.Context, record *model.User, criteria ...repository.InsertCriteria) (*model.User, error) {
	return a.CreateTx(ctx, a.db, record, criteria...)
}

func (a *users) CreateTx(ctx context.Context, tx bun.IDB, record *model.User, criteria ...repository.InsertCriteria) (*model.User, error) {
	if record != nil && record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return a.Repository.CreateTx(ctx, tx, record, criteria...)
}

// GetEmployeeByID resolves an id to an employee, loading the team reference.
// A manager id yields not-found, matching the employee endpoints' contract.
func (a *users) GetEmployeeByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	record := &model.User{}

	err := a.db.NewSelect().
		Model(record).
		Relation("Team").
		Where("?TableAlias.id = ?", id.String()).
		Where("?TableAlias.user_role = ?", model.RoleEmployee).
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

// GetManagerByID resolves an id to a manager. Used to anchor team ownership
// to a real manager row rather than to token claims alone.
func (a *users) GetManagerByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	record := &model.User{}

	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id.String()).
		Where("?TableAlias.user_role = ?", model.RoleManager).
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

// ListEmployees returns an offset/limit window over the employees ordered by
// name, plus the total employee count. Name ordering keeps repeated calls
// against an unchanged directory returning identical windows.
func (a *users) ListEmployees(ctx context.Context, offset, limit int) ([]*model.User, int, error) {
	var records []*model.User

	total, err := a.db.NewSelect().
		Model(&records).
		Relation("Team").
		Where("?TableAlias.user_role = ?", model.RoleEmployee).
		Order("usr.name ASC").
		Offset(offset).
		Limit(limit).
		ScanAndCount(ctx)

	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// UpdateCareerPlan replaces the career plan of an employee.
func (a *users) UpdateCareerPlan(ctx context.Context, id uuid.UUID, plan string) error {
	res, err := a.db.NewUpdate().
		Model((*model.User)(nil)).
		Set("career_plan = ?", plan).
		Where("id = ?", id.String()).
		Where("user_role = ?", model.RoleEmployee).
		Exec(ctx)

	if err != nil {
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return recordNotFound(map[string]any{"id": id.String()})
	}

	return nil
}

// DeleteEmployee removes an employee row. Managers are never deleted through
// this path; the teams foreign key restricts manager deletion anyway.
func (a *users) DeleteEmployee(ctx context.Context, id uuid.UUID) error {
	res, err := a.db.NewDelete().
		Model((*model.User)(nil)).
		Where("id = ?", id.String()).
		Where("user_role = ?", model.RoleEmployee).
		Exec(ctx)

	if err != nil {
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return recordNotFound(map[string]any{"id": id.String()})
	}

	return nil
}

// recordNotFound builds the miss error every lookup in this package returns.
// The not_found category keeps it visible to errors.IsNotFound across layers.
func recordNotFound(metadata map[string]any) error {
	return goerrors.New("record not found", goerrors.CategoryNotFound).
		WithCode(goerrors.CodeNotFound).
		WithTextCode("RECORD_NOT_FOUND").
		WithMetadata(metadata)
}

// IsNotFound reports whether err represents a missing record from any layer.
func IsNotFound(err error) bool {
	return repository.IsRecordNotFound(err) || goerrors.IsNotFound(err)
}
