package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
)

// Manager exposes all repositories plus transaction scoping.
type Manager interface {
	Users() Users
	Teams() Teams
	RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error
	InitSchema(ctx context.Context) error
	Validate() error
}

type mngr struct {
	db    *bun.DB
	users Users
	teams Teams
}

func NewManager(db *bun.DB) Manager {
	return &mngr{
		db:    db,
		users: NewUsersRepository(db),
		teams: NewTeamsRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.users == nil {
		return errors.New("repository users should be initialized")
	}

	if m.teams == nil {
		return errors.New("repository teams should be initialized")
	}

	return nil
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Users() Users {
	return m.users
}

func (m mngr) Teams() Teams {
	return m.teams
}

// Schema is the sqlite bootstrap DDL. Email uniqueness and the referential
// rules (RESTRICT on team→manager, SET NULL on user→team) live here; the
// application treats them as the source of truth.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT NOT NULL PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    user_role TEXT NOT NULL,
    career_plan TEXT,
    team_id TEXT NULL,
    FOREIGN KEY (team_id) REFERENCES teams (id) ON DELETE SET NULL
);
CREATE TABLE IF NOT EXISTS teams (
    id TEXT NOT NULL PRIMARY KEY,
    name TEXT NOT NULL,
    manager_id TEXT NOT NULL,
    FOREIGN KEY (manager_id) REFERENCES users (id) ON DELETE RESTRICT
);
`

// InitSchema creates the tables when they do not exist yet. The PRAGMA runs
// outside the transaction; sqlite ignores it once a transaction is open.
func (m mngr) InitSchema(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx, "PRAGMA foreign_keys = ON;"); err != nil {
		return err
	}
	return m.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.ExecContext(ctx, Schema)
		return err
	})
}
