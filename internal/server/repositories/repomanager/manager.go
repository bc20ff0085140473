// Package repomanager hands out repositories bound to a database handle,
// so services can run the same repository code on *sql.DB or inside a
// transaction via dbx.WithTx.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/innoclinic/authsvc/internal/dbx"
	"github.com/innoclinic/authsvc/internal/server/repositories/accounts"
)

type RepositoryManager interface {
	Accounts(db dbx.DBTX) accounts.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
