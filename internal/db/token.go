package db

import (
	"context"
	"database/sql"
	"time"
)

type Token struct {
	AccessToken  string
	RefreshToken *string
	TokenType    string
	Expiry       time.Time
	// Scope is the space separated list of scopes granted with the token.
	Scope string
}

type UpsertTokenParams struct {
	AccessToken  string
	RefreshToken *string
	TokenType    string
	Expiry       time.Time
	Scope        string
}

type Querier interface {
	GetToken(ctx context.Context) (Token, error)
	UpsertToken(ctx context.Context, arg UpsertTokenParams) error
	DeleteToken(ctx context.Context) error
}

var _ Querier = (*Queries)(nil)

type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

const getToken = `SELECT access_token, refresh_token, token_type, expiry, scope FROM token WHERE id = 1`

// GetToken returns sql.ErrNoRows when no account has authenticated yet.
func (q *Queries) GetToken(ctx context.Context) (Token, error) {
	var t Token
	err := q.db.QueryRowContext(ctx, getToken).Scan(
		&t.AccessToken,
		&t.RefreshToken,
		&t.TokenType,
		&t.Expiry,
		&t.Scope,
	)
	return t, err
}

const upsertToken = `
INSERT INTO token (id, access_token, refresh_token, token_type, expiry, scope, updated_at)
VALUES (1, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT (id) DO UPDATE SET
    access_token = excluded.access_token,
    refresh_token = COALESCE(excluded.refresh_token, token.refresh_token),
    token_type = excluded.token_type,
    expiry = excluded.expiry,
    scope = CASE WHEN excluded.scope = '' THEN token.scope ELSE excluded.scope END,
    updated_at = CURRENT_TIMESTAMP`

// UpsertToken keeps the previous refresh token and scope when the new values are empty,
// since refresh responses usually omit both.
func (q *Queries) UpsertToken(ctx context.Context, arg UpsertTokenParams) error {
	_, err := q.db.ExecContext(ctx, upsertToken,
		arg.AccessToken,
		arg.RefreshToken,
		arg.TokenType,
		arg.Expiry.UTC(),
		arg.Scope,
	)
	return err
}

const deleteToken = `DELETE FROM token WHERE id = 1`

func (q *Queries) DeleteToken(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteToken)
	return err
}
