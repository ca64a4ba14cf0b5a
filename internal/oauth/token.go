package oauth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/sleepdoctor/sleepdoc/internal/consent"
	"github.com/sleepdoctor/sleepdoc/internal/db"
)

var (
	_ oauth2.TokenSource        = (*DBTokenSource)(nil)
	_ consent.PermissionChecker = (*DBTokenSource)(nil)
)

// DBTokenSource serves the stored account token, refreshing and persisting it
// when it expires.
type DBTokenSource struct {
	config  *oauth2.Config
	querier db.Querier
	mu      sync.Mutex
	token   *oauth2.Token
}

func NewDBTokenSource(config *oauth2.Config, querier db.Querier) *DBTokenSource {
	return &DBTokenSource{
		config:  config,
		querier: querier,
	}
}

func (s *DBTokenSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != nil && s.token.Valid() {
		return s.token, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	dbToken, err := s.querier.GetToken(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoToken
		}
		return nil, fmt.Errorf("failed to load token: %w", err)
	}

	token := dbTokenToOAuth2(dbToken)
	if token.Valid() {
		s.token = token
		return token, nil
	}

	if token.RefreshToken == "" {
		return nil, ErrTokenExpired
	}

	newToken, err := s.config.TokenSource(ctx, token).Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}

	if err := saveToken(ctx, s.querier, newToken); err != nil {
		return nil, fmt.Errorf("failed to save refreshed token: %w", err)
	}

	s.token = newToken
	return newToken, nil
}

// HasPermissions reports whether the stored token was granted every scope in
// scopes and can still be used. A missing token holds none, as does an expired
// token that cannot be refreshed or whose refresh grant was revoked.
func (s *DBTokenSource) HasPermissions(ctx context.Context, scopes []string) (bool, error) {
	dbToken, err := s.querier.GetToken(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load token: %w", err)
	}

	granted := strings.Fields(dbToken.Scope)
	for _, scope := range scopes {
		if !slices.Contains(granted, scope) {
			return false, nil
		}
	}

	token := dbTokenToOAuth2(dbToken)
	if token.Valid() {
		return true, nil
	}
	if token.RefreshToken == "" {
		return false, nil
	}

	if _, err := s.Token(); err != nil {
		if isRevoked(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func isRevoked(err error) bool {
	var retrieveErr *oauth2.RetrieveError
	return errors.As(err, &retrieveErr) && ErrorCode(retrieveErr.ErrorCode) == ErrorCodeInvalidGrant
}

// Stored returns the persisted token and its granted scopes.
func (s *DBTokenSource) Stored(ctx context.Context) (*oauth2.Token, []string, error) {
	dbToken, err := s.querier.GetToken(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrNoToken
		}
		return nil, nil, fmt.Errorf("failed to load token: %w", err)
	}
	return dbTokenToOAuth2(dbToken), strings.Fields(dbToken.Scope), nil
}

// Forget deletes the stored token so the next call prompts for consent again.
func (s *DBTokenSource) Forget(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = nil
	if err := s.querier.DeleteToken(ctx); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

// Reset drops the in-memory copy so the next Token call reloads from the store.
func (s *DBTokenSource) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = nil
}

func saveToken(ctx context.Context, querier db.Querier, token *oauth2.Token) error {
	params := db.UpsertTokenParams{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		Expiry:      token.Expiry,
		Scope:       grantedScope(token),
	}

	if token.RefreshToken != "" {
		params.RefreshToken = &token.RefreshToken
	}

	return querier.UpsertToken(ctx, params)
}

func grantedScope(token *oauth2.Token) string {
	scope, _ := token.Extra("scope").(string)
	return scope
}

func dbTokenToOAuth2(t db.Token) *oauth2.Token {
	token := &oauth2.Token{
		AccessToken: t.AccessToken,
		TokenType:   t.TokenType,
		Expiry:      t.Expiry,
	}

	if t.RefreshToken != nil {
		token.RefreshToken = *t.RefreshToken
	}

	return token
}
