package oauth

import "errors"

// ErrorCode is the error query parameter of an authorization response.
type ErrorCode string

const (
	ErrorCodeAccessDenied  ErrorCode = "access_denied"
	ErrorCodeInvalidScope  ErrorCode = "invalid_scope"
	ErrorCodeInvalidClient ErrorCode = "invalid_client"
	// ErrorCodeInvalidGrant is returned by the token endpoint for a revoked or
	// expired refresh token.
	ErrorCodeInvalidGrant ErrorCode = "invalid_grant"
)

const (
	ParamError            = "error"
	ParamErrorDescription = "error_description"
	ParamCode             = "code"
	ParamState            = "state"
	ParamPrompt           = "prompt"
)

var (
	ErrNoToken      = errors.New("no token found - please authenticate first")
	ErrTokenExpired = errors.New("token expired and no refresh token available")
	ErrAccessDenied = errors.New("user denied access")
	ErrInvalidState = errors.New("invalid state parameter")
)
