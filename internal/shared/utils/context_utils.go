package utils

import (
	"context"
	"errors"

	"github.com/agniveshadhikari/slinky/internal/shared/contextkeys"
)

// Common context errors
var (
	ErrUserIDNotFound    = errors.New("userID not found in context")
	ErrUserIDNotString   = errors.New("userID in context is not a string")
	ErrUsernameNotFound  = errors.New("username not found in context")
	ErrUsernameNotString = errors.New("username in context is not a string")
	ErrRequestIDNotFound = errors.New("requestID not found in context")
)

// GetUserIDFromContext retrieves the user ID from the context.
// It returns the user ID and an error if the user ID is not found or is not a string.
func GetUserIDFromContext(ctx context.Context) (string, error) {
	val := ctx.Value(contextkeys.UserIDKey)
	if val == nil {
		return "", ErrUserIDNotFound
	}
	userID, ok := val.(string)
	if !ok {
		return "", ErrUserIDNotString
	}
	return userID, nil
}

// GetUsernameFromContext retrieves the username from the context.
func GetUsernameFromContext(ctx context.Context) (string, error) {
	val := ctx.Value(contextkeys.UsernameKey)
	if val == nil {
		return "", ErrUsernameNotFound
	}
	username, ok := val.(string)
	if !ok {
		return "", ErrUsernameNotString
	}
	return username, nil
}

// GetRequestIDFromContext retrieves the request ID from the context.
func GetRequestIDFromContext(ctx context.Context) (string, error) {
	val := ctx.Value(contextkeys.RequestIDKey)
	if val == nil {
		return "", ErrRequestIDNotFound
	}
	requestID, ok := val.(string)
	if !ok {
		return "", ErrRequestIDNotFound
	}
	return requestID, nil
}

// Context builder functions

// WithUserID adds user ID to context
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, contextkeys.UserIDKey, userID)
}

// WithUsername adds username to context
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, contextkeys.UsernameKey, username)
}

// WithRequestID adds request ID to context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextkeys.RequestIDKey, requestID)
}

// WithComponent adds component name to context
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, contextkeys.ComponentKey, component)
}

// WithOperation adds operation name to context
func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, contextkeys.OperationKey, operation)
}

// Optional getters that return default values instead of errors

// GetUserIDOrDefault retrieves the user ID from context or returns a default value
func GetUserIDOrDefault(ctx context.Context, def string) string {
	if v, err := GetUserIDFromContext(ctx); err == nil {
		return v
	}
	return def
}

// HasUserID reports whether the context carries an authenticated user ID
func HasUserID(ctx context.Context) bool {
	_, err := GetUserIDFromContext(ctx)
	return err == nil
}
