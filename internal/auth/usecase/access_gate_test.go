package usecase_test

import (
	"testing"

	"github.com/agniveshadhikari/slinky/internal/auth/domain/model"
	"github.com/agniveshadhikari/slinky/internal/auth/usecase"

	"github.com/stretchr/testify/assert"
)

func TestRequire(t *testing.T) {
	admin := &model.User{ID: "a", Username: "admin", Role: model.RoleAdmin}
	regular := &model.User{ID: "u", Username: "user", Role: model.RoleUser}

	tests := []struct {
		name       string
		user       *model.User
		capability string
		want       usecase.Decision
	}{
		{"anonymous is denied as unauthenticated", nil, model.RoleAdmin, usecase.DenyUnauthenticated},
		{"admin holds the admin capability", admin, model.RoleAdmin, usecase.Allow},
		{"regular user lacks the admin capability", regular, model.RoleAdmin, usecase.DenyForbidden},
		{"regular user holds the user capability", regular, model.RoleUser, usecase.Allow},
		{"admin does not hold the user capability", admin, model.RoleUser, usecase.DenyForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, usecase.Require(tt.user, tt.capability))
		})
	}
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "allow", usecase.Allow.String())
	assert.Equal(t, "deny_unauthenticated", usecase.DenyUnauthenticated.String())
	assert.Equal(t, "deny_forbidden", usecase.DenyForbidden.String())
}
