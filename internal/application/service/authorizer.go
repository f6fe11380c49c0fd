package service

import (
	"strings"

	"github.com/injapanfood/pos-api/internal/domain/entity"
)

// Authorizer decides which cashiers may open the admin views.
type Authorizer interface {
	IsAdmin(cashier entity.Cashier) bool
}

// RoleAuthorizer grants admin access to any cashier holding one of its roles.
type RoleAuthorizer struct {
	roles map[string]struct{}
}

// NewRoleAuthorizer creates an authorizer for the given admin roles. Matching ignores case.
func NewRoleAuthorizer(adminRoles []string) *RoleAuthorizer {
	roles := make(map[string]struct{}, len(adminRoles))
	for _, r := range adminRoles {
		if r = strings.ToLower(strings.TrimSpace(r)); r != "" {
			roles[r] = struct{}{}
		}
	}
	return &RoleAuthorizer{roles: roles}
}

// IsAdmin reports whether cashier holds an admin role
func (a *RoleAuthorizer) IsAdmin(cashier entity.Cashier) bool {
	for _, r := range cashier.Roles {
		if _, ok := a.roles[strings.ToLower(r)]; ok {
			return true
		}
	}
	return false
}
