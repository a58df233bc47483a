// Package constants holds shared context keys and paging limits.
package constants

const (
	ContextKeyUserID   = "user_id"
	ContextKeyUserRole = "user_role"

	DefaultPageSize = 20
	MaxPageSize     = 100

	RoleAdmin = "admin"
	RoleUser  = "user"
)
