// file: models/role.go
package models

type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleAdmin     UserRole = "admin"
	RoleRootAdmin UserRole = "root_admin"
)
