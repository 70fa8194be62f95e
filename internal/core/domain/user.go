package domain

import (
	"errors"
	"time"
)

// Role labels form a fixed, closed domain. Comparison is exact-string and
// case-sensitive everywhere.
const (
	RoleUser      = "USER"
	RoleAdmin     = "ADMIN"
	RoleModerator = "MODERATOR"
)

// validRoles enumerates the role domain. Labels outside this set are filtered
// on add and simply report false on membership checks.
var validRoles = map[string]struct{}{
	RoleUser:      {},
	RoleAdmin:     {},
	RoleModerator: {},
}

// IsValidRole reports whether label belongs to the role domain.
func IsValidRole(label string) bool {
	_, ok := validRoles[label]
	return ok
}

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidUserData = errors.New("invalid user data")
var ErrInvalidPagination = errors.New("invalid pagination parameters")
var ErrInternal = errors.New("internal error")

// API codes correlate every success and failure path with the calling layer.
const (
	CodeUserCreated           = "USER_CREATED"
	CodeUserFetched           = "USER_FETCHED_OK"
	CodeUserListFetched       = "USER_LIST_FETCHED"
	CodeUserDeleted           = "USER_DELETED"
	CodeRolesUpdated          = "ROLES_UPDATED"
	CodeUserNotFound          = "USER_NOT_FOUND"
	CodeUserInvalidData       = "USER_INVALID_DATA"
	CodeUserDuplicate         = "USER_DUPLICATE"
	CodeUserInvalidPagination = "USER_INVALID_PAGINATION"
	CodeUserInternalError     = "USER_INTERNAL_ERROR"
)

// User is the authoritative directory record. The cache holds disposable JSON
// snapshots of it; the store owns its lifecycle. Password is an opaque
// credential stored verbatim.
type User struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Password  string    `json:"password" bson:"password"`
	Roles     []string  `json:"roles" bson:"roles"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// HasRole reports whether the user currently holds the given role label.
func (u *User) HasRole(label string) bool {
	for _, r := range u.Roles {
		if r == label {
			return true
		}
	}
	return false
}
