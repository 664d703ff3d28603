package auth

import (
	"fmt"
	"strings"

	appErrors "github.com/patilpriyadarshini/migration-repo-sub001/errors"
)

type Role string

const (
	RoleAdmin Role = "A"
	RoleUser  Role = "U"
)

func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleUser:
		return RoleUser, nil
	}
	return "", appErrors.ErrorResponse{
		Code:    appErrors.ErrInvalidInput,
		Message: fmt.Sprintf("unknown user type: %q", s),
	}
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleUser:
		return "User"
	}
	return "Unknown"
}

// Session is the signed-in operator. A nil *Session means logged out.
type Session struct {
	UserID string
	Role   Role
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}
