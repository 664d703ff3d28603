package storage

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/patilpriyadarshini/migration-repo-sub001/internal/carddemo"
)

// PASSWORD_COST is the bcrypt cost for stored demo users.
const PASSWORD_COST = bcrypt.MinCost

// dbUser is a user row. The hash never leaves the store.
type dbUser struct {
	User           carddemo.User
	PasswordHashed string
}

func hashPassword(plain string) (string, error) {
	if plain == "" {
		return "", fmt.Errorf("password is empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), PASSWORD_COST)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func passwordMatches(hashed string, plain string) bool {
	if hashed == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
