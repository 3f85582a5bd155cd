package credentials

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/mahmoud-eltahawy/cryptos-site/internal/auth"
	"github.com/mahmoud-eltahawy/cryptos-site/internal/db"
)

// Service authenticates name/password pairs against the users table.
type Service struct {
	db *db.DB
}

func NewService(db *db.DB) *Service {
	return &Service{db: db}
}

// Authenticate returns the principal id and role for a correct
// name/password pair. Unknown name and wrong password both come back as
// auth.ErrInvalidCredentials so the two cases are indistinguishable.
// A database outage is reported as itself, not as bad credentials.
func (s *Service) Authenticate(ctx context.Context, name, password string) (uuid.UUID, auth.Level, error) {
	user, err := s.db.GetUserByName(ctx, name)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, "", auth.ErrInvalidCredentials
	}
	if err != nil {
		return uuid.Nil, "", err
	}

	if !VerifyPassword(password, user.Password) {
		return uuid.Nil, "", auth.ErrInvalidCredentials
	}

	return user.ID, user.Level, nil
}
