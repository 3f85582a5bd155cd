package db

import (
	"context"

	"github.com/google/uuid"

	"github.com/mahmoud-eltahawy/cryptos-site/internal/auth"
	"github.com/mahmoud-eltahawy/cryptos-site/internal/model"
)

const userColumns = "id, name, password, level, created_at, updated_at"

func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Password, &u.Level, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// CreateUser inserts a user. passwordHash must already be a PHC-encoded
// hash; this layer never sees plaintext.
func (d *DB) CreateUser(ctx context.Context, name, passwordHash string, level auth.Level) (model.User, error) {
	row := d.QueryRowContext(ctx, `
		INSERT INTO users (name, password, level)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns,
		name, passwordHash, level.String(),
	)
	return scanUser(row)
}

func (d *DB) GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	row := d.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1`,
		id,
	)
	return scanUser(row)
}

func (d *DB) GetUserByName(ctx context.Context, name string) (model.User, error) {
	row := d.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE name = $1`,
		name,
	)
	return scanUser(row)
}

func (d *DB) GetAllUsers(ctx context.Context) ([]model.User, error) {
	rows, err := d.QueryContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (d *DB) UpdateUserName(ctx context.Context, id uuid.UUID, name string) (model.User, error) {
	row := d.QueryRowContext(ctx, `
		UPDATE users
		SET name = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+userColumns,
		name, id,
	)
	return scanUser(row)
}

func (d *DB) UpdateUserPassword(ctx context.Context, id uuid.UUID, passwordHash string) (model.User, error) {
	row := d.QueryRowContext(ctx, `
		UPDATE users
		SET password = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+userColumns,
		passwordHash, id,
	)
	return scanUser(row)
}

func (d *DB) UpdateUserLevel(ctx context.Context, id uuid.UUID, level auth.Level) (model.User, error) {
	row := d.QueryRowContext(ctx, `
		UPDATE users
		SET level = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+userColumns,
		level.String(), id,
	)
	return scanUser(row)
}

func (d *DB) DeleteUser(ctx context.Context, id uuid.UUID) error {
	_, err := d.ExecContext(ctx, `
		DELETE FROM users
		WHERE id = $1`,
		id,
	)
	return err
}

func (d *DB) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := d.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}
