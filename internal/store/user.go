// File: internal/store/user.go
package store

import (
	"context"
	"errors"
	"fmt"

	"bookshop/internal/database"
	"bookshop/internal/model"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id, first_name, last_name, username, email, password_hash,
	 password_hint, role, profile_image_url, created_at`

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.PasswordHint,
		&u.Role,
		&u.ProfileImageURL,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func GetUserByID(ctx context.Context, db database.DB, userID int) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		userID,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("GetUserByID: %w", err)
	}
	return u, nil
}

// GetUserByIdentifier resolves a login identifier that may be either the
// username or the email address.
func GetUserByIdentifier(ctx context.Context, db database.DB, identifier string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1 OR email = $1`,
		identifier,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("GetUserByIdentifier: %w", err)
	}
	return u, nil
}

// FindUserByUsernameOrEmail looks up any user holding either value, used as
// the duplicate pre-check before registration.
func FindUserByUsernameOrEmail(ctx context.Context, db database.DB, username, email string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1 OR email = $2`,
		username,
		email,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("FindUserByUsernameOrEmail: %w", err)
	}
	return u, nil
}

func CountUsers(ctx context.Context, db database.DB) (int, error) {
	var n int
	row := db.QueryRow(ctx, `SELECT count(*) FROM users`)
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("CountUsers: %w", err)
	}
	return n, nil
}

func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (first_name, last_name, username, email, password_hash, password_hint, role)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		u.FirstName,
		u.LastName,
		u.Username,
		u.Email,
		u.PasswordHash,
		u.PasswordHint,
		u.Role,
	)
	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("CreateUser: %w", ErrDuplicate)
		}
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	return u, nil
}

// ListUsers returns all users, newest first.
func ListUsers(ctx context.Context, db database.DB) ([]model.User, error) {
	rows, err := db.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u := model.User{}
		if err := rows.Scan(
			&u.ID,
			&u.FirstName,
			&u.LastName,
			&u.Username,
			&u.Email,
			&u.PasswordHash,
			&u.PasswordHint,
			&u.Role,
			&u.ProfileImageURL,
			&u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ListUsers: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	return users, nil
}

func UpdateUserRole(ctx context.Context, db database.DB, userID int, role model.Role) (*model.User, error) {
	row := db.QueryRow(ctx,
		`UPDATE users SET role = $1 WHERE id = $2
		 RETURNING `+userColumns,
		role,
		userID,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("UpdateUserRole: %w", err)
	}
	return u, nil
}

// UpdateUserProfile applies a partial profile update; nil fields keep their
// stored values.
func UpdateUserProfile(ctx context.Context, db database.DB, userID int, firstName, lastName, email, passwordHint, profileImageURL *string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`UPDATE users SET
		     first_name = COALESCE($1, first_name),
		     last_name = COALESCE($2, last_name),
		     email = COALESCE($3, email),
		     password_hint = COALESCE($4, password_hint),
		     profile_image_url = COALESCE($5, profile_image_url)
		 WHERE id = $6
		 RETURNING ` + userColumns,
		firstName,
		lastName,
		email,
		passwordHint,
		profileImageURL,
		userID,
	)
	u, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("UpdateUserProfile: %w", ErrDuplicate)
		}
		return nil, fmt.Errorf("UpdateUserProfile: %w", err)
	}
	return u, nil
}
