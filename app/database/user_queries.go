package database

import (
	"database/sql"

	"golang.org/x/crypto/bcrypt"

	"github.com/khalidoy/gspfinanceback/app/models"
)

// GetUserByID resolves a user by primary key.
func GetUserByID(q Querier, id string) (*models.User, error) {
	u := &models.User{}
	err := q.QueryRow(
		`SELECT id, username, password_hash, created_at FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Resource: "User"}
	}
	if err != nil {
		return nil, &models.StorageError{Op: "get user", Err: err}
	}
	return u, nil
}

// GetUserByUsername resolves a user for login.
func GetUserByUsername(q Querier, username string) (*models.User, error) {
	u := &models.User{}
	err := q.QueryRow(
		`SELECT id, username, password_hash, created_at FROM users WHERE username = $1`, username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Resource: "User"}
	}
	if err != nil {
		return nil, &models.StorageError{Op: "get user", Err: err}
	}
	return u, nil
}

// CreateUser inserts a user with a bcrypt-hashed password.
func CreateUser(db *sql.DB, username, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		return nil, err
	}
	u := &models.User{Username: username, PasswordHash: string(hash)}
	err = db.QueryRow(
		`INSERT INTO users (username, password_hash) VALUES ($1, $2) RETURNING id, created_at`,
		username, string(hash),
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return nil, &models.StorageError{Op: "create user", Err: err}
	}
	return u, nil
}

// UpdateUserPassword re-hashes and stores a new password.
func UpdateUserPassword(db *sql.DB, id, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		return err
	}
	res, err := db.Exec(`UPDATE users SET password_hash = $1 WHERE id = $2`, string(hash), id)
	if err != nil {
		return &models.StorageError{Op: "update user password", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &models.NotFoundError{Resource: "User"}
	}
	return nil
}

// CheckPassword verifies a login attempt against the stored hash.
func CheckPassword(u *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
