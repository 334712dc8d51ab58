package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"streetbite_backend/internal/models"
)

// AuthRepository defines the interface for admin account database operations.
type AuthRepository interface {
	CreateUser(executor SQLExecutor, user *models.User, hashedPassword string) (int64, error)
	FindUserByUsername(username string) (*models.User, string, error) // Returns User, HashedPassword, Error
	FindUserByID(userID int64) (*models.User, error)
	UsernameTakenByOther(username string, excludeUserID int64) (bool, error)
	UpdateUsername(executor SQLExecutor, userID int64, username string, updatedAt time.Time) error
	UpdatePasswordHash(executor SQLExecutor, userID int64, hashedPassword string, updatedAt time.Time) error
}

// authRepository implements the AuthRepository interface.
type authRepository struct {
	db *sql.DB // The direct database connection pool
}

// NewAuthRepository creates a new instance of AuthRepository.
func NewAuthRepository(db *sql.DB) AuthRepository {
	return &authRepository{db: db}
}

// CreateUser inserts a new admin. It expects an SQLExecutor which can be a *sql.DB or *sql.Tx.
func (r *authRepository) CreateUser(executor SQLExecutor, user *models.User, hashedPassword string) (int64, error) {
	query := `INSERT INTO users (username, password_hash, created_at, updated_at)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`

	currentTime := time.Now().UTC()
	err := executor.QueryRow(query, user.Username, hashedPassword, currentTime, currentTime).Scan(&user.ID)
	if err != nil {
		return 0, wrapDBError("creating user", err)
	}
	user.CreatedAt, user.UpdatedAt = currentTime, currentTime
	return user.ID, nil
}

// FindUserByUsername retrieves a user by their username.
// It returns the user model, their hashed password, and an error if any.
func (r *authRepository) FindUserByUsername(username string) (*models.User, string, error) {
	user := &models.User{}
	var hashedPassword string
	query := `SELECT id, username, password_hash, created_at, updated_at FROM users WHERE username = $1`

	err := r.db.QueryRow(query, username).Scan(&user.ID, &user.Username, &hashedPassword, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("%w: finding user by username %s: %v", ErrDatabaseError, username, err)
	}
	return user, hashedPassword, nil
}

// FindUserByID retrieves a user by their ID. The password hash is not populated.
func (r *authRepository) FindUserByID(userID int64) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, username, created_at, updated_at FROM users WHERE id = $1`

	err := r.db.QueryRow(query, userID).Scan(&user.ID, &user.Username, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding user by ID %d: %v", ErrDatabaseError, userID, err)
	}
	return user, nil
}

// UsernameTakenByOther reports whether any user other than excludeUserID holds the username.
func (r *authRepository) UsernameTakenByOther(username string, excludeUserID int64) (bool, error) {
	var n int
	query := `SELECT COUNT(*) FROM users WHERE username = $1 AND id <> $2`
	if err := r.db.QueryRow(query, username, excludeUserID).Scan(&n); err != nil {
		return false, fmt.Errorf("%w: checking username %s: %v", ErrDatabaseError, username, err)
	}
	return n > 0, nil
}

func (r *authRepository) UpdateUsername(executor SQLExecutor, userID int64, username string, updatedAt time.Time) error {
	result, err := executor.Exec(`UPDATE users SET username = $1, updated_at = $2 WHERE id = $3`, username, updatedAt, userID)
	if err != nil {
		return wrapDBError(fmt.Sprintf("updating username for user %d", userID), err)
	}
	return requireAffected(result, "updating username")
}

func (r *authRepository) UpdatePasswordHash(executor SQLExecutor, userID int64, hashedPassword string, updatedAt time.Time) error {
	result, err := executor.Exec(`UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`, hashedPassword, updatedAt, userID)
	if err != nil {
		return fmt.Errorf("%w: updating password for user %d: %v", ErrDatabaseError, userID, err)
	}
	return requireAffected(result, "updating password")
}
