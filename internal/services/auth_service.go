package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"streetbite_backend/internal/models"
	"streetbite_backend/internal/repositories"
	"streetbite_backend/pkg/utils"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// --- Custom Service Errors ---
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameExists     = errors.New("username already exists")
	ErrTokenGeneration    = errors.New("failed to generate token")
)

// --- AuthService Interface ---
type AuthService interface {
	LoginUser(req models.Credentials) (*models.LoginResponse, error)
	GetUserProfile(userID int64) (*models.User, error)
	UpdateAccount(userID int64, req models.UpdateAccountPayload) (*models.User, error)
	ValidateToken(token string) (*utils.Claims, error)
	EnsureAdmin(username, password string) (bool, error)
}

// --- authService Implementation ---
type authService struct {
	authRepo repositories.AuthRepository
	db       *sql.DB // Used as SQLExecutor for single repo calls, or for managing transactions
	tokens   *utils.JWTManager
	hashCost int
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(authRepo repositories.AuthRepository, db *sql.DB, tokens *utils.JWTManager) AuthService {
	return &authService{
		authRepo: authRepo,
		db:       db,
		tokens:   tokens,
		hashCost: bcrypt.DefaultCost,
	}
}

func (s *authService) hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: password must be at most 72 bytes", ErrValidation)
	}
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// LoginUser checks the password against the stored bcrypt hash and issues an access token.
func (s *authService) LoginUser(req models.Credentials) (*models.LoginResponse, error) {
	user, storedHashedPassword, err := s.authRepo.FindUserByUsername(strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login attempt failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedHashedPassword), []byte(req.Password)); err != nil {
		// err is bcrypt.ErrMismatchedHashAndPassword for wrong password
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}

	user.PasswordHash = "" // Clear password hash before returning user details
	return &models.LoginResponse{
		User:        user,
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokens.TTL().Seconds()),
	}, nil
}

// GetUserProfile retrieves a user's profile by their ID.
func (s *authService) GetUserProfile(userID int64) (*models.User, error) {
	user, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to retrieve user profile: %w", err)
	}
	user.PasswordHash = "" // Ensure password hash is not exposed
	return user, nil
}

// UpdateAccount changes the username and/or password of the current admin.
// Blank values leave the field as it is. The username must not belong to another user.
func (s *authService) UpdateAccount(userID int64, req models.UpdateAccountPayload) (*models.User, error) {
	var newUsername, newPassword string
	if req.Username != nil {
		newUsername = strings.TrimSpace(*req.Username)
	}
	if req.Password != nil {
		newPassword = *req.Password
	}
	if newUsername == "" && newPassword == "" {
		return nil, fmt.Errorf("%w: nothing to update", ErrValidation)
	}
	if len(newUsername) > 64 {
		return nil, fmt.Errorf("%w: username must be at most 64 characters", ErrValidation)
	}

	if newUsername != "" {
		taken, err := s.authRepo.UsernameTakenByOther(newUsername, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to check username: %w", err)
		}
		if taken {
			return nil, ErrUsernameExists
		}
	}

	var hashed string
	if newPassword != "" {
		var err error
		if hashed, err = s.hashPassword(newPassword); err != nil {
			return nil, err
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	if newUsername != "" {
		if err := s.authRepo.UpdateUsername(tx, userID, newUsername, now); err != nil {
			switch {
			case errors.Is(err, repositories.ErrDuplicateKey):
				return nil, ErrUsernameExists
			case errors.Is(err, repositories.ErrNotFound):
				return nil, ErrUserNotFound
			}
			return nil, fmt.Errorf("failed to update username: %w", err)
		}
	}
	if hashed != "" {
		if err := s.authRepo.UpdatePasswordHash(tx, userID, hashed, now); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, fmt.Errorf("failed to update password: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit account update: %w", err)
	}

	log.Info().Int64("user_id", userID).Bool("username_changed", newUsername != "").
		Bool("password_changed", hashed != "").Msg("Admin account updated")
	return s.GetUserProfile(userID)
}

func (s *authService) ValidateToken(token string) (*utils.Claims, error) {
	return s.tokens.ValidateToken(token)
}

// EnsureAdmin creates the admin account when it does not exist yet. Empty credentials skip seeding.
func (s *authService) EnsureAdmin(username, password string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" || utils.IsEmpty(password) {
		return false, nil
	}
	if _, _, err := s.authRepo.FindUserByUsername(username); err == nil {
		return false, nil
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return false, fmt.Errorf("failed to look up admin: %w", err)
	}

	hashed, err := s.hashPassword(password)
	if err != nil {
		return false, err
	}
	if _, err := s.authRepo.CreateUser(s.db, &models.User{Username: username}, hashed); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create admin: %w", err)
	}
	return true, nil
}
