package handlers

import (
	"errors"
	"net/http"

	"streetbite_backend/internal/models"
	"streetbite_backend/internal/services"
	"streetbite_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SessionManager writes and clears the admin session cookie.
type SessionManager interface {
	StartSession(c *gin.Context, user *models.User) error
	EndSession(c *gin.Context) error
}

// AuthHandler holds the authentication service.
type AuthHandler struct {
	authService services.AuthService
	sessions    SessionManager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService, sm SessionManager) *AuthHandler {
	return &AuthHandler{authService: as, sessions: sm}
}

// LoginUser verifies the credentials, opens a session and returns a bearer token as well.
func (h *AuthHandler) LoginUser(c *gin.Context) {
	var req models.Credentials
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	authResp, err := h.authService.LoginUser(req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.LogWarn("Failed admin login", map[string]interface{}{"username": req.Username, "client_ip": c.ClientIP()})
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid username or password.", ""))
		} else {
			utils.LogError(err, "LoginUser: Error from authService.LoginUser")
			utils.RespondInternalError(c, "Failed to login.")
		}
		return
	}

	if err := h.sessions.StartSession(c, authResp.User); err != nil {
		utils.LogError(err, "LoginUser: Failed to save session")
		utils.RespondInternalError(c, "Failed to start session.")
		return
	}
	c.JSON(http.StatusOK, authResp)
}

// LogoutUser expires the session cookie. Bearer tokens simply run out.
func (h *AuthHandler) LogoutUser(c *gin.Context) {
	if err := h.sessions.EndSession(c); err != nil {
		utils.LogError(err, "LogoutUser: Failed to clear session")
		utils.RespondInternalError(c, "Failed to logout.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// GetCurrentUser retrieves the profile of the currently authenticated admin.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.authService.GetUserProfile(userID)
	if err != nil {
		utils.LogError(err, "GetCurrentUser: Error from authService.GetUserProfile for userID "+utils.Int64ToStr(userID))
		if errors.Is(err, services.ErrUserNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "User profile not found.", err.Error()))
		} else {
			utils.RespondInternalError(c, "Failed to retrieve user profile.")
		}
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateAccount changes the current admin's username and/or password.
func (h *AuthHandler) UpdateAccount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.UpdateAccountPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	user, err := h.authService.UpdateAccount(userID, req)
	if err != nil {
		utils.LogError(err, "UpdateAccount: Error from authService.UpdateAccount for userID "+utils.Int64ToStr(userID))
		if errors.Is(err, services.ErrUsernameExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Username already exists.", err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid account details.", err.Error()))
		} else if errors.Is(err, services.ErrUserNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "User not found.", err.Error()))
		} else {
			utils.RespondInternalError(c, "Failed to update account.")
		}
		return
	}

	// keep the username in the cookie current
	if err := h.sessions.StartSession(c, user); err != nil {
		utils.LogError(err, "UpdateAccount: Failed to refresh session")
	}
	c.JSON(http.StatusOK, user)
}
