package middleware

import (
	"net/http"
	"strings"

	"streetbite_backend/internal/models"
	"streetbite_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

const (
	// SessionName is the cookie holding the admin session.
	SessionName = "streetbite-session"

	sessionUserIDKey   = "userID"
	sessionUsernameKey = "username"

	// Context keys set for downstream handlers.
	ContextUserID   = "userID"
	ContextUsername = "username"
)

// UserResolver is the part of the auth service the middleware needs.
type UserResolver interface {
	ValidateToken(token string) (*utils.Claims, error)
	GetUserProfile(userID int64) (*models.User, error)
}

// SessionAuth authenticates admin requests with a signed session cookie, or a
// bearer token when an Authorization header is present.
type SessionAuth struct {
	store sessions.Store
	users UserResolver
}

// NewCookieStore builds the signed cookie store used for admin sessions.
func NewCookieStore(secret []byte, maxAgeSecs int, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAgeSecs,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

func NewSessionAuth(store sessions.Store, users UserResolver) *SessionAuth {
	return &SessionAuth{store: store, users: users}
}

// StartSession writes the user into the session cookie. Call before writing the body.
func (a *SessionAuth) StartSession(c *gin.Context, user *models.User) error {
	session, _ := a.store.Get(c.Request, SessionName)
	session.Values[sessionUserIDKey] = user.ID
	session.Values[sessionUsernameKey] = user.Username
	return session.Save(c.Request, c.Writer)
}

// EndSession expires the session cookie.
func (a *SessionAuth) EndSession(c *gin.Context) error {
	session, _ := a.store.Get(c.Request, SessionName)
	delete(session.Values, sessionUserIDKey)
	delete(session.Values, sessionUsernameKey)
	session.Options.MaxAge = -1
	return session.Save(c.Request, c.Writer)
}

// RequireAdmin aborts with 401 unless the request carries a valid session or
// bearer token for a user that still exists.
func (a *SessionAuth) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, problem := a.identify(c)
		if problem != "" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, problem, ""))
			c.Abort()
			return
		}

		user, err := a.users.GetUserProfile(userID)
		if err != nil {
			// deleted or renamed out from under the session
			utils.LogDebug("Rejecting session for unknown user", map[string]interface{}{"user_id": userID, "error": err.Error()})
			_ = a.EndSession(c)
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Session is no longer valid, please log in again", ""))
			c.Abort()
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextUsername, user.Username)
		c.Next()
	}
}

// identify returns the user id claimed by the request, or a message explaining why there is none.
func (a *SessionAuth) identify(c *gin.Context) (int64, string) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return 0, "Invalid authorization header format. Use Bearer <token>"
		}
		claims, err := a.users.ValidateToken(parts[1])
		if err != nil {
			return 0, "Invalid or expired token"
		}
		return claims.UserID, ""
	}

	session, err := a.store.Get(c.Request, SessionName)
	if err != nil {
		return 0, "Invalid session, please log in again"
	}
	userID, ok := session.Values[sessionUserIDKey].(int64)
	if !ok || userID <= 0 {
		return 0, "Authentication required"
	}
	return userID, ""
}

// CurrentUserID returns the id set by RequireAdmin.
func CurrentUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
