package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/tubewarden/tubewarden/internal/auth"
	"github.com/tubewarden/tubewarden/internal/logger"
	"github.com/tubewarden/tubewarden/internal/platform/youtube"
)

const (
	stateCookie = "oauth_state"

	// Short window between redirect and callback.
	stateCookieMaxAge = 600
)

// AuthHandler handles the OAuth sign-in flow and session lifecycle.
type AuthHandler struct {
	conf     *oauth2.Config
	sessions *auth.Store
	// ttl of the session cookie, in seconds.
	cookieMaxAge int
	secureCookie bool
	logger       logger.Logger
}

// NewAuthHandler creates the auth handler. cookieMaxAge is in seconds and
// should match the session store TTL.
func NewAuthHandler(conf *oauth2.Config, sessions *auth.Store, cookieMaxAge int, secureCookie bool, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		conf:         conf,
		sessions:     sessions,
		cookieMaxAge: cookieMaxAge,
		secureCookie: secureCookie,
		logger:       log,
	}
}

// Login handles GET /auth/login. It issues a random state value and
// redirects to the platform's consent screen.
func (h *AuthHandler) Login(c *gin.Context) {
	state := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, state, stateCookieMaxAge, "/", "", h.secureCookie, true)

	c.Redirect(http.StatusTemporaryRedirect, youtube.AuthURL(h.conf, state))
}

// Callback handles GET /auth/callback. It verifies the state value,
// exchanges the authorization code, and establishes a session.
func (h *AuthHandler) Callback(c *gin.Context) {
	expected, err := c.Cookie(stateCookie)
	if err != nil || expected == "" || c.Query("state") != expected {
		h.logger.Warn("oauth state mismatch")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid oauth state"})
		return
	}
	// One-shot: the state cookie is spent either way.
	c.SetCookie(stateCookie, "", -1, "/", "", h.secureCookie, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "authorization code is required"})
		return
	}

	tok, err := youtube.Exchange(c.Request.Context(), h.conf, code)
	if err != nil {
		h.logger.Error("oauth code exchange failed", logger.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "authorization exchange failed"})
		return
	}

	sessionID, err := h.sessions.CreateSession(c.Request.Context(), tok)
	if err != nil {
		h.logger.Error("failed to create session", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, sessionID, h.cookieMaxAge, "/", "", h.secureCookie, true)

	h.logger.Info("session established")
	c.Redirect(http.StatusTemporaryRedirect, "/")
}

// Logout handles POST /auth/logout. It drops the stored token and clears
// the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID, err := c.Cookie(sessionCookie)
	if err == nil && sessionID != "" {
		if delErr := h.sessions.Delete(c.Request.Context(), sessionID); delErr != nil {
			h.logger.Warn("failed to delete session", logger.Error(delErr))
		}
	}

	c.SetCookie(sessionCookie, "", -1, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}
