package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/printflow/printflow-logistics-api/config"
	"github.com/printflow/printflow-logistics-api/contract"
	"github.com/printflow/printflow-logistics-api/middleware"
	"github.com/printflow/printflow-logistics-api/models"
	"github.com/printflow/printflow-logistics-api/services"
	"github.com/printflow/printflow-logistics-api/storage"
)

// stateCookieName carries the OAuth state between /api/login and /api/callback.
const stateCookieName = "printflow_oauth_state"

// AuthController implements the login flow against the external identity
// provider. It is the only place that writes user rows (via upsert) and
// session rows.
type AuthController struct {
	cfg      *config.Config
	store    storage.Store
	auth0    *services.Auth0Service
	sessions *services.SessionService
}

// NewAuthController creates the auth controller.
func NewAuthController(cfg *config.Config, store storage.Store, auth0 *services.Auth0Service, sessions *services.SessionService) *AuthController {
	return &AuthController{cfg: cfg, store: store, auth0: auth0, sessions: sessions}
}

// Login handles GET /api/login - hands the browser off to the identity provider
func (ctl *AuthController) Login(c *gin.Context) {
	state := uuid.NewString()
	c.SetCookie(stateCookieName, state, 600, "/", "", ctl.cfg.IsProduction(), true)
	c.Redirect(http.StatusFound, ctl.auth0.AuthorizeURL(state))
}

// Callback handles GET /api/callback - exchanges the authorization code,
// upserts the user row from the provider's profile, opens a session and
// redirects back to the app.
func (ctl *AuthController) Callback(c *gin.Context) {
	state := c.Query("state")
	expected, err := c.Cookie(stateCookieName)
	if err != nil || state == "" || state != expected {
		c.JSON(http.StatusUnauthorized, contract.ErrorResponse{Message: "Invalid login state"})
		return
	}

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusUnauthorized, contract.ErrorResponse{Message: "Missing authorization code"})
		return
	}

	tokens, err := ctl.auth0.ExchangeCode(code)
	if err != nil {
		log.Printf("failed to exchange authorization code: %v", err)
		c.JSON(http.StatusUnauthorized, contract.ErrorResponse{Message: "Authentication failed"})
		return
	}

	userInfo, err := ctl.auth0.GetUserInfo(tokens.AccessToken)
	if err != nil {
		log.Printf("failed to fetch user info: %v", err)
		c.JSON(http.StatusUnauthorized, contract.ErrorResponse{Message: "Authentication failed"})
		return
	}

	user := &models.User{
		ID:        userInfo.Sub,
		FirstName: userInfo.GivenName,
		LastName:  userInfo.FamilyName,
	}
	if userInfo.Email != "" {
		user.Email = &userInfo.Email
	}

	saved, err := ctl.store.UpsertUser(user)
	if err != nil {
		respondInternal(c, err)
		return
	}

	session, err := ctl.sessions.Create(saved)
	if err != nil {
		respondInternal(c, err)
		return
	}

	// Clear the state cookie, set the session cookie
	c.SetCookie(stateCookieName, "", -1, "/", "", ctl.cfg.IsProduction(), true)
	c.SetCookie(services.SessionCookieName, session.SID, int(ctl.sessions.TTL().Seconds()), "/", "", ctl.cfg.IsProduction(), true)
	c.Redirect(http.StatusFound, "/")
}

// Logout handles GET /api/logout - ends the session and clears the cookie
func (ctl *AuthController) Logout(c *gin.Context) {
	if sid, err := c.Cookie(services.SessionCookieName); err == nil && sid != "" {
		if err := ctl.sessions.Destroy(sid); err != nil {
			log.Printf("failed to destroy session: %v", err)
		}
	}
	c.SetCookie(services.SessionCookieName, "", -1, "/", "", ctl.cfg.IsProduction(), true)
	c.Redirect(http.StatusFound, "/")
}

// GetCurrentUser handles GET /api/auth/user - the authenticated user's profile
func (ctl *AuthController) GetCurrentUser(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, contract.ErrorResponse{Message: "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, user)
}
