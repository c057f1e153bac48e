package testutil

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/printflow/printflow-logistics-api/middleware"
	"github.com/printflow/printflow-logistics-api/models"
	"github.com/printflow/printflow-logistics-api/services"
	"github.com/printflow/printflow-logistics-api/storage"
)

// CreateTestUser inserts a user row for tests. The id follows the identity
// provider's subject format.
func CreateTestUser(t *testing.T, store storage.Store, id string) *models.User {
	t.Helper()

	user, err := store.UpsertUser(&models.User{
		ID:        id,
		FirstName: "Test",
		LastName:  "Operator",
	})
	require.NoError(t, err)
	return user
}

// CreateTestSession opens a one hour session for the user and returns the
// cookie that authenticates requests against the full router.
func CreateTestSession(t *testing.T, store storage.Store, user *models.User) *http.Cookie {
	t.Helper()

	sessions := services.NewSessionService(store, time.Hour)
	session, err := sessions.Create(user)
	require.NoError(t, err)

	return &http.Cookie{Name: services.SessionCookieName, Value: session.SID}
}

// SetMockAuthContext bypasses the auth middleware by placing the user
// directly into the gin context. Use when testing a handler in isolation.
func SetMockAuthContext(c *gin.Context, user *models.User) {
	middleware.SetCurrentUser(c, user)
}
