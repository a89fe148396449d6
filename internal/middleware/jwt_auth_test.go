package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devarchon/vibely/backend/internal/handlers"
	"github.com/devarchon/vibely/backend/internal/middleware"
	"github.com/devarchon/vibely/backend/internal/mocks"
	"github.com/devarchon/vibely/backend/internal/models"
	"github.com/devarchon/vibely/backend/internal/relationships"
)

type readRouteFixture struct {
	relationships *mocks.MockRelationshipRepository
	echo          *echo.Echo
}

func newReadRouteFixture() *readRouteFixture {
	f := &readRouteFixture{
		relationships: new(mocks.MockRelationshipRepository),
		echo:          echo.New(),
	}
	service := relationships.NewService(
		f.relationships,
		new(mocks.MockBlockRepository),
		new(mocks.MockUserRepository),
		new(mocks.MockNotificationRepository),
		nil,
	)
	handler := handlers.NewRelationshipHandler(service, new(mocks.MockUserRepository))

	reads := f.echo.Group("/api/v1")
	reads.Use(middleware.OptionalJWTAuthMiddleware())
	handler.RegisterRelationshipReadRoutes(reads)
	return f
}

func signToken(t *testing.T, userID uint) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.JwtCustomClaims{UserID: userID})
	signed, err := token.SignedString([]byte(middleware.JWTSecret()))
	require.NoError(t, err)
	return signed
}

func TestReadRoutes_AnonymousStatusIsNoneNot401(t *testing.T) {
	f := newReadRouteFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/2/relationship", nil)
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"none"`)
}

func TestReadRoutes_AnonymousPendingRequestsAreEmptyNot401(t *testing.T) {
	f := newReadRouteFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/follow/requests", nil)
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"requests":[]`)
}

func TestReadRoutes_TokenBearerSeesOwnRelationship(t *testing.T) {
	f := newReadRouteFixture()
	f.relationships.On("Get", uint(1), uint(2)).
		Return(&models.Relationship{FollowerID: 1, FollowingID: 2, Status: models.RelationshipApproved}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/2/relationship", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signToken(t, 1))
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"approved"`)
}

func TestReadRoutes_PresentButInvalidTokenIsRejected(t *testing.T) {
	f := newReadRouteFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/2/relationship", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-token")
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
