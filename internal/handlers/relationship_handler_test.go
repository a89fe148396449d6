package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/devarchon/vibely/backend/internal/mocks"
	"github.com/devarchon/vibely/backend/internal/models"
	"github.com/devarchon/vibely/backend/internal/relationships"
)

type handlerFixture struct {
	relationships *mocks.MockRelationshipRepository
	blocks        *mocks.MockBlockRepository
	users         *mocks.MockUserRepository
	notifications *mocks.MockNotificationRepository
	handler       *RelationshipHandler
}

func newHandlerFixture() *handlerFixture {
	f := &handlerFixture{
		relationships: new(mocks.MockRelationshipRepository),
		blocks:        new(mocks.MockBlockRepository),
		users:         new(mocks.MockUserRepository),
		notifications: new(mocks.MockNotificationRepository),
	}
	service := relationships.NewService(f.relationships, f.blocks, f.users, f.notifications, nil)
	f.handler = NewRelationshipHandler(service, f.users)
	return f
}

func newTestContext(method, target string, userID uint) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != 0 {
		c.Set("user", &models.JwtCustomClaims{UserID: userID})
	}
	return c, rec
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %v", err)
	return httpErr.Code
}

func TestGetRelationshipStatus_MalformedTargetReadsAsNone(t *testing.T) {
	f := newHandlerFixture()
	c, rec := newTestContext(http.MethodGet, "/users/abc/relationship", 1)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	require.NoError(t, f.handler.GetRelationshipStatus(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "none", body.Data.Status)
}

func TestGetRelationshipStatus_UnauthenticatedViewerReadsAsNone(t *testing.T) {
	f := newHandlerFixture()
	c, rec := newTestContext(http.MethodGet, "/users/2/relationship", 0)
	c.SetParamNames("id")
	c.SetParamValues("2")

	require.NoError(t, f.handler.GetRelationshipStatus(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"none"`)
	f.relationships.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestGetPendingRequests_UnauthenticatedGetsEmptyList(t *testing.T) {
	f := newHandlerFixture()
	c, rec := newTestContext(http.MethodGet, "/follow/requests", 0)

	require.NoError(t, f.handler.GetPendingRequests(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"requests":[]`)
}

func TestFollowUser_DuplicateFollowIsConflict(t *testing.T) {
	f := newHandlerFixture()
	f.users.On("GetUserByID", uint(2)).Return(&models.User{ID: 2}, nil)
	f.blocks.On("ExistsBetween", uint(1), uint(2)).Return(false, nil)
	f.relationships.On("Create", mock.AnythingOfType("*models.Relationship")).Return(gorm.ErrDuplicatedKey)

	c, _ := newTestContext(http.MethodPost, "/users/2/follow", 1)
	c.SetParamNames("id")
	c.SetParamValues("2")

	err := f.handler.FollowUser(c)
	assert.Equal(t, http.StatusConflict, httpStatus(t, err))
}

func TestFollowUser_BlockedPairIsForbidden(t *testing.T) {
	f := newHandlerFixture()
	f.users.On("GetUserByID", uint(2)).Return(&models.User{ID: 2}, nil)
	f.blocks.On("ExistsBetween", uint(1), uint(2)).Return(true, nil)

	c, _ := newTestContext(http.MethodPost, "/users/2/follow", 1)
	c.SetParamNames("id")
	c.SetParamValues("2")

	err := f.handler.FollowUser(c)
	assert.Equal(t, http.StatusForbidden, httpStatus(t, err))
}

func TestFollowUser_SelfFollowIsBadRequest(t *testing.T) {
	f := newHandlerFixture()
	c, _ := newTestContext(http.MethodPost, "/users/1/follow", 1)
	c.SetParamNames("id")
	c.SetParamValues("1")

	err := f.handler.FollowUser(c)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
}

func TestFollowUser_PrivateTargetReportsPending(t *testing.T) {
	f := newHandlerFixture()
	f.users.On("GetUserByID", uint(2)).Return(&models.User{ID: 2, IsPrivate: true}, nil)
	f.users.On("GetUserByID", uint(1)).Return(&models.User{ID: 1, Name: "Ana"}, nil)
	f.blocks.On("ExistsBetween", uint(1), uint(2)).Return(false, nil)
	f.relationships.On("Create", mock.AnythingOfType("*models.Relationship")).Return(nil)
	f.notifications.On("CreateNotification", mock.AnythingOfType("*models.Notification")).Return(nil)

	c, rec := newTestContext(http.MethodPost, "/users/2/follow", 1)
	c.SetParamNames("id")
	c.SetParamValues("2")

	require.NoError(t, f.handler.FollowUser(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"pending"`)
}

func TestApproveRequest_ByNonReceiverIsForbidden(t *testing.T) {
	f := newHandlerFixture()
	f.relationships.On("GetByID", uint(10)).Return(&models.Relationship{
		ID: 10, FollowerID: 2, FollowingID: 5, Status: models.RelationshipPending,
	}, nil)

	c, _ := newTestContext(http.MethodPost, "/follow/requests/10/approve", 7)
	c.SetParamNames("id")
	c.SetParamValues("10")

	err := f.handler.ApproveRequest(c)
	assert.Equal(t, http.StatusForbidden, httpStatus(t, err))
}

func TestApproveRequest_MissingRequestIsNotFound(t *testing.T) {
	f := newHandlerFixture()
	f.relationships.On("GetByID", uint(10)).Return(nil, gorm.ErrRecordNotFound)

	c, _ := newTestContext(http.MethodPost, "/follow/requests/10/approve", 5)
	c.SetParamNames("id")
	c.SetParamValues("10")

	err := f.handler.ApproveRequest(c)
	assert.Equal(t, http.StatusNotFound, httpStatus(t, err))
}

func TestUnfollowUser_MissingEdgeIsNotFound(t *testing.T) {
	f := newHandlerFixture()
	f.relationships.On("Delete", uint(1), uint(2)).Return(gorm.ErrRecordNotFound)

	c, _ := newTestContext(http.MethodDelete, "/users/2/follow", 1)
	c.SetParamNames("id")
	c.SetParamValues("2")

	err := f.handler.UnfollowUser(c)
	assert.Equal(t, http.StatusNotFound, httpStatus(t, err))
}

func TestGetFollowers_PrivateAccountRequiresApprovedFollow(t *testing.T) {
	f := newHandlerFixture()
	f.users.On("GetUserByID", uint(2)).Return(&models.User{ID: 2, IsPrivate: true}, nil)
	f.relationships.On("Get", uint(1), uint(2)).Return(nil, gorm.ErrRecordNotFound)

	c, _ := newTestContext(http.MethodGet, "/users/2/followers", 1)
	c.SetParamNames("id")
	c.SetParamValues("2")

	err := f.handler.GetFollowers(c)
	assert.Equal(t, http.StatusForbidden, httpStatus(t, err))
}

func TestGetFollowers_OwnerAlwaysAllowed(t *testing.T) {
	f := newHandlerFixture()
	f.relationships.On("GetFollowers", uint(2)).Return([]models.User{{ID: 1, Handle: "ana"}}, nil)

	c, rec := newTestContext(http.MethodGet, "/users/2/followers", 2)
	c.SetParamNames("id")
	c.SetParamValues("2")

	require.NoError(t, f.handler.GetFollowers(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"handle":"ana"`)
}
