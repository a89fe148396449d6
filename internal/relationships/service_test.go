package relationships_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/devarchon/vibely/backend/internal/mocks"
	"github.com/devarchon/vibely/backend/internal/models"
	"github.com/devarchon/vibely/backend/internal/relationships"
)

type serviceFixture struct {
	relationships *mocks.MockRelationshipRepository
	blocks        *mocks.MockBlockRepository
	users         *mocks.MockUserRepository
	notifications *mocks.MockNotificationRepository
	service       *relationships.Service
}

func newServiceFixture() *serviceFixture {
	f := &serviceFixture{
		relationships: new(mocks.MockRelationshipRepository),
		blocks:        new(mocks.MockBlockRepository),
		users:         new(mocks.MockUserRepository),
		notifications: new(mocks.MockNotificationRepository),
	}
	f.service = relationships.NewService(f.relationships, f.blocks, f.users, f.notifications, nil)
	return f
}

func TestGetStatus_NoRelationshipIsNone(t *testing.T) {
	f := newServiceFixture()
	f.relationships.On("Get", uint(1), uint(2)).Return(nil, gorm.ErrRecordNotFound)

	assert.Equal(t, relationships.StatusNone, f.service.GetStatus(1, 2))
}

func TestGetStatus_ZeroViewerIsNoneWithoutStoreAccess(t *testing.T) {
	f := newServiceFixture()

	assert.Equal(t, relationships.StatusNone, f.service.GetStatus(0, 2))
	assert.Equal(t, relationships.StatusNone, f.service.GetStatus(1, 0))
	f.relationships.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestGetStatus_StoreErrorDegradesToNone(t *testing.T) {
	f := newServiceFixture()
	f.relationships.On("Get", uint(1), uint(2)).Return(nil, errors.New("connection reset"))

	assert.Equal(t, relationships.StatusNone, f.service.GetStatus(1, 2))
}

func TestGetStatus_ReturnsStoredStatus(t *testing.T) {
	f := newServiceFixture()
	f.relationships.On("Get", uint(1), uint(2)).
		Return(&models.Relationship{FollowerID: 1, FollowingID: 2, Status: models.RelationshipPending}, nil).Once()
	f.relationships.On("Get", uint(1), uint(3)).
		Return(&models.Relationship{FollowerID: 1, FollowingID: 3, Status: models.RelationshipApproved}, nil).Once()

	assert.Equal(t, relationships.StatusPending, f.service.GetStatus(1, 2))
	assert.Equal(t, relationships.StatusApproved, f.service.GetStatus(1, 3))
}

func TestIsFollowing_ApprovedOnly(t *testing.T) {
	f := newServiceFixture()
	f.relationships.On("Get", uint(1), uint(2)).
		Return(&models.Relationship{FollowerID: 1, FollowingID: 2, Status: models.RelationshipPending}, nil)

	assert.False(t, f.service.IsFollowing(1, 2), "a pending request does not grant visibility")
}

func TestCreateOrRequestFollow_PublicTargetIsApprovedImmediately(t *testing.T) {
	f := newServiceFixture()
	f.users.On("GetUserByID", uint(2)).Return(&models.User{ID: 2, IsPrivate: false}, nil)
	f.users.On("GetUserByID", uint(1)).Return(&models.User{ID: 1, Name: "Ana"}, nil)
	f.blocks.On("ExistsBetween", uint(1), uint(2)).Return(false, nil)
	f.relationships.On("Create", mock.AnythingOfType("*models.Relationship")).Return(nil)
	f.notifications.On("CreateNotification", mock.AnythingOfType("*models.Notification")).Return(nil)

	rel, err := f.service.CreateOrRequestFollow(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, models.RelationshipApproved, rel.Status)

	f.notifications.AssertCalled(t, "CreateNotification", mock.MatchedBy(func(n *models.Notification) bool {
		return n.Type == models.NotificationFollow && n.RecipientID == 2
	}))
}

func TestCreateOrRequestFollow_PrivateTargetIsPending(t *testing.T) {
	f := newServiceFixture()
	f.users.On("GetUserByID", uint(2)).Return(&models.User{ID: 2, IsPrivate: true}, nil)
	f.users.On("GetUserByID", uint(1)).Return(&models.User{ID: 1, Name: "Ana"}, nil)
	f.blocks.On("ExistsBetween", uint(1), uint(2)).Return(false, nil)
	f.relationships.On("Create", mock.AnythingOfType("*models.Relationship")).Return(nil)
	f.notifications.On("CreateNotification", mock.AnythingOfType("*models.Notification")).Return(nil)

	rel, err := f.service.CreateOrRequestFollow(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, models.RelationshipPending, rel.Status)

	f.notifications.AssertCalled(t, "CreateNotification", mock.MatchedBy(func(n *models.Notification) bool {
		return n.Type == models.NotificationFollowRequest && n.RecipientID == 2
	}))
}

func TestCreateOrRequestFollow_DuplicatePairIsConflict(t *testing.T) {
	f := newServiceFixture()
	f.users.On("GetUserByID", uint(2)).Return(&models.User{ID: 2}, nil)
	f.blocks.On("ExistsBetween", uint(1), uint(2)).Return(false, nil)
	f.relationships.On("Create", mock.AnythingOfType("*models.Relationship")).Return(gorm.ErrDuplicatedKey)

	_, err := f.service.CreateOrRequestFollow(context.Background(), 1, 2)
	assert.ErrorIs(t, err, relationships.ErrConflict)
}

func TestCreateOrRequestFollow_BlockInEitherDirectionForbids(t *testing.T) {
	f := newServiceFixture()
	f.users.On("GetUserByID", mock.Anything).Return(&models.User{ID: 2}, nil)
	f.blocks.On("ExistsBetween", uint(1), uint(2)).Return(true, nil)
	f.blocks.On("ExistsBetween", uint(2), uint(1)).Return(true, nil)

	_, err := f.service.CreateOrRequestFollow(context.Background(), 1, 2)
	assert.ErrorIs(t, err, relationships.ErrBlocked)

	_, err = f.service.CreateOrRequestFollow(context.Background(), 2, 1)
	assert.ErrorIs(t, err, relationships.ErrBlocked)

	f.relationships.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateOrRequestFollow_UnknownTargetIsNotFound(t *testing.T) {
	f := newServiceFixture()
	f.users.On("GetUserByID", uint(9)).Return(nil, gorm.ErrRecordNotFound)

	_, err := f.service.CreateOrRequestFollow(context.Background(), 1, 9)
	assert.ErrorIs(t, err, relationships.ErrNotFound)
}

func TestCreateOrRequestFollow_UnauthenticatedCallerIsRejected(t *testing.T) {
	f := newServiceFixture()

	_, err := f.service.CreateOrRequestFollow(context.Background(), 0, 2)
	assert.ErrorIs(t, err, relationships.ErrNotAllowed)
}

func TestListPendingRequests_NewestFirstWithRequesterSummaries(t *testing.T) {
	f := newServiceFixture()
	newer := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	older := newer.Add(-time.Hour)

	f.relationships.On("GetPendingForUser", uint(5)).Return([]models.Relationship{
		{ID: 11, FollowerID: 2, FollowingID: 5, Status: models.RelationshipPending, CreatedAt: newer},
		{ID: 10, FollowerID: 3, FollowingID: 5, Status: models.RelationshipPending, CreatedAt: older},
	}, nil)
	f.users.On("GetUsersByIDs", []uint{2, 3}).Return([]models.User{
		{ID: 3, Name: "Bea", Handle: "bea"},
		{ID: 2, Name: "Ana", Handle: "ana", AvatarURL: "https://cdn.example.com/a.png"},
	}, nil)

	requests := f.service.ListPendingRequests(5)
	require.Len(t, requests, 2)
	assert.Equal(t, uint(11), requests[0].RequestID)
	assert.Equal(t, "ana", requests[0].Requester.Handle)
	assert.Equal(t, "https://cdn.example.com/a.png", requests[0].Requester.AvatarURL)
	assert.Equal(t, uint(10), requests[1].RequestID)
	assert.True(t, requests[0].RequestedAt.After(requests[1].RequestedAt))
}

func TestListPendingRequests_ZeroOwnerIsEmptyNotError(t *testing.T) {
	f := newServiceFixture()

	assert.Empty(t, f.service.ListPendingRequests(0))
	f.relationships.AssertNotCalled(t, "GetPendingForUser", mock.Anything)
}

func TestListPendingRequests_StoreErrorDegradesToEmpty(t *testing.T) {
	f := newServiceFixture()
	f.relationships.On("GetPendingForUser", uint(5)).Return(nil, errors.New("timeout"))

	assert.Empty(t, f.service.ListPendingRequests(5))
}

func TestApproveRequest_OnlyTheFollowedPartyMayAct(t *testing.T) {
	f := newServiceFixture()
	f.relationships.On("GetByID", uint(10)).Return(&models.Relationship{
		ID: 10, FollowerID: 2, FollowingID: 5, Status: models.RelationshipPending,
	}, nil)

	err := f.service.ApproveRequest(context.Background(), 7, 10)
	assert.ErrorIs(t, err, relationships.ErrNotAllowed)
	f.relationships.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestApproveRequest_TransitionsPendingToApproved(t *testing.T) {
	f := newServiceFixture()
	f.relationships.On("GetByID", uint(10)).Return(&models.Relationship{
		ID: 10, FollowerID: 2, FollowingID: 5, Status: models.RelationshipPending,
	}, nil)
	f.relationships.On("UpdateStatus", uint(2), uint(5), models.RelationshipPending, models.RelationshipApproved).Return(nil)
	f.users.On("GetUserByID", uint(5)).Return(&models.User{ID: 5, Name: "Eve"}, nil)
	f.notifications.On("CreateNotification", mock.AnythingOfType("*models.Notification")).Return(nil)

	require.NoError(t, f.service.ApproveRequest(context.Background(), 5, 10))

	f.notifications.AssertCalled(t, "CreateNotification", mock.MatchedBy(func(n *models.Notification) bool {
		return n.Type == models.NotificationFollowApproved && n.RecipientID == 2
	}))
}

func TestApproveRequest_MissingOrSettledRequestIsNotFound(t *testing.T) {
	f := newServiceFixture()
	f.relationships.On("GetByID", uint(10)).Return(nil, gorm.ErrRecordNotFound).Once()

	err := f.service.ApproveRequest(context.Background(), 5, 10)
	assert.ErrorIs(t, err, relationships.ErrNotFound)

	f.relationships.On("GetByID", uint(11)).Return(&models.Relationship{
		ID: 11, FollowerID: 2, FollowingID: 5, Status: models.RelationshipApproved,
	}, nil).Once()

	err = f.service.ApproveRequest(context.Background(), 5, 11)
	assert.ErrorIs(t, err, relationships.ErrNotFound)
}

func TestRejectRequest_DeletesThePendingRecord(t *testing.T) {
	f := newServiceFixture()
	f.relationships.On("GetByID", uint(10)).Return(&models.Relationship{
		ID: 10, FollowerID: 2, FollowingID: 5, Status: models.RelationshipPending,
	}, nil)
	f.relationships.On("DeletePending", uint(2), uint(5)).Return(nil)

	require.NoError(t, f.service.RejectRequest(5, 10))
	f.relationships.AssertCalled(t, "DeletePending", uint(2), uint(5))
}

func TestBlock_DuplicateIsConflict(t *testing.T) {
	f := newServiceFixture()
	f.users.On("GetUserByID", uint(2)).Return(&models.User{ID: 2}, nil)
	f.blocks.On("Create", mock.AnythingOfType("*models.Block")).Return(gorm.ErrDuplicatedKey)

	err := f.service.Block(1, 2)
	assert.ErrorIs(t, err, relationships.ErrConflict)
}

func TestBlock_CreatesEdgeForKnownTarget(t *testing.T) {
	f := newServiceFixture()
	f.users.On("GetUserByID", uint(2)).Return(&models.User{ID: 2}, nil)
	f.blocks.On("Create", mock.MatchedBy(func(b *models.Block) bool {
		return b.BlockerID == 1 && b.BlockedID == 2
	})).Return(nil)

	require.NoError(t, f.service.Block(1, 2))
}

func TestUnfollow_MissingEdgeIsNotFound(t *testing.T) {
	f := newServiceFixture()
	f.relationships.On("Delete", uint(1), uint(2)).Return(gorm.ErrRecordNotFound)

	assert.ErrorIs(t, f.service.Unfollow(1, 2), relationships.ErrNotFound)
}

func TestDeleteAccountData_CascadesAllStores(t *testing.T) {
	f := newServiceFixture()
	f.relationships.On("DeleteAllForUser", uint(4)).Return(nil)
	f.blocks.On("DeleteAllForUser", uint(4)).Return(nil)
	f.notifications.On("DeleteAllForUser", uint(4)).Return(nil)

	require.NoError(t, f.service.DeleteAccountData(4))
	f.relationships.AssertExpectations(t)
	f.blocks.AssertExpectations(t)
	f.notifications.AssertExpectations(t)
}
