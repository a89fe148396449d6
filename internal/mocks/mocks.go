package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/devarchon/vibely/backend/internal/models"
)

// MockRelationshipRepository mocks RelationshipRepository behavior for
// service and handler tests.
type MockRelationshipRepository struct {
	mock.Mock
}

func (m *MockRelationshipRepository) Create(rel *models.Relationship) error {
	args := m.Called(rel)
	return args.Error(0)
}

func (m *MockRelationshipRepository) Get(followerID, followingID uint) (*models.Relationship, error) {
	args := m.Called(followerID, followingID)
	var rel *models.Relationship
	if val := args.Get(0); val != nil {
		rel = val.(*models.Relationship)
	}
	return rel, args.Error(1)
}

func (m *MockRelationshipRepository) GetByID(id uint) (*models.Relationship, error) {
	args := m.Called(id)
	var rel *models.Relationship
	if val := args.Get(0); val != nil {
		rel = val.(*models.Relationship)
	}
	return rel, args.Error(1)
}

func (m *MockRelationshipRepository) UpdateStatus(followerID, followingID uint, fromStatus, toStatus string) error {
	args := m.Called(followerID, followingID, fromStatus, toStatus)
	return args.Error(0)
}

func (m *MockRelationshipRepository) Delete(followerID, followingID uint) error {
	args := m.Called(followerID, followingID)
	return args.Error(0)
}

func (m *MockRelationshipRepository) DeletePending(followerID, followingID uint) error {
	args := m.Called(followerID, followingID)
	return args.Error(0)
}

func (m *MockRelationshipRepository) GetPendingForUser(followingID uint) ([]models.Relationship, error) {
	args := m.Called(followingID)
	var rels []models.Relationship
	if val := args.Get(0); val != nil {
		rels = val.([]models.Relationship)
	}
	return rels, args.Error(1)
}

func (m *MockRelationshipRepository) GetFollowers(userID uint) ([]models.User, error) {
	args := m.Called(userID)
	var users []models.User
	if val := args.Get(0); val != nil {
		users = val.([]models.User)
	}
	return users, args.Error(1)
}

func (m *MockRelationshipRepository) GetFollowing(userID uint) ([]models.User, error) {
	args := m.Called(userID)
	var users []models.User
	if val := args.Get(0); val != nil {
		users = val.([]models.User)
	}
	return users, args.Error(1)
}

func (m *MockRelationshipRepository) GetFollowersCount(userID uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRelationshipRepository) GetFollowingCount(userID uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRelationshipRepository) DeleteAllForUser(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockBlockRepository mocks BlockRepository behavior.
type MockBlockRepository struct {
	mock.Mock
}

func (m *MockBlockRepository) Create(block *models.Block) error {
	args := m.Called(block)
	return args.Error(0)
}

func (m *MockBlockRepository) Delete(blockerID, blockedID uint) error {
	args := m.Called(blockerID, blockedID)
	return args.Error(0)
}

func (m *MockBlockRepository) ExistsBetween(userA, userB uint) (bool, error) {
	args := m.Called(userA, userB)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlockRepository) GetBlockedUsers(blockerID uint) ([]models.User, error) {
	args := m.Called(blockerID)
	var users []models.User
	if val := args.Get(0); val != nil {
		users = val.([]models.User)
	}
	return users, args.Error(1)
}

func (m *MockBlockRepository) DeleteAllForUser(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockUserRepository mocks UserRepository behavior.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(id uint) (*models.User, error) {
	args := m.Called(id)
	var user *models.User
	if val := args.Get(0); val != nil {
		user = val.(*models.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	var user *models.User
	if val := args.Get(0); val != nil {
		user = val.(*models.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	args := m.Called(firebaseUID)
	var user *models.User
	if val := args.Get(0); val != nil {
		user = val.(*models.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) GetUsersByIDs(ids []uint) ([]models.User, error) {
	args := m.Called(ids)
	var users []models.User
	if val := args.Get(0); val != nil {
		users = val.([]models.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) UpdateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockUserRepository) SearchUsers(query string) ([]models.User, error) {
	args := m.Called(query)
	var users []models.User
	if val := args.Get(0); val != nil {
		users = val.([]models.User)
	}
	return users, args.Error(1)
}

// MockNotificationRepository mocks NotificationRepository behavior.
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) CreateNotification(notification *models.Notification) error {
	args := m.Called(notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) GetByRecipientID(recipientID uint, page, limit int) ([]models.Notification, int64, error) {
	args := m.Called(recipientID, page, limit)
	var notifications []models.Notification
	if val := args.Get(0); val != nil {
		notifications = val.([]models.Notification)
	}
	return notifications, args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationRepository) GetUnreadCount(recipientID uint) (int64, error) {
	args := m.Called(recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkAsRead(notificationID, recipientID uint) error {
	args := m.Called(notificationID, recipientID)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllAsRead(recipientID uint) error {
	args := m.Called(recipientID)
	return args.Error(0)
}

func (m *MockNotificationRepository) DeleteAllForUser(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockNotifier mocks push delivery.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) FollowRequested(ctx context.Context, actor *models.User, recipientID uint) {
	m.Called(ctx, actor, recipientID)
}

func (m *MockNotifier) FollowApproved(ctx context.Context, actor *models.User, recipientID uint) {
	m.Called(ctx, actor, recipientID)
}

func (m *MockNotifier) NewFollower(ctx context.Context, actor *models.User, recipientID uint) {
	m.Called(ctx, actor, recipientID)
}
