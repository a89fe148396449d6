package relationships

import (
	"context"
	"errors"

	"github.com/devarchon/vibely/backend/internal/models"
	"github.com/devarchon/vibely/backend/internal/repositories"
	"gorm.io/gorm"
)

// Status is the relationship state between a viewer and a target user
type Status string

const (
	StatusNone     Status = "none"
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
)

// Notifier delivers relationship events to the affected user. Delivery is
// best-effort; implementations must not block on failure.
type Notifier interface {
	FollowRequested(ctx context.Context, actor *models.User, recipientID uint)
	FollowApproved(ctx context.Context, actor *models.User, recipientID uint)
	NewFollower(ctx context.Context, actor *models.User, recipientID uint)
}

// Service answers relationship and visibility queries and enforces the
// follow/block invariants on mutation. All concurrency safety is delegated
// to the store: the unique pair indexes arbitrate racing creates.
type Service struct {
	relationshipRepository repositories.RelationshipRepository
	blockRepository        repositories.BlockRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
	notifier               Notifier
}

// NewService creates a new relationship Service. notifier may be nil.
func NewService(
	relationshipRepo repositories.RelationshipRepository,
	blockRepo repositories.BlockRepository,
	userRepo repositories.UserRepository,
	notificationRepo repositories.NotificationRepository,
	notifier Notifier,
) *Service {
	return &Service{
		relationshipRepository: relationshipRepo,
		blockRepository:        blockRepo,
		userRepository:         userRepo,
		notificationRepository: notificationRepo,
		notifier:               notifier,
	}
}

// GetStatus returns the relationship state from viewer to target. Invalid
// identifiers and store misses degrade to StatusNone; the read path is
// total and never discloses errors.
func (s *Service) GetStatus(viewerID, targetID uint) Status {
	if viewerID == 0 || targetID == 0 {
		return StatusNone
	}
	rel, err := s.relationshipRepository.Get(viewerID, targetID)
	if err != nil {
		return StatusNone
	}
	if rel.Status == models.RelationshipApproved {
		return StatusApproved
	}
	return StatusPending
}

// IsFollowing reports whether an approved relationship exists from viewer
// to owner. Used as the visibility gate for private content.
func (s *Service) IsFollowing(viewerID, ownerID uint) bool {
	return s.GetStatus(viewerID, ownerID) == StatusApproved
}

// ListPendingRequests returns the incoming follow requests for the owner,
// newest first, each enriched with the requester's public summary. An
// unauthenticated or unknown owner gets an empty list, never an error.
func (s *Service) ListPendingRequests(ownerID uint) []models.PendingRequest {
	requests := []models.PendingRequest{}
	if ownerID == 0 {
		return requests
	}

	rels, err := s.relationshipRepository.GetPendingForUser(ownerID)
	if err != nil || len(rels) == 0 {
		return requests
	}

	ids := make([]uint, 0, len(rels))
	for _, rel := range rels {
		ids = append(ids, rel.FollowerID)
	}
	users, err := s.userRepository.GetUsersByIDs(ids)
	if err != nil {
		return requests
	}
	summaries := make(map[uint]models.UserCompact, len(users))
	for _, u := range users {
		summaries[u.ID] = u.ToCompact()
	}

	for _, rel := range rels {
		summary, ok := summaries[rel.FollowerID]
		if !ok {
			continue // requester account no longer exists
		}
		requests = append(requests, models.PendingRequest{
			RequestID:   rel.ID,
			Requester:   summary,
			RequestedAt: rel.CreatedAt,
		})
	}
	return requests
}

// CreateOrRequestFollow creates a follow edge from follower to target.
// The edge is approved immediately for public targets and pending for
// private ones. Fails with ErrConflict if the pair already has an edge,
// ErrBlocked if a block exists in either direction, and ErrNotFound if the
// target account is absent.
func (s *Service) CreateOrRequestFollow(ctx context.Context, followerID, targetID uint) (*models.Relationship, error) {
	if followerID == 0 {
		return nil, ErrNotAllowed
	}

	target, err := s.userRepository.GetUserByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	blocked, err := s.blockRepository.ExistsBetween(followerID, targetID)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, ErrBlocked
	}

	status := models.RelationshipApproved
	if target.IsPrivate {
		status = models.RelationshipPending
	}

	rel := &models.Relationship{
		FollowerID:  followerID,
		FollowingID: targetID,
		Status:      status,
	}
	if err := s.relationshipRepository.Create(rel); err != nil {
		// The unique pair index arbitrates concurrent creates
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, err
	}

	s.emitFollowEvent(ctx, rel)
	return rel, nil
}

// ApproveRequest transitions a pending request to approved. Only the
// followed party may act: anyone else gets ErrNotAllowed. A missing or
// already-approved request yields ErrNotFound.
func (s *Service) ApproveRequest(ctx context.Context, ownerID, requestID uint) error {
	rel, err := s.requireOwnedPending(ownerID, requestID)
	if err != nil {
		return err
	}

	if err := s.relationshipRepository.UpdateStatus(
		rel.FollowerID, rel.FollowingID,
		models.RelationshipPending, models.RelationshipApproved,
	); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if actor, err := s.userRepository.GetUserByID(ownerID); err == nil {
		s.notify(ctx, &models.Notification{
			Type:        models.NotificationFollowApproved,
			ActorID:     ownerID,
			RecipientID: rel.FollowerID,
			Message:     actor.Name + " approved your follow request",
		})
		if s.notifier != nil {
			s.notifier.FollowApproved(ctx, actor, rel.FollowerID)
		}
	}
	return nil
}

// RejectRequest deletes a pending request. Authorization mirrors
// ApproveRequest.
func (s *Service) RejectRequest(ownerID, requestID uint) error {
	rel, err := s.requireOwnedPending(ownerID, requestID)
	if err != nil {
		return err
	}

	if err := s.relationshipRepository.DeletePending(rel.FollowerID, rel.FollowingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Unfollow removes the follow edge from followerID to followingID
func (s *Service) Unfollow(followerID, followingID uint) error {
	if err := s.relationshipRepository.Delete(followerID, followingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// RemoveFollower removes the follow edge from followerID to ownerID
func (s *Service) RemoveFollower(ownerID, followerID uint) error {
	return s.Unfollow(followerID, ownerID)
}

// Block creates a block edge and severs any follow relationship between
// the two users in either direction, atomically. Fails with ErrConflict if
// the block already exists.
func (s *Service) Block(blockerID, blockedID uint) error {
	if blockerID == 0 {
		return ErrNotAllowed
	}
	if _, err := s.userRepository.GetUserByID(blockedID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	block := &models.Block{BlockerID: blockerID, BlockedID: blockedID}
	if err := s.blockRepository.Create(block); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrConflict
		}
		return err
	}
	return nil
}

// Unblock removes a block edge. Previously severed follow relationships
// are not restored.
func (s *Service) Unblock(blockerID, blockedID uint) error {
	if err := s.blockRepository.Delete(blockerID, blockedID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// GetBlockedUsers lists the users blocked by blockerID
func (s *Service) GetBlockedUsers(blockerID uint) ([]models.User, error) {
	return s.blockRepository.GetBlockedUsers(blockerID)
}

// GetFollowers lists approved followers of the user
func (s *Service) GetFollowers(userID uint) ([]models.User, error) {
	return s.relationshipRepository.GetFollowers(userID)
}

// GetFollowing lists users the given user follows (approved only)
func (s *Service) GetFollowing(userID uint) ([]models.User, error) {
	return s.relationshipRepository.GetFollowing(userID)
}

// GetCounts returns the approved follower and following counts
func (s *Service) GetCounts(userID uint) (followers, following int64, err error) {
	followers, err = s.relationshipRepository.GetFollowersCount(userID)
	if err != nil {
		return 0, 0, err
	}
	following, err = s.relationshipRepository.GetFollowingCount(userID)
	if err != nil {
		return 0, 0, err
	}
	return followers, following, nil
}

// DeleteAccountData removes every relationship, block, and notification
// touching the user. Called from the account-deletion cascade.
func (s *Service) DeleteAccountData(userID uint) error {
	if err := s.relationshipRepository.DeleteAllForUser(userID); err != nil {
		return err
	}
	if err := s.blockRepository.DeleteAllForUser(userID); err != nil {
		return err
	}
	return s.notificationRepository.DeleteAllForUser(userID)
}

// requireOwnedPending loads the request and verifies the caller is the
// followed party of a still-pending record.
func (s *Service) requireOwnedPending(ownerID, requestID uint) (*models.Relationship, error) {
	if ownerID == 0 {
		return nil, ErrNotAllowed
	}
	rel, err := s.relationshipRepository.GetByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if rel.FollowingID != ownerID {
		return nil, ErrNotAllowed
	}
	if rel.Status != models.RelationshipPending {
		return nil, ErrNotFound
	}
	return rel, nil
}

// emitFollowEvent records and pushes the notification for a new follow
// edge. Best-effort: failures are swallowed.
func (s *Service) emitFollowEvent(ctx context.Context, rel *models.Relationship) {
	actor, err := s.userRepository.GetUserByID(rel.FollowerID)
	if err != nil {
		return
	}

	if rel.Status == models.RelationshipPending {
		s.notify(ctx, &models.Notification{
			Type:        models.NotificationFollowRequest,
			ActorID:     rel.FollowerID,
			RecipientID: rel.FollowingID,
			Message:     actor.Name + " requested to follow you",
		})
		if s.notifier != nil {
			s.notifier.FollowRequested(ctx, actor, rel.FollowingID)
		}
		return
	}

	s.notify(ctx, &models.Notification{
		Type:        models.NotificationFollow,
		ActorID:     rel.FollowerID,
		RecipientID: rel.FollowingID,
		Message:     actor.Name + " started following you",
	})
	if s.notifier != nil {
		s.notifier.NewFollower(ctx, actor, rel.FollowingID)
	}
}

func (s *Service) notify(_ context.Context, n *models.Notification) {
	if s.notificationRepository != nil {
		_ = s.notificationRepository.CreateNotification(n)
	}
}
