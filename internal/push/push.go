package push

import (
	"context"
	"log"

	"firebase.google.com/go/v4/messaging"
	"golang.org/x/time/rate"

	"github.com/devarchon/vibely/backend/internal/models"
	"github.com/devarchon/vibely/backend/internal/repositories"
)

// FCMNotifier delivers relationship events as FCM push messages. Delivery
// is best-effort: missing device tokens, throttling, and send failures are
// logged and dropped, never propagated to the request path.
type FCMNotifier struct {
	messaging      *messaging.Client
	userRepository repositories.UserRepository
	// Token bucket guarding the upstream FCM quota
	limiter *rate.Limiter
}

// NewFCMNotifier creates a new FCMNotifier
func NewFCMNotifier(client *messaging.Client, userRepo repositories.UserRepository) *FCMNotifier {
	return &FCMNotifier{
		messaging:      client,
		userRepository: userRepo,
		limiter:        rate.NewLimiter(rate.Limit(50), 100),
	}
}

// FollowRequested notifies the recipient of a new follow request
func (n *FCMNotifier) FollowRequested(ctx context.Context, actor *models.User, recipientID uint) {
	n.send(ctx, recipientID, "New follow request", actor.Name+" requested to follow you")
}

// FollowApproved notifies the requester their request was accepted
func (n *FCMNotifier) FollowApproved(ctx context.Context, actor *models.User, recipientID uint) {
	n.send(ctx, recipientID, "Follow request approved", actor.Name+" approved your follow request")
}

// NewFollower notifies a public account of a new follower
func (n *FCMNotifier) NewFollower(ctx context.Context, actor *models.User, recipientID uint) {
	n.send(ctx, recipientID, "New follower", actor.Name+" started following you")
}

func (n *FCMNotifier) send(ctx context.Context, recipientID uint, title, body string) {
	if n.messaging == nil {
		return
	}
	if !n.limiter.Allow() {
		log.Printf("push: dropping message to user %d, local FCM quota exhausted", recipientID)
		return
	}

	recipient, err := n.userRepository.GetUserByID(recipientID)
	if err != nil || recipient.FCMToken == "" {
		return
	}

	msg := &messaging.Message{
		Token: recipient.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
	}
	if _, err := n.messaging.Send(ctx, msg); err != nil {
		log.Printf("push: failed to send to user %d: %v", recipientID, err)
	}
}
