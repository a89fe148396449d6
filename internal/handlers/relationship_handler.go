package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/devarchon/vibely/backend/internal/models"
	"github.com/devarchon/vibely/backend/internal/relationships"
	"github.com/devarchon/vibely/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// RelationshipHandler handles follow/unfollow and follow-request HTTP requests
type RelationshipHandler struct {
	service        *relationships.Service
	userRepository repositories.UserRepository
}

// NewRelationshipHandler creates a new RelationshipHandler
func NewRelationshipHandler(service *relationships.Service, userRepo repositories.UserRepository) *RelationshipHandler {
	return &RelationshipHandler{service: service, userRepository: userRepo}
}

// RegisterRelationshipRoutes registers the relationship mutation and
// privacy-gated listing routes. All of them require an authenticated
// caller.
func (h *RelationshipHandler) RegisterRelationshipRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.FollowUser)
	g.DELETE("/users/:id/follow", h.UnfollowUser)
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
	g.DELETE("/followers/:id", h.RemoveFollower)
	g.POST("/follow/requests/:id/approve", h.ApproveRequest)
	g.DELETE("/follow/requests/:id", h.RejectRequest)
}

// RegisterRelationshipReadRoutes registers the total read routes. They
// answer the none/empty shape for anonymous callers rather than 401, so
// the group must carry optional rather than mandatory authentication.
func (h *RelationshipHandler) RegisterRelationshipReadRoutes(g *echo.Group) {
	g.GET("/users/:id/relationship", h.GetRelationshipStatus)
	g.GET("/follow/requests", h.GetPendingRequests)
}

// FollowUser follows a user, or requests to if the target account is private
func (h *RelationshipHandler) FollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if currentUserID == uint(targetID) {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot follow yourself")
	}

	rel, err := h.service.CreateOrRequestFollow(c.Request().Context(), currentUserID, uint(targetID))
	if err != nil {
		return relationshipError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"status": rel.Status}})
}

// UnfollowUser unfollows a user (or withdraws a pending request)
func (h *RelationshipHandler) UnfollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if err := h.service.Unfollow(currentUserID, uint(targetID)); err != nil {
		return relationshipError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"status": relationships.StatusNone}})
}

// GetRelationshipStatus returns the relationship status from the viewer to
// the target user. Malformed target IDs read as "none" rather than an
// error, to keep the read path total.
func (h *RelationshipHandler) GetRelationshipStatus(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	status := relationships.StatusNone
	if targetID, err := strconv.ParseUint(c.Param("id"), 10, 32); err == nil {
		status = h.service.GetStatus(currentUserID, uint(targetID))
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"status": status}})
}

// GetPendingRequests returns the authenticated user's incoming follow
// requests, newest first. An unauthenticated caller gets an empty list.
func (h *RelationshipHandler) GetPendingRequests(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	requests := h.service.ListPendingRequests(currentUserID)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"requests": requests}})
}

// ApproveRequest accepts an incoming follow request
func (h *RelationshipHandler) ApproveRequest(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request ID")
	}

	if err := h.service.ApproveRequest(c.Request().Context(), currentUserID, uint(requestID)); err != nil {
		return relationshipError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// RejectRequest declines an incoming follow request
func (h *RelationshipHandler) RejectRequest(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request ID")
	}

	if err := h.service.RejectRequest(currentUserID, uint(requestID)); err != nil {
		return relationshipError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetFollowers lists a user's approved followers, gated on visibility
func (h *RelationshipHandler) GetFollowers(c echo.Context) error {
	return h.listConnections(c, h.service.GetFollowers)
}

// GetFollowing lists the users a user follows, gated on visibility
func (h *RelationshipHandler) GetFollowing(c echo.Context) error {
	return h.listConnections(c, h.service.GetFollowing)
}

// RemoveFollower removes another user from the caller's followers
func (h *RelationshipHandler) RemoveFollower(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	followerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if err := h.service.RemoveFollower(currentUserID, uint(followerID)); err != nil {
		return relationshipError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *RelationshipHandler) listConnections(c echo.Context, list func(uint) ([]models.User, error)) error {
	currentUserID := getUserIDFromContext(c)
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if !h.canViewConnections(currentUserID, uint(targetID)) {
		return echo.NewHTTPError(http.StatusForbidden, "This account is private")
	}

	users, err := list(uint(targetID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	summaries := make([]models.UserCompact, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, u.ToCompact())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"users": summaries}})
}

// canViewConnections applies the privacy gate: the owner always may; for a
// private account anyone else needs an approved follow.
func (h *RelationshipHandler) canViewConnections(viewerID, targetID uint) bool {
	if viewerID == targetID {
		return true
	}
	target, err := h.userRepository.GetUserByID(targetID)
	if err != nil {
		return false
	}
	if !target.IsPrivate {
		return true
	}
	return h.service.IsFollowing(viewerID, targetID)
}

// relationshipError maps service error kinds to HTTP responses
func relationshipError(err error) error {
	switch {
	case errors.Is(err, relationships.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, relationships.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, relationships.ErrBlocked), errors.Is(err, relationships.ErrNotAllowed):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
