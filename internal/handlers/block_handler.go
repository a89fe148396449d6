package handlers

import (
	"net/http"
	"strconv"

	"github.com/devarchon/vibely/backend/internal/models"
	"github.com/devarchon/vibely/backend/internal/relationships"
	"github.com/labstack/echo/v4"
)

// BlockHandler handles block/unblock HTTP requests
type BlockHandler struct {
	service *relationships.Service
}

// NewBlockHandler creates a new BlockHandler
func NewBlockHandler(service *relationships.Service) *BlockHandler {
	return &BlockHandler{service: service}
}

// RegisterBlockRoutes registers block-related routes
func (h *BlockHandler) RegisterBlockRoutes(g *echo.Group) {
	g.POST("/users/:id/block", h.BlockUser)
	g.DELETE("/users/:id/block", h.UnblockUser)
	g.GET("/blocks", h.GetBlockedUsers)
}

// BlockUser blocks a user. Any follow relationship between the two users
// is removed as a side effect.
func (h *BlockHandler) BlockUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if currentUserID == uint(targetID) {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot block yourself")
	}

	if err := h.service.Block(currentUserID, uint(targetID)); err != nil {
		return relationshipError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"blocked": true}})
}

// UnblockUser removes a block
func (h *BlockHandler) UnblockUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if err := h.service.Unblock(currentUserID, uint(targetID)); err != nil {
		return relationshipError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"blocked": false}})
}

// GetBlockedUsers lists the users the caller has blocked
func (h *BlockHandler) GetBlockedUsers(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	users, err := h.service.GetBlockedUsers(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	summaries := make([]models.UserCompact, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, u.ToCompact())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"users": summaries}})
}
