package handlers

import (
	"net/http"
	"strconv"

	"github.com/devarchon/vibely/backend/internal/models"
	"github.com/devarchon/vibely/backend/internal/relationships"
	"github.com/devarchon/vibely/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// PostHandler handles post-related HTTP requests. Reads are gated on the
// author's privacy: a private author's posts are visible only to approved
// followers and to the author.
type PostHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
	service        *relationships.Service
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository, service *relationships.Service) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		userRepository: userRepo,
		service:        service,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.GET("/users/:id/posts", h.GetUserPosts)
}

// CreatePost creates a new post for the authenticated user
func (h *PostHandler) CreatePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post := &models.Post{
		AuthorID:  currentUserID,
		Caption:   req.Caption,
		ImageURLs: req.ImageURLs,
	}

	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, post)
}

// GetPost retrieves a single post, subject to the author's privacy
func (h *PostHandler) GetPost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == repositories.ErrPostNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if !h.canViewAuthor(currentUserID, post.AuthorID) {
		// Present as absent rather than disclosing the post exists
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	return c.JSON(http.StatusOK, post)
}

// GetUserPosts lists a user's posts, newest first, subject to privacy
func (h *PostHandler) GetUserPosts(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	authorID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if !h.canViewAuthor(currentUserID, uint(authorID)) {
		return echo.NewHTTPError(http.StatusForbidden, "This account is private")
	}

	skip, _ := strconv.ParseInt(c.QueryParam("skip"), 10, 64)
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	if limit < 1 || limit > 50 {
		limit = 20
	}

	posts, err := h.postRepository.GetPostsByAuthor(c.Request().Context(), uint(authorID), skip, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"posts": posts}})
}

// DeletePost deletes the authenticated user's own post
func (h *PostHandler) DeletePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if err := h.postRepository.DeletePost(c.Request().Context(), c.Param("id"), currentUserID); err != nil {
		if err == repositories.ErrPostNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// canViewAuthor is the content-visibility predicate: the author always
// may; a private author's content requires an approved follow.
func (h *PostHandler) canViewAuthor(viewerID, authorID uint) bool {
	if viewerID == authorID {
		return true
	}
	author, err := h.userRepository.GetUserByID(authorID)
	if err != nil {
		return false
	}
	if !author.IsPrivate {
		return true
	}
	return h.service.IsFollowing(viewerID, authorID)
}
