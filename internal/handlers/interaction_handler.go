package handlers

import (
	"lifeshare/internal/middleware"
	"lifeshare/internal/services"
	"lifeshare/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// InteractionHandler handles likes and comments.
type InteractionHandler struct {
	likeService    *services.LikeService
	commentService *services.CommentService
}

// NewInteractionHandler creates a new InteractionHandler.
func NewInteractionHandler(likeService *services.LikeService, commentService *services.CommentService) *InteractionHandler {
	return &InteractionHandler{
		likeService:    likeService,
		commentService: commentService,
	}
}

// RegisterRoutes registers the like and comment routes with the Fiber app.
func (h *InteractionHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/like/:storyId", middleware.RequireSessionJSON(), h.HandleToggleLike)
	router.Post("/add_comment/:storyId", middleware.RequireSessionJSON(), h.HandleAddComment)
	router.Post("/delete_comment/:commentId", middleware.RequireSession(), h.HandleDeleteComment)
}

// CommentForm is the body of the add comment request.
type CommentForm struct {
	Comment string `form:"comment" json:"comment"`
}

// HandleToggleLike likes or unlikes a story and returns the new state.
func (h *InteractionHandler) HandleToggleLike(c *fiber.Ctx) error {
	storyID, err := parseID(c, "storyId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := h.likeService.ToggleLike(c.UserContext(), middleware.CurrentUsername(c), storyID)
	if err != nil {
		logger.Log.WithError(err).WithField("story_id", storyID).Error("Error toggling like")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update like",
		})
	}
	return c.JSON(result)
}

// HandleAddComment adds a comment to a story and returns it.
func (h *InteractionHandler) HandleAddComment(c *fiber.Ctx) error {
	storyID, err := parseID(c, "storyId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var form CommentForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	comment, err := h.commentService.AddComment(c.UserContext(), middleware.CurrentUsername(c), storyID, form.Comment)
	if err != nil {
		logger.Log.WithError(err).WithField("story_id", storyID).Error("Error adding comment")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not add comment",
		})
	}

	return c.JSON(fiber.Map{
		"id":       comment.ID,
		"username": comment.Username,
		"comment":  comment.Comment,
	})
}

// HandleDeleteComment deletes one of the user's comments.
func (h *InteractionHandler) HandleDeleteComment(c *fiber.Ctx) error {
	commentID, err := parseID(c, "commentId")
	if err != nil {
		setFlash(c, FlashError, "Invalid comment")
		return redirectBack(c)
	}

	if err := h.commentService.DeleteComment(c.UserContext(), middleware.CurrentUsername(c), commentID); err != nil {
		logger.Log.WithError(err).WithField("comment_id", commentID).Error("Error deleting comment")
		setFlash(c, FlashError, "Could not delete comment")
		return redirectBack(c)
	}

	setFlash(c, FlashSuccess, "Comment deleted")
	return redirectBack(c)
}
