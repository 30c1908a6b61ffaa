package handlers

import (
	"net/url"

	"lifeshare/internal/middleware"
	"lifeshare/internal/services"
	"lifeshare/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// StoryHandler handles HTTP requests for stories.
type StoryHandler struct {
	service *services.StoryService
}

// NewStoryHandler creates a new StoryHandler.
func NewStoryHandler(service *services.StoryService) *StoryHandler {
	return &StoryHandler{
		service: service,
	}
}

// RegisterRoutes registers the story routes with the Fiber app.
func (h *StoryHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/category/:category", middleware.RequireSession(), h.HandleCategory)
	router.Post("/category/:category/add", middleware.RequireSession(), h.HandleAddStory)
	router.Post("/edit/:storyId", middleware.RequireSession(), h.HandleEditStory)
	router.Post("/delete/:storyId", middleware.RequireSession(), h.HandleDeleteStory)
	router.Get("/trending", h.HandleTrending)
}

// StoryForm is the body of the add and edit story forms.
type StoryForm struct {
	Content string `form:"story_content" json:"story_content"`
}

// HandleCategory lists a category's stories with likes and comments.
func (h *StoryHandler) HandleCategory(c *fiber.Ctx) error {
	category := c.Params("category")
	stories, err := h.service.ListByCategory(c.UserContext(), category)
	if err != nil {
		logger.Log.WithError(err).WithField("category", category).Error("Error listing stories")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not retrieve stories",
		})
	}

	return c.JSON(fiber.Map{
		"page":     "category",
		"category": category,
		"user":     middleware.CurrentUsername(c),
		"stories":  stories,
		"flash":    popFlash(c),
	})
}

// HandleAddStory posts a new story to the category.
func (h *StoryHandler) HandleAddStory(c *fiber.Ctx) error {
	category := c.Params("category")
	target := "/category/" + url.PathEscape(category)

	var form StoryForm
	if err := c.BodyParser(&form); err != nil {
		setFlash(c, FlashError, "Invalid story")
		return c.Redirect(target)
	}

	if _, err := h.service.AddStory(c.UserContext(), middleware.CurrentUsername(c), category, form.Content); err != nil {
		logger.Log.WithError(err).WithField("category", category).Error("Error adding story")
		setFlash(c, FlashError, "Could not add story")
		return c.Redirect(target)
	}

	setFlash(c, FlashSuccess, "Story added successfully")
	return c.Redirect(target)
}

// HandleEditStory replaces the content of one of the user's stories.
func (h *StoryHandler) HandleEditStory(c *fiber.Ctx) error {
	storyID, err := parseID(c, "storyId")
	if err != nil {
		setFlash(c, FlashError, "Invalid story")
		return redirectBack(c)
	}

	var form StoryForm
	if err := c.BodyParser(&form); err != nil {
		setFlash(c, FlashError, "Invalid story")
		return redirectBack(c)
	}

	if err := h.service.EditStory(c.UserContext(), middleware.CurrentUsername(c), storyID, form.Content); err != nil {
		logger.Log.WithError(err).WithField("story_id", storyID).Error("Error editing story")
		setFlash(c, FlashError, "Could not update story")
		return redirectBack(c)
	}

	setFlash(c, FlashSuccess, "Story updated")
	return redirectBack(c)
}

// HandleDeleteStory deletes one of the user's stories.
func (h *StoryHandler) HandleDeleteStory(c *fiber.Ctx) error {
	storyID, err := parseID(c, "storyId")
	if err != nil {
		setFlash(c, FlashError, "Invalid story")
		return redirectBack(c)
	}

	if err := h.service.DeleteStory(c.UserContext(), middleware.CurrentUsername(c), storyID); err != nil {
		logger.Log.WithError(err).WithFields(logrus.Fields{"story_id": storyID}).Error("Error deleting story")
		setFlash(c, FlashError, "Could not delete story")
		return redirectBack(c)
	}

	setFlash(c, FlashSuccess, "Story deleted")
	return redirectBack(c)
}

// HandleTrending lists the most liked stories.
func (h *StoryHandler) HandleTrending(c *fiber.Ctx) error {
	stories, err := h.service.Trending(c.UserContext())
	if err != nil {
		logger.Log.WithError(err).Error("Error loading trending stories")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not retrieve trending stories",
		})
	}

	return c.JSON(fiber.Map{
		"page":    "trending",
		"stories": stories,
	})
}
