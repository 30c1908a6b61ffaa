package handlers

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// FlashCookie carries a one-shot message to the next page view.
const FlashCookie = "lifeshare_flash"

// Flash categories.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// setFlash queues a message for the next page view.
func setFlash(c *fiber.Ctx, category, message string) {
	c.Cookie(&fiber.Cookie{
		Name:     FlashCookie,
		Value:    url.QueryEscape(category + "|" + message),
		Path:     "/",
		Expires:  time.Now().Add(time.Minute),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// popFlash returns the queued message, if any, and clears it.
func popFlash(c *fiber.Ctx) fiber.Map {
	raw := c.Cookies(FlashCookie)
	if raw == "" {
		return nil
	}
	c.ClearCookie(FlashCookie)

	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return nil
	}
	category, message, ok := strings.Cut(decoded, "|")
	if !ok {
		return nil
	}
	return fiber.Map{"category": category, "message": message}
}

// parseID reads a positive integer route parameter.
func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}

// redirectBack returns form callers to the page they came from.
func redirectBack(c *fiber.Ctx) error {
	return c.RedirectBack("/home")
}
