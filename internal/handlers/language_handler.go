package handlers

import (
	"fmt"
	"log"

	"luxio/internal/services"

	"github.com/gofiber/fiber/v2"
)

// LanguageHandler handles HTTP requests for the multi-language text lookup.
type LanguageHandler struct {
	languageService *services.LanguageService
}

// NewLanguageHandler creates a new LanguageHandler.
func NewLanguageHandler(languageService *services.LanguageService) *LanguageHandler {
	return &LanguageHandler{
		languageService: languageService,
	}
}

// RegisterRoutes registers the language routes with the Fiber app.
func (h *LanguageHandler) RegisterRoutes(router fiber.Router) {
	languageRoutes := router.Group("/language")
	languageRoutes.Get("/", h.HandleGetLanguage)
	languageRoutes.Put("/", h.HandleSetLanguage)
	router.Get("/translations/:lang", h.HandleGetTranslations)
}

// HandleGetLanguage resolves the visitor's language: stored preference, then
// Accept-Language, then the CF-IPCountry header, then the default.
func (h *LanguageHandler) HandleGetLanguage(c *fiber.Ctx) error {
	lang := h.languageService.ResolveLanguage(c.Get("Accept-Language"), c.Get("CF-IPCountry"))
	return c.JSON(fiber.Map{
		"language":  lang,
		"supported": services.SupportedLanguages,
	})
}

// SetLanguageRequest represents the request body for setting the language.
type SetLanguageRequest struct {
	Language string `json:"language"`
}

// HandleSetLanguage persists the visitor's language preference.
func (h *LanguageHandler) HandleSetLanguage(c *fiber.Ctx) error {
	var req SetLanguageRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing language request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.languageService.SetLanguage(req.Language); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": fmt.Sprintf("Unsupported language: %s", req.Language),
		})
	}

	return c.JSON(fiber.Map{
		"message":  "Language updated successfully",
		"language": req.Language,
	})
}

// HandleGetTranslations returns the full text table for one language.
func (h *LanguageHandler) HandleGetTranslations(c *fiber.Ctx) error {
	lang := c.Params("lang")
	if !services.IsSupported(lang) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Unsupported language: %s", lang),
		})
	}
	return c.JSON(h.languageService.Table(lang))
}
