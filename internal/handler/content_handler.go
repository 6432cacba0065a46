package handler

import (
	"strconv"

	"lingua-tutor/internal/domain"
	"lingua-tutor/internal/middleware"
	"lingua-tutor/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ContentHandler serves the caller's words, grammar and lesson index.
type ContentHandler struct {
	contentService service.ContentService
}

// NewContentHandler creates a new ContentHandler instance
func NewContentHandler(contentService service.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

// GetWords handles GET /api/words?lesson=N
func (h *ContentHandler) GetWords(c *fiber.Ctx) error {
	studentID, _ := c.Locals(middleware.StudentIDKey).(string)
	lesson, err := lessonQuery(c)
	if err != nil {
		return err
	}
	words, err := h.contentService.GetWords(c.Context(), studentID, lesson)
	if err != nil {
		return err
	}
	return c.JSON(words)
}

// GetGrammar handles GET /api/grammar?lesson=N
func (h *ContentHandler) GetGrammar(c *fiber.Ctx) error {
	studentID, _ := c.Locals(middleware.StudentIDKey).(string)
	lesson, err := lessonQuery(c)
	if err != nil {
		return err
	}
	grammar, err := h.contentService.GetGrammar(c.Context(), studentID, lesson)
	if err != nil {
		return err
	}
	return c.JSON(grammar)
}

// GetLessons handles GET /api/lessons
func (h *ContentHandler) GetLessons(c *fiber.Ctx) error {
	studentID, _ := c.Locals(middleware.StudentIDKey).(string)
	lessons, err := h.contentService.GetLessons(c.Context(), studentID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"lessons": lessons})
}

func lessonQuery(c *fiber.Ctx) (*int, error) {
	lessonStr := c.Query("lesson")
	if lessonStr == "" {
		return nil, nil
	}
	lesson, err := strconv.Atoi(lessonStr)
	if err != nil {
		return nil, domain.NewInvalidInputError("lessonは整数で指定してください")
	}
	return &lesson, nil
}
