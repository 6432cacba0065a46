package handler

import (
	"io"
	"strconv"

	"lingua-tutor/internal/domain"
	"lingua-tutor/internal/dto"
	"lingua-tutor/internal/middleware"
	"lingua-tutor/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles user administration and textbook ingestion.
type AdminHandler struct {
	userService   service.UserService
	ingestService service.IngestService
}

// NewAdminHandler creates a new AdminHandler instance
func NewAdminHandler(userService service.UserService, ingestService service.IngestService) *AdminHandler {
	return &AdminHandler{userService: userService, ingestService: ingestService}
}

// ListUsers handles GET /api/admin/users
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	resp, err := h.userService.ListUsers(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// UpdateUser handles PUT /api/admin/users/:student_id
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	targetID := c.Params("student_id")
	adminID, _ := c.Locals(middleware.StudentIDKey).(string)

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("リクエストの形式が正しくありません")
	}

	resp, err := h.userService.UpdateUser(c.Context(), adminID, targetID, req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// DeleteUser handles DELETE /api/admin/users/:student_id
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	targetID := c.Params("student_id")
	adminID, _ := c.Locals(middleware.StudentIDKey).(string)

	resp, err := h.userService.DeleteUser(c.Context(), adminID, targetID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// UploadTextbook handles POST /api/admin/upload-textbook. The form carries
// the page image plus the lesson number and the extraction type.
func (h *AdminHandler) UploadTextbook(c *fiber.Ctx) error {
	studentID, _ := c.Locals(middleware.StudentIDKey).(string)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return domain.NewInvalidInputError("画像ファイルが必要です")
	}

	lesson := 1
	if lessonStr := c.FormValue("lesson"); lessonStr != "" {
		parsed, err := strconv.Atoi(lessonStr)
		if err != nil || parsed < 1 {
			return domain.NewInvalidInputError("lessonは正の整数で指定してください")
		}
		lesson = parsed
	}
	kind := c.FormValue("type", service.IngestKindWord)

	file, err := fileHeader.Open()
	if err != nil {
		return domain.NewInvalidInputError("画像ファイルを開けません")
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		return domain.NewInternalError("failed to read uploaded file", err)
	}

	resp, err := h.ingestService.IngestTextbook(c.Context(), image, lesson, kind, studentID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
