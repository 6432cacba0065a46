package handler

import (
	"lingua-tutor/internal/domain"
	"lingua-tutor/internal/dto"
	"lingua-tutor/internal/service"
	"lingua-tutor/internal/util"

	"github.com/gofiber/fiber/v2"
)

// ScoreHandler handles scoring submissions and result polling.
type ScoreHandler struct {
	scoringService service.ScoringService
}

// NewScoreHandler creates a new ScoreHandler instance
func NewScoreHandler(scoringService service.ScoringService) *ScoreHandler {
	return &ScoreHandler{scoringService: scoringService}
}

// ScoreSorting handles POST /api/score/sorting
func (h *ScoreHandler) ScoreSorting(c *fiber.Ctx) error {
	var req dto.SortingSubmission
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("リクエストの形式が正しくありません")
	}
	if err := util.ValidateStruct(req); err != nil {
		return err
	}
	return c.JSON(h.scoringService.ScoreSorting(c.Context(), req))
}

// ScoreHandwriting handles POST /api/score/handwriting
func (h *ScoreHandler) ScoreHandwriting(c *fiber.Ctx) error {
	var req dto.HandwritingSubmission
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("リクエストの形式が正しくありません")
	}
	if err := util.ValidateStruct(req); err != nil {
		return err
	}
	resp, err := h.scoringService.SubmitHandwriting(c.Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ScoreWriting handles POST /api/score/writing
func (h *ScoreHandler) ScoreWriting(c *fiber.Ctx) error {
	var req dto.WritingSubmission
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("リクエストの形式が正しくありません")
	}
	if err := util.ValidateStruct(req); err != nil {
		return err
	}
	resp, err := h.scoringService.SubmitWriting(c.Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetResult handles GET /api/score/result/:task_id. Unknown ids are not
// errors; pollers just see a not_found status and give up.
func (h *ScoreHandler) GetResult(c *fiber.Ctx) error {
	taskID := c.Params("task_id")
	job, ok := h.scoringService.GetResult(c.Context(), taskID)
	if !ok {
		return c.JSON(fiber.Map{"status": "not_found"})
	}
	return c.JSON(job)
}
