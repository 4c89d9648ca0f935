package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/spotforge/api/internal/model"
	"github.com/spotforge/api/internal/service"
	"github.com/spotforge/api/pkg/response"
)

type ComposeHandler struct {
	service   *service.ComposeService
	validator *validator.Validate
}

func NewComposeHandler(svc *service.ComposeService, v *validator.Validate) *ComposeHandler {
	return &ComposeHandler{
		service:   svc,
		validator: v,
	}
}

// Plan handles POST /api/compose/plan
// @Summary      Compose a production plan
// @Description  Parse raw model output into a validated plan with bar-exact timing and a provider prompt
// @Tags         Compose
// @Accept       json
// @Produce      json
// @Param        request body model.ComposeRequest true "Compose request"
// @Success      200 {object} model.ComposeResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      422 {object} response.ErrorResponse
// @Failure      429 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/compose/plan [post]
func (h *ComposeHandler) Plan(c *fiber.Ctx) error {
	var req model.ComposeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}

	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	result, err := h.service.Compose(service.ComposeInput{
		RawOutput:     req.RawOutput,
		VoiceSeconds:  req.VoiceSeconds,
		CulturalStyle: req.CulturalStyle,
	})
	if err != nil {
		// Unparseable input falls back inside the service, so errors
		// here mean the spot cannot fit the provider's budgets.
		return response.Error(c, fiber.StatusUnprocessableEntity, response.CodeBudgetOverflow, err.Error(), nil)
	}

	return response.OK(c, result)
}
