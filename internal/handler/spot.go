package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/spotforge/api/internal/model"
	"github.com/spotforge/api/internal/service"
	"github.com/spotforge/api/pkg/response"
)

type SpotHandler struct {
	service   *service.SpotService
	validator *validator.Validate
}

func NewSpotHandler(svc *service.SpotService, v *validator.Validate) *SpotHandler {
	return &SpotHandler{
		service:   svc,
		validator: v,
	}
}

// Start handles POST /api/spots/start
// @Summary      Start spot production job
// @Description  Start an asynchronous production job for an ad spot brief
// @Tags         Spots
// @Accept       json
// @Produce      json
// @Param        request body model.SpotStartRequest true "Spot start request"
// @Success      202 {object} model.SpotStartResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      429 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/spots/start [post]
func (h *SpotHandler) Start(c *fiber.Ctx) error {
	var req model.SpotStartRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}

	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	result, err := h.service.StartSpot(c.Context(), &req)
	if err != nil {
		return response.ServiceError(c, err.Error())
	}

	return response.Accepted(c, result)
}

// Status handles GET /api/spots/status/:jobId
// @Summary      Get spot job status
// @Description  Get the current status and progress of a spot production job
// @Tags         Spots
// @Produce      json
// @Param        jobId path string true "Job ID"
// @Success      200 {object} model.SpotStatusResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/spots/status/{jobId} [get]
func (h *SpotHandler) Status(c *fiber.Ctx) error {
	jobID := c.Params("jobId")
	if jobID == "" {
		return response.ValidationError(c, "Job ID is required", nil)
	}

	result, err := h.service.GetStatus(c.Context(), jobID)
	if err != nil {
		if err.Error() == "job not found" {
			return response.NotFound(c, "Job not found")
		}
		return response.ServiceError(c, err.Error())
	}

	return response.OK(c, result)
}

// Result handles GET /api/spots/result/:jobId
// @Summary      Get spot job result
// @Description  Get the finished production plan, prompt and timing of a completed job
// @Tags         Spots
// @Produce      json
// @Param        jobId path string true "Job ID"
// @Success      200 {object} model.SpotResultResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/spots/result/{jobId} [get]
func (h *SpotHandler) Result(c *fiber.Ctx) error {
	jobID := c.Params("jobId")
	if jobID == "" {
		return response.ValidationError(c, "Job ID is required", nil)
	}

	result, err := h.service.GetResult(c.Context(), jobID)
	if err != nil {
		if err.Error() == "job not found" {
			return response.NotFound(c, "Job not found")
		}
		if err.Error() == "job not completed" {
			return response.ValidationError(c, "Job not completed yet", nil)
		}
		return response.ServiceError(c, err.Error())
	}

	return response.OK(c, result)
}

// Cancel handles POST /api/spots/cancel/:jobId
// @Summary      Cancel spot job
// @Description  Cancel a running or queued spot production job
// @Tags         Spots
// @Produce      json
// @Param        jobId path string true "Job ID"
// @Success      200 {object} model.SpotCancelResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/spots/cancel/{jobId} [post]
func (h *SpotHandler) Cancel(c *fiber.Ctx) error {
	jobID := c.Params("jobId")
	if jobID == "" {
		return response.ValidationError(c, "Job ID is required", nil)
	}

	result, err := h.service.CancelSpot(c.Context(), jobID)
	if err != nil {
		if err.Error() == "job not found" {
			return response.NotFound(c, "Job not found")
		}
		if err.Error() == "job already completed" {
			return response.ValidationError(c, "Job already completed", nil)
		}
		return response.ServiceError(c, err.Error())
	}

	return response.OK(c, result)
}

// formatValidationErrors formats validator errors for response
func formatValidationErrors(err error) interface{} {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		errors := make(map[string]string)
		for _, e := range validationErrors {
			errors[e.Field()] = e.Tag()
		}
		return errors
	}
	return nil
}
