package handler

import (
	"strconv"

	"github.com/Lanziify/seps-web-server/internal/dto"
	"github.com/Lanziify/seps-web-server/internal/middleware"
	"github.com/Lanziify/seps-web-server/internal/service"
	"github.com/Lanziify/seps-web-server/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type PredictionHandler struct {
	predictionService service.PredictionService
	validator         *validation.Validator
}

func NewPredictionHandler(predictionService service.PredictionService, validator *validation.Validator) *PredictionHandler {
	return &PredictionHandler{
		predictionService: predictionService,
		validator:         validator,
	}
}

func parsePagination(c *fiber.Ctx) dto.Pagination {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	return dto.Pagination{Page: page, Limit: limit}
}

// actingUserID reads the authenticated user id set by the auth middleware,
// or writes the 401 response and returns ok=false.
func actingUserID(c *fiber.Ctx) (string, bool, error) {
	userID, ok := c.Locals(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		return "", false, c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_USER_CONTEXT", Message: "User ID not found in context", Status: fiber.StatusUnauthorized,
		})
	}
	return userID, true, nil
}

// Upload stores a student evaluation record.
// @Summary Upload an evaluation
// @Description Stores one fixed-schema evaluation; each student may appear only once.
// @Tags dataset
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.UploadRequest true "Evaluation payload"
// @Success 200 {object} dto.UploadResponse
// @Failure 400 {object} middleware.ErrorResponse "Validation failed or duplicate student"
// @Router /upload [post]
func (h *PredictionHandler) Upload(c *fiber.Ctx) error {
	var req dto.UploadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_REQUEST_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}

	if errs := h.validator.ValidateUploadRequest(req); len(errs) > 0 {
		return errs
	}

	resp, err := h.predictionService.UploadDataset(c.Context(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// ListDataset pages through uploaded evaluations, newest first.
// @Summary List dataset records
// @Tags dataset
// @Security ApiKeyAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} dto.DatasetListResponse
// @Router /dataset [get]
func (h *PredictionHandler) ListDataset(c *fiber.Ctx) error {
	resp, err := h.predictionService.ListDataset(c.Context(), parsePagination(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Predict classifies a stored evaluation exactly once.
// @Summary Predict employability for a dataset record
// @Description Runs the classifier against a stored evaluation and persists the result.
// @Tags predictions
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.PredictRequest true "Dataset reference"
// @Success 200 {object} dto.PredictionResponse
// @Failure 400 {object} middleware.ErrorResponse "Dataset already predicted"
// @Failure 404 {object} middleware.ErrorResponse "Dataset not found"
// @Router /predict [post]
func (h *PredictionHandler) Predict(c *fiber.Ctx) error {
	userID, ok, err := actingUserID(c)
	if !ok {
		return err
	}

	var req dto.PredictRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_REQUEST_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}

	resp, err := h.predictionService.PredictForDataset(c.Context(), req.DatasetID, userID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// UploadAndPredict stores an evaluation and classifies it atomically.
// @Summary Upload an evaluation and predict in one call
// @Description Stores the evaluation and its prediction in a single transaction; a failed prediction rolls back the upload.
// @Tags predictions
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.UploadRequest true "Evaluation payload"
// @Success 200 {object} dto.PredictionResponse
// @Failure 400 {object} middleware.ErrorResponse "Validation failed or duplicate student"
// @Router /upload_predict [post]
func (h *PredictionHandler) UploadAndPredict(c *fiber.Ctx) error {
	userID, ok, err := actingUserID(c)
	if !ok {
		return err
	}

	var req dto.UploadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_REQUEST_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}

	if errs := h.validator.ValidateUploadRequest(req); len(errs) > 0 {
		return errs
	}

	resp, err := h.predictionService.UploadAndPredict(c.Context(), req, userID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// ListPredictions pages through persisted predictions.
// @Summary List predictions
// @Tags predictions
// @Security ApiKeyAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} dto.PredictionListResponse
// @Router /predictions [get]
func (h *PredictionHandler) ListPredictions(c *fiber.Ctx) error {
	resp, err := h.predictionService.ListPredictions(c.Context(), parsePagination(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
