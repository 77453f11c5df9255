package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/faikerkan/QuailtyHUB/internal/dto"
	"github.com/faikerkan/QuailtyHUB/internal/middleware"
	"github.com/faikerkan/QuailtyHUB/internal/service"
	"github.com/faikerkan/QuailtyHUB/internal/utils"
)

// CallHandler wires call record and call queue HTTP routes.
type CallHandler struct {
	service service.CallService
	logger  zerolog.Logger
}

// NewCallHandler constructs the handler.
func NewCallHandler(service service.CallService, logger zerolog.Logger) *CallHandler {
	return &CallHandler{
		service: service,
		logger:  logger.With().Str("component", "call_handler").Logger(),
	}
}

// Register attaches call endpoints to the router group.
func (h *CallHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Post("", h.upload)
}

// RegisterQueues attaches call queue endpoints to the router group.
func (h *CallHandler) RegisterQueues(router fiber.Router) {
	router.Get("", h.listQueues)
	router.Post("", h.createQueue)
}

func (h *CallHandler) list(c *fiber.Ctx) error {
	agentID, err := parseQueryUint(c, "agent_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	queueID, err := parseQueryUint(c, "call_queue_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	calls, err := h.service.List(c.Context(), dto.CallFilter{AgentID: agentID, CallQueueID: queueID}, middleware.ActorFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "calls retrieved", calls)
}

func (h *CallHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	call, err := h.service.Get(c.Context(), id, middleware.ActorFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "call retrieved", call)
}

func (h *CallHandler) upload(c *fiber.Ctx) error {
	payload := dto.CallUploadRequest{
		PhoneNumber: c.FormValue("phone_number"),
		ExternalID:  c.FormValue("external_id"),
	}

	if agentID, err := strconv.ParseUint(c.FormValue("agent_id"), 10, 64); err == nil {
		payload.AgentID = uint(agentID)
	}
	if queueID, err := strconv.ParseUint(c.FormValue("call_queue_id"), 10, 64); err == nil {
		payload.CallQueueID = uint(queueID)
	}
	if callDate, err := time.Parse(time.RFC3339, c.FormValue("call_date")); err == nil {
		payload.CallDate = callDate
	}

	file, err := c.FormFile("audio")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "audio file is required")
	}

	call, err := h.service.Upload(c.Context(), payload, file, middleware.ActorFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendCreated(c, "call uploaded", call)
}

func (h *CallHandler) listQueues(c *fiber.Ctx) error {
	queues, err := h.service.ListQueues(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "call queues retrieved", queues)
}

func (h *CallHandler) createQueue(c *fiber.Ctx) error {
	var payload dto.CallQueueRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	queue, err := h.service.CreateQueue(c.Context(), payload, middleware.ActorFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendCreated(c, "call queue created", queue)
}

func (h *CallHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrCallNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "call not found")
	case errors.Is(err, service.ErrCallQueueNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "call queue not found")
	case errors.Is(err, service.ErrUserNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "agent not found")
	case errors.Is(err, service.ErrUnsupportedAudioType):
		return utils.SendError(c, fiber.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, service.ErrForbidden):
		return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
