package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"donorlink/internal/domain"
	"donorlink/internal/middleware"
	"donorlink/internal/service/request"
)

type RequestHandler struct {
	requestService request.Service
}

func NewRequestHandler(requestService request.Service) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

func (h *RequestHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var input domain.CreateRequestInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	req, err := h.requestService.Create(c.Context(), userID, input)
	if err != nil {
		if err == request.ErrInvalidBloodType {
			return middleware.BadRequest("Invalid blood type")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(req)
}

func (h *RequestHandler) Mine(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	requests, err := h.requestService.ListByRequester(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"requests": requests,
	})
}

func (h *RequestHandler) Nearby(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	matches, err := h.requestService.NearbyForDonor(c.Context(), userID)
	if err != nil {
		if err == request.ErrLocationNotSet {
			return middleware.NewError(fiber.StatusUnprocessableEntity, "Set your profile location first")
		}
		if err == request.ErrDonorNotFound {
			return middleware.NotFound("User not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"requests": matches,
	})
}

func (h *RequestHandler) Respond(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	var input struct {
		Decision domain.ResponseDecision `json:"decision" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	resp, err := h.requestService.Respond(c.Context(), requestID, userID, input.Decision)
	if err != nil {
		if err == request.ErrInvalidDecision {
			return middleware.BadRequest("Decision must be accepted or rejected")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *RequestHandler) ListResponses(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	responses, err := h.requestService.ListResponses(c.Context(), requestID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"responses": responses,
	})
}

func (h *RequestHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	if err := h.requestService.Delete(c.Context(), requestID, userID); err != nil {
		if err == request.ErrRequestNotFound {
			return middleware.NotFound("Request not found")
		}
		if err == request.ErrNotRequestOwner {
			return middleware.Forbidden("Only the requester may delete this request")
		}
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}
