package handler

import (
	"github.com/gofiber/fiber/v2"

	"donorlink/internal/domain"
	"donorlink/internal/middleware"
	"donorlink/internal/service/user"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	profile, err := h.userService.GetByID(c.Context(), userID)
	if err != nil {
		if err == user.ErrUserNotFound {
			return middleware.NotFound("User not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var input domain.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	profile, err := h.userService.UpdateProfile(c.Context(), userID, input)
	if err != nil {
		if err == user.ErrInvalidBloodType {
			return middleware.BadRequest("Invalid blood type")
		}
		if err == user.ErrUserNotFound {
			return middleware.NotFound("User not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}

func (h *UserHandler) SaveFCMToken(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var input struct {
		Token string `json:"token" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil || input.Token == "" {
		return middleware.BadRequest("Token is required")
	}

	if err := h.userService.SaveFCMToken(c.Context(), userID, input.Token); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *UserHandler) UploadAvatar(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return middleware.BadRequest("Avatar file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return middleware.BadRequest("Failed to read avatar file")
	}
	defer file.Close()

	avatarURL, err := h.userService.UploadAvatar(c.Context(), userID, fileHeader.Size, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		if err == user.ErrStorageDisabled {
			return middleware.NewError(fiber.StatusServiceUnavailable, "Avatar storage is not available")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"avatar_url": avatarURL,
	})
}

func (h *UserHandler) NearbyDonors(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	radiusKm := c.QueryFloat("radius_km", 25)
	if radiusKm <= 0 {
		return middleware.BadRequest("radius_km must be positive")
	}

	var bloodType *string
	if bt := c.Query("blood_type"); bt != "" {
		bloodType = &bt
	}

	donors, err := h.userService.NearbyDonors(c.Context(), userID, radiusKm, bloodType)
	if err != nil {
		if err == user.ErrLocationNotSet {
			return middleware.NewError(fiber.StatusUnprocessableEntity, "Set your profile location first")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"donors": donors,
	})
}
