package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Fiber turns an error kind into the *fiber.Error the app's ErrorHandler renders.
func Fiber(err error) error {
	var fe *fiber.Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &fe):
		return fe
	case errors.Is(err, ErrInvalidArgument):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrInsufficientStock), errors.Is(err, ErrInUse):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	default:
		// storage details stay in the log
		return fiber.NewError(fiber.StatusInternalServerError, "Unexpected storage error")
	}
}
