package helper

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// AppError dipakai layer service supaya controller cukup meneruskan ke JsonFromError.
type AppError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// Is: dua AppError dianggap sama kalau status & code sama
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Status == t.Status && e.Code == t.Code
}

func newAppError(status int, code, msg string) *AppError {
	return &AppError{Status: status, Code: code, Message: msg}
}

func ErrValidation(msg string) *AppError {
	return newAppError(fiber.StatusBadRequest, "VALIDATION_ERROR", msg)
}

func ErrBadRequest(msg string) *AppError {
	return newAppError(fiber.StatusBadRequest, "BAD_REQUEST", msg)
}

func ErrUnauthorized(msg string) *AppError {
	return newAppError(fiber.StatusUnauthorized, "UNAUTHORIZED", msg)
}

func ErrForbidden(msg string) *AppError {
	return newAppError(fiber.StatusForbidden, "FORBIDDEN", msg)
}

func ErrNotFound(msg string) *AppError {
	return newAppError(fiber.StatusNotFound, "NOT_FOUND", msg)
}

func ErrConflict(msg string) *AppError {
	return newAppError(fiber.StatusConflict, "CONFLICT", msg)
}

func ErrInternal(msg string, cause error) *AppError {
	e := newAppError(fiber.StatusInternalServerError, "INTERNAL_ERROR", msg)
	e.Err = cause
	return e
}

// ExposeInternalErrors: true → pesan error asli ikut dikirim di response 5xx
var ExposeInternalErrors = false

// StatusOf: status HTTP dari error apapun (500 untuk yang tidak dikenal)
func StatusOf(err error) int {
	if err == nil {
		return fiber.StatusOK
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Status
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

// JsonFromError memetakan error ke envelope JSON standar.
func JsonFromError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return JsonValidationError(c, ValidationErrorsToMap(ve))
	}

	var ae *AppError
	if errors.As(err, &ae) {
		if ae.Status >= 500 {
			log.Error().Err(ae.Err).Str("path", c.Path()).Msg(ae.Message)
			msg := ae.Message
			if ExposeInternalErrors && ae.Err != nil {
				msg = ae.Error()
			}
			return c.Status(ae.Status).JSON(ErrorResponse{Success: false, Message: msg, ErrorCode: ae.Code})
		}
		return c.Status(ae.Status).JSON(ErrorResponse{Success: false, Message: ae.Message, ErrorCode: ae.Code})
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}

	log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
	if ExposeInternalErrors {
		return JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
}

// FiberErrorHandler: dipasang di fiber.Config.ErrorHandler
func FiberErrorHandler(c *fiber.Ctx, err error) error {
	return JsonFromError(c, err)
}
