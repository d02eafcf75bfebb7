// Package responses writes the JSON envelopes shared by every endpoint.
package responses

import (
	"errors"

	"inventory/internal/logger"
	pkgerrors "inventory/pkg/errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorBody is the JSON shape of every failed request.
type ErrorBody struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// WriteError maps err to its HTTP status and writes the error envelope.
// Internal errors are logged and never expose their cause.
func WriteError(c *fiber.Ctx, log *logger.Logger, err error) error {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}
	meta := pkgerrors.MetadataFor(typed.Code())

	body := ErrorBody{Message: meta.PublicMessage, Code: string(typed.Code())}
	if typed.Code() != pkgerrors.CodeInternal && typed.Message() != "" {
		body.Message = typed.Message()
	}
	if meta.DetailsAllowed {
		body.Errors = typed.Details()
	}

	if log != nil && typed.Code() == pkgerrors.CodeInternal {
		log.Error(c.UserContext(), "request failed", err)
	}

	return c.Status(meta.HTTPStatus).JSON(body)
}

// BadRequest reports an unparsable request body.
func BadRequest(c *fiber.Ctx, err error) error {
	return WriteError(c, nil, pkgerrors.Field("body", "Invalid request body: "+err.Error()))
}
