// Package character serves the character CRUD API
package character

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"

	"github.com/totegamma/purse/core"
)

var tracer = otel.Tracer("character")

// Handler is the interface for handling HTTP requests
type Handler interface {
	List(c echo.Context) error
	Get(c echo.Context) error
	Create(c echo.Context) error
	Update(c echo.Context) error
	Delete(c echo.Context) error
}

type handler struct {
	service core.CharacterService
}

// NewHandler creates a new handler
func NewHandler(service core.CharacterService) Handler {
	return &handler{service: service}
}

// errorResponse maps a service error onto the status code and message sent to the client.
// fallback is used for store failures.
func errorResponse(c echo.Context, err error, fallback int) error {
	var invalid core.ErrorInvalidArgument
	switch {
	case errors.Is(err, core.ErrorNotFound{}):
		return c.JSON(http.StatusNotFound, echo.Map{"message": core.MessageNotFound})
	case errors.Is(err, core.ErrorInvalidID{}):
		return c.JSON(http.StatusBadRequest, echo.Map{"message": core.MessageInvalidID})
	case errors.As(err, &invalid):
		return c.JSON(http.StatusBadRequest, echo.Map{"message": invalid.Message})
	}

	c.Logger().Error(err)
	return c.JSON(fallback, echo.Map{"message": err.Error()})
}

// List returns all characters, newest first
func (h handler) List(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Character.Handler.List")
	defer span.End()

	characters, err := h.service.List(ctx)
	if err != nil {
		span.RecordError(err)
		return errorResponse(c, err, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, characters)
}

// Get returns a character by ID
func (h handler) Get(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Character.Handler.Get")
	defer span.End()

	character, err := h.service.Get(ctx, c.Param("id"))
	if err != nil {
		span.RecordError(err)
		return errorResponse(c, err, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, character)
}

// Create registers a new character
func (h handler) Create(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Character.Handler.Create")
	defer span.End()

	var request createRequest
	err := c.Bind(&request)
	if err != nil {
		span.RecordError(err)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": core.MessageInvalidJSON})
	}

	created, err := h.service.Create(ctx, request.toCharacter())
	if err != nil {
		span.RecordError(err)
		return errorResponse(c, err, http.StatusBadRequest)
	}

	return c.JSON(http.StatusCreated, created)
}

// Update changes the name and/or some currency fields of a character
func (h handler) Update(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Character.Handler.Update")
	defer span.End()

	var patch core.CharacterPatch
	err := c.Bind(&patch)
	if err != nil {
		span.RecordError(err)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": core.MessageInvalidJSON})
	}

	updated, err := h.service.Update(ctx, c.Param("id"), patch)
	if err != nil {
		span.RecordError(err)
		return errorResponse(c, err, http.StatusBadRequest)
	}

	return c.JSON(http.StatusOK, updated)
}

// Delete removes a character
func (h handler) Delete(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Character.Handler.Delete")
	defer span.End()

	err := h.service.Delete(ctx, c.Param("id"))
	if err != nil {
		span.RecordError(err)
		return errorResponse(c, err, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": core.MessageCharacterDeleted})
}
