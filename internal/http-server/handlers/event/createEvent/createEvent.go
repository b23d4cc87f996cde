package createEvent

import (
	"context"
	"errors"
	"eventsApi/internal/access"
	mwauth "eventsApi/internal/http-server/middleware/auth"
	"eventsApi/internal/lib/api/response"
	"eventsApi/internal/lib/logger/sl"
	"eventsApi/internal/models"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

type EventRequest struct {
	Title         string    `json:"title" validate:"required,max=200"`
	Description   string    `json:"description" validate:"max=5000"`
	Date          time.Time `json:"date" validate:"required"`
	Location      string    `json:"location" validate:"max=200"`
	Capacity      int       `json:"capacity" validate:"required,gt=0,lte=2147483647"`
	IsPublic      bool      `json:"is_public"`
	RequiresAdmin bool      `json:"requires_admin"`
}

type EventResponse struct {
	response.Response
	models.Event
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventCreator
type EventCreator interface {
	CreateEvent(ctx context.Context, event models.Event) (models.Event, error)
}

func New(log *slog.Logger, creator EventCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.createEvent.New"

		log := log.With(
			slog.String("op", op),
		)

		var req EventRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))

			return
		}

		req.Title = strings.TrimSpace(req.Title)
		req.Location = strings.TrimSpace(req.Location)

		log.Info("request body decoded", slog.Any("request", req))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))

			return
		}

		event := models.Event{
			Title:         req.Title,
			Description:   req.Description,
			Date:          req.Date.UTC(),
			Location:      req.Location,
			Capacity:      req.Capacity,
			IsPublic:      req.IsPublic,
			RequiresAdmin: req.RequiresAdmin,
		}

		principal := mwauth.PrincipalFromContext(r.Context())

		if err = access.CheckCreate(event, principal); err != nil {
			log.Warn("event creation denied", sl.Err(err))

			if errors.Is(err, access.ErrUnauthenticated) {
				render.Status(r, http.StatusUnauthorized)
			} else {
				render.Status(r, http.StatusForbidden)
			}
			render.JSON(w, r, response.Error(err.Error()))

			return
		}

		creatorID := principal.UserID
		event.CreatedBy = &creatorID

		created, err := creator.CreateEvent(r.Context(), event)
		if err != nil {
			log.Error("failed to add event", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to add event"))

			return
		}

		log.Info("event added", slog.Int64("id", created.ID))

		responseCreated(w, r, created)
	}
}

func responseCreated(w http.ResponseWriter, r *http.Request, event models.Event) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, EventResponse{
		Response: response.OK(),
		Event:    event,
	})
}
