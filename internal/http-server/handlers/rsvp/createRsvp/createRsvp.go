package createRsvp

import (
	"context"
	"errors"
	"eventsApi/internal/access"
	mwauth "eventsApi/internal/http-server/middleware/auth"
	"eventsApi/internal/lib/api/response"
	"eventsApi/internal/lib/logger/sl"
	"eventsApi/internal/models"
	"eventsApi/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"io"
	"log/slog"
	"net/http"
	"strconv"
)

type RSVPRequest struct {
	// Attending defaults to true when omitted.
	Attending *bool `json:"attending"`
}

type RSVPResponse struct {
	response.Response
	models.RSVP
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=RSVPCreator
type RSVPCreator interface {
	GetEvent(ctx context.Context, id int64) (models.Event, error)
	SaveRSVP(ctx context.Context, eventID int64, userID *int64, attending bool) (models.RSVP, bool, error)
}

func New(log *slog.Logger, rsvps RSVPCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.rsvp.createRsvp.New"

		log := log.With(slog.String("op", op))

		eventIdStr := chi.URLParam(r, "id")
		if eventIdStr == "" {
			log.Error("event id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("event id is required"))
			return
		}

		eventID, err := strconv.ParseInt(eventIdStr, 10, 64)
		if err != nil || eventID <= 0 {
			log.Error("invalid event id format", slog.String("id", eventIdStr))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid event id format"))
			return
		}

		log = log.With(slog.Int64("event_id", eventID))

		var req RSVPRequest

		err = render.DecodeJSON(r.Body, &req)
		if err != nil && !errors.Is(err, io.EOF) {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		attending := true
		if req.Attending != nil {
			attending = *req.Attending
		}

		event, err := rsvps.GetEvent(r.Context(), eventID)
		if err != nil {
			if errors.Is(err, storage.ErrEventNotFound) {
				log.Info("event not found")
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
				return
			}

			log.Error("failed to get event", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to rsvp"))
			return
		}

		principal := mwauth.PrincipalFromContext(r.Context())

		if err = access.CheckRSVP(event, principal); err != nil {
			log.Warn("rsvp denied", sl.Err(err), slog.String("tier", string(event.Tier())))

			if errors.Is(err, access.ErrUnauthenticated) {
				render.Status(r, http.StatusUnauthorized)
			} else {
				render.Status(r, http.StatusForbidden)
			}
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		var userID *int64
		if principal != nil {
			id := principal.UserID
			userID = &id
		}

		rsvp, created, err := rsvps.SaveRSVP(r.Context(), eventID, userID, attending)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrEventFull):
				log.Info("event is full")
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("event is at full capacity"))
			case errors.Is(err, storage.ErrEventNotFound):
				log.Info("event disappeared before rsvp")
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
			default:
				log.Error("failed to save rsvp", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to rsvp"))
			}
			return
		}

		log.Info("rsvp saved", slog.Int64("rsvp_id", rsvp.ID), slog.Bool("created", created))

		responseOK(w, r, rsvp, created)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, rsvp models.RSVP, created bool) {
	if created {
		render.Status(r, http.StatusCreated)
	}

	render.JSON(w, r, RSVPResponse{
		Response: response.OK(),
		RSVP:     rsvp,
	})
}
