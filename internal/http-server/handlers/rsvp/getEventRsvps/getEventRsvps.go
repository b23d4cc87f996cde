package getEventRsvps

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
	"log/slog"
	"net/http"
	"strconv"
)

type RSVPsResponse struct {
	response.Response
	EventID int64         `json:"event_id"`
	RSVPs   []models.RSVP `json:"rsvps"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=RSVPsGetter
type RSVPsGetter interface {
	GetEvent(ctx context.Context, id int64) (models.Event, error)
	GetEventRSVPs(ctx context.Context, eventID int64) ([]models.RSVP, error)
}

// New lists the RSVPs of one event. Callers need the same access they would need to RSVP.
func New(log *slog.Logger, getter RSVPsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.rsvp.getEventRsvps.New"

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

		event, err := getter.GetEvent(r.Context(), eventID)
		if err != nil {
			if errors.Is(err, storage.ErrEventNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
				return
			}

			log.Error("failed to get event", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get rsvps"))
			return
		}

		if err = access.CheckRSVP(event, mwauth.PrincipalFromContext(r.Context())); err != nil {
			log.Warn("rsvp listing denied", sl.Err(err))

			if errors.Is(err, access.ErrUnauthenticated) {
				render.Status(r, http.StatusUnauthorized)
			} else {
				render.Status(r, http.StatusForbidden)
			}
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		rsvps, err := getter.GetEventRSVPs(r.Context(), eventID)
		if err != nil {
			log.Error("failed to get rsvps", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get rsvps"))
			return
		}

		log.Info("rsvps retrieved successfully", slog.Int("count", len(rsvps)))

		responseOK(w, r, eventID, rsvps)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, eventID int64, rsvps []models.RSVP) {
	if rsvps == nil {
		rsvps = []models.RSVP{}
	}

	render.JSON(w, r, RSVPsResponse{
		Response: response.OK(),
		EventID:  eventID,
		RSVPs:    rsvps,
	})
}
