package getAllEvents

import (
	"context"
	"eventsApi/internal/lib/api/response"
	"eventsApi/internal/lib/logger/sl"
	"eventsApi/internal/models"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

type EventsResponse struct {
	response.Response
	Events []models.Event `json:"events"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventsGetter
type EventsGetter interface {
	GetAllEvents(ctx context.Context) ([]models.Event, error)
}

func New(log *slog.Logger, eventsGetter EventsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.getAllEvents.New"

		log := log.With(slog.String("op", op))

		events, err := eventsGetter.GetAllEvents(r.Context())
		if err != nil {
			log.Error("failed to get events", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get events"))
			return
		}

		log.Info("events retrieved successfully",
			slog.Int("count", len(events)),
			tierBreakdown(events),
		)

		responseOK(w, r, events)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, events []models.Event) {
	if events == nil {
		events = []models.Event{}
	}

	render.JSON(w, r, EventsResponse{
		Response: response.OK(),
		Events:   events,
	})
}

// tierBreakdown counts events per access tier.
func tierBreakdown(events []models.Event) slog.Attr {
	counts := make(map[models.AccessTier]int, 3)
	for _, e := range events {
		counts[e.Tier()]++
	}

	return slog.Group("tiers",
		slog.Int(string(models.TierPublic), counts[models.TierPublic]),
		slog.Int(string(models.TierProtected), counts[models.TierProtected]),
		slog.Int(string(models.TierAdmin), counts[models.TierAdmin]),
	)
}
