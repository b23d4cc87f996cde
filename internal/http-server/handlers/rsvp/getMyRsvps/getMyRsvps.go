package getMyRsvps

import (
	"context"
	mwauth "eventsApi/internal/http-server/middleware/auth"
	"eventsApi/internal/lib/api/response"
	"eventsApi/internal/lib/logger/sl"
	"eventsApi/internal/models"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

type RSVPsResponse struct {
	response.Response
	RSVPs []models.RSVP `json:"rsvps"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=UserRSVPsGetter
type UserRSVPsGetter interface {
	GetUserRSVPs(ctx context.Context, userID int64) ([]models.RSVP, error)
}

func New(log *slog.Logger, getter UserRSVPsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.rsvp.getMyRsvps.New"

		log := log.With(slog.String("op", op))

		principal := mwauth.PrincipalFromContext(r.Context())
		if principal == nil {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authentication required"))
			return
		}

		log = log.With(slog.Int64("user_id", principal.UserID))

		rsvps, err := getter.GetUserRSVPs(r.Context(), principal.UserID)
		if err != nil {
			log.Error("failed to get rsvps", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get rsvps"))
			return
		}

		if rsvps == nil {
			rsvps = []models.RSVP{}
		}

		log.Info("rsvps retrieved successfully", slog.Int("count", len(rsvps)))

		render.JSON(w, r, RSVPsResponse{
			Response: response.OK(),
			RSVPs:    rsvps,
		})
	}
}
