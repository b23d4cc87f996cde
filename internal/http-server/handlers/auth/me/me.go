package me

import (
	"context"
	"errors"
	mwauth "eventsApi/internal/http-server/middleware/auth"
	"eventsApi/internal/lib/api/response"
	"eventsApi/internal/lib/logger/sl"
	"eventsApi/internal/models"
	"eventsApi/internal/storage"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

type Response struct {
	response.Response
	User models.User `json:"user"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=UserGetter
type UserGetter interface {
	GetUserByID(ctx context.Context, id int64) (models.User, error)
}

func New(log *slog.Logger, users UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.me.New"

		log := log.With(slog.String("op", op))

		principal := mwauth.PrincipalFromContext(r.Context())
		if principal == nil {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authentication required"))
			return
		}

		user, err := users.GetUserByID(r.Context(), principal.UserID)
		if err != nil {
			if errors.Is(err, storage.ErrUserNotFound) {
				log.Info("token subject no longer exists", slog.Int64("user_id", principal.UserID))
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("user not found"))
				return
			}

			log.Error("failed to get user", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get user"))
			return
		}

		render.JSON(w, r, Response{
			Response: response.OK(),
			User:     user,
		})
	}
}
