package register

import (
	"context"
	"errors"
	"eventsApi/internal/lib/api/response"
	"eventsApi/internal/lib/logger/sl"
	"eventsApi/internal/lib/password"
	"eventsApi/internal/models"
	"eventsApi/internal/storage"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"log/slog"
	"net/http"
	"strings"
)

type Request struct {
	Username string `json:"username" validate:"required,min=3,max=80,printascii"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type Response struct {
	response.Response
	User models.User `json:"user"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=UserCreator
type UserCreator interface {
	CreateUser(ctx context.Context, username, passwordHash string) (models.User, error)
}

func New(log *slog.Logger, users UserCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.register.New"

		log := log.With(slog.String("op", op))

		var req Request

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		req.Username = strings.TrimSpace(req.Username)

		// the password is never logged
		log.Info("request body decoded", slog.String("username", req.Username))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		hash, err := password.Hash(req.Password)
		if err != nil {
			if errors.Is(err, password.ErrTooLong) {
				log.Info("password exceeds bcrypt limit", slog.Int("bytes", len(req.Password)))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error(password.ErrTooLong.Error()))
				return
			}

			log.Error("failed to hash password", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to register user"))
			return
		}

		user, err := users.CreateUser(r.Context(), req.Username, hash)
		if err != nil {
			if errors.Is(err, storage.ErrUserExists) {
				log.Info("username already taken", slog.String("username", req.Username))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("username already exists"))
				return
			}

			log.Error("failed to create user", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to register user"))
			return
		}

		log.Info("user registered", slog.Int64("user_id", user.ID))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, Response{
			Response: response.OK(),
			User:     user,
		})
	}
}
