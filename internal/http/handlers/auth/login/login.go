// Package login реализует HTTP-обработчик входа по ключу доступа.
//
// Handler принимает ключ доступа, разрешает его в аккаунт через сервис
// сессий и возвращает аккаунт с сессионным токеном. Истёкшая подписка —
// не ошибка: аккаунт возвращается с флагом expired, токен не выдаётся.
package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/content-factory/internal/http/response"
	"github.com/magabrotheeeer/content-factory/internal/lib/sl"
	"github.com/magabrotheeeer/content-factory/internal/models"
	"github.com/magabrotheeeer/content-factory/internal/services/session"
)

// Handler обрабатывает HTTP-запросы на вход по ключу доступа.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики допуска.
type Service interface {
	Resolve(ctx context.Context, credential string, restored bool) (*session.Result, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

type request struct {
	AccessKey string `json:"access_key" validate:"required"`
}

// ServeHTTP godoc
// @Summary Вход по ключу доступа
// @Description Разрешает ключ доступа в аккаунт, выполняет ленивые сбросы квот и выдаёт сессионный токен.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body request true "Ключ доступа"
// @Success 200 {object} response.Response "Аккаунт и сессионный токен"
// @Failure 400 {object} response.ErrorResponse "Некорректное тело запроса"
// @Failure 401 {object} response.ErrorResponse "Ключ не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req request
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode request"))
		return
	}

	if err := validator.New().Struct(req); err != nil {
		var validateErr validator.ValidationErrors
		errors.As(err, &validateErr)
		log.Error("invalid request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(validateErr))
		return
	}

	res, err := h.service.Resolve(r.Context(), req.AccessKey, false)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrAmbiguous) {
			log.Info("access key rejected")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("access key not recognized"))
			return
		}
		log.Error("failed to resolve access key", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	log.Info("login resolved",
		slog.String("account_uid", res.Account.UID),
		slog.Bool("expired", res.Expired))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"account": res.Account,
		"expired": res.Expired,
		"token":   res.Token,
	}))
}
