// Package extend реализует HTTP-обработчик продления подписки аккаунта.
package extend

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/content-factory/internal/http/response"
	"github.com/magabrotheeeer/content-factory/internal/lib/sl"
	"github.com/magabrotheeeer/content-factory/internal/models"
)

// Handler обрабатывает HTTP-запросы на продление подписки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики продления подписки.
type Service interface {
	Extend(ctx context.Context, accountUID string, days int) (time.Time, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Продлить подписку
// @Description Продлевает подписку на указанное число дней. Отсчёт от максимума из «сейчас» и текущей даты истечения.
// @Tags Accounts
// @Accept  json
// @Produce  json
// @Param uid path string true "UID аккаунта"
// @Param request body models.DummyExtend true "Число дней"
// @Success 200 {object} response.Response "Новая дата истечения"
// @Failure 400 {object} response.ErrorResponse "Некорректное тело запроса"
// @Failure 404 {object} response.ErrorResponse "Аккаунт не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка при продлении"
// @Router /accounts/{uid}/extend [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.extend"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyExtend
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

	uid := chi.URLParam(r, "uid")
	newExpiry, err := h.service.Extend(r.Context(), uid, req.Days)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			log.Info("account not found", slog.String("uid", uid))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("account not found"))
		case errors.Is(err, models.ErrValidation):
			log.Error("invalid days value", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("days must be positive"))
		default:
			log.Error("failed to extend subscription", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to extend subscription"))
		}
		return
	}

	log.Info("subscription extended",
		slog.String("uid", uid),
		slog.Int("days", req.Days))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"new_expiry": newExpiry,
	}))
}
