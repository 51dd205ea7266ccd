// Package updatelimits реализует HTTP-обработчик изменения лимитов аккаунта.
package updatelimits

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/content-factory/internal/http/response"
	"github.com/magabrotheeeer/content-factory/internal/lib/sl"
	"github.com/magabrotheeeer/content-factory/internal/models"
)

// Handler обрабатывает HTTP-запросы на изменение лимитов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики изменения лимитов.
type Service interface {
	UpdateLimits(ctx context.Context, uid string, req models.DummyLimits) error
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Изменить лимиты аккаунта
// @Description Устанавливает суточные и недельный лимиты. Текущие счётчики расхода не трогаются.
// @Tags Accounts
// @Accept  json
// @Produce  json
// @Param uid path string true "UID аккаунта"
// @Param request body models.DummyLimits true "Новые лимиты"
// @Success 200 {object} response.Response "Лимиты обновлены"
// @Failure 400 {object} response.ErrorResponse "Некорректное тело запроса"
// @Failure 404 {object} response.ErrorResponse "Аккаунт не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка при обновлении"
// @Router /accounts/{uid}/limits [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.updatelimits"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyLimits
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
	if err := h.service.UpdateLimits(r.Context(), uid, req); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Info("account not found", slog.String("uid", uid))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("account not found"))
			return
		}
		log.Error("failed to update limits", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update limits"))
		return
	}

	log.Info("limits updated", slog.String("uid", uid))
	render.JSON(w, r, response.OK())
}
