// Package markseen реализует HTTP-обработчик отметки «просмотрено».
package markseen

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/content-factory/internal/http/middlewarectx"
	"github.com/magabrotheeeer/content-factory/internal/http/response"
	"github.com/magabrotheeeer/content-factory/internal/lib/sl"
	"github.com/magabrotheeeer/content-factory/internal/models"
)

// Handler обрабатывает HTTP-запросы на отметку просмотра.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики отметки просмотра.
type Service interface {
	MarkSeen(ctx context.Context, accountUID, category string) error
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Отметить просмотренным
// @Description Сдвигает отметку последнего просмотра категории на текущий момент. Операция идемпотентна.
// @Tags Notifications
// @Produce  json
// @Param category path string true "Категория: scenarios, activity или ideas"
// @Success 200 {object} response.Response "Отметка обновлена"
// @Failure 400 {object} response.ErrorResponse "Неизвестная категория"
// @Failure 401 {object} response.ErrorResponse "Нет идентификации аккаунта"
// @Failure 500 {object} response.ErrorResponse "Ошибка при отметке"
// @Router /notifications/{category}/seen [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.notification.markseen"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	accountUID, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || accountUID == "" {
		log.Error("account identification missing")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("account identification missing"))
		return
	}

	category := chi.URLParam(r, "category")
	if err := h.service.MarkSeen(r.Context(), accountUID, category); err != nil {
		if errors.Is(err, models.ErrValidation) {
			log.Error("unknown category", slog.String("category", category))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("unknown category"))
			return
		}
		log.Error("failed to mark seen", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to mark seen"))
		return
	}

	log.Info("marked seen", slog.String("category", category))
	render.JSON(w, r, response.OK())
}
