// Package list реализует HTTP-обработчик чтения чек-листа аккаунта.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/content-factory/internal/http/middlewarectx"
	"github.com/magabrotheeeer/content-factory/internal/http/response"
	"github.com/magabrotheeeer/content-factory/internal/lib/sl"
	"github.com/magabrotheeeer/content-factory/internal/services/checklist"
)

// Handler обрабатывает HTTP-запросы на чтение чек-листа.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения чек-листа.
type Service interface {
	List(ctx context.Context, accountUID string) (*checklist.Lists, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Чек-лист аккаунта
// @Description Возвращает обе активные корзины по порядку позиций и архив выполненных.
// @Tags Checklist
// @Produce  json
// @Success 200 {object} response.Response "Разделы чек-листа"
// @Failure 401 {object} response.ErrorResponse "Нет идентификации аккаунта"
// @Failure 500 {object} response.ErrorResponse "Ошибка при чтении"
// @Router /checklist [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.checklist.list"

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

	lists, err := h.service.List(r.Context(), accountUID)
	if err != nil {
		log.Error("failed to read checklist", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to read checklist"))
		return
	}

	log.Info("checklist read", slog.String("account_uid", accountUID))
	render.JSON(w, r, response.StatusOKWithData(lists))
}
