// Package remove реализует HTTP-обработчик удаления аккаунта.
//
// Задачи удалённого монтажёра остаются с висящей ссылкой, журнал
// активности сохраняет денормализованное имя.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/content-factory/internal/http/response"
	"github.com/magabrotheeeer/content-factory/internal/lib/sl"
	"github.com/magabrotheeeer/content-factory/internal/models"
)

// Handler обрабатывает HTTP-запросы на удаление аккаунта.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления аккаунта.
type Service interface {
	Remove(ctx context.Context, uid string) error
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить аккаунт
// @Description Удаляет аккаунт по uid. Чек-лист и история продлений удаляются каскадно, задачи и журнал остаются.
// @Tags Accounts
// @Produce  json
// @Param uid path string true "UID аккаунта"
// @Success 200 {object} response.Response "Аккаунт удалён"
// @Failure 404 {object} response.ErrorResponse "Аккаунт не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка при удалении"
// @Router /accounts/{uid} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid := chi.URLParam(r, "uid")
	if err := h.service.Remove(r.Context(), uid); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Info("account not found", slog.String("uid", uid))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("account not found"))
			return
		}
		log.Error("failed to remove account", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to remove account"))
		return
	}

	log.Info("account removed", slog.String("uid", uid))
	render.JSON(w, r, response.OK())
}
