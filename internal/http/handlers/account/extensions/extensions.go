// Package extensions реализует HTTP-обработчик истории продлений подписки.
package extensions

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/content-factory/internal/http/response"
	"github.com/magabrotheeeer/content-factory/internal/lib/sl"
	"github.com/magabrotheeeer/content-factory/internal/models"
)

// Handler обрабатывает HTTP-запросы на чтение истории продлений.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики истории продлений.
type Service interface {
	History(ctx context.Context, accountUID string) ([]*models.ExtensionEntry, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary История продлений
// @Description Возвращает записи истории продлений аккаунта от новых к старым.
// @Tags Accounts
// @Produce  json
// @Param uid path string true "UID аккаунта"
// @Success 200 {object} response.Response "История продлений"
// @Failure 500 {object} response.ErrorResponse "Ошибка при чтении"
// @Router /accounts/{uid}/extensions [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.extensions"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid := chi.URLParam(r, "uid")
	entries, err := h.service.History(r.Context(), uid)
	if err != nil {
		log.Error("failed to read extension history", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to read extension history"))
		return
	}

	log.Info("extension history read", slog.String("uid", uid), slog.Int("count", len(entries)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"extensions": entries,
	}))
}
