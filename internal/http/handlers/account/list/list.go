// Package list реализует HTTP-обработчик списка аккаунтов.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/content-factory/internal/http/response"
	"github.com/magabrotheeeer/content-factory/internal/lib/sl"
	"github.com/magabrotheeeer/content-factory/internal/models"
)

// Handler обрабатывает HTTP-запросы на получение списка аккаунтов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка аккаунтов.
type Service interface {
	List(ctx context.Context, limit, offset int) ([]*models.Account, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список аккаунтов
// @Description Возвращает аккаунты с пагинацией через query-параметры limit и offset.
// @Tags Accounts
// @Produce  json
// @Param limit query int false "Максимум записей" default(20)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} response.Response "Список аккаунтов"
// @Failure 500 {object} response.ErrorResponse "Ошибка при чтении"
// @Router /accounts [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, offset := pagination(r)
	accounts, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list accounts", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list accounts"))
		return
	}

	log.Info("accounts listed", slog.Int("count", len(accounts)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"accounts": accounts,
	}))
}

func pagination(r *http.Request) (int, int) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
