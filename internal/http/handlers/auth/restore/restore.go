// Package restore реализует HTTP-обработчик восстановления сессии по токену.
package restore

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/content-factory/internal/http/response"
	"github.com/magabrotheeeer/content-factory/internal/lib/sl"
	"github.com/magabrotheeeer/content-factory/internal/models"
	"github.com/magabrotheeeer/content-factory/internal/services/session"
)

// Handler обрабатывает HTTP-запросы на восстановление сессии.
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

// ServeHTTP godoc
// @Summary Восстановить сессию
// @Description Разрешает сессионный токен из заголовка Authorization в аккаунт. Вход в журнал не пишется, новый токен не выдаётся.
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.Response "Аккаунт"
// @Failure 401 {object} response.ErrorResponse "Токен отсутствует или невалиден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка"
// @Router /session [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.restore"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		log.Error("missing or invalid authorization header")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("missing or invalid authorization header"))
		return
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")

	res, err := h.service.Resolve(r.Context(), token, true)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Info("session token rejected")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("session not found"))
			return
		}
		log.Error("failed to restore session", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	log.Info("session restored", slog.String("account_uid", res.Account.UID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"account": res.Account,
		"expired": res.Expired,
	}))
}
