// Package send реализует HTTP-обработчик массовой рассылки уведомлений.
package send

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/content-factory/internal/http/middlewarectx"
	"github.com/magabrotheeeer/content-factory/internal/http/response"
	"github.com/magabrotheeeer/content-factory/internal/lib/sl"
	"github.com/magabrotheeeer/content-factory/internal/models"
)

// Handler обрабатывает HTTP-запросы на рассылку.
type Handler struct {
	log      *slog.Logger
	service  Service
	accounts AccountGetter
}

// Service описывает интерфейс бизнес-логики рассылки.
type Service interface {
	Send(ctx context.Context, senderUID, senderName, text string) error
}

// AccountGetter загружает аккаунт отправителя для подписи рассылки.
type AccountGetter interface {
	GetAccount(ctx context.Context, uid string) (*models.Account, error)
}

// New создает новый Handler с переданным логгером, сервисом и хранилищем аккаунтов.
func New(log *slog.Logger, service Service, accounts AccountGetter) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		accounts: accounts,
	}
}

// ServeHTTP godoc
// @Summary Отправить рассылку
// @Description Публикует текст рассылки в обменник уведомлений от имени отправителя.
// @Tags Broadcast
// @Accept  json
// @Produce  json
// @Param request body models.DummyBroadcast true "Текст рассылки"
// @Success 200 {object} response.Response "Рассылка опубликована"
// @Failure 400 {object} response.ErrorResponse "Некорректное тело запроса"
// @Failure 401 {object} response.ErrorResponse "Нет идентификации аккаунта"
// @Failure 500 {object} response.ErrorResponse "Ошибка при публикации"
// @Router /broadcast [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.broadcast.send"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	senderUID, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || senderUID == "" {
		log.Error("account identification missing")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("account identification missing"))
		return
	}

	var req models.DummyBroadcast
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

	sender, err := h.accounts.GetAccount(r.Context(), senderUID)
	if err != nil {
		log.Error("failed to load sender account", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	if err := h.service.Send(r.Context(), sender.UID, sender.Name, req.Text); err != nil {
		log.Error("failed to publish broadcast", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to publish broadcast"))
		return
	}

	log.Info("broadcast published", slog.String("sender_uid", senderUID))
	render.JSON(w, r, response.OK())
}
