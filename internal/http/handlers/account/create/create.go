// Package create реализует HTTP-обработчик выпуска нового аккаунта.
//
// Handler принимает имя, роль и атрибуты аккаунта, генерирует ключ
// доступа и возвращает его администратору. Ключ показывается ровно один
// раз: повторно получить его через API нельзя.
package create

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
)

// Handler обрабатывает HTTP-запросы на выпуск аккаунта.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики выпуска аккаунтов.
type Service interface {
	Create(ctx context.Context, req models.DummyAccount) (string, string, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Выпустить аккаунт
// @Description Создаёт аккаунт с лимитами по умолчанию и пробной подпиской, возвращает uid и ключ доступа.
// @Tags Accounts
// @Accept  json
// @Produce  json
// @Param request body models.DummyAccount true "Атрибуты аккаунта"
// @Success 200 {object} response.Response "UID и ключ доступа"
// @Failure 400 {object} response.ErrorResponse "Некорректное тело запроса"
// @Failure 500 {object} response.ErrorResponse "Ошибка при создании"
// @Router /accounts [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyAccount
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

	uid, accessKey, err := h.service.Create(r.Context(), req)
	if err != nil {
		log.Error("failed to create account", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create account"))
		return
	}

	log.Info("account created", slog.String("uid", uid), slog.String("role", req.Role))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"uid":        uid,
		"access_key": accessKey,
	}))
}
