package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/content-factory/internal/http/response"
	"github.com/magabrotheeeer/content-factory/internal/lib/sl"
	"github.com/magabrotheeeer/content-factory/internal/models"
)

// Разрешения административных действий. Manager получает все без
// проверки, admin — по списку разрешений аккаунта.
const (
	PermManageAccounts = "manage_accounts" // Выпуск, лимиты, продление и удаление аккаунтов
	PermManageTasks    = "manage_tasks"    // Создание, назначение и приёмка задач
	PermBroadcast      = "broadcast"       // Массовая рассылка уведомлений
	PermViewActivity   = "view_activity"   // Журнал активности и банк идей
)

// AccountProvider загружает аккаунт для проверки прав.
type AccountProvider interface {
	GetAccount(ctx context.Context, uid string) (*models.Account, error)
}

// RequirePermission возвращает HTTP middleware, который пропускает только
// аккаунты с правом на действие. Роль из токена не является источником
// истины: аккаунт перечитывается, чтобы отзыв разрешения действовал сразу.
func RequirePermission(permission string, accounts AccountProvider, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequirePermission"

			uid, ok := r.Context().Value(User).(string)
			if !ok || uid == "" {
				log.Error("account identification missing", slog.String("op", op))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("account identification missing"))
				return
			}

			account, err := accounts.GetAccount(r.Context(), uid)
			if err != nil {
				log.Error("failed to load account for permission check", slog.String("op", op), sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}

			if !account.Can(permission) {
				log.Info("permission denied",
					slog.String("account_uid", uid),
					slog.String("permission", permission))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("permission denied"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
