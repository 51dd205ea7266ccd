package models

import (
	"slices"
	"time"
)

// Роли аккаунтов. Manager получает все права администратора без проверки
// списка разрешений.
const (
	RoleUser    = "user"
	RoleEditor  = "editor"
	RoleAdmin   = "admin"
	RoleManager = "manager"
)

// Account представляет учётную запись пользователя сервиса.
// Счётчики расхода хранятся парами «текущее значение / лимит»:
// story и voice обнуляются раз в календарные сутки, series — раз в 7 дней.
type Account struct {
	UID                string     `json:"uid"`         // Уникальный идентификатор аккаунта
	Name               string     `json:"name"`        // Отображаемое имя
	Role               string     `json:"role"`        // Роль: user, editor, admin или manager
	Permissions        []string   `json:"permissions"` // Список разрешений (имеет смысл только для admin)
	VIP                bool       `json:"vip"`         // VIP-флаг
	AccessKey          string     `json:"-"`           // Ключ доступа, сравнивается на равенство
	SubscriptionExpiry *time.Time `json:"subscription_expiry"` // Дата истечения подписки, nil — подписка не оплачена
	StoryRequests      int        `json:"story_requests"`      // Израсходовано сценариев за сутки
	StoryLimit         int        `json:"story_limit"`         // Суточный лимит сценариев
	VoiceRequests      int        `json:"voice_requests"`      // Израсходовано озвучек за сутки
	VoiceLimit         int        `json:"voice_limit"`         // Суточный лимит озвучек
	SeriesRequests     int        `json:"series_requests"`     // Израсходовано серий за неделю
	SeriesLimit        int        `json:"series_limit"`        // Недельный лимит серий
	LastDailyReset     time.Time  `json:"-"`                   // Дата последнего суточного сброса
	LastWeeklyReset    time.Time  `json:"-"`                   // Момент последнего недельного сброса
	About              string     `json:"about"` // Произвольный текст о проекте клиента
	CreatedAt          time.Time  `json:"created_at"`
}

// IsAdmin сообщает, относится ли аккаунт к административным ролям.
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin || a.Role == RoleManager
}

// Can проверяет право аккаунта на действие. Manager получает все права,
// admin проверяется по списку разрешений, остальные роли прав не имеют.
func (a *Account) Can(permission string) bool {
	switch a.Role {
	case RoleManager:
		return true
	case RoleAdmin:
		return slices.Contains(a.Permissions, permission)
	default:
		return false
	}
}

// DummyAccount используется для приёма данных из JSON-запроса
// на создание аккаунта администратором.
type DummyAccount struct {
	Name        string   `json:"name" validate:"required"` // Отображаемое имя
	Role        string   `json:"role" validate:"required,oneof=user editor admin manager"`
	Permissions []string `json:"permissions"` // Разрешения, учитываются только для admin
	VIP         bool     `json:"vip"`         // VIP-флаг
	About       string   `json:"about"`       // Текст о проекте
}

// DummyLimits используется для приёма данных из JSON-запроса
// на изменение лимитов аккаунта.
type DummyLimits struct {
	StoryLimit  int `json:"story_limit" validate:"min=0"`
	VoiceLimit  int `json:"voice_limit" validate:"min=0"`
	SeriesLimit int `json:"series_limit" validate:"min=0"`
}
