package models

import "time"

// ExtensionEntry представляет неизменяемую запись истории продлений подписки.
// Записи только добавляются: ни обновлений, ни удалений.
type ExtensionEntry struct {
	ID         int       `json:"id"`
	AccountUID string    `json:"account_uid"`
	DaysAdded  int       `json:"days_added"` // На сколько дней продлили
	NewExpiry  time.Time `json:"new_expiry"` // Дата истечения после продления
	CreatedAt  time.Time `json:"created_at"`
}

// DummyExtend используется для приёма данных запроса на продление подписки.
type DummyExtend struct {
	Days int `json:"days" validate:"required,gt=0"` // Число дней продления (>0)
}
