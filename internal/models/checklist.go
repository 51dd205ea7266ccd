package models

// ChecklistItem представляет пункт чек-листа аккаунта.
// Position задаёт строгий порядок внутри раздела (аккаунт, корзина,
// невыполненные), но не обязан быть непрерывным или уникальным между
// разделами: перестановка меняет местами значения Position двух соседних
// строк, а не перенумеровывает список.
type ChecklistItem struct {
	ID         int    `json:"id"`
	AccountUID string `json:"account_uid"`     // Владелец пункта
	Title      string `json:"title"`           // Текст пункта
	IsDone     bool   `json:"is_done"`         // Выполнен ли пункт
	IsForToday bool   `json:"is_for_today"`    // Корзина: «на сегодня» или «позже»
	Position   int    `json:"position"`        // Ключ сортировки, новые пункты получают минимальное значение
	Badge      string `json:"badge,omitempty"` // Однобуквенная метка источника при массовом добавлении, может быть пустой
}

// DummyChecklistAdd используется для приёма данных запроса на добавление
// пункта. TargetUIDs — аккаунты, каждому из которых создаётся независимая
// строка; пустой список означает аккаунт, выполняющий действие.
type DummyChecklistAdd struct {
	Title      string   `json:"title" validate:"required"`
	IsForToday bool     `json:"is_for_today"`
	TargetUIDs []string `json:"target_uids" validate:"omitempty,dive,uuid"`
	Badge      string   `json:"badge" validate:"omitempty,len=1"`
}

// DummyChecklistEdit используется для запроса на изменение текста пункта.
type DummyChecklistEdit struct {
	Title string `json:"title" validate:"required"`
}

// DummyReorder используется для запроса на перестановку пункта.
type DummyReorder struct {
	Direction string `json:"direction" validate:"required,oneof=up down"`
}
