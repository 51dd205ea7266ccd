package models

import "time"

// ActivityEntry представляет запись журнала активности. Имя аккаунта
// денормализуется в момент записи, чтобы журнал читался и после
// удаления аккаунта.
type ActivityEntry struct {
	ID          int       `json:"id"`
	AccountUID  string    `json:"account_uid"`
	AccountName string    `json:"account_name"`
	Action      string    `json:"action"` // Человекочитаемое описание действия
	CreatedAt   time.Time `json:"created_at"`
}

// Idea представляет идею, предложенную пользователем. Идеи не имеют
// отметки «просмотрено»: счётчик для администраторов показывает общее
// количество, пока идея не удалена.
type Idea struct {
	ID         int       `json:"id"`
	AccountUID string    `json:"account_uid"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// DummyIdea используется для приёма данных запроса на добавление идеи.
type DummyIdea struct {
	Content string `json:"content" validate:"required"`
}

// DummyBroadcast используется для приёма данных запроса на рассылку
// уведомления всем аккаунтам.
type DummyBroadcast struct {
	Text string `json:"text" validate:"required"`
}
