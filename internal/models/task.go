package models

import "time"

// Статусы задачи монтажа. Переходы между ними описаны в services/task;
// StatusDelivered — терминальный, из него переходов нет.
const (
	StatusPendingAssignment = "pending_assignment" // Ожидает назначения монтажёра
	StatusAssigned          = "assigned"           // Назначена монтажёру
	StatusIssueReported     = "issue_reported"     // Монтажёр сообщил о проблеме
	StatusPendingApproval   = "pending_approval"   // Сдана, ожидает проверки администратором
	StatusDelivered         = "delivered"          // Принята, задача закрыта
)

// Task представляет единицу производственной работы: монтаж одного
// сценария для клиента. EditorUID хранится как nullable-ссылка:
// после удаления аккаунта монтажёра задача остаётся с «висящей» ссылкой
// и отображается как неназначенная.
type Task struct {
	ID             int     `json:"id"`
	ClientLabel    string  `json:"client_label"`    // Метка клиента или проекта
	ScenarioNumber int     `json:"scenario_number"` // Номер сценария
	Content        string  `json:"content"`         // Текст сценария и материалы
	Status         string  `json:"status"`          // Текущий статус из набора Status*
	EditorUID      *string `json:"editor_uid"`      // UID назначенного монтажёра, nil — не назначен
	AdminNote      string  `json:"admin_note"`      // Примечание администратора, включая причины отклонений
	EditorNote     string  `json:"editor_note"`     // Примечание монтажёра (описание проблемы)
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DummyTask используется для приёма данных из JSON-запроса на создание задачи.
type DummyTask struct {
	ClientLabel    string `json:"client_label" validate:"required"`
	ScenarioNumber int    `json:"scenario_number" validate:"required,gt=0"`
	Content        string `json:"content" validate:"required"`
}

// DummyAssign используется для приёма данных запроса на назначение монтажёра.
type DummyAssign struct {
	EditorUID string `json:"editor_uid" validate:"required,uuid"`
	AdminNote string `json:"admin_note"`
}

// DummyNote используется в запросах, передающих только текст примечания:
// сообщение о проблеме и причину отклонения.
type DummyNote struct {
	Note string `json:"note" validate:"required"`
}
