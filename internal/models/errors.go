// Package models содержит доменные структуры системы производства контента:
// аккаунты, задачи монтажа, чек-листы, журнал активности, а также общие
// sentinel-ошибки бизнес-уровня.
package models

import "errors"

// Sentinel-ошибки бизнес-уровня. Обработчики сопоставляют их
// с HTTP-статусами, сервисы и хранилище оборачивают через %w.
var (
	// ErrNotFound — ключ доступа, сессия или сущность не найдены.
	ErrNotFound = errors.New("not found")
	// ErrAmbiguous — поиск по ключу доступа вернул больше одной записи.
	ErrAmbiguous = errors.New("ambiguous lookup")
	// ErrConflict — конфликт состояния: дубликат ключа доступа при создании
	// аккаунта или недопустимый переход статуса задачи.
	ErrConflict = errors.New("conflict")
	// ErrPermissionDenied — у аккаунта нет права на действие.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrValidation — отсутствует обязательное поле или значение вне допустимого
	// диапазона (пустой заголовок, неположительное число дней продления).
	ErrValidation = errors.New("validation failed")
)
