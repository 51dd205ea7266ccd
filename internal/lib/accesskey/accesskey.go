// Package accesskey реализует генерацию непрозрачных ключей доступа.
//
// Ключ выдаётся аккаунту при создании и предъявляется при входе.
// Криптографической проверки нет: ключ хранится как есть и сравнивается
// на равенство, уникальность обеспечивает ограничение в базе данных.
package accesskey

import (
	"strings"

	"github.com/google/uuid"
)

// New возвращает новый ключ доступа: два uuid без дефисов,
// чтобы ключ нельзя было подобрать перебором коротких строк.
func New() string {
	k := uuid.NewString() + uuid.NewString()
	return strings.ReplaceAll(k, "-", "")
}
