// Package jwt реализует генерацию и парсинг сессионных токенов.
//
// Токен выдаётся при успешном входе по ключу доступа и предъявляется
// при восстановлении сессии. Сам ключ доступа остаётся непрозрачным
// секретом и сравнивается на равенство в хранилище — токен лишь
// переносит uid и роль между запросами.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для генерации и парсинга сессионных токенов.
type Maker interface {
	// GenerateToken создаёт токен с uid и ролью аккаунта.
	GenerateToken(accountUID, role string) (string, error)
	// ParseToken возвращает *CustomClaims с uid и ролью.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
