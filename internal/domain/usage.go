package domain

import (
	"time"
)

// DefaultUsageLimit бесплатных генераций на один client_id
const DefaultUsageLimit int64 = 3

// UsageRecord счётчик генераций для одного клиента
// Отсутствие записи равносильно count = 0
type UsageRecord struct {
	ClientID  string    `json:"client_id" db:"client_id"`
	Count     int64     `json:"count" db:"count"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// UsageEvent событие попытки инкремента (уходит в kafka, если она настроена)
type UsageEvent struct {
	ClientID string    `json:"client_id"`
	Count    int64     `json:"count"`
	Limit    int64     `json:"limit"`
	Allowed  bool      `json:"allowed"`
	At       time.Time `json:"at"`
}
