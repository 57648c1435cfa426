package domain

import (
	"github.com/google/uuid"
)

// GenerationState состояние одной заявки на генерацию
type GenerationState string

const (
	GenerationIdle          GenerationState = "idle"
	GenerationCheckingQuota GenerationState = "checking_quota"
	GenerationLimitReached  GenerationState = "limit_reached"
	GenerationGenerating    GenerationState = "generating"
	GenerationSucceeded     GenerationState = "succeeded"
	GenerationFailed        GenerationState = "failed"
)

// QuotaPolicy поведение при недоступном usage service
type QuotaPolicy string

const (
	// QuotaPolicyStrict без ответа usage service генерации нет
	QuotaPolicyStrict QuotaPolicy = "strict"
	// QuotaPolicyLenient fail-open: генерируем дальше и пишем warning (demo-режим)
	QuotaPolicyLenient QuotaPolicy = "lenient"
)

// IsValid проверяет значение политики
func (p QuotaPolicy) IsValid() bool {
	return p == QuotaPolicyStrict || p == QuotaPolicyLenient
}

// GenerationResult итог одной заявки на генерацию
type GenerationResult struct {
	RunID uuid.UUID
	State GenerationState
	// Count счётчик после инкремента, 0 если usage service был недоступен и сработал fail-open
	Count        int64
	QuotaSkipped bool
	Image        *GeneratedImage
	ArchiveURL   string
}
