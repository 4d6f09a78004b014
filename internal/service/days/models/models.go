package models

import (
	"time"

	"github.com/fairwaylab/GC-LotteryService/internal/domain"
)

// Request модели

// UpdateConfigRequest запрос на обновление конфигурации дня
type UpdateConfigRequest struct {
	OpenTime              string `json:"openTime"`  // HH:MM
	CloseTime             string `json:"closeTime"` // HH:MM
	SlotIntervalMinutes   int    `json:"slotIntervalMinutes"`
	MaxOccupantsPerSlot   int    `json:"maxOccupantsPerSlot"`
	WindowDurationMinutes int    `json:"windowDurationMinutes"`
}

// Response модели

// ConfigResponse ответ с конфигурацией дня
type ConfigResponse struct {
	ID                    int64     `json:"id"`
	OpenTime              string    `json:"openTime"`
	CloseTime             string    `json:"closeTime"`
	SlotIntervalMinutes   int       `json:"slotIntervalMinutes"`
	MaxOccupantsPerSlot   int       `json:"maxOccupantsPerSlot"`
	WindowDurationMinutes int       `json:"windowDurationMinutes"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

// WindowResponse ответ с одним окном предпочтений
type WindowResponse struct {
	Index        int    `json:"index"`
	Label        string `json:"label"`
	StartMinutes int    `json:"startMinutes"`
	EndMinutes   int    `json:"endMinutes"`
}

// WindowListResponse ответ со списком окон дня
type WindowListResponse struct {
	Windows []WindowResponse `json:"windows"`
	Total   int              `json:"total"`
}

// FromDomainConfig конвертирует domain конфигурацию в response модель
func FromDomainConfig(cfg *domain.DayConfig) *ConfigResponse {
	return &ConfigResponse{
		ID:                    cfg.ID,
		OpenTime:              cfg.OpenTime.String(),
		CloseTime:             cfg.CloseTime.String(),
		SlotIntervalMinutes:   cfg.SlotIntervalMinutes,
		MaxOccupantsPerSlot:   cfg.MaxOccupantsPerSlot,
		WindowDurationMinutes: cfg.WindowDurationMinutes,
		CreatedAt:             cfg.CreatedAt,
		UpdatedAt:             cfg.UpdatedAt,
	}
}

// FromDomainWindows конвертирует список окон в response модель
func FromDomainWindows(windows []domain.PreferenceWindow) *WindowListResponse {
	resp := &WindowListResponse{
		Windows: make([]WindowResponse, 0, len(windows)),
		Total:   len(windows),
	}
	for _, w := range windows {
		resp.Windows = append(resp.Windows, WindowResponse{
			Index:        w.Index,
			Label:        w.Label,
			StartMinutes: w.StartMinutes,
			EndMinutes:   w.EndMinutes,
		})
	}
	return resp
}
