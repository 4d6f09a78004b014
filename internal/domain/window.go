package domain

import (
	"fmt"
	"time"

	"github.com/fairwaylab/GC-LotteryService/pkg/types"
)

// DayConfig represents the operating configuration of a lottery day
type DayConfig struct {
	ID                    int64
	OpenTime              types.TimeString
	CloseTime             types.TimeString
	SlotIntervalMinutes   int
	MaxOccupantsPerSlot   int
	WindowDurationMinutes int
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// OperatingSpanMinutes returns the length of the operating interval in minutes
func (c *DayConfig) OperatingSpanMinutes() (int, error) {
	openMin, err := c.OpenTime.Minutes()
	if err != nil {
		return 0, err
	}
	closeMin, err := c.CloseTime.Minutes()
	if err != nil {
		return 0, err
	}
	return closeMin - openMin, nil
}

// PreferenceWindow именованный подинтервал операционного дня
// Заявки ссылаются на окна по индексу, поэтому индексы стабильны
// для одной и той же конфигурации
type PreferenceWindow struct {
	Index        int
	Label        string
	StartMinutes int
	EndMinutes   int
}

// Contains returns true if the given minute-of-day falls inside the window [start, end)
func (w *PreferenceWindow) Contains(minutes int) bool {
	return minutes >= w.StartMinutes && minutes < w.EndMinutes
}

// MidpointMinutes returns the middle of the window, used for fallback distance
func (w *PreferenceWindow) MidpointMinutes() int {
	return (w.StartMinutes + w.EndMinutes) / 2
}

// ComputeWindows детерминированно разбивает операционный интервал [open, close)
// на непрерывные окна предпочтений.
//
// Количество окон = ceil(span / windowDuration). Интервал делится на окна
// поровну, остаток от деления достается последнему окну, чтобы ни одно окно
// не оказалось пустым или усеченным.
//
// Возвращает пустой список, если конфигурация отсутствует или некорректна
// (open >= close, неположительная длительность окна).
func ComputeWindows(cfg *DayConfig) []PreferenceWindow {
	if cfg == nil {
		return []PreferenceWindow{}
	}
	if cfg.WindowDurationMinutes <= 0 {
		return []PreferenceWindow{}
	}

	openMin, err := cfg.OpenTime.Minutes()
	if err != nil {
		return []PreferenceWindow{}
	}
	closeMin, err := cfg.CloseTime.Minutes()
	if err != nil {
		return []PreferenceWindow{}
	}

	span := closeMin - openMin
	if span <= 0 {
		return []PreferenceWindow{}
	}

	count := (span + cfg.WindowDurationMinutes - 1) / cfg.WindowDurationMinutes
	base := span / count
	remainder := span % count

	windows := make([]PreferenceWindow, 0, count)
	start := openMin
	for i := 0; i < count; i++ {
		width := base
		// Последнее окно поглощает остаток
		if i == count-1 {
			width += remainder
		}
		end := start + width
		windows = append(windows, PreferenceWindow{
			Index:        i,
			Label:        windowLabel(start, end),
			StartMinutes: start,
			EndMinutes:   end,
		})
		start = end
	}

	return windows
}

// FindWindowForMinutes возвращает окно, в которое попадает указанная минута дня,
// либо nil, если минута вне операционного интервала
func FindWindowForMinutes(windows []PreferenceWindow, minutes int) *PreferenceWindow {
	for i := range windows {
		if windows[i].Contains(minutes) {
			return &windows[i]
		}
	}
	return nil
}

func windowLabel(startMinutes, endMinutes int) string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d",
		startMinutes/60, startMinutes%60, endMinutes/60, endMinutes%60)
}
