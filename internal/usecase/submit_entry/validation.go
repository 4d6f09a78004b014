package submit_entry

import (
	"fmt"
	"time"

	"github.com/fairwaylab/GC-LotteryService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.OrganizerID <= 0 {
		return fmt.Errorf("%w: organizerID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.PreferredWindow < 0 {
		return fmt.Errorf("%w: preferredWindow must be non-negative", ErrInvalidInput)
	}

	if req.AlternateWindow != nil && *req.AlternateWindow < 0 {
		return fmt.Errorf("%w: alternateWindow must be non-negative", ErrInvalidInput)
	}

	if req.GuestFillCount < 0 {
		return fmt.Errorf("%w: guestFillCount must be non-negative", ErrInvalidInput)
	}

	for _, id := range req.AdditionalMemberIDs {
		if id <= 0 {
			return fmt.Errorf("%w: member IDs must be positive", ErrInvalidInput)
		}
		if id == req.OrganizerID {
			return fmt.Errorf("%w: organizer cannot be listed as additional member", ErrInvalidInput)
		}
	}

	for _, id := range req.GuestIDs {
		if id <= 0 {
			return fmt.Errorf("%w: guest IDs must be positive", ErrInvalidInput)
		}
	}

	if hasDuplicateIDs(req.AdditionalMemberIDs) {
		return fmt.Errorf("%w: duplicate member IDs", ErrInvalidInput)
	}

	return nil
}

// validateParty проверяет состав группы против лимитов конфигурации
func validateParty(req *Request, cfg *domain.DayConfig) error {
	memberCount := 1 + len(req.AdditionalMemberIDs)
	if memberCount > domain.MaxGroupHumans {
		return fmt.Errorf("%w: at most %d members per entry", ErrTooManyMembers, domain.MaxGroupHumans)
	}

	partySize := memberCount + len(req.GuestIDs) + req.GuestFillCount
	if partySize > cfg.MaxOccupantsPerSlot {
		return fmt.Errorf("%w: party of %d exceeds slot capacity %d",
			ErrPartyTooLarge, partySize, cfg.MaxOccupantsPerSlot)
	}

	return nil
}

// validateWindows проверяет, что индексы окон ссылаются на существующие окна
// и альтернативное окно отличается от предпочтительного
func validateWindows(req *Request, windows []domain.PreferenceWindow) error {
	if req.PreferredWindow >= len(windows) {
		return fmt.Errorf("%w: preferred window %d does not exist (day has %d windows)",
			ErrInvalidWindow, req.PreferredWindow, len(windows))
	}

	if req.AlternateWindow != nil {
		if *req.AlternateWindow >= len(windows) {
			return fmt.Errorf("%w: alternate window %d does not exist (day has %d windows)",
				ErrInvalidWindow, *req.AlternateWindow, len(windows))
		}
		if *req.AlternateWindow == req.PreferredWindow {
			return ErrSameAlternateWindow
		}
	}

	return nil
}

// isDateInPast проверяет, что дата розыгрыша раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}

func hasDuplicateIDs(ids []int64) bool {
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
	}
	return false
}
