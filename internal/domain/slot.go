package domain

import (
	"time"

	"github.com/fairwaylab/GC-LotteryService/pkg/types"
)

// Slot represents a bookable tee-time block on a lottery date
type Slot struct {
	ID           int64
	LotteryDate  time.Time
	StartTime    types.TimeString
	MaxOccupants int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StartMinutes returns the slot start as minutes from midnight
func (s *Slot) StartMinutes() (int, error) {
	return s.StartTime.Minutes()
}

// SlotOccupancy емкость слота вместе с текущей занятостью
// Занятость считается по сумме размеров назначенных на слот заявок
type SlotOccupancy struct {
	Slot          Slot
	OccupiedSpots int
}

// AvailableSpots returns the remaining capacity of the slot
func (o *SlotOccupancy) AvailableSpots() int {
	remaining := o.Slot.MaxOccupants - o.OccupiedSpots
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsFull returns true if the slot has no remaining capacity
func (o *SlotOccupancy) IsFull() bool {
	return o.AvailableSpots() <= 0
}

// Fits returns true if a party of the given size fits into the remaining capacity
func (o *SlotOccupancy) Fits(partySize int) bool {
	return partySize <= o.AvailableSpots()
}
