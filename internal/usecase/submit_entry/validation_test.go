package submit_entry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fairwaylab/GC-LotteryService/internal/domain"
	"github.com/fairwaylab/GC-LotteryService/pkg/ptr"
	"github.com/fairwaylab/GC-LotteryService/pkg/types"
)

func validRequest() *Request {
	return &Request{
		OrganizerID:     100,
		Date:            time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
		PreferredWindow: 0,
	}
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(req *Request)
		wantErr error
	}{
		{
			name:   "valid individual request",
			mutate: func(req *Request) {},
		},
		{
			name: "valid group request with guests",
			mutate: func(req *Request) {
				req.AdditionalMemberIDs = []int64{101, 102}
				req.GuestIDs = []int64{9001}
				req.GuestFillCount = 1
				req.AlternateWindow = ptr.Ptr(2)
			},
		},
		{
			name:    "non-positive organizer",
			mutate:  func(req *Request) { req.OrganizerID = 0 },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "zero date",
			mutate:  func(req *Request) { req.Date = time.Time{} },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "negative preferred window",
			mutate:  func(req *Request) { req.PreferredWindow = -1 },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "negative alternate window",
			mutate:  func(req *Request) { req.AlternateWindow = ptr.Ptr(-2) },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "negative guest fill count",
			mutate:  func(req *Request) { req.GuestFillCount = -1 },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "non-positive additional member ID",
			mutate:  func(req *Request) { req.AdditionalMemberIDs = []int64{101, 0} },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "organizer listed as additional member",
			mutate:  func(req *Request) { req.AdditionalMemberIDs = []int64{100} },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "non-positive guest ID",
			mutate:  func(req *Request) { req.GuestIDs = []int64{-5} },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "duplicate additional member IDs",
			mutate:  func(req *Request) { req.AdditionalMemberIDs = []int64{101, 102, 101} },
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := validRequest()
			tt.mutate(req)

			err := validateRequest(req)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateParty(t *testing.T) {
	t.Parallel()

	cfg := &domain.DayConfig{MaxOccupantsPerSlot: 4}

	t.Run("full slot of members and guests fits", func(t *testing.T) {
		t.Parallel()

		req := validRequest()
		req.AdditionalMemberIDs = []int64{101}
		req.GuestIDs = []int64{9001}
		req.GuestFillCount = 1
		require.NoError(t, validateParty(req, cfg))
	})

	t.Run("too many members", func(t *testing.T) {
		t.Parallel()

		req := validRequest()
		req.AdditionalMemberIDs = []int64{101, 102, 103, 104}
		require.ErrorIs(t, validateParty(req, cfg), ErrTooManyMembers)
	})

	t.Run("party exceeds slot capacity", func(t *testing.T) {
		t.Parallel()

		req := validRequest()
		req.AdditionalMemberIDs = []int64{101}
		req.GuestIDs = []int64{9001, 9002}
		req.GuestFillCount = 1
		require.ErrorIs(t, validateParty(req, cfg), ErrPartyTooLarge)
	})
}

func TestValidateWindows(t *testing.T) {
	t.Parallel()

	windows := domain.ComputeWindows(&domain.DayConfig{
		OpenTime:              types.TimeString("07:00"),
		CloseTime:             types.TimeString("11:00"),
		WindowDurationMinutes: 120,
	})
	require.Len(t, windows, 2)

	t.Run("valid preferred and alternate", func(t *testing.T) {
		t.Parallel()

		req := validRequest()
		req.AlternateWindow = ptr.Ptr(1)
		require.NoError(t, validateWindows(req, windows))
	})

	t.Run("preferred window out of range", func(t *testing.T) {
		t.Parallel()

		req := validRequest()
		req.PreferredWindow = 2
		require.ErrorIs(t, validateWindows(req, windows), ErrInvalidWindow)
	})

	t.Run("alternate window out of range", func(t *testing.T) {
		t.Parallel()

		req := validRequest()
		req.AlternateWindow = ptr.Ptr(5)
		require.ErrorIs(t, validateWindows(req, windows), ErrInvalidWindow)
	})

	t.Run("alternate equals preferred", func(t *testing.T) {
		t.Parallel()

		req := validRequest()
		req.AlternateWindow = ptr.Ptr(0)
		require.ErrorIs(t, validateWindows(req, windows), ErrSameAlternateWindow)
	})
}

func TestIsDateInPast(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 6, 15, 14, 30, 0, 0, time.UTC)

	require.True(t, isDateInPast(time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC), now))
	// Сегодняшняя дата не считается прошедшей, даже если день уже начался
	require.False(t, isDateInPast(time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), now))
	require.False(t, isDateInPast(time.Date(2026, 6, 16, 0, 0, 0, 0, time.UTC), now))
}
