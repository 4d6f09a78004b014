package open_lottery_day

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fairwaylab/GC-LotteryService/internal/domain"
	"github.com/fairwaylab/GC-LotteryService/pkg/types"
)

func gridConfig() *domain.DayConfig {
	return &domain.DayConfig{
		OpenTime:              types.TimeString("07:00"),
		CloseTime:             types.TimeString("09:00"),
		SlotIntervalMinutes:   10,
		MaxOccupantsPerSlot:   4,
		WindowDurationMinutes: 60,
	}
}

func TestGenerateSlotGrid(t *testing.T) {
	t.Parallel()

	date := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("full grid at the configured interval", func(t *testing.T) {
		t.Parallel()

		slots, err := generateSlotGrid(gridConfig(), date)
		require.NoError(t, err)
		require.Len(t, slots, 12)

		require.Equal(t, types.TimeString("07:00"), slots[0].StartTime)
		require.Equal(t, types.TimeString("07:10"), slots[1].StartTime)
		require.Equal(t, types.TimeString("08:50"), slots[11].StartTime)
		for _, s := range slots {
			require.Equal(t, date, s.LotteryDate)
			require.Equal(t, 4, s.MaxOccupants)
		}
	})

	t.Run("interval not dividing the span evenly", func(t *testing.T) {
		t.Parallel()

		cfg := gridConfig()
		cfg.CloseTime = types.TimeString("07:25")

		slots, err := generateSlotGrid(cfg, date)
		require.NoError(t, err)
		require.Len(t, slots, 3)
		require.Equal(t, types.TimeString("07:20"), slots[2].StartTime)
	})

	t.Run("invalid configurations", func(t *testing.T) {
		t.Parallel()

		badInterval := gridConfig()
		badInterval.SlotIntervalMinutes = 0

		badOccupants := gridConfig()
		badOccupants.MaxOccupantsPerSlot = 0

		inverted := gridConfig()
		inverted.OpenTime = types.TimeString("10:00")

		for _, cfg := range []*domain.DayConfig{badInterval, badOccupants, inverted} {
			_, err := generateSlotGrid(cfg, date)
			require.Error(t, err)
		}
	})
}
