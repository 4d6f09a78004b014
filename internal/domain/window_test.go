package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fairwaylab/GC-LotteryService/pkg/types"
)

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func dayConfig(t *testing.T, open, close string, windowMinutes int) *DayConfig {
	t.Helper()
	return &DayConfig{
		OpenTime:              mustTime(t, open),
		CloseTime:             mustTime(t, close),
		SlotIntervalMinutes:   DefaultSlotIntervalMinutes,
		MaxOccupantsPerSlot:   DefaultMaxOccupantsPerSlot,
		WindowDurationMinutes: windowMinutes,
	}
}

func TestComputeWindows(t *testing.T) {
	t.Parallel()

	t.Run("even split", func(t *testing.T) {
		windows := ComputeWindows(dayConfig(t, "07:00", "11:00", 60))
		require.Len(t, windows, 4)

		require.Equal(t, 0, windows[0].Index)
		require.Equal(t, "07:00-08:00", windows[0].Label)
		require.Equal(t, 7*60, windows[0].StartMinutes)
		require.Equal(t, 8*60, windows[0].EndMinutes)

		require.Equal(t, "10:00-11:00", windows[3].Label)
		require.Equal(t, 11*60, windows[3].EndMinutes)
	})

	t.Run("remainder goes to last window", func(t *testing.T) {
		// 07:00-11:30 = 270 минут, окно 60 минут => 5 окон по 54 минуты
		windows := ComputeWindows(dayConfig(t, "07:00", "11:30", 60))
		require.Len(t, windows, 5)

		for _, w := range windows[:4] {
			require.Equal(t, 54, w.EndMinutes-w.StartMinutes)
		}
		last := windows[4]
		require.Equal(t, 54, last.EndMinutes-last.StartMinutes)
		require.Equal(t, 11*60+30, last.EndMinutes)
	})

	t.Run("uneven remainder absorbed by last", func(t *testing.T) {
		// 08:00-09:40 = 100 минут, окно 45 минут => 3 окна: 33, 33, 34
		windows := ComputeWindows(dayConfig(t, "08:00", "09:40", 45))
		require.Len(t, windows, 3)
		require.Equal(t, 33, windows[0].EndMinutes-windows[0].StartMinutes)
		require.Equal(t, 33, windows[1].EndMinutes-windows[1].StartMinutes)
		require.Equal(t, 34, windows[2].EndMinutes-windows[2].StartMinutes)
		require.Equal(t, 9*60+40, windows[2].EndMinutes)
	})

	t.Run("windows are contiguous", func(t *testing.T) {
		windows := ComputeWindows(dayConfig(t, "06:30", "19:00", 90))
		for i := 1; i < len(windows); i++ {
			require.Equal(t, windows[i-1].EndMinutes, windows[i].StartMinutes)
			require.Equal(t, i, windows[i].Index)
		}
	})

	t.Run("deterministic for same config", func(t *testing.T) {
		cfg := dayConfig(t, "07:00", "18:00", 60)
		first := ComputeWindows(cfg)
		second := ComputeWindows(cfg)
		require.Equal(t, first, second)
	})

	t.Run("invalid configs produce no windows", func(t *testing.T) {
		require.Empty(t, ComputeWindows(nil))
		require.Empty(t, ComputeWindows(dayConfig(t, "11:00", "07:00", 60)))
		require.Empty(t, ComputeWindows(dayConfig(t, "07:00", "07:00", 60)))
		require.Empty(t, ComputeWindows(dayConfig(t, "07:00", "11:00", 0)))
	})
}

func TestWindowContains(t *testing.T) {
	t.Parallel()

	w := PreferenceWindow{Index: 0, StartMinutes: 7 * 60, EndMinutes: 8 * 60}

	require.True(t, w.Contains(7*60))
	require.True(t, w.Contains(7*60+59))
	// Граница [start, end): конец окна уже не входит
	require.False(t, w.Contains(8*60))
	require.False(t, w.Contains(6*60+59))
}

func TestFindWindowForMinutes(t *testing.T) {
	t.Parallel()

	windows := ComputeWindows(dayConfig(t, "07:00", "11:00", 60))

	w := FindWindowForMinutes(windows, 7*60+30)
	require.NotNil(t, w)
	require.Equal(t, 0, w.Index)

	w = FindWindowForMinutes(windows, 10*60+59)
	require.NotNil(t, w)
	require.Equal(t, 3, w.Index)

	require.Nil(t, FindWindowForMinutes(windows, 11*60))
	require.Nil(t, FindWindowForMinutes(windows, 6*60))
}

func TestOperatingSpanMinutes(t *testing.T) {
	t.Parallel()

	cfg := dayConfig(t, "07:00", "11:00", 60)
	span, err := cfg.OperatingSpanMinutes()
	require.NoError(t, err)
	require.Equal(t, 240, span)
}
