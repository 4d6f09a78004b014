package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		ts, err := NewTimeStringFromString("07:30")
		require.NoError(t, err)
		require.Equal(t, TimeString("07:30"), ts)
	})

	t.Run("invalid format", func(t *testing.T) {
		t.Parallel()

		for _, s := range []string{"7:30", "25:00", "07:60", "0730", "abc", ""} {
			_, err := NewTimeStringFromString(s)
			require.ErrorIs(t, err, ErrInvalidTimeString, "input %q", s)
		}
	})
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		minutes int
		want    TimeString
	}{
		{0, "00:00"},
		{429, "07:09"},
		{720, "12:00"},
		{1439, "23:59"},
	}
	for _, tt := range tests {
		ts, err := NewTimeStringFromMinutes(tt.minutes)
		require.NoError(t, err)
		require.Equal(t, tt.want, ts)
	}

	for _, minutes := range []int{-1, 1440, 5000} {
		_, err := NewTimeStringFromMinutes(minutes)
		require.ErrorIs(t, err, ErrTimeOutOfRange, "minutes %d", minutes)
	}
}

func TestTimeStringMinutes(t *testing.T) {
	t.Parallel()

	minutes, err := TimeString("09:45").Minutes()
	require.NoError(t, err)
	require.Equal(t, 585, minutes)

	_, err = TimeString("garbage").Minutes()
	require.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeStringAddMinutes(t *testing.T) {
	t.Parallel()

	ts, err := TimeString("09:50").AddMinutes(25)
	require.NoError(t, err)
	require.Equal(t, TimeString("10:15"), ts)

	_, err = TimeString("23:50").AddMinutes(15)
	require.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeStringComparison(t *testing.T) {
	t.Parallel()

	require.True(t, TimeString("07:00").IsBefore("07:01"))
	require.False(t, TimeString("07:01").IsBefore("07:00"))
	require.True(t, TimeString("18:00").IsAfter("09:00"))
	require.False(t, TimeString("09:00").IsAfter("09:00"))
}

func TestTimeStringScan(t *testing.T) {
	t.Parallel()

	t.Run("string with seconds", func(t *testing.T) {
		t.Parallel()

		var ts TimeString
		require.NoError(t, ts.Scan("07:30:00"))
		require.Equal(t, TimeString("07:30"), ts)
	})

	t.Run("bytes", func(t *testing.T) {
		t.Parallel()

		var ts TimeString
		require.NoError(t, ts.Scan([]byte("16:45")))
		require.Equal(t, TimeString("16:45"), ts)
	})

	t.Run("time.Time", func(t *testing.T) {
		t.Parallel()

		var ts TimeString
		require.NoError(t, ts.Scan(time.Date(2026, 1, 1, 8, 15, 33, 0, time.UTC)))
		require.Equal(t, TimeString("08:15"), ts)
	})

	t.Run("nil resets to zero", func(t *testing.T) {
		t.Parallel()

		ts := TimeString("07:00")
		require.NoError(t, ts.Scan(nil))
		require.True(t, ts.IsZero())
	})

	t.Run("unsupported type", func(t *testing.T) {
		t.Parallel()

		var ts TimeString
		require.ErrorIs(t, ts.Scan(42), ErrInvalidTimeString)
	})
}

func TestTimeStringValue(t *testing.T) {
	t.Parallel()

	v, err := TimeString("07:30").Value()
	require.NoError(t, err)
	require.Equal(t, "07:30", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	require.Nil(t, v)

	_, err = TimeString("nope").Value()
	require.ErrorIs(t, err, ErrInvalidTimeString)
}
