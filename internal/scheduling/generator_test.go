package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func TestGenerate_Weekly(t *testing.T) {
	cadence := Cadence{
		StartDate:     date(2024, 9, 1), // Sunday
		DayOfWeek:     0,                // Monday
		TimeOfDay:     TimeOfDay{Hour: 12},
		IntervalWeeks: 1,
	}

	slots := Generate(cadence, date(2024, 9, 15), 1, 1)

	require.Len(t, slots, 2)
	assert.Equal(t, at(2024, 9, 2, 12, 0), slots[0].DateTime)
	assert.Equal(t, at(2024, 9, 9, 12, 0), slots[1].DateTime)
	for _, s := range slots {
		assert.Equal(t, uint64(1), s.TeamID)
		assert.Equal(t, uint64(1), s.ScheduleID)
	}
}

func TestGenerate_Biweekly(t *testing.T) {
	cadence := Cadence{
		StartDate:     date(2024, 9, 1),
		DayOfWeek:     2, // Wednesday
		TimeOfDay:     TimeOfDay{Hour: 14, Minute: 30},
		IntervalWeeks: 2,
	}

	slots := Generate(cadence, date(2024, 9, 20), 3, 9)

	require.Len(t, slots, 2)
	assert.Equal(t, at(2024, 9, 4, 14, 30), slots[0].DateTime)
	assert.Equal(t, at(2024, 9, 18, 14, 30), slots[1].DateTime)
	assert.Equal(t, uint64(3), slots[0].TeamID)
	assert.Equal(t, uint64(9), slots[0].ScheduleID)
}

func TestGenerate_Deterministic(t *testing.T) {
	cadence := Cadence{
		StartDate:     date(2025, 1, 10),
		DayOfWeek:     4,
		TimeOfDay:     TimeOfDay{Hour: 9, Minute: 15},
		IntervalWeeks: 2,
	}
	end := date(2025, 6, 1)

	assert.Equal(t, Generate(cadence, end, 5, 6), Generate(cadence, end, 5, 6))
}

func TestGenerate_BoundsAndCadence(t *testing.T) {
	end := date(2024, 12, 20)

	for dow := 0; dow < 7; dow++ {
		for _, interval := range []int{1, 2} {
			cadence := Cadence{
				StartDate:     date(2024, 9, 3),
				DayOfWeek:     dow,
				TimeOfDay:     TimeOfDay{Hour: 18},
				IntervalWeeks: interval,
			}

			slots := Generate(cadence, end, 1, 1)
			require.NotEmpty(t, slots)

			for i, s := range slots {
				assert.False(t, DateOf(s.DateTime).After(end), "slot %v exceeds end date", s.DateTime)
				assert.Equal(t, dow, MondayBasedWeekday(s.DateTime))
				if i > 0 {
					gap := s.DateTime.Sub(slots[i-1].DateTime)
					assert.Equal(t, time.Duration(interval*7*24)*time.Hour, gap)
				}
			}

			// The slot after the last one would be past the end date.
			next := DateOf(slots[len(slots)-1].DateTime).AddDate(0, 0, interval*7)
			assert.True(t, next.After(end))
		}
	}
}

func TestGenerate_StartOnMatchingDay(t *testing.T) {
	cadence := Cadence{
		StartDate:     date(2024, 9, 2), // Monday
		DayOfWeek:     0,
		TimeOfDay:     TimeOfDay{Hour: 8},
		IntervalWeeks: 1,
	}

	slots := Generate(cadence, date(2024, 9, 2), 1, 1)

	require.Len(t, slots, 1)
	assert.Equal(t, at(2024, 9, 2, 8, 0), slots[0].DateTime)
}

func TestGenerate_EmptyWhenFirstOccurrencePastEnd(t *testing.T) {
	cadence := Cadence{
		StartDate:     date(2024, 9, 1),
		DayOfWeek:     5, // Saturday, 2024-09-07
		TimeOfDay:     TimeOfDay{Hour: 10},
		IntervalWeeks: 1,
	}

	assert.Empty(t, Generate(cadence, date(2024, 9, 6), 1, 1))
}

func TestGenerate_EndDateTimeComponentIgnored(t *testing.T) {
	cadence := Cadence{
		StartDate:     date(2024, 9, 1),
		DayOfWeek:     0,
		TimeOfDay:     TimeOfDay{Hour: 23, Minute: 30},
		IntervalWeeks: 1,
	}

	slots := Generate(cadence, at(2024, 9, 9, 1, 0), 1, 1)

	require.Len(t, slots, 2)
	assert.Equal(t, at(2024, 9, 9, 23, 30), slots[1].DateTime)
}

func TestFirstOccurrence(t *testing.T) {
	sunday := date(2024, 9, 1)

	tests := []struct {
		dow  int
		want time.Time
	}{
		{0, date(2024, 9, 2)},
		{3, date(2024, 9, 5)},
		{6, date(2024, 9, 1)},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FirstOccurrence(sunday, tt.dow), "day_of_week=%d", tt.dow)
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("14:30")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay{Hour: 14, Minute: 30}, tod)
	assert.Equal(t, "14:30:00", tod.String())

	tod, err = ParseTimeOfDay("07:05:09")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay{Hour: 7, Minute: 5, Second: 9}, tod)

	_, err = ParseTimeOfDay("25:00")
	assert.Error(t, err)
}

func TestTimeOfDay_ScanAndJSON(t *testing.T) {
	var tod TimeOfDay
	require.NoError(t, tod.Scan([]byte("12:00:00")))
	assert.Equal(t, TimeOfDay{Hour: 12}, tod)

	require.NoError(t, tod.UnmarshalJSON([]byte(`"09:45"`)))
	out, err := tod.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `"09:45:00"`, string(out))

	assert.Error(t, tod.Scan(42))
}
