package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestMonthBounds(t *testing.T) {
	cases := []struct {
		in    string
		start string
		end   string
	}{
		{"2024-02-15", "2024-02-01", "2024-02-29"},
		{"2023-02-01", "2023-02-01", "2023-02-28"},
		{"2024-04-30", "2024-04-01", "2024-04-30"},
		{"2024-12-31", "2024-12-01", "2024-12-31"},
	}
	for _, c := range cases {
		start, end := MonthBounds(mustDate(t, c.in))
		assert.Equal(t, c.start, start, c.in)
		assert.Equal(t, c.end, end, c.in)
	}
}

func TestDaysInMonth(t *testing.T) {
	days := DaysInMonth(mustDate(t, "2024-06-10"))
	require.Len(t, days, 30)
	assert.Equal(t, "2024-06-01", days[0])
	assert.Equal(t, "2024-06-30", days[29])
	for i := 1; i < len(days); i++ {
		assert.Less(t, days[i-1], days[i])
	}
}

func TestDaysInRange_Inverted(t *testing.T) {
	assert.Nil(t, DaysInRange(mustDate(t, "2024-06-10"), mustDate(t, "2024-06-09")))
	assert.Equal(t, []string{"2024-06-10"}, DaysInRange(mustDate(t, "2024-06-10"), mustDate(t, "2024-06-10")))
}

func TestLastNDays(t *testing.T) {
	days := LastNDays(mustDate(t, "2024-03-02"), 7)
	assert.Equal(t, []string{
		"2024-02-25", "2024-02-26", "2024-02-27", "2024-02-28",
		"2024-02-29", "2024-03-01", "2024-03-02",
	}, days)
	assert.Nil(t, LastNDays(mustDate(t, "2024-03-02"), 0))
}

func TestIsSameDay(t *testing.T) {
	a := time.Date(2024, 5, 1, 0, 0, 1, 0, time.UTC)
	b := time.Date(2024, 5, 1, 23, 59, 59, 0, time.UTC)
	c := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	assert.True(t, IsSameDay(a, b))
	assert.False(t, IsSameDay(b, c))
}

func TestIsBusinessDay(t *testing.T) {
	assert.True(t, IsBusinessDay(mustDate(t, "2024-06-07")))  // Friday
	assert.False(t, IsBusinessDay(mustDate(t, "2024-06-08"))) // Saturday
	assert.False(t, IsBusinessDay(mustDate(t, "2024-06-09"))) // Sunday
	assert.True(t, IsBusinessDay(mustDate(t, "2024-06-10")))  // Monday
}

func TestFixedClock(t *testing.T) {
	at := time.Date(2024, 6, 10, 9, 15, 0, 0, time.UTC)
	clock := FixedClock(at)
	assert.Equal(t, "2024-06-10", Today(clock))
}
