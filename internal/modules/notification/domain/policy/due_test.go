package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func kst(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func day(y int, m time.Month, d int) *time.Time {
	v := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &v
}

func TestDuePolicy_Boundary(t *testing.T) {
	p := Default()
	open := day(2025, 6, 10)

	assert.False(t, p.IsDue(open, kst(t, "2025-06-09T11:59:59+09:00")))
	assert.True(t, p.IsDue(open, kst(t, "2025-06-09T12:00:00+09:00")))
	assert.True(t, p.IsDue(open, kst(t, "2025-06-09T12:00:01+09:00")))
}

func TestDuePolicy_ComparesInstants(t *testing.T) {
	p := Default()
	open := day(2025, 6, 10)

	// 2025-06-09 03:00 UTC == 12:00 KST
	assert.True(t, p.IsDue(open, time.Date(2025, 6, 9, 3, 0, 0, 0, time.UTC)))
	assert.False(t, p.IsDue(open, time.Date(2025, 6, 9, 2, 59, 59, 0, time.UTC)))
}

func TestDuePolicy_MissingDate(t *testing.T) {
	p := Default()
	far := time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.False(t, p.IsDue(nil, far))

	zero := time.Time{}
	assert.False(t, p.IsDue(&zero, far))
}

func TestDuePolicy_DueAtCrossesMonth(t *testing.T) {
	p := Default()
	due := p.DueAt(*day(2025, 7, 1))
	assert.Equal(t, "2025-06-30T12:00:00+09:00", due.Format(time.RFC3339))
}

func TestDuePolicy_Configurable(t *testing.T) {
	p := New("UTC", 2, 9)
	due := p.DueAt(*day(2025, 6, 10))
	assert.Equal(t, time.Date(2025, 6, 8, 9, 0, 0, 0, time.UTC), due.UTC())
}

func TestLoadLocation_Fallback(t *testing.T) {
	loc := LoadLocation("Not/AZone")
	_, offset := time.Date(2025, 1, 1, 0, 0, 0, 0, loc).Zone()
	assert.Equal(t, 9*60*60, offset)
}
