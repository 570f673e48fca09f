package reports

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itjpay/billing-dashboard/internal/settings"
)

func TestNewScheduler_RejectsBadSpec(t *testing.T) {
	_, err := NewScheduler(NewService(payments(), settings.NewService(), DirUploader{Dir: t.TempDir()}, nil), "every monday")
	assert.Error(t, err)
}

func TestScheduler_NextIsMondayMorning(t *testing.T) {
	s, err := NewScheduler(NewService(payments(), settings.NewService(), DirUploader{Dir: t.TempDir()}, nil), WeeklySchedule)
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2024, time.March, 13, 12, 0, 0, 0, time.Local) }

	next := s.Next()
	assert.Equal(t, time.Monday, next.Weekday())
	assert.Equal(t, 6, next.Hour())
	assert.Equal(t, 18, next.Day())
}

func TestScheduler_RunWeeklyWritesReport(t *testing.T) {
	dir := t.TempDir()
	notes := &capture{}
	s, err := NewScheduler(NewService(payments(), settings.NewService(), DirUploader{Dir: dir}, notes), WeeklySchedule)
	require.NoError(t, err)
	s.now = func() time.Time { return now }

	s.runWeekly()

	assert.FileExists(t, filepath.Join(dir, "weekly", "payments-2024-03-11.xlsx"))
	assert.Len(t, notes.pushed, 1)
}
