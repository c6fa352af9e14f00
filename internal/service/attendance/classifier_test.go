package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/stretchr/testify/assert"
)

func at(hour, minute, second int) time.Time {
	return time.Date(2024, 1, 10, hour, minute, second, 0, time.UTC)
}

func TestClassify_Boundaries(t *testing.T) {
	day := &schedule.ScheduleDay{DayOfWeek: 3, IsWorkingDay: true, CheckInStart: "08:00:00", CheckInEnd: "09:30:00"}

	cases := []struct {
		name    string
		checkIn time.Time
		want    attendance.Status
	}{
		{"early", at(7, 15, 0), attendance.StatusPresent},
		{"inside window", at(8, 59, 0), attendance.StatusPresent},
		{"exactly at end", at(9, 30, 0), attendance.StatusPresent},
		{"seconds ignored at end", at(9, 30, 59), attendance.StatusPresent},
		{"one minute late", at(9, 31, 0), attendance.StatusLate},
		{"afternoon", at(14, 0, 0), attendance.StatusLate},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Classify(c.checkIn, day))
		})
	}
}

func TestClassify_AcceptsShortClock(t *testing.T) {
	day := &schedule.ScheduleDay{CheckInEnd: "09:30"}

	assert.Equal(t, attendance.StatusPresent, Classify(at(9, 30, 0), day))
	assert.Equal(t, attendance.StatusLate, Classify(at(9, 31, 0), day))
}

func TestClassify_FailsOpen(t *testing.T) {
	assert.Equal(t, attendance.StatusPresent, Classify(at(23, 59, 0), nil))

	for _, bad := range []string{"", "9.30", "25:00:00", "ab:cd"} {
		day := &schedule.ScheduleDay{CheckInEnd: bad}
		assert.Equal(t, attendance.StatusPresent, Classify(at(23, 59, 0), day), "check_in_end=%q", bad)
	}
}

func TestClassify_NonWorkingDayUsesSameRule(t *testing.T) {
	sunday := &schedule.ScheduleDay{DayOfWeek: 0, IsWorkingDay: false, CheckInEnd: "09:30:00"}

	assert.Equal(t, attendance.StatusLate, Classify(at(10, 0, 0), sunday))
	assert.Equal(t, attendance.StatusPresent, Classify(at(9, 0, 0), sunday))
}

func TestClassify_NeverAbsentOrLeave(t *testing.T) {
	day := &schedule.ScheduleDay{CheckInEnd: "09:30:00"}
	for minute := 0; minute < 24*60; minute += 7 {
		got := Classify(at(minute/60, minute%60, 0), day)
		assert.Contains(t, []attendance.Status{attendance.StatusPresent, attendance.StatusLate}, got)
	}
}
