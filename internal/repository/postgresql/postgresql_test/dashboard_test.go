package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardRepository_Counts(t *testing.T) {
	db := newTestDB(t)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	repo := postgresql.NewDashboardRepository(db)
	ctx := context.Background()

	a := insertEmployee(t, db, "A", "employee", true)
	b := insertEmployee(t, db, "B", "employee", true)
	c := insertEmployee(t, db, "C", "employee", true)
	insertEmployee(t, db, "Gone", "employee", false)

	day := date("2024-01-10")
	records := []attendance.Record{
		{UserID: a, AttendanceDate: day, CheckIn: day.Add(time.Hour), Status: attendance.StatusPresent},
		{UserID: b, AttendanceDate: day, CheckIn: day.Add(3 * time.Hour), Status: attendance.StatusLate},
		{UserID: c, AttendanceDate: day, CheckIn: day, Status: attendance.StatusLeave},
		// next day, outside the window
		{UserID: a, AttendanceDate: day.AddDate(0, 0, 1), CheckIn: day.Add(25 * time.Hour), Status: attendance.StatusPresent},
	}
	for _, r := range records {
		_, err := attendanceRepo.Create(ctx, r)
		require.NoError(t, err)
	}

	active, err := repo.CountActiveEmployees(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), active)

	counts, err := repo.GetStatusCounts(ctx, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Present)
	assert.Equal(t, int64(1), counts.Late)
	assert.Equal(t, int64(1), counts.Leave)
	assert.Equal(t, int64(3), counts.Total())
}
