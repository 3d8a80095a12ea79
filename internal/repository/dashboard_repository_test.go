package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardRepositoryCounts(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewDashboardRepository(db)

	for i, table := range []string{"students", "teachers", "courses", "subjects", "assignments"} {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM " + table)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(i + 1))
	}

	counts, err := repo.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Students)
	assert.Equal(t, 2, counts.Teachers)
	assert.Equal(t, 3, counts.Courses)
	assert.Equal(t, 4, counts.Subjects)
	assert.Equal(t, 5, counts.Assignments)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardRepositoryStatusDistributions(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewDashboardRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT status, COUNT(*) AS count FROM courses GROUP BY status")).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).AddRow("Ongoing", 2).AddRow("Completed", 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status, COUNT(*) AS count FROM assignments GROUP BY status")).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}))

	courses, err := repo.CourseStatusDistribution(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "Ongoing", courses[0].Status)
	assert.Equal(t, 2, courses[0].Count)

	assignments, err := repo.AssignmentStatusDistribution(context.Background())
	require.NoError(t, err)
	assert.Empty(t, assignments)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardRepositoryRecentAssignments(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewDashboardRepository(db)

	rows := sqlmock.NewRows([]string{"id", "title", "subject_name", "due_date", "status"}).
		AddRow(int64(1), "Essay", "English", time.Now(), "Pending")
	mock.ExpectQuery("SELECT a.id, a.title, s.name AS subject_name").
		WithArgs(5).
		WillReturnRows(rows)

	assignments, err := repo.RecentAssignments(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	require.NotNil(t, assignments[0].SubjectName)
	assert.Equal(t, "English", *assignments[0].SubjectName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardRepositoryUpcomingAssignmentsWindow(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewDashboardRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("BETWEEN CURRENT_DATE AND CURRENT_DATE + INTERVAL '7 days'")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "due_date", "subject_name", "teacher_name"}).
			AddRow(int64(1), "Essay", time.Now(), "English", nil))

	assignments, err := repo.UpcomingAssignments(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, "Essay", assignments[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardRepositoryClassDistribution(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewDashboardRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT class, COUNT(*) AS count FROM students GROUP BY class ORDER BY class")).
		WillReturnRows(sqlmock.NewRows([]string{"class", "count"}).AddRow("10", 12).AddRow("11", 9))

	distribution, err := repo.ClassDistribution(context.Background())
	require.NoError(t, err)
	require.Len(t, distribution, 2)
	assert.Equal(t, "10", distribution[0].Class)
	assert.Equal(t, 12, distribution[0].Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
