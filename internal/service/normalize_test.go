package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academy-crm/internal/models"
)

func TestNormalizeStudent(t *testing.T) {
	groupID := int64(4)
	st, err := NormalizeStudent(models.StudentRecord{
		ID:        12,
		FullName:  "Aziz Karimov",
		Year:      2013,
		GroupID:   &groupID,
		IsActive:  true,
		CreatedAt: "2024-03-10T23:30:00-02:00",
	})
	require.NoError(t, err)

	assert.Equal(t, "Aziz Karimov", st.Name)
	assert.Equal(t, "2013-01-01", st.DOB)
	assert.Equal(t, models.StudentStatusActive, st.Status)
	assert.Equal(t, "2024-03-11", st.JoinedDate)
	assert.Equal(t, "https://picsum.photos/seed/12/200", st.AvatarURL)
	require.NotNil(t, st.GroupID)
	assert.Equal(t, int64(4), *st.GroupID)
	assert.Equal(t, &models.StudentContact{Phone: "N/A", Email: "aziz.karimov@example.com", Address: "N/A"}, st.Contact)
	assert.Equal(t, &models.StudentPerformance{Goals: 0, Assists: 0, Attendance: 100}, st.Performance)
}

func TestNormalizeStudentNaiveTimestampIsUTC(t *testing.T) {
	st, err := NormalizeStudent(models.StudentRecord{ID: 1, FullName: "A", Year: 2015, CreatedAt: "2024-02-01T23:59:59.123456"})
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", st.JoinedDate)
	assert.Equal(t, models.StudentStatusInactive, st.Status)
	assert.Nil(t, st.GroupID)
}

func TestNormalizeStudentsFailsOnBadTimestamp(t *testing.T) {
	_, err := NormalizeStudents([]models.StudentRecord{
		{ID: 1, FullName: "A", Year: 2015, CreatedAt: "2024-02-01T00:00:00Z"},
		{ID: 2, FullName: "B", Year: 2015, CreatedAt: "yesterday"},
	})
	assert.Error(t, err)
}

func TestPlaceholderEmailKeepsEverySpace(t *testing.T) {
	assert.Equal(t, "ali..valiyev@example.com", placeholderEmail("Ali  Valiyev"))
}

func TestParseBirthYear(t *testing.T) {
	year, ok := parseBirthYear("2012-06-30")
	assert.True(t, ok)
	assert.Equal(t, 2012, year)

	year, ok = parseBirthYear("2011-05-01T00:00:00Z")
	assert.True(t, ok)
	assert.Equal(t, 2011, year)

	_, ok = parseBirthYear("not a date")
	assert.False(t, ok)
}
