package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/noah-isme/academy-crm/internal/models"
)

const (
	dateLayout        = "2006-01-02"
	avatarURLTemplate = "https://picsum.photos/seed/%d/200"
	placeholderText   = "N/A"
	emailDomain       = "@example.com"
	defaultAttendance = 100
)

// timestamps the academy API is known to emit; naive ones are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	dateLayout,
}

// NormalizeStudent converts a server record into the display shape.
func NormalizeStudent(rec models.StudentRecord) (models.Student, error) {
	joined, err := parseTimestamp(rec.CreatedAt)
	if err != nil {
		return models.Student{}, fmt.Errorf("student %d: created_at: %w", rec.ID, err)
	}
	var groupID *int64
	if rec.GroupID != nil {
		id := *rec.GroupID
		groupID = &id
	}
	return models.Student{
		ID:         rec.ID,
		Name:       rec.FullName,
		DOB:        fmt.Sprintf("%d-01-01", rec.Year),
		GroupID:    groupID,
		Status:     models.StudentStatusFromActive(rec.IsActive),
		JoinedDate: joined.UTC().Format(dateLayout),
		AvatarURL:  fmt.Sprintf(avatarURLTemplate, rec.ID),
		Contact: &models.StudentContact{
			Phone:   placeholderText,
			Email:   placeholderEmail(rec.FullName),
			Address: placeholderText,
		},
		Performance: &models.StudentPerformance{Attendance: defaultAttendance},
	}, nil
}

// NormalizeStudents converts a whole list; one bad record fails the batch.
func NormalizeStudents(records []models.StudentRecord) ([]models.Student, error) {
	out := make([]models.Student, 0, len(records))
	for _, rec := range records {
		st, err := NormalizeStudent(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

func placeholderEmail(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", ".")) + emailDomain
}

func parseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", value)
}

// parseBirthYear accepts a calendar date or a full timestamp and returns its year.
func parseBirthYear(value string) (int, bool) {
	ts, err := parseTimestamp(value)
	if err != nil || ts.Year() <= 0 {
		return 0, false
	}
	return ts.Year(), true
}
