package service

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/academy-crm/internal/dto"
	"github.com/noah-isme/academy-crm/internal/models"
	appErrors "github.com/noah-isme/academy-crm/pkg/errors"
	"github.com/noah-isme/academy-crm/pkg/storage"
)

func newExportServiceForTest(t *testing.T) (*ExportService, *storage.LocalStorage) {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir(), 0o600)
	require.NoError(t, err)

	state := loggedInState(t,
		[]models.Group{{ID: 1, Name: "U-10 Lions"}},
		[]models.Student{{ID: 1, Name: "Aziz Karimov", DOB: "2014-01-01", GroupID: int64Ptr(1), Status: models.StudentStatusActive, JoinedDate: "2024-01-01"}},
		nil)
	payments := NewPaymentService(&fakeAcademy{}, state, nil, PaymentConfig{}, nil, nil)
	students := NewStudentService(&fakeAcademy{}, state, nil, nil, nil, nil)
	return NewExportService(payments, students, store, zap.NewNop()), store
}

func TestExportPaymentsCSV(t *testing.T) {
	svc, store := newExportServiceForTest(t)

	file, err := svc.Payments("")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(file.Filename, "payments-"))
	assert.True(t, strings.HasSuffix(file.Filename, ".csv"))
	assert.Equal(t, "text/csv; charset=utf-8", file.ContentType)

	lines := strings.Split(strings.TrimSpace(string(file.Body)), "\n")
	assert.Equal(t, "ID,Student,Amount,Date,Due Date,Status", lines[0])
	assert.Len(t, lines, len(models.SeedPayments())+1)
	assert.Contains(t, lines[1], "p1,Aziz Karimov,500000,2024-07-01,2024-07-05,Paid")

	onDisk, err := os.ReadFile(store.Path(file.Path))
	require.NoError(t, err)
	assert.Equal(t, file.Body, onDisk)
}

func TestExportStudentsPDF(t *testing.T) {
	svc, _ := newExportServiceForTest(t)

	file, err := svc.Students("PDF", dto.StudentFilter{})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasPrefix(string(file.Body), "%PDF"))
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	svc, _ := newExportServiceForTest(t)
	_, err := svc.Payments("xlsx")
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}
