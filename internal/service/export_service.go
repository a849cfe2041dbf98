package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/academy-crm/internal/dto"
	appErrors "github.com/noah-isme/academy-crm/pkg/errors"
	"github.com/noah-isme/academy-crm/pkg/export"
)

// Supported export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
}

type renderer interface {
	Render(data export.Dataset) ([]byte, error)
	ContentType() string
	Extension() string
}

type paymentLister interface {
	List() []dto.PaymentView
}

type studentLister interface {
	List(filter dto.StudentFilter) []dto.StudentView
}

// ExportFile is a rendered export ready to stream.
type ExportFile struct {
	Filename    string
	ContentType string
	Path        string // relative to the exports directory
	Body        []byte
}

// ExportService renders list views to CSV or PDF and keeps a copy on disk.
type ExportService struct {
	payments  paymentLister
	students  studentLister
	storage   fileStorage
	renderers map[string]renderer
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(payments paymentLister, students studentLister, storage fileStorage, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		payments: payments,
		students: students,
		storage:  storage,
		renderers: map[string]renderer{
			ExportFormatCSV: export.NewCSVExporter(),
			ExportFormatPDF: export.NewPDFExporter(),
		},
		logger: logger,
		now:    time.Now,
	}
}

// Payments exports the payment ledger.
func (s *ExportService) Payments(format string) (*ExportFile, error) {
	rows := s.payments.List()
	data := export.Dataset{
		Title:   "Payments",
		Headers: []string{"ID", "Student", "Amount", "Date", "Due Date", "Status"},
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, p := range rows {
		data.Rows = append(data.Rows, []string{
			p.ID,
			p.StudentName,
			strconv.FormatFloat(p.Amount, 'f', -1, 64),
			p.Date,
			p.DueDate,
			string(p.Status),
		})
	}
	return s.render("payments", format, data)
}

// Students exports the student list under the given filter.
func (s *ExportService) Students(format string, filter dto.StudentFilter) (*ExportFile, error) {
	rows := s.students.List(filter)
	data := export.Dataset{
		Title:   "Students",
		Headers: []string{"ID", "Name", "Date of Birth", "Group", "Status", "Joined"},
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, st := range rows {
		data.Rows = append(data.Rows, []string{
			strconv.FormatInt(st.ID, 10),
			st.Name,
			st.DOB,
			st.GroupName,
			string(st.Status),
			st.JoinedDate,
		})
	}
	return s.render("students", format, data)
}

func (s *ExportService) render(name, format string, data export.Dataset) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportFormatCSV
	}
	r, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
	body, err := r.Render(data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	filename := fmt.Sprintf("%s-%s-%s.%s", name, s.now().UTC().Format("20060102-150405"), uuid.NewString()[:8], r.Extension())
	path, err := s.storage.Save(filename, body)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store export")
	}
	s.logger.Info("export generated", zap.String("file", filename), zap.Int("rows", len(data.Rows)))
	return &ExportFile{Filename: filename, ContentType: r.ContentType(), Path: path, Body: body}, nil
}
