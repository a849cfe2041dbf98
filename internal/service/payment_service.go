package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/academy-crm/internal/dto"
	"github.com/noah-isme/academy-crm/internal/models"
	"github.com/noah-isme/academy-crm/internal/repository"
)

const unknownStudentName = "Unknown Student"

type paymentWriter interface {
	CreatePayment(ctx context.Context, token string, payload models.PaymentPayload) error
}

// PaymentConfig tunes monthly invoicing.
type PaymentConfig struct {
	MonthlyFee float64
	DueDay     int
}

// PaymentService keeps the payment ledger. The academy API accepts payments but cannot
// list them, so the ledger lives in the gateway cache.
type PaymentService struct {
	client    paymentWriter
	state     *repository.StateRepository
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       PaymentConfig
	now       func() time.Time
}

// NewPaymentService constructs a PaymentService.
func NewPaymentService(client paymentWriter, state *repository.StateRepository, metrics *MetricsService, cfg PaymentConfig, validate *validator.Validate, logger *zap.Logger) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if cfg.MonthlyFee <= 0 {
		cfg.MonthlyFee = 500000
	}
	if cfg.DueDay < 1 || cfg.DueDay > 28 {
		cfg.DueDay = 5
	}
	return &PaymentService{client: client, state: state, metrics: metrics, validator: validate, logger: logger, cfg: cfg, now: time.Now}
}

// List returns the ledger as stored, newest first, with student names resolved.
func (s *PaymentService) List() []dto.PaymentView {
	snap := s.state.Snapshot()
	names := studentNames(snap.Students)
	views := make([]dto.PaymentView, 0, len(snap.Payments))
	for _, p := range snap.Payments {
		views = append(views, dto.PaymentView{Payment: p, StudentName: nameOr(names, p.StudentID, unknownStudentName)})
	}
	return views
}

// Record posts a payment and prepends the matching local ledger line.
func (s *PaymentService) Record(ctx context.Context, req dto.RecordPaymentRequest) (*dto.MutationResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "student, amount, due date and status are required")
	}
	due, err := time.Parse(dateLayout, req.DueDate)
	if err != nil {
		return nil, validationError(err, "Invalid due date")
	}
	if req.Date != "" {
		if _, err := time.Parse(dateLayout, req.Date); err != nil {
			return nil, validationError(err, "Invalid payment date")
		}
	}
	token, err := requireToken(s.state)
	if err != nil {
		return nil, err
	}
	ctx = context.WithoutCancel(ctx)

	today := s.now().Format(dateLayout)
	paymentDate := req.Date
	if paymentDate == "" {
		paymentDate = today
	}
	status := models.BackendPaymentPending
	if req.Status == models.PaymentStatusPaid {
		status = models.BackendPaymentPaid
	}
	payload := models.PaymentPayload{
		StudentID:   req.StudentID,
		Year:        due.Year(),
		Month:       int(due.Month()),
		Amount:      req.Amount,
		PaymentDate: paymentDate,
		Status:      status,
		Source:      models.PaymentSourceManual,
		Note:        "Recorded via CRM on " + today,
	}
	if err := s.client.CreatePayment(ctx, token, payload); err != nil {
		s.logger.Warn("create payment failed", zap.Error(err))
		return nil, mutationError("record payment", err)
	}

	record := models.Payment{
		ID:        syntheticID("p_local", s.now()),
		StudentID: req.StudentID,
		Amount:    req.Amount,
		Date:      req.Date,
		DueDate:   req.DueDate,
		Status:    req.Status,
	}
	s.state.PrependPayments(record)
	s.metrics.RecordLocalRecords(models.EntityPayments, 1)
	return &dto.MutationResult{
		Message:        "Payment recorded successfully!",
		Entity:         models.EntityPayments,
		Reconciliation: models.ReconcileLocalAppend,
		SessionActive:  true,
		Record:         record,
	}, nil
}

// GenerateInvoices bills every active student who has no payment due this month. The new
// lines exist only in the gateway cache.
func (s *PaymentService) GenerateInvoices(_ context.Context) (*dto.MutationResult, error) {
	if _, err := requireToken(s.state); err != nil {
		return nil, err
	}
	now := s.now()
	dueDate := time.Date(now.Year(), now.Month(), s.cfg.DueDay, 0, 0, 0, 0, now.Location()).Format(dateLayout)

	created := s.state.PrependPaymentsFunc(func(students []models.Student, payments []models.Payment) []models.Payment {
		billed := make(map[int64]bool, len(payments))
		for _, p := range payments {
			due, err := time.Parse(dateLayout, p.DueDate)
			if err != nil {
				continue
			}
			if due.Year() == now.Year() && due.Month() == now.Month() {
				billed[p.StudentID] = true
			}
		}
		var out []models.Payment
		for _, st := range students {
			if st.Status != models.StudentStatusActive || billed[st.ID] {
				continue
			}
			out = append(out, models.Payment{
				ID:        fmt.Sprintf("p_new_%d_%d", st.ID, now.UnixMilli()),
				StudentID: st.ID,
				Amount:    s.cfg.MonthlyFee,
				Date:      "",
				DueDate:   dueDate,
				Status:    models.PaymentStatusDue,
			})
		}
		return out
	})

	s.metrics.RecordLocalRecords(models.EntityPayments, len(created))
	s.logger.Info("monthly invoices generated", zap.Int("count", len(created)), zap.String("due_date", dueDate))
	if created == nil {
		created = []models.Payment{}
	}
	return &dto.MutationResult{
		Message:        fmt.Sprintf("%d new monthly invoices generated!", len(created)),
		Entity:         models.EntityPayments,
		Reconciliation: models.ReconcileLocalAppend,
		SessionActive:  true,
		Record:         dto.InvoiceRun{Generated: len(created), DueDate: dueDate, Payments: created},
	}, nil
}

func studentNames(students []models.Student) map[int64]string {
	names := make(map[int64]string, len(students))
	for _, st := range students {
		names[st.ID] = st.Name
	}
	return names
}

func nameOr(names map[int64]string, id int64, fallback string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return fallback
}
