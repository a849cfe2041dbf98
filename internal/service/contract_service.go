package service

import (
	"context"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/academy-crm/internal/dto"
	"github.com/noah-isme/academy-crm/internal/models"
	"github.com/noah-isme/academy-crm/internal/repository"
)

const (
	unknownPersonName     = "Unknown Person"
	contractNumberMessage = "Contract number must be numeric"
)

type contractWriter interface {
	CreateContract(ctx context.Context, token string, payload models.ContractPayload) error
}

// ContractService keeps the contract list. Like payments, contracts are write-only on the
// academy API and are cached in the gateway.
type ContractService struct {
	client    contractWriter
	state     *repository.StateRepository
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewContractService constructs a ContractService.
func NewContractService(client contractWriter, state *repository.StateRepository, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *ContractService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ContractService{client: client, state: state, metrics: metrics, validator: validate, logger: logger, now: time.Now}
}

// List returns contracts newest contract date first, with names resolved.
func (s *ContractService) List() []dto.ContractView {
	snap := s.state.Snapshot()
	students := studentNames(snap.Students)
	persons := make(map[int64]string, len(snap.Persons))
	for _, p := range snap.Persons {
		persons[p.ID] = p.FullName()
	}

	views := make([]dto.ContractView, 0, len(snap.Contracts))
	for _, c := range snap.Contracts {
		views = append(views, dto.ContractView{
			Contract:              c,
			StudentName:           nameOr(students, c.StudentID, unknownStudentName),
			ResponsiblePersonName: nameOr(persons, c.ResponsiblePersonID, unknownPersonName),
		})
	}
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].ContractDate > views[j].ContractDate
	})
	return views
}

// Create posts a contract and prepends the matching local record.
func (s *ContractService) Create(ctx context.Context, req dto.CreateContractRequest) (*dto.MutationResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "student, contract number and responsible person are required")
	}
	number, err := strconv.ParseFloat(strings.TrimSpace(req.ContractNumber), 64)
	if err != nil {
		return nil, validationError(err, contractNumberMessage)
	}
	if math.IsNaN(number) || math.IsInf(number, 0) {
		return nil, validationError(nil, contractNumberMessage)
	}
	token, err := requireToken(s.state)
	if err != nil {
		return nil, err
	}
	ctx = context.WithoutCancel(ctx)

	now := s.now()
	contractDate := req.ContractDate
	if contractDate == "" {
		contractDate = now.Format(dateLayout)
	}
	expiryDate := req.ExpiryDate
	if expiryDate == "" {
		expiryDate = now.AddDate(1, 0, 0).Format(dateLayout)
	}
	active := boolOrDefault(req.IsActive, true)

	payload := models.ContractPayload{
		StudentID:           req.StudentID,
		ContractNumber:      number,
		ContractDate:        contractDate,
		ExpiryDate:          expiryDate,
		ResponsiblePersonID: req.ResponsiblePersonID,
		IsActive:            active,
		ExpiryReason:        req.ExpiryReason,
	}
	if err := s.client.CreateContract(ctx, token, payload); err != nil {
		s.logger.Warn("create contract failed", zap.Error(err))
		return nil, mutationError("create contract", err)
	}

	record := models.Contract{
		ID:                  syntheticID("c_local", now),
		StudentID:           req.StudentID,
		ContractNumber:      req.ContractNumber,
		ContractDate:        contractDate,
		ExpiryDate:          expiryDate,
		ResponsiblePersonID: req.ResponsiblePersonID,
		IsActive:            active,
		ExpiryReason:        req.ExpiryReason,
	}
	s.state.PrependContract(record)
	s.metrics.RecordLocalRecords(models.EntityContracts, 1)
	return &dto.MutationResult{
		Message:        "Contract created successfully!",
		Entity:         models.EntityContracts,
		Reconciliation: models.ReconcileLocalAppend,
		SessionActive:  true,
		Record:         record,
	}, nil
}
