package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/workline-hq/hrms-backend-go/internal/domain/employee"
	"github.com/workline-hq/hrms-backend-go/internal/domain/payroll"
	"github.com/workline-hq/hrms-backend-go/internal/domain/performance"
	"github.com/workline-hq/hrms-backend-go/internal/pkg/validator"
)

// ========================================
// ITEM SERVICE
// ========================================

type ItemServiceImpl struct {
	payroll.ItemRepository
}

func NewItemService(itemRepository payroll.ItemRepository) *ItemServiceImpl {
	return &ItemServiceImpl{ItemRepository: itemRepository}
}

// CreateItemType implements payroll.ItemService.
func (s *ItemServiceImpl) CreateItemType(ctx context.Context, req *payroll.CreateSalaryItemTypeRequest) (*payroll.SalaryItemTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	it := payroll.SalaryItemType{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Code:        req.Code,
		IsTaxable:   req.IsTaxable,
		IsBenefit:   req.IsBenefit,
		IsDeduction: req.IsDeduction,
		Description: req.Description,
	}

	stored, err := s.ItemRepository.CreateItemType(ctx, it)
	if err != nil {
		return nil, err
	}

	resp := toItemTypeResponse(stored)
	return &resp, nil
}

// ListItemTypes implements payroll.ItemService.
func (s *ItemServiceImpl) ListItemTypes(ctx context.Context) ([]payroll.SalaryItemTypeResponse, error) {
	types, err := s.ItemRepository.ListItemTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary item types: %w", err)
	}

	responses := make([]payroll.SalaryItemTypeResponse, 0, len(types))
	for _, it := range types {
		responses = append(responses, toItemTypeResponse(it))
	}

	return responses, nil
}

// CreateItem implements payroll.ItemService.
func (s *ItemServiceImpl) CreateItem(ctx context.Context, req *payroll.CreateSalaryItemRequest) (*payroll.SalaryItemResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	amount := decimal.Zero
	if req.DefaultAmount != "" {
		amount, _ = validator.IsValidAmount(req.DefaultAmount)
	}

	item := payroll.SalaryItem{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Code:          req.Code,
		ItemTypeID:    req.ItemTypeID,
		DefaultAmount: amount,
		IsActive:      true,
		Description:   req.Description,
	}

	stored, err := s.ItemRepository.CreateItem(ctx, item)
	if err != nil {
		return nil, err
	}

	resp := toItemResponse(stored)
	return &resp, nil
}

// UpdateItem implements payroll.ItemService.
func (s *ItemServiceImpl) UpdateItem(ctx context.Context, req *payroll.UpdateSalaryItemRequest) (*payroll.SalaryItemResponse, error) {
	if validator.IsEmpty(req.ID) {
		return nil, validator.ValidationErrors{{Field: "id", Message: "id is required"}}
	}
	if req.DefaultAmount != nil {
		if _, ok := validator.IsValidAmount(*req.DefaultAmount); !ok {
			return nil, validator.ValidationErrors{{Field: "default_amount", Message: "default_amount must be a non-negative number"}}
		}
	}

	if err := s.ItemRepository.UpdateItem(ctx, *req); err != nil {
		return nil, err
	}

	updated, err := s.ItemRepository.GetItemByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	resp := toItemResponse(updated)
	return &resp, nil
}

// DeactivateItem implements payroll.ItemService. Payment detail rows keep
// referencing the item, so it is retired rather than removed.
func (s *ItemServiceImpl) DeactivateItem(ctx context.Context, id string) error {
	if validator.IsEmpty(id) {
		return validator.ValidationErrors{{Field: "id", Message: "id is required"}}
	}
	return s.ItemRepository.DeleteItem(ctx, id)
}

// ListItems implements payroll.ItemService.
func (s *ItemServiceImpl) ListItems(ctx context.Context, activeOnly bool) ([]payroll.SalaryItemResponse, error) {
	items, err := s.ItemRepository.ListItems(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary items: %w", err)
	}

	responses := make([]payroll.SalaryItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, toItemResponse(item))
	}

	return responses, nil
}

func toItemTypeResponse(it payroll.SalaryItemType) payroll.SalaryItemTypeResponse {
	return payroll.SalaryItemTypeResponse{
		ID:          it.ID,
		Name:        it.Name,
		Code:        it.Code,
		IsTaxable:   it.IsTaxable,
		IsBenefit:   it.IsBenefit,
		IsDeduction: it.IsDeduction,
		Description: it.Description,
	}
}

func toItemResponse(item payroll.SalaryItem) payroll.SalaryItemResponse {
	return payroll.SalaryItemResponse{
		ID:            item.ID,
		Name:          item.Name,
		Code:          item.Code,
		ItemTypeID:    item.ItemTypeID,
		TypeCode:      item.TypeCode,
		DefaultAmount: item.DefaultAmount.StringFixed(2),
		IsActive:      item.IsActive,
		Description:   item.Description,
	}
}

// ========================================
// STRUCTURE SERVICE
// ========================================

type StructureServiceImpl struct {
	payroll.StructureRepository
	payroll.ItemRepository
}

func NewStructureService(structureRepository payroll.StructureRepository, itemRepository payroll.ItemRepository) *StructureServiceImpl {
	return &StructureServiceImpl{
		StructureRepository: structureRepository,
		ItemRepository:      itemRepository,
	}
}

// CreateStructure implements payroll.StructureService.
func (s *StructureServiceImpl) CreateStructure(ctx context.Context, req *payroll.CreateSalaryStructureRequest) (*payroll.SalaryStructureResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	structure := payroll.SalaryStructure{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		IsDefault:   req.IsDefault,
		Details:     make([]payroll.SalaryStructureDetail, 0, len(req.Details)),
	}

	for _, d := range req.Details {
		item, err := s.ItemRepository.GetItemByID(ctx, d.ItemID)
		if err != nil {
			return nil, err
		}
		if !item.IsActive {
			return nil, fmt.Errorf("%w: %s", payroll.ErrItemInactive, item.Code)
		}

		amount := item.DefaultAmount
		if d.Amount != "" {
			amount, _ = validator.IsValidAmount(d.Amount)
		}

		structure.Details = append(structure.Details, payroll.SalaryStructureDetail{
			ID:          uuid.NewString(),
			StructureID: structure.ID,
			ItemID:      d.ItemID,
			Amount:      amount,
			SortOrder:   d.SortOrder,
			Formula:     d.Formula,
			IsFixed:     d.IsFixed,
		})
	}

	stored, err := s.StructureRepository.Create(ctx, structure)
	if err != nil {
		return nil, err
	}

	resp := toStructureResponse(stored)
	return &resp, nil
}

// GetStructure implements payroll.StructureService.
func (s *StructureServiceImpl) GetStructure(ctx context.Context, id string) (*payroll.SalaryStructureResponse, error) {
	structure, err := s.StructureRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toStructureResponse(structure)
	return &resp, nil
}

// ListStructures implements payroll.StructureService.
func (s *StructureServiceImpl) ListStructures(ctx context.Context) ([]payroll.SalaryStructureResponse, error) {
	structures, err := s.StructureRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary structures: %w", err)
	}

	responses := make([]payroll.SalaryStructureResponse, 0, len(structures))
	for _, st := range structures {
		responses = append(responses, toStructureResponse(st))
	}

	return responses, nil
}

// DeleteStructure implements payroll.StructureService.
func (s *StructureServiceImpl) DeleteStructure(ctx context.Context, id string) error {
	return s.StructureRepository.Delete(ctx, id)
}

func toStructureResponse(st payroll.SalaryStructure) payroll.SalaryStructureResponse {
	resp := payroll.SalaryStructureResponse{
		ID:          st.ID,
		Name:        st.Name,
		Description: st.Description,
		IsDefault:   st.IsDefault,
		Details:     make([]payroll.StructureDetailResponse, 0, len(st.Details)),
	}
	for _, d := range st.Details {
		resp.Details = append(resp.Details, payroll.StructureDetailResponse{
			ItemID:    d.ItemID,
			ItemName:  d.ItemName,
			ItemCode:  d.ItemCode,
			Amount:    d.Amount.StringFixed(2),
			SortOrder: d.SortOrder,
			Formula:   d.Formula,
			IsFixed:   d.IsFixed,
		})
	}
	return resp
}

// ========================================
// CONFIG SERVICE
// ========================================

type ConfigServiceImpl struct {
	payroll.ConfigRepository
	payroll.ItemRepository
	employee.EmployeeRepository
	payroll.StructureRepository
	defaultExemption decimal.Decimal
}

func NewConfigService(
	configRepository payroll.ConfigRepository,
	itemRepository payroll.ItemRepository,
	employeeRepository employee.EmployeeRepository,
	structureRepository payroll.StructureRepository,
	defaultExemption decimal.Decimal,
) *ConfigServiceImpl {
	return &ConfigServiceImpl{
		ConfigRepository:    configRepository,
		ItemRepository:      itemRepository,
		EmployeeRepository:  employeeRepository,
		StructureRepository: structureRepository,
		defaultExemption:    defaultExemption,
	}
}

// UpsertConfig implements payroll.ConfigService.
func (s *ConfigServiceImpl) UpsertConfig(ctx context.Context, req *payroll.UpsertSalaryConfigRequest) (*payroll.SalaryConfigResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return nil, err
	}

	structureID := req.StructureID
	if structureID == nil {
		def, err := s.StructureRepository.GetDefault(ctx)
		if err != nil && !errors.Is(err, payroll.ErrStructureNotFound) {
			return nil, err
		}
		if err == nil {
			structureID = &def.ID
		}
	} else if _, err := s.StructureRepository.GetByID(ctx, *structureID); err != nil {
		return nil, err
	}

	basic, _ := validator.IsValidAmount(req.BasicSalary)
	effectiveDate, _ := validator.IsValidDate(req.EffectiveDate)

	cfg := payroll.SalaryConfig{
		ID:                   uuid.NewString(),
		EmployeeID:           req.EmployeeID,
		StructureID:          structureID,
		BasicSalary:          basic,
		PositionSalary:       amountOrZero(req.PositionSalary),
		PerformanceSalary:    amountOrZero(req.PerformanceSalary),
		Bonus:                amountOrZero(req.Bonus),
		SocialInsuranceBase:  amountPtr(req.SocialInsuranceBase),
		MedicalInsuranceBase: amountPtr(req.MedicalInsuranceBase),
		HousingFundBase:      amountPtr(req.HousingFundBase),
		TaxExemption:         s.defaultExemption,
		EffectiveDate:        effectiveDate,
		Note:                 req.Note,
	}
	if req.TaxExemption != nil {
		cfg.TaxExemption, _ = validator.IsValidAmount(*req.TaxExemption)
	}

	for _, override := range req.Items {
		item, err := s.ItemRepository.GetItemByID(ctx, override.ItemID)
		if err != nil {
			return nil, err
		}
		if !item.IsActive {
			return nil, fmt.Errorf("%w: %s", payroll.ErrItemInactive, item.Code)
		}

		amount, _ := validator.IsValidAmount(override.Amount)
		cfg.Items = append(cfg.Items, payroll.SalaryConfigItem{
			ID:            uuid.NewString(),
			ConfigID:      cfg.ID,
			ItemID:        override.ItemID,
			Amount:        amount,
			IsFixed:       override.IsFixed,
			EffectiveDate: effectiveDate,
		})
	}

	stored, err := s.ConfigRepository.Upsert(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert salary config: %w", err)
	}

	resp := toConfigResponse(stored)
	return &resp, nil
}

// GetConfigByEmployee implements payroll.ConfigService.
func (s *ConfigServiceImpl) GetConfigByEmployee(ctx context.Context, employeeID string) (*payroll.SalaryConfigResponse, error) {
	cfg, err := s.ConfigRepository.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	resp := toConfigResponse(cfg)
	return &resp, nil
}

func amountOrZero(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, _ := validator.IsValidAmount(s)
	return d
}

func amountPtr(s *string) *decimal.Decimal {
	if s == nil {
		return nil
	}
	d, _ := validator.IsValidAmount(*s)
	return &d
}

func decimalPtrToString(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.StringFixed(2)
	return &s
}

func toConfigResponse(cfg payroll.SalaryConfig) payroll.SalaryConfigResponse {
	resp := payroll.SalaryConfigResponse{
		ID:                   cfg.ID,
		EmployeeID:           cfg.EmployeeID,
		StructureID:          cfg.StructureID,
		BasicSalary:          cfg.BasicSalary.StringFixed(2),
		PositionSalary:       cfg.PositionSalary.StringFixed(2),
		PerformanceSalary:    cfg.PerformanceSalary.StringFixed(2),
		Bonus:                cfg.Bonus.StringFixed(2),
		SocialInsuranceBase:  decimalPtrToString(cfg.SocialInsuranceBase),
		MedicalInsuranceBase: decimalPtrToString(cfg.MedicalInsuranceBase),
		HousingFundBase:      decimalPtrToString(cfg.HousingFundBase),
		TaxExemption:         cfg.TaxExemption.StringFixed(2),
		EffectiveDate:        cfg.EffectiveDate.Format("2006-01-02"),
		Items:                make([]payroll.ConfigItemResponse, 0, len(cfg.Items)),
	}
	for _, item := range cfg.Items {
		resp.Items = append(resp.Items, payroll.ConfigItemResponse{
			ItemID:   item.ItemID,
			ItemName: item.ItemName,
			Amount:   item.Amount.StringFixed(2),
			IsFixed:  item.IsFixed,
		})
	}
	return resp
}

// ========================================
// PAYMENT SERVICE
// ========================================

type PaymentServiceImpl struct {
	payroll.PaymentRepository
	payroll.ConfigRepository
	employee.EmployeeRepository
	appraisals       performance.AppraisalRepository
	rates            Rates
	brackets         []TaxBracket
	defaultExemption decimal.Decimal
	logger           *slog.Logger
	parallelism      int
}

func NewPaymentService(
	paymentRepository payroll.PaymentRepository,
	configRepository payroll.ConfigRepository,
	employeeRepository employee.EmployeeRepository,
	appraisalRepository performance.AppraisalRepository,
	rates Rates,
	brackets []TaxBracket,
	defaultExemption decimal.Decimal,
	logger *slog.Logger,
) *PaymentServiceImpl {
	return &PaymentServiceImpl{
		PaymentRepository:  paymentRepository,
		ConfigRepository:   configRepository,
		EmployeeRepository: employeeRepository,
		appraisals:         appraisalRepository,
		rates:              rates,
		brackets:           brackets,
		defaultExemption:   defaultExemption,
		logger:             logger,
		parallelism:        8,
	}
}

// GeneratePayments implements payroll.PaymentService. Each payment is
// composed fully in memory and written with one atomic upsert. Payments
// already confirmed or paid are never touched.
func (s *PaymentServiceImpl) GeneratePayments(ctx context.Context, req *payroll.GeneratePaymentsRequest) (*payroll.GeneratePaymentsResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	month, _ := validator.IsValidMonth(req.PaymentMonth)

	targets, err := s.resolveTargets(ctx, req.EmployeeIDs)
	if err != nil {
		return nil, err
	}

	result := &payroll.GeneratePaymentsResult{PaymentMonth: req.PaymentMonth}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)

	for _, employeeID := range targets {
		employeeID := employeeID
		g.Go(func() error {
			err := s.generateOne(gctx, employeeID, month, req.CalculatorID)

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				result.Generated++
			case errors.Is(err, payroll.ErrPaymentFinalized):
				result.Skipped = append(result.Skipped, employeeID)
			case errors.Is(err, payroll.ErrConfigNotFound), errors.Is(err, payroll.ErrBasicSalaryInvalid):
				result.Failed = append(result.Failed, employeeID)
				s.logger.Warn("payment generation skipped",
					slog.String("employee_id", employeeID),
					slog.String("error", err.Error()),
				)
			default:
				return fmt.Errorf("employee %s: %w", employeeID, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Info("salary payments generated",
		slog.String("month", req.PaymentMonth),
		slog.Int("generated", result.Generated),
		slog.Int("skipped", len(result.Skipped)),
		slog.Int("failed", len(result.Failed)),
	)

	return result, nil
}

func (s *PaymentServiceImpl) resolveTargets(ctx context.Context, employeeIDs []string) ([]string, error) {
	if len(employeeIDs) > 0 {
		return employeeIDs, nil
	}

	active, err := s.EmployeeRepository.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}

	ids := make([]string, 0, len(active))
	for _, emp := range active {
		ids = append(ids, emp.ID)
	}
	return ids, nil
}

func (s *PaymentServiceImpl) generateOne(ctx context.Context, employeeID string, month time.Time, calculatorID *string) error {
	existing, err := s.PaymentRepository.GetByEmployeeMonth(ctx, employeeID, month)
	if err != nil && !errors.Is(err, payroll.ErrPaymentNotFound) {
		return err
	}
	if err == nil && existing.Status.Final() {
		return payroll.ErrPaymentFinalized
	}

	cfg, err := s.ConfigRepository.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return err
	}

	// A completed appraisal overlapping the payment month prorates the
	// performance component; without one the configured amount stands.
	if cfg.PerformanceSalary.IsPositive() {
		score, err := s.appraisals.CompletedScore(ctx, employeeID, month, month.AddDate(0, 1, -1))
		if err != nil {
			return fmt.Errorf("failed to look up appraisal score: %w", err)
		}
		if score != nil {
			cfg.PerformanceSalary = ScaleByScore(cfg.PerformanceSalary, *score)
		}
	}

	payment, err := Compose(employeeID, month, cfg, s.rates, s.brackets, s.defaultExemption)
	if err != nil {
		return err
	}
	payment.ID = uuid.NewString()
	payment.CalculatorID = calculatorID

	if _, err := s.PaymentRepository.Upsert(ctx, payment); err != nil {
		return fmt.Errorf("failed to upsert payment: %w", err)
	}

	return nil
}

// GetPayment implements payroll.PaymentService.
func (s *PaymentServiceImpl) GetPayment(ctx context.Context, id string) (*payroll.PaymentResponse, error) {
	payment, err := s.PaymentRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toPaymentResponse(payment)
	return &resp, nil
}

// ListPayments implements payroll.PaymentService.
func (s *PaymentServiceImpl) ListPayments(ctx context.Context, filter *payroll.PaymentFilter) (*payroll.ListPaymentResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	payments, count, err := s.PaymentRepository.List(ctx, *filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	resp := &payroll.ListPaymentResponse{
		TotalCount: count,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(count) / float64(filter.Limit))),
		Payments:   make([]payroll.PaymentResponse, 0, len(payments)),
	}
	for _, p := range payments {
		resp.Payments = append(resp.Payments, toPaymentResponse(p))
	}

	return resp, nil
}

// ConfirmPayment implements payroll.PaymentService.
func (s *PaymentServiceImpl) ConfirmPayment(ctx context.Context, id string) (*payroll.PaymentResponse, error) {
	return s.transition(ctx, id, payroll.PaymentConfirmed,
		[]payroll.PaymentStatus{payroll.PaymentDraft, payroll.PaymentCalculated}, nil)
}

// MarkPaid implements payroll.PaymentService.
func (s *PaymentServiceImpl) MarkPaid(ctx context.Context, req *payroll.UpdatePaymentStatusRequest) (*payroll.PaymentResponse, error) {
	if req.PaymentDate != nil {
		if _, ok := validator.IsValidDate(*req.PaymentDate); !ok {
			return nil, validator.ValidationErrors{{Field: "payment_date", Message: "payment_date must be a valid date (YYYY-MM-DD)"}}
		}
	}

	return s.transition(ctx, req.ID, payroll.PaymentPaid,
		[]payroll.PaymentStatus{payroll.PaymentConfirmed}, req.PaymentDate)
}

// CancelPayment implements payroll.PaymentService. A paid payment stays paid.
func (s *PaymentServiceImpl) CancelPayment(ctx context.Context, id string) (*payroll.PaymentResponse, error) {
	return s.transition(ctx, id, payroll.PaymentCanceled,
		[]payroll.PaymentStatus{payroll.PaymentDraft, payroll.PaymentCalculated, payroll.PaymentConfirmed}, nil)
}

func (s *PaymentServiceImpl) transition(ctx context.Context, id string, to payroll.PaymentStatus, from []payroll.PaymentStatus, paymentDate *string) (*payroll.PaymentResponse, error) {
	if validator.IsEmpty(id) {
		return nil, validator.ValidationErrors{{Field: "id", Message: "id is required"}}
	}

	at := time.Now().UTC()
	if paymentDate != nil {
		at, _ = validator.IsValidDate(*paymentDate)
	}

	if err := s.PaymentRepository.UpdateStatus(ctx, id, to, from, at); err != nil {
		return nil, err
	}

	updated, err := s.PaymentRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toPaymentResponse(updated)
	return &resp, nil
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

func datePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02")
	return &format
}

func toPaymentResponse(p payroll.Payment) payroll.PaymentResponse {
	resp := payroll.PaymentResponse{
		ID:                        p.ID,
		EmployeeID:                p.EmployeeID,
		EmployeeName:              p.EmployeeName,
		EmployeeCode:              p.EmployeeCode,
		PaymentMonth:              p.PaymentMonth.Format("2006-01"),
		PaymentDate:               datePtrToString(p.PaymentDate),
		BasicSalary:               p.BasicSalary.StringFixed(2),
		PositionSalary:            p.PositionSalary.StringFixed(2),
		PerformanceSalary:         p.PerformanceSalary.StringFixed(2),
		Bonus:                     p.Bonus.StringFixed(2),
		AllowanceTotal:            p.AllowanceTotal.StringFixed(2),
		OtherIncomeTotal:          p.OtherIncomeTotal.StringFixed(2),
		GrossSalary:               p.GrossSalary.StringFixed(2),
		SocialInsuranceDeduction:  p.SocialInsuranceDeduction.StringFixed(2),
		MedicalInsuranceDeduction: p.MedicalInsuranceDeduction.StringFixed(2),
		HousingFundDeduction:      p.HousingFundDeduction.StringFixed(2),
		TaxDeduction:              p.TaxDeduction.StringFixed(2),
		OtherDeductionTotal:       p.OtherDeductionTotal.StringFixed(2),
		NetSalary:                 p.NetSalary.StringFixed(2),
		Status:                    string(p.Status),
		ConfirmTime:               timePtrToString(p.ConfirmTime),
		Details:                   make([]payroll.PaymentDetailResponse, 0, len(p.Details)),
	}
	for _, d := range p.Details {
		resp.Details = append(resp.Details, payroll.PaymentDetailResponse{
			ItemID:   d.ItemID,
			ItemName: d.ItemName,
			ItemCode: d.ItemCode,
			Amount:   d.Amount.StringFixed(2),
		})
	}
	return resp
}
