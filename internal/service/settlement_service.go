// Package service implements the connect handlers of the settlement API.
package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/go-playground/validator/v10"

	"github.com/apacheta/apacheta/internal/metrics"
	"github.com/apacheta/apacheta/internal/models"
	"github.com/apacheta/apacheta/internal/settlement"
	"github.com/apacheta/apacheta/internal/storage"
	pb "github.com/apacheta/apacheta/pkg/apachetav1"
)

var _ pb.SettlementServiceHandler = (*SettlementService)(nil)

// SettlementService implements the SettlementService handlers.
type SettlementService struct {
	store    storage.Store
	metrics  *metrics.Metrics
	validate *validator.Validate
}

// NewSettlementService creates a new SettlementService with the given storage
// backend. m may be nil.
func NewSettlementService(store storage.Store, m *metrics.Metrics) *SettlementService {
	return &SettlementService{
		store:    store,
		metrics:  m,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// compute runs the settlement calculator and records the outcome.
func (s *SettlementService) compute(participants []settlement.Participant, payments []settlement.Payment) (*settlement.Result, error) {
	var (
		res *settlement.Result
		err error
	)
	if len(payments) == 0 {
		res, err = settlement.Compute(participants)
	} else {
		res, err = settlement.ComputeOutstanding(participants, payments)
	}
	if err != nil {
		outcome := metrics.OutcomeError
		if toConnectError(err).Code() == connect.CodeInvalidArgument {
			outcome = metrics.OutcomeInvalid
		}
		s.metrics.ObserveCalculation(outcome, 0)
		return nil, err
	}
	s.metrics.ObserveCalculation(metrics.OutcomeSuccess, res.Count())
	return res, nil
}

// Calculate computes settlements for a one-off split without storing anything.
func (s *SettlementService) Calculate(ctx context.Context, req *connect.Request[pb.CalculateRequest]) (*connect.Response[pb.CalculateResponse], error) {
	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, toConnectError(err)
	}

	participants, err := parseParticipants(req.Msg.Participants, positionalID)
	if err != nil {
		slog.Debug("Calculate rejected amount", "error", err)
		return nil, toConnectError(err)
	}

	sheet := models.Sheet{Participants: participants}
	res, err := s.compute(sheet.SettlementInput(), nil)
	if err != nil {
		return nil, toConnectError(err)
	}

	slog.Debug("Settlements calculated",
		"participants", len(participants),
		"total_bill", res.TotalBill.String(),
		"settlements", res.Count(),
	)

	return connect.NewResponse(&pb.CalculateResponse{Summary: toSummary(res)}), nil
}

// CreateSheet validates and persists a new sheet.
func (s *SettlementService) CreateSheet(ctx context.Context, req *connect.Request[pb.CreateSheetRequest]) (*connect.Response[pb.CreateSheetResponse], error) {
	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, toConnectError(err)
	}

	participants, err := parseParticipants(req.Msg.Participants, randomID)
	if err != nil {
		return nil, toConnectError(err)
	}

	sheet := &models.Sheet{Title: req.Msg.Title, Participants: participants}

	// Reject bad input before anything is written.
	res, err := s.compute(sheet.SettlementInput(), nil)
	if err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.CreateSheet(ctx, sheet); err != nil {
		slog.Error("CreateSheet failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Sheet created", "sheet_id", sheet.ID, "participants", len(sheet.Participants))

	return connect.NewResponse(&pb.CreateSheetResponse{
		Sheet: toProtoSheet(sheet, nil, res),
	}), nil
}

// GetSheet retrieves a sheet and recomputes what is still owed after payments.
func (s *SettlementService) GetSheet(ctx context.Context, req *connect.Request[pb.GetSheetRequest]) (*connect.Response[pb.GetSheetResponse], error) {
	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, toConnectError(err)
	}

	sheet, payments, res, err := s.loadSheet(ctx, req.Msg.SheetID)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&pb.GetSheetResponse{
		Sheet: toProtoSheet(sheet, payments, res),
	}), nil
}

// ListSheets returns summaries of all sheets.
func (s *SettlementService) ListSheets(ctx context.Context, req *connect.Request[pb.ListSheetsRequest]) (*connect.Response[pb.ListSheetsResponse], error) {
	sheets, err := s.store.ListSheets(ctx)
	if err != nil {
		slog.Error("ListSheets failed", "error", err)
		return nil, toConnectError(err)
	}

	summaries := make([]*pb.SheetSummary, len(sheets))
	for i, sheet := range sheets {
		total := settlement.TotalPaid(sheet.SettlementInput())
		summaries[i] = &pb.SheetSummary{
			ID:               sheet.ID,
			Title:            sheet.Title,
			TotalBill:        total.StringFixed(2),
			ParticipantCount: int32(len(sheet.Participants)),
			CreatedAt:        sheet.CreatedAt,
		}
	}

	return connect.NewResponse(&pb.ListSheetsResponse{Sheets: summaries}), nil
}

// DeleteSheet removes a sheet and its payments.
func (s *SettlementService) DeleteSheet(ctx context.Context, req *connect.Request[pb.DeleteSheetRequest]) (*connect.Response[pb.DeleteSheetResponse], error) {
	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.DeleteSheet(ctx, req.Msg.SheetID); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.Error("DeleteSheet failed", "sheet_id", req.Msg.SheetID, "error", err)
		}
		return nil, toConnectError(err)
	}

	slog.Info("Sheet deleted", "sheet_id", req.Msg.SheetID)
	return connect.NewResponse(&pb.DeleteSheetResponse{}), nil
}

// RecordPayment stores a payment after checking it against the sheet.
func (s *SettlementService) RecordPayment(ctx context.Context, req *connect.Request[pb.RecordPaymentRequest]) (*connect.Response[pb.RecordPaymentResponse], error) {
	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, toConnectError(err)
	}

	amount, err := settlement.ParseAmount(req.Msg.Amount)
	if err != nil {
		return nil, toConnectError(err)
	}

	sheet, payments, _, err := s.loadSheet(ctx, req.Msg.SheetID)
	if err != nil {
		return nil, toConnectError(err)
	}

	payment := &models.Payment{
		SheetID: sheet.ID,
		FromID:  req.Msg.FromID,
		ToID:    req.Msg.ToID,
		Amount:  amount,
		Note:    req.Msg.Note,
	}
	payments = append(payments, payment)

	// Unknown participants and zero amounts fail here, before the write.
	res, err := s.compute(sheet.SettlementInput(), models.PaymentInputs(payments))
	if err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.CreatePayment(ctx, payment); err != nil {
		slog.Error("RecordPayment failed", "sheet_id", sheet.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Payment recorded",
		"sheet_id", sheet.ID,
		"payment_id", payment.ID,
		"outstanding", res.Count(),
	)

	return connect.NewResponse(&pb.RecordPaymentResponse{
		Payment: toProtoPayment(payment),
		Sheet:   toProtoSheet(sheet, payments, res),
	}), nil
}

// DeletePayment removes a recorded payment.
func (s *SettlementService) DeletePayment(ctx context.Context, req *connect.Request[pb.DeletePaymentRequest]) (*connect.Response[pb.DeletePaymentResponse], error) {
	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.DeletePayment(ctx, req.Msg.PaymentID); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.Error("DeletePayment failed", "payment_id", req.Msg.PaymentID, "error", err)
		}
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&pb.DeletePaymentResponse{}), nil
}

func (s *SettlementService) loadSheet(ctx context.Context, sheetID string) (*models.Sheet, []*models.Payment, *settlement.Result, error) {
	sheet, err := s.store.GetSheet(ctx, sheetID)
	if err != nil {
		return nil, nil, nil, err
	}
	payments, err := s.store.ListPaymentsBySheet(ctx, sheetID)
	if err != nil {
		return nil, nil, nil, err
	}
	res, err := s.compute(sheet.SettlementInput(), models.PaymentInputs(payments))
	if err != nil {
		return nil, nil, nil, err
	}
	return sheet, payments, res, nil
}
