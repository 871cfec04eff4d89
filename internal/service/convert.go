package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/apacheta/apacheta/internal/models"
	"github.com/apacheta/apacheta/internal/settlement"
	pb "github.com/apacheta/apacheta/pkg/apachetav1"
)

// parseParticipants converts request participants, parsing amounts at the
// boundary. Missing IDs are filled by newID.
func parseParticipants(in []*pb.Participant, newID func(i int) string) ([]models.SheetParticipant, error) {
	out := make([]models.SheetParticipant, len(in))
	for i, p := range in {
		id := p.ID
		if id == "" {
			id = newID(i)
		}
		amount, err := settlement.ParseAmount(p.AmountPaid)
		if err != nil {
			var amountErr *settlement.AmountError
			if errors.As(err, &amountErr) {
				amountErr.ParticipantID = id
			}
			return nil, err
		}
		out[i] = models.SheetParticipant{ID: id, Name: p.Name, AmountPaid: amount}
	}
	return out, nil
}

// positionalID names anonymous participants of a one-off calculation.
func positionalID(i int) string {
	return fmt.Sprintf("p%d", i+1)
}

func randomID(int) string {
	return uuid.New().String()
}

func toSummary(res *settlement.Result) *pb.Summary {
	settlements := make([]*pb.Settlement, len(res.Settlements))
	for i, s := range res.Settlements {
		settlements[i] = &pb.Settlement{
			FromID:   s.From.ID,
			FromName: s.From.Name,
			ToID:     s.To.ID,
			ToName:   s.To.Name,
			Amount:   s.Amount.StringFixed(2),
		}
	}
	return &pb.Summary{
		Settlements:      settlements,
		TotalBill:        res.TotalBill.StringFixed(2),
		AveragePerPerson: res.AveragePerPerson.StringFixed(2),
		SettlementCount:  int32(res.Count()),
	}
}

func toProtoParticipants(in []models.SheetParticipant) []*pb.Participant {
	out := make([]*pb.Participant, len(in))
	for i, p := range in {
		out[i] = &pb.Participant{ID: p.ID, Name: p.Name, AmountPaid: p.AmountPaid.String()}
	}
	return out
}

func toProtoPayment(p *models.Payment) *pb.Payment {
	return &pb.Payment{
		ID:        p.ID,
		FromID:    p.FromID,
		ToID:      p.ToID,
		Amount:    p.Amount.StringFixed(2),
		Note:      p.Note,
		CreatedAt: p.CreatedAt,
	}
}

func toProtoSheet(sheet *models.Sheet, payments []*models.Payment, outstanding *settlement.Result) *pb.Sheet {
	protoPayments := make([]*pb.Payment, len(payments))
	for i, p := range payments {
		protoPayments[i] = toProtoPayment(p)
	}
	return &pb.Sheet{
		ID:           sheet.ID,
		Title:        sheet.Title,
		Participants: toProtoParticipants(sheet.Participants),
		Payments:     protoPayments,
		Outstanding:  toSummary(outstanding),
		CreatedAt:    sheet.CreatedAt,
	}
}
