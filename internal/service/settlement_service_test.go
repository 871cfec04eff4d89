package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apacheta/apacheta/internal/metrics"
	"github.com/apacheta/apacheta/internal/middleware"
	"github.com/apacheta/apacheta/internal/storage/sqlite"
	pb "github.com/apacheta/apacheta/pkg/apachetav1"
)

// setupTestServer creates a test server backed by a temporary SQLite database.
func setupTestServer(t *testing.T) *pb.SettlementServiceClient {
	t.Helper()

	store, err := sqlite.New(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	m := metrics.New(prometheus.NewRegistry())
	svc := NewSettlementService(store, m)
	path, handler := pb.NewSettlementServiceHandler(svc,
		connect.WithInterceptors(middleware.LoggingInterceptor(), middleware.MetricsInterceptor(m)),
	)

	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)

	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return pb.NewSettlementServiceClient(http.DefaultClient, server.URL)
}

func participants(pairs ...string) []*pb.Participant {
	out := make([]*pb.Participant, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, &pb.Participant{Name: pairs[i], AmountPaid: pairs[i+1]})
	}
	return out
}

type transfer struct {
	From, To, Amount string
}

func byName(summary *pb.Summary) []transfer {
	out := make([]transfer, len(summary.Settlements))
	for i, s := range summary.Settlements {
		out[i] = transfer{From: s.FromName, To: s.ToName, Amount: s.Amount}
	}
	return out
}

func TestCalculate(t *testing.T) {
	client := setupTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name        string
		input       []*pb.Participant
		want        []transfer
		wantTotal   string
		wantAverage string
	}{
		{
			name:        "balanced",
			input:       participants("Ana", "100", "Beto", "100", "Caro", "100"),
			want:        []transfer{},
			wantTotal:   "300.00",
			wantAverage: "100.00",
		},
		{
			name:  "one payer",
			input: participants("Ana", "150", "Beto", "0", "Caro", "0"),
			want: []transfer{
				{From: "Beto", To: "Ana", Amount: "50.00"},
				{From: "Caro", To: "Ana", Amount: "50.00"},
			},
			wantTotal:   "150.00",
			wantAverage: "50.00",
		},
		{
			name:  "comma decimals",
			input: participants("Ana", "90,00", "Beto", "30", "Caro", "0"),
			want: []transfer{
				{From: "Beto", To: "Ana", Amount: "10.00"},
				{From: "Caro", To: "Ana", Amount: "40.00"},
			},
			wantTotal:   "120.00",
			wantAverage: "40.00",
		},
		{
			name:        "empty",
			input:       nil,
			want:        []transfer{},
			wantTotal:   "0.00",
			wantAverage: "0.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := client.Calculate(ctx, connect.NewRequest(&pb.CalculateRequest{Participants: tt.input}))
			require.NoError(t, err)

			summary := resp.Msg.Summary
			assert.Equal(t, tt.want, byName(summary))
			assert.Equal(t, tt.wantTotal, summary.TotalBill)
			assert.Equal(t, tt.wantAverage, summary.AveragePerPerson)
			assert.Equal(t, int32(len(tt.want)), summary.SettlementCount)
		})
	}
}

func TestCalculateAssignsPositionalIDs(t *testing.T) {
	client := setupTestServer(t)

	resp, err := client.Calculate(context.Background(), connect.NewRequest(&pb.CalculateRequest{
		Participants: participants("Juan", "10", "Juan", "0"),
	}))
	require.NoError(t, err)

	require.Len(t, resp.Msg.Summary.Settlements, 1)
	s := resp.Msg.Summary.Settlements[0]
	assert.Equal(t, "p2", s.FromID)
	assert.Equal(t, "p1", s.ToID)
	assert.Equal(t, "5.00", s.Amount)
}

func TestCalculateRejectsInvalidInput(t *testing.T) {
	client := setupTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input []*pb.Participant
	}{
		{name: "negative amount", input: participants("A", "-5", "B", "10")},
		{name: "not a number", input: participants("A", "diez", "B", "10")},
		{name: "missing amount", input: participants("A", "", "B", "10")},
		{name: "missing name", input: participants("", "5", "B", "10")},
		{name: "huge exponent", input: participants("A", "1e9999999", "B", "0.01")},
		{name: "too many decimal places", input: participants("A", "1e-400", "B", "10")},
		{
			name: "duplicate ids",
			input: []*pb.Participant{
				{ID: "x", Name: "A", AmountPaid: "1"},
				{ID: "x", Name: "B", AmountPaid: "2"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Calculate(ctx, connect.NewRequest(&pb.CalculateRequest{Participants: tt.input}))
			require.Error(t, err)
			assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
		})
	}
}

func TestSheetLifecycle(t *testing.T) {
	client := setupTestServer(t)
	ctx := context.Background()

	created, err := client.CreateSheet(ctx, connect.NewRequest(&pb.CreateSheetRequest{
		Title:        "Asado",
		Participants: participants("Ana", "150", "Beto", "0", "Caro", "0"),
	}))
	require.NoError(t, err)

	sheet := created.Msg.Sheet
	require.NotEmpty(t, sheet.ID)
	assert.Equal(t, "Asado", sheet.Title)
	require.Len(t, sheet.Participants, 3)
	assert.Equal(t, int32(2), sheet.Outstanding.SettlementCount)
	ana, beto, caro := sheet.Participants[0].ID, sheet.Participants[1].ID, sheet.Participants[2].ID

	t.Run("GetSheet recomputes settlements", func(t *testing.T) {
		got, err := client.GetSheet(ctx, connect.NewRequest(&pb.GetSheetRequest{SheetID: sheet.ID}))
		require.NoError(t, err)
		assert.Equal(t, []transfer{
			{From: "Beto", To: "Ana", Amount: "50.00"},
			{From: "Caro", To: "Ana", Amount: "50.00"},
		}, byName(got.Msg.Sheet.Outstanding))
	})

	var paymentID string
	t.Run("RecordPayment reduces what is outstanding", func(t *testing.T) {
		resp, err := client.RecordPayment(ctx, connect.NewRequest(&pb.RecordPaymentRequest{
			SheetID: sheet.ID,
			FromID:  beto,
			ToID:    ana,
			Amount:  "50",
			Note:    "transferencia",
		}))
		require.NoError(t, err)

		paymentID = resp.Msg.Payment.ID
		assert.NotEmpty(t, paymentID)
		assert.Equal(t, "50.00", resp.Msg.Payment.Amount)
		assert.Equal(t, []transfer{
			{From: "Caro", To: "Ana", Amount: "50.00"},
		}, byName(resp.Msg.Sheet.Outstanding))
		assert.Equal(t, "150.00", resp.Msg.Sheet.Outstanding.TotalBill)
	})

	t.Run("RecordPayment rejects unknown participant", func(t *testing.T) {
		_, err := client.RecordPayment(ctx, connect.NewRequest(&pb.RecordPaymentRequest{
			SheetID: sheet.ID,
			FromID:  "nobody",
			ToID:    ana,
			Amount:  "1",
		}))
		assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
	})

	t.Run("RecordPayment rejects self payment", func(t *testing.T) {
		_, err := client.RecordPayment(ctx, connect.NewRequest(&pb.RecordPaymentRequest{
			SheetID: sheet.ID,
			FromID:  caro,
			ToID:    caro,
			Amount:  "1",
		}))
		assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
	})

	t.Run("GetSheet lists payments", func(t *testing.T) {
		got, err := client.GetSheet(ctx, connect.NewRequest(&pb.GetSheetRequest{SheetID: sheet.ID}))
		require.NoError(t, err)
		require.Len(t, got.Msg.Sheet.Payments, 1)
		assert.Equal(t, "transferencia", got.Msg.Sheet.Payments[0].Note)
		assert.Equal(t, int32(1), got.Msg.Sheet.Outstanding.SettlementCount)
	})

	t.Run("DeletePayment restores the debt", func(t *testing.T) {
		_, err := client.DeletePayment(ctx, connect.NewRequest(&pb.DeletePaymentRequest{PaymentID: paymentID}))
		require.NoError(t, err)

		got, err := client.GetSheet(ctx, connect.NewRequest(&pb.GetSheetRequest{SheetID: sheet.ID}))
		require.NoError(t, err)
		assert.Equal(t, int32(2), got.Msg.Sheet.Outstanding.SettlementCount)

		_, err = client.DeletePayment(ctx, connect.NewRequest(&pb.DeletePaymentRequest{PaymentID: paymentID}))
		assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
	})

	t.Run("ListSheets", func(t *testing.T) {
		list, err := client.ListSheets(ctx, connect.NewRequest(&pb.ListSheetsRequest{}))
		require.NoError(t, err)
		require.Len(t, list.Msg.Sheets, 1)
		assert.Equal(t, "150.00", list.Msg.Sheets[0].TotalBill)
		assert.Equal(t, int32(3), list.Msg.Sheets[0].ParticipantCount)
	})

	t.Run("DeleteSheet", func(t *testing.T) {
		_, err := client.DeleteSheet(ctx, connect.NewRequest(&pb.DeleteSheetRequest{SheetID: sheet.ID}))
		require.NoError(t, err)

		_, err = client.GetSheet(ctx, connect.NewRequest(&pb.GetSheetRequest{SheetID: sheet.ID}))
		assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
	})
}

func TestCreateSheetValidation(t *testing.T) {
	client := setupTestServer(t)
	ctx := context.Background()

	_, err := client.CreateSheet(ctx, connect.NewRequest(&pb.CreateSheetRequest{}))
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	_, err = client.CreateSheet(ctx, connect.NewRequest(&pb.CreateSheetRequest{
		Participants: participants("A", "-1"),
	}))
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	list, err := client.ListSheets(ctx, connect.NewRequest(&pb.ListSheetsRequest{}))
	require.NoError(t, err)
	assert.Empty(t, list.Msg.Sheets)
}

func TestGetSheetNotFound(t *testing.T) {
	client := setupTestServer(t)

	_, err := client.GetSheet(context.Background(), connect.NewRequest(&pb.GetSheetRequest{SheetID: "missing"}))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))

	_, err = client.GetSheet(context.Background(), connect.NewRequest(&pb.GetSheetRequest{}))
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
}
