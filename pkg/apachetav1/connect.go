package apachetav1

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/apacheta/apacheta/internal/rpc"
)

// SettlementServiceName is the fully-qualified name of the SettlementService.
const SettlementServiceName = "apacheta.v1.SettlementService"

// Procedure paths for every SettlementService RPC.
const (
	SettlementServiceCalculateProcedure     = "/" + SettlementServiceName + "/Calculate"
	SettlementServiceCreateSheetProcedure   = "/" + SettlementServiceName + "/CreateSheet"
	SettlementServiceGetSheetProcedure      = "/" + SettlementServiceName + "/GetSheet"
	SettlementServiceListSheetsProcedure    = "/" + SettlementServiceName + "/ListSheets"
	SettlementServiceDeleteSheetProcedure   = "/" + SettlementServiceName + "/DeleteSheet"
	SettlementServiceRecordPaymentProcedure = "/" + SettlementServiceName + "/RecordPayment"
	SettlementServiceDeletePaymentProcedure = "/" + SettlementServiceName + "/DeletePayment"
)

// SettlementServiceHandler is implemented by the server.
type SettlementServiceHandler interface {
	Calculate(context.Context, *connect.Request[CalculateRequest]) (*connect.Response[CalculateResponse], error)
	CreateSheet(context.Context, *connect.Request[CreateSheetRequest]) (*connect.Response[CreateSheetResponse], error)
	GetSheet(context.Context, *connect.Request[GetSheetRequest]) (*connect.Response[GetSheetResponse], error)
	ListSheets(context.Context, *connect.Request[ListSheetsRequest]) (*connect.Response[ListSheetsResponse], error)
	DeleteSheet(context.Context, *connect.Request[DeleteSheetRequest]) (*connect.Response[DeleteSheetResponse], error)
	RecordPayment(context.Context, *connect.Request[RecordPaymentRequest]) (*connect.Response[RecordPaymentResponse], error)
	DeletePayment(context.Context, *connect.Request[DeletePaymentRequest]) (*connect.Response[DeletePaymentResponse], error)
}

// NewSettlementServiceHandler builds an HTTP handler for svc and returns the
// path prefix to mount it on.
func NewSettlementServiceHandler(svc SettlementServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append(rpc.HandlerOptions(), opts...)

	mux := http.NewServeMux()
	mux.Handle(SettlementServiceCalculateProcedure,
		connect.NewUnaryHandler(SettlementServiceCalculateProcedure, svc.Calculate, opts...))
	mux.Handle(SettlementServiceCreateSheetProcedure,
		connect.NewUnaryHandler(SettlementServiceCreateSheetProcedure, svc.CreateSheet, opts...))
	mux.Handle(SettlementServiceGetSheetProcedure,
		connect.NewUnaryHandler(SettlementServiceGetSheetProcedure, svc.GetSheet, opts...))
	mux.Handle(SettlementServiceListSheetsProcedure,
		connect.NewUnaryHandler(SettlementServiceListSheetsProcedure, svc.ListSheets, opts...))
	mux.Handle(SettlementServiceDeleteSheetProcedure,
		connect.NewUnaryHandler(SettlementServiceDeleteSheetProcedure, svc.DeleteSheet, opts...))
	mux.Handle(SettlementServiceRecordPaymentProcedure,
		connect.NewUnaryHandler(SettlementServiceRecordPaymentProcedure, svc.RecordPayment, opts...))
	mux.Handle(SettlementServiceDeletePaymentProcedure,
		connect.NewUnaryHandler(SettlementServiceDeletePaymentProcedure, svc.DeletePayment, opts...))

	return "/" + SettlementServiceName + "/", mux
}

// SettlementServiceClient calls a SettlementService over HTTP.
type SettlementServiceClient struct {
	calculate     *connect.Client[CalculateRequest, CalculateResponse]
	createSheet   *connect.Client[CreateSheetRequest, CreateSheetResponse]
	getSheet      *connect.Client[GetSheetRequest, GetSheetResponse]
	listSheets    *connect.Client[ListSheetsRequest, ListSheetsResponse]
	deleteSheet   *connect.Client[DeleteSheetRequest, DeleteSheetResponse]
	recordPayment *connect.Client[RecordPaymentRequest, RecordPaymentResponse]
	deletePayment *connect.Client[DeletePaymentRequest, DeletePaymentResponse]
}

// NewSettlementServiceClient constructs a client for the service at baseURL
// (for example, http://localhost:8080).
func NewSettlementServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *SettlementServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append(rpc.ClientOptions(), opts...)

	return &SettlementServiceClient{
		calculate: connect.NewClient[CalculateRequest, CalculateResponse](
			httpClient, baseURL+SettlementServiceCalculateProcedure, opts...),
		createSheet: connect.NewClient[CreateSheetRequest, CreateSheetResponse](
			httpClient, baseURL+SettlementServiceCreateSheetProcedure, opts...),
		getSheet: connect.NewClient[GetSheetRequest, GetSheetResponse](
			httpClient, baseURL+SettlementServiceGetSheetProcedure, opts...),
		listSheets: connect.NewClient[ListSheetsRequest, ListSheetsResponse](
			httpClient, baseURL+SettlementServiceListSheetsProcedure, opts...),
		deleteSheet: connect.NewClient[DeleteSheetRequest, DeleteSheetResponse](
			httpClient, baseURL+SettlementServiceDeleteSheetProcedure, opts...),
		recordPayment: connect.NewClient[RecordPaymentRequest, RecordPaymentResponse](
			httpClient, baseURL+SettlementServiceRecordPaymentProcedure, opts...),
		deletePayment: connect.NewClient[DeletePaymentRequest, DeletePaymentResponse](
			httpClient, baseURL+SettlementServiceDeletePaymentProcedure, opts...),
	}
}

// Calculate calls apacheta.v1.SettlementService.Calculate.
func (c *SettlementServiceClient) Calculate(ctx context.Context, req *connect.Request[CalculateRequest]) (*connect.Response[CalculateResponse], error) {
	return c.calculate.CallUnary(ctx, req)
}

// CreateSheet calls apacheta.v1.SettlementService.CreateSheet.
func (c *SettlementServiceClient) CreateSheet(ctx context.Context, req *connect.Request[CreateSheetRequest]) (*connect.Response[CreateSheetResponse], error) {
	return c.createSheet.CallUnary(ctx, req)
}

// GetSheet calls apacheta.v1.SettlementService.GetSheet.
func (c *SettlementServiceClient) GetSheet(ctx context.Context, req *connect.Request[GetSheetRequest]) (*connect.Response[GetSheetResponse], error) {
	return c.getSheet.CallUnary(ctx, req)
}

// ListSheets calls apacheta.v1.SettlementService.ListSheets.
func (c *SettlementServiceClient) ListSheets(ctx context.Context, req *connect.Request[ListSheetsRequest]) (*connect.Response[ListSheetsResponse], error) {
	return c.listSheets.CallUnary(ctx, req)
}

// DeleteSheet calls apacheta.v1.SettlementService.DeleteSheet.
func (c *SettlementServiceClient) DeleteSheet(ctx context.Context, req *connect.Request[DeleteSheetRequest]) (*connect.Response[DeleteSheetResponse], error) {
	return c.deleteSheet.CallUnary(ctx, req)
}

// RecordPayment calls apacheta.v1.SettlementService.RecordPayment.
func (c *SettlementServiceClient) RecordPayment(ctx context.Context, req *connect.Request[RecordPaymentRequest]) (*connect.Response[RecordPaymentResponse], error) {
	return c.recordPayment.CallUnary(ctx, req)
}

// DeletePayment calls apacheta.v1.SettlementService.DeletePayment.
func (c *SettlementServiceClient) DeletePayment(ctx context.Context, req *connect.Request[DeletePaymentRequest]) (*connect.Response[DeletePaymentResponse], error) {
	return c.deletePayment.CallUnary(ctx, req)
}
