// Package http exposes the back-office REST API. Handlers translate
// between the wire representation and the application layer's commands and
// queries; money amounts travel as fixed-point decimal strings.
package http

import (
	"errors"
	"net/http"
	"time"

	"colis/internal/core/application/usecases/commands"
	"colis/internal/core/application/usecases/queries"
	"colis/internal/core/domain/model/invoice"
	"colis/internal/core/domain/model/kernel"
	"colis/internal/core/domain/model/parcel"
	"colis/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server wires HTTP routes to the application use cases.
type Server struct {
	createParcelHandler      commands.CreateParcelCommandHandler
	changeStatusHandler      commands.ChangeStatusCommandHandler
	updateStatusBulkHandler  commands.UpdateStatusBulkCommandHandler
	assignCourierBulkHandler commands.AssignCourierBulkCommandHandler
	setExtraFeeHandler       commands.SetExtraFeeCommandHandler
	buildInvoiceHandler      commands.BuildInvoiceCommandHandler
	mergeInvoicesHandler     commands.MergeInvoicesCommandHandler
	markInvoicePaidHandler   commands.MarkInvoicePaidCommandHandler

	getTariffHandler             queries.GetTariffQueryHandler
	getAllowedTransitionsHandler queries.GetAllowedTransitionsQueryHandler
	getParcelTimelineHandler     queries.GetParcelTimelineQueryHandler
	getInvoiceHandler            queries.GetInvoiceQueryHandler
}

// NewServer creates the HTTP server over the given use case handlers.
func NewServer(
	createParcelHandler commands.CreateParcelCommandHandler,
	changeStatusHandler commands.ChangeStatusCommandHandler,
	updateStatusBulkHandler commands.UpdateStatusBulkCommandHandler,
	assignCourierBulkHandler commands.AssignCourierBulkCommandHandler,
	setExtraFeeHandler commands.SetExtraFeeCommandHandler,
	buildInvoiceHandler commands.BuildInvoiceCommandHandler,
	mergeInvoicesHandler commands.MergeInvoicesCommandHandler,
	markInvoicePaidHandler commands.MarkInvoicePaidCommandHandler,
	getTariffHandler queries.GetTariffQueryHandler,
	getAllowedTransitionsHandler queries.GetAllowedTransitionsQueryHandler,
	getParcelTimelineHandler queries.GetParcelTimelineQueryHandler,
	getInvoiceHandler queries.GetInvoiceQueryHandler,
) *Server {
	return &Server{
		createParcelHandler:          createParcelHandler,
		changeStatusHandler:          changeStatusHandler,
		updateStatusBulkHandler:      updateStatusBulkHandler,
		assignCourierBulkHandler:     assignCourierBulkHandler,
		setExtraFeeHandler:           setExtraFeeHandler,
		buildInvoiceHandler:          buildInvoiceHandler,
		mergeInvoicesHandler:         mergeInvoicesHandler,
		markInvoicePaidHandler:       markInvoicePaidHandler,
		getTariffHandler:             getTariffHandler,
		getAllowedTransitionsHandler: getAllowedTransitionsHandler,
		getParcelTimelineHandler:     getParcelTimelineHandler,
		getInvoiceHandler:            getInvoiceHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/parcels", s.CreateParcel)
	api.POST("/parcels/status/bulk", s.UpdateStatusBulk)
	api.POST("/parcels/courier/bulk", s.AssignCourierBulk)
	api.POST("/parcels/:code/status", s.ChangeStatus)
	api.PUT("/parcels/:code/extra-fee", s.SetExtraFee)
	api.GET("/parcels/:code/tariff", s.GetTariff)
	api.GET("/parcels/:code/transitions", s.GetAllowedTransitions)
	api.GET("/parcels/:code/timeline", s.GetParcelTimeline)

	api.POST("/invoices", s.BuildInvoice)
	api.POST("/invoices/merge", s.MergeInvoices)
	api.GET("/invoices/:code", s.GetInvoice)
	api.PUT("/invoices/:code/paid", s.MarkInvoicePaid)
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateParcelRequest is the merchant intake payload.
type CreateParcelRequest struct {
	TrackingCode  string `json:"trackingCode"`
	MerchantID    string `json:"merchantId"`
	CityID        string `json:"cityId"`
	Price         string `json:"price"`
	IsFragile     bool   `json:"isFragile"`
	IsReplacement bool   `json:"isReplacement"`
	IsOpenable    bool   `json:"isOpenable"`
}

// CreateParcel handles POST /api/v1/parcels.
func (s *Server) CreateParcel(ctx echo.Context) error {
	var req CreateParcelRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	merchantID, err := kernel.UUIDFromString(req.MerchantID)
	if err != nil {
		return badRequest(ctx, "invalid merchantId")
	}
	cityID, err := kernel.UUIDFromString(req.CityID)
	if err != nil {
		return badRequest(ctx, "invalid cityId")
	}
	price, err := kernel.MoneyFromString(req.Price)
	if err != nil {
		return badRequest(ctx, "invalid price")
	}

	cmd, err := commands.NewCreateParcelCommand(
		req.TrackingCode,
		merchantID,
		cityID,
		price,
		req.IsFragile,
		req.IsReplacement,
		req.IsOpenable,
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.createParcelHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// ChangeStatusRequest moves one parcel to a new status.
type ChangeStatusRequest struct {
	Status  string     `json:"status"`
	Role    string     `json:"role"`
	Date    *time.Time `json:"date,omitempty"`
	Comment string     `json:"comment,omitempty"`
	Note    string     `json:"note,omitempty"`
}

// ChangeStatus handles POST /api/v1/parcels/:code/status.
func (s *Server) ChangeStatus(ctx echo.Context) error {
	var req ChangeStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	status, err := parcel.ParseStatus(req.Status)
	if err != nil {
		return badRequest(ctx, "invalid status")
	}

	cmd, err := commands.NewChangeStatusCommand(
		ctx.Param("code"),
		status,
		parcel.Role(req.Role),
		req.Date,
		req.Comment,
		req.Note,
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.changeStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateStatusBulkRequest moves a batch of parcels to one status.
type UpdateStatusBulkRequest struct {
	TrackingCodes []string   `json:"trackingCodes"`
	Status        string     `json:"status"`
	Role          string     `json:"role"`
	Date          *time.Time `json:"date,omitempty"`
	Comment       string     `json:"comment,omitempty"`
	Note          string     `json:"note,omitempty"`
}

// BulkFailureResponse is one failed batch item.
type BulkFailureResponse struct {
	TrackingCode string `json:"trackingCode"`
	Reason       string `json:"reason"`
}

// BulkResponse is the outcome partition of a batch operation.
type BulkResponse struct {
	Succeeded []string              `json:"succeeded"`
	Failed    []BulkFailureResponse `json:"failed"`
}

// UpdateStatusBulk handles POST /api/v1/parcels/status/bulk.
func (s *Server) UpdateStatusBulk(ctx echo.Context) error {
	var req UpdateStatusBulkRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	status, err := parcel.ParseStatus(req.Status)
	if err != nil {
		return badRequest(ctx, "invalid status")
	}

	cmd, err := commands.NewUpdateStatusBulkCommand(
		req.TrackingCodes,
		status,
		parcel.Role(req.Role),
		req.Date,
		req.Comment,
		req.Note,
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.updateStatusBulkHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, bulkResponseFrom(result))
}

// AssignCourierBulkRequest assigns one courier to a batch of parcels.
type AssignCourierBulkRequest struct {
	TrackingCodes []string `json:"trackingCodes"`
	CourierID     string   `json:"courierId"`
}

// AssignCourierBulk handles POST /api/v1/parcels/courier/bulk.
func (s *Server) AssignCourierBulk(ctx echo.Context) error {
	var req AssignCourierBulkRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return badRequest(ctx, "invalid courierId")
	}

	cmd, err := commands.NewAssignCourierBulkCommand(req.TrackingCodes, courierID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.assignCourierBulkHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, bulkResponseFrom(result))
}

// SetExtraFeeRequest attaches an ad-hoc fee to a parcel.
type SetExtraFeeRequest struct {
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

// SetExtraFee handles PUT /api/v1/parcels/:code/extra-fee.
func (s *Server) SetExtraFee(ctx echo.Context) error {
	var req SetExtraFeeRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	value, err := kernel.MoneyFromString(req.Value)
	if err != nil {
		return badRequest(ctx, "invalid value")
	}

	cmd, err := commands.NewSetExtraFeeCommand(ctx.Param("code"), value, req.Description)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.setExtraFeeHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// TariffResponse is the fee breakdown of one parcel.
type TariffResponse struct {
	TrackingCode        string `json:"trackingCode"`
	Status              string `json:"status"`
	Price               string `json:"price"`
	DeliveryFee         string `json:"deliveryFee"`
	RefusalFee          string `json:"refusalFee"`
	FragileSurcharge    string `json:"fragileSurcharge"`
	ExtraFee            string `json:"extraFee"`
	ExtraFeeDescription string `json:"extraFeeDescription,omitempty"`
	TotalFee            string `json:"totalFee"`
	PayableToMerchant   string `json:"payableToMerchant"`
	Final               bool   `json:"final"`
}

// GetTariff handles GET /api/v1/parcels/:code/tariff.
func (s *Server) GetTariff(ctx echo.Context) error {
	query, err := queries.NewGetTariffQuery(ctx.Param("code"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	tariff, err := s.getTariffHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, TariffResponse{
		TrackingCode:        tariff.TrackingCode,
		Status:              tariff.Status,
		Price:               tariff.Price.String(),
		DeliveryFee:         tariff.DeliveryFee.String(),
		RefusalFee:          tariff.RefusalFee.String(),
		FragileSurcharge:    tariff.FragileSurcharge.String(),
		ExtraFee:            tariff.ExtraFee.String(),
		ExtraFeeDescription: tariff.ExtraFeeDescription,
		TotalFee:            tariff.TotalFee.String(),
		PayableToMerchant:   tariff.PayableToMerchant.String(),
		Final:               tariff.Final,
	})
}

// TransitionResponse is one reachable status with its input requirements.
type TransitionResponse struct {
	Status          string `json:"status"`
	RequiresDate    bool   `json:"requiresDate"`
	RequiresComment bool   `json:"requiresComment"`
}

// TransitionsResponse lists the statuses a role may move a parcel into.
type TransitionsResponse struct {
	CurrentStatus string               `json:"currentStatus"`
	Transitions   []TransitionResponse `json:"transitions"`
}

// GetAllowedTransitions handles GET /api/v1/parcels/:code/transitions.
func (s *Server) GetAllowedTransitions(ctx echo.Context) error {
	query, err := queries.NewGetAllowedTransitionsQuery(
		ctx.Param("code"),
		parcel.Role(ctx.QueryParam("role")),
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.getAllowedTransitionsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	transitions := make([]TransitionResponse, 0, len(result.Transitions))
	for _, t := range result.Transitions {
		transitions = append(transitions, TransitionResponse{
			Status:          t.Status,
			RequiresDate:    t.RequiresDate,
			RequiresComment: t.RequiresComment,
		})
	}

	return ctx.JSON(http.StatusOK, TransitionsResponse{
		CurrentStatus: result.CurrentStatus,
		Transitions:   transitions,
	})
}

// TimelineEntryResponse is one step of a parcel's lifecycle.
type TimelineEntryResponse struct {
	Status string    `json:"status"`
	At     time.Time `json:"at"`
}

// TimelineResponse is the ordered lifecycle of one parcel.
type TimelineResponse struct {
	TrackingCode string                  `json:"trackingCode"`
	Entries      []TimelineEntryResponse `json:"entries"`
}

// GetParcelTimeline handles GET /api/v1/parcels/:code/timeline.
func (s *Server) GetParcelTimeline(ctx echo.Context) error {
	query, err := queries.NewGetParcelTimelineQuery(ctx.Param("code"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.getParcelTimelineHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	entries := make([]TimelineEntryResponse, 0, len(result.Entries))
	for _, e := range result.Entries {
		entries = append(entries, TimelineEntryResponse{Status: e.Status, At: e.At})
	}

	return ctx.JSON(http.StatusOK, TimelineResponse{
		TrackingCode: result.TrackingCode,
		Entries:      entries,
	})
}

// BuildInvoiceRequest creates an invoice from a parcel snapshot.
type BuildInvoiceRequest struct {
	Kind     string    `json:"kind"`
	OwnerID  string    `json:"ownerId"`
	From     time.Time `json:"from"`
	To       time.Time `json:"to"`
	Statuses []string  `json:"statuses,omitempty"`
}

// SkippedParcelResponse is one parcel left off an invoice and why.
type SkippedParcelResponse struct {
	TrackingCode string `json:"trackingCode"`
	Reason       string `json:"reason"`
}

// InvoiceSummaryResponse is the write-side view of a created invoice.
type InvoiceSummaryResponse struct {
	InvoiceCode    string                  `json:"invoiceCode"`
	Kind           string                  `json:"kind"`
	OwnerID        string                  `json:"ownerId"`
	ParcelRefs     []string                `json:"parcelRefs"`
	DuplicateCodes []string                `json:"duplicateCodes,omitempty"`
	Totals         TotalsResponse          `json:"totals"`
	EmptyResultSet bool                    `json:"emptyResultSet,omitempty"`
	Skipped        []SkippedParcelResponse `json:"skipped,omitempty"`
}

// TotalsResponse is the financial summary of an invoice.
type TotalsResponse struct {
	TotalPrice            string `json:"totalPrice"`
	TotalDeliveryFee      string `json:"totalDeliveryFee"`
	TotalFragileSurcharge string `json:"totalFragileSurcharge"`
	TotalExtraFee         string `json:"totalExtraFee"`
	TotalRefusalFee       string `json:"totalRefusalFee"`
	NetPayable            string `json:"netPayable"`
}

// BuildInvoice handles POST /api/v1/invoices.
func (s *Server) BuildInvoice(ctx echo.Context) error {
	var req BuildInvoiceRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	ownerID, err := kernel.UUIDFromString(req.OwnerID)
	if err != nil {
		return badRequest(ctx, "invalid ownerId")
	}

	statuses := make([]parcel.Status, 0, len(req.Statuses))
	for _, name := range req.Statuses {
		status, parseErr := parcel.ParseStatus(name)
		if parseErr != nil {
			return badRequest(ctx, "invalid status: "+name)
		}
		statuses = append(statuses, status)
	}

	cmd, err := commands.NewBuildInvoiceCommand(invoice.Kind(req.Kind), ownerID, req.From, req.To, statuses)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.buildInvoiceHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	resp := invoiceSummaryFrom(result.Invoice)
	resp.EmptyResultSet = result.EmptyResultSet
	for _, skipped := range result.SkippedCodes {
		resp.Skipped = append(resp.Skipped, SkippedParcelResponse{
			TrackingCode: skipped.Code,
			Reason:       skipped.Reason,
		})
	}

	return ctx.JSON(http.StatusCreated, resp)
}

// MergeInvoicesRequest folds several invoices into one.
type MergeInvoicesRequest struct {
	InvoiceCodes []string `json:"invoiceCodes"`
}

// MergeInvoices handles POST /api/v1/invoices/merge.
func (s *Server) MergeInvoices(ctx echo.Context) error {
	var req MergeInvoicesRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewMergeInvoicesCommand(req.InvoiceCodes)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.mergeInvoicesHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	resp := invoiceSummaryFrom(result.Invoice)
	for _, skipped := range result.SkippedCodes {
		resp.Skipped = append(resp.Skipped, SkippedParcelResponse{
			TrackingCode: skipped.Code,
			Reason:       skipped.Reason,
		})
	}

	return ctx.JSON(http.StatusCreated, resp)
}

// InvoiceResponse is the full read model of one invoice.
type InvoiceResponse struct {
	InvoiceCode    string         `json:"invoiceCode"`
	Kind           string         `json:"kind"`
	OwnerID        string         `json:"ownerId"`
	ParcelRefs     []string       `json:"parcelRefs"`
	DuplicateCodes []string       `json:"duplicateCodes,omitempty"`
	Totals         TotalsResponse `json:"totals"`
	Paid           bool           `json:"paid"`
	Active         bool           `json:"active"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// GetInvoice handles GET /api/v1/invoices/:code.
func (s *Server) GetInvoice(ctx echo.Context) error {
	query, err := queries.NewGetInvoiceQuery(ctx.Param("code"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	inv, err := s.getInvoiceHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, InvoiceResponse{
		InvoiceCode:    inv.InvoiceCode,
		Kind:           inv.Kind,
		OwnerID:        inv.OwnerID.String(),
		ParcelRefs:     inv.ParcelRefs,
		DuplicateCodes: inv.DuplicateCodes,
		Totals: TotalsResponse{
			TotalPrice:            inv.TotalPrice.String(),
			TotalDeliveryFee:      inv.TotalDeliveryFee.String(),
			TotalFragileSurcharge: inv.TotalFragileSurcharge.String(),
			TotalExtraFee:         inv.TotalExtraFee.String(),
			TotalRefusalFee:       inv.TotalRefusalFee.String(),
			NetPayable:            inv.NetPayable.String(),
		},
		Paid:      inv.Paid,
		Active:    inv.Active,
		CreatedAt: inv.CreatedAt,
	})
}

// MarkInvoicePaidRequest toggles the settlement flag.
type MarkInvoicePaidRequest struct {
	Paid bool `json:"paid"`
}

// MarkInvoicePaid handles PUT /api/v1/invoices/:code/paid.
func (s *Server) MarkInvoicePaid(ctx echo.Context) error {
	var req MarkInvoicePaidRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewMarkInvoicePaidCommand(ctx.Param("code"), req.Paid)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.markInvoicePaidHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func bulkResponseFrom(result commands.BulkResult) BulkResponse {
	failed := make([]BulkFailureResponse, 0, len(result.Failed))
	for _, f := range result.Failed {
		failed = append(failed, BulkFailureResponse{
			TrackingCode: f.Code,
			Reason:       f.Reason,
		})
	}

	return BulkResponse{
		Succeeded: result.Succeeded,
		Failed:    failed,
	}
}

func invoiceSummaryFrom(inv *invoice.Invoice) InvoiceSummaryResponse {
	totals := inv.Totals()

	return InvoiceSummaryResponse{
		InvoiceCode:    inv.InvoiceCode(),
		Kind:           string(inv.Kind()),
		OwnerID:        inv.OwnerID().String(),
		ParcelRefs:     inv.ParcelRefs(),
		DuplicateCodes: inv.DuplicateCodes(),
		Totals: TotalsResponse{
			TotalPrice:            totals.TotalPrice.String(),
			TotalDeliveryFee:      totals.TotalDeliveryFee.String(),
			TotalFragileSurcharge: totals.TotalFragileSurcharge.String(),
			TotalExtraFee:         totals.TotalExtraFee.String(),
			TotalRefusalFee:       totals.TotalRefusalFee.String(),
			NetPayable:            totals.NetPayable.String(),
		},
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps application errors onto HTTP statuses. Validation errors
// are 400, missing objects 404, state conflicts 409, unpriceable parcels
// 422, unreachable collaborators 503, the rest 500.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrMissingRequiredField):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrTransitionNotAllowed),
		errors.Is(err, errs.ErrConcurrentModification),
		errors.Is(err, invoice.ErrInvoiceIsInactive),
		errors.Is(err, parcel.ErrParcelIsTerminal):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrRateNotFound):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrCollaboratorUnavailable):
		status = http.StatusServiceUnavailable
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}
