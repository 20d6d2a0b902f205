package http

import (
	"context"
	"errors"
	"net/http"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/application/usecases/queries"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/domain/services/discount"
	"checkout/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// OrderProcessor runs one order through checkout.
type OrderProcessor interface {
	Handle(ctx context.Context, cmd commands.ProcessOrderCommand) (commands.ProcessOrderResult, error)
}

// OrderProcessorFactory builds a processor for the payment method of a request.
// An invalid promoRate is reported as a validation error.
type OrderProcessorFactory interface {
	CreateOrderProcessor(method discount.Method, promoRate decimal.NullDecimal) (OrderProcessor, error)
}

type ProcessedOrdersLister interface {
	Handle(ctx context.Context, query queries.GetProcessedOrdersQuery) ([]queries.GetProcessedOrdersQueryResponse, error)
}

// Server maps the HTTP API onto the order use cases.
type Server struct {
	processors OrderProcessorFactory
	lister     ProcessedOrdersLister
	metrics    http.Handler
}

// NewServer creates the server. metrics may be nil, in which case /metrics is
// not registered.
func NewServer(processors OrderProcessorFactory, lister ProcessedOrdersLister, metrics http.Handler) *Server {
	return &Server{processors: processors, lister: lister, metrics: metrics}
}

// Register mounts all routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)
	if s.metrics != nil {
		e.GET("/metrics", echo.WrapHandler(s.metrics))
	}

	api := e.Group("/api/v1")
	api.POST("/orders", s.ProcessOrder)
	api.GET("/orders", s.GetOrders)
}

func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// ProcessOrder handles POST /api/v1/orders.
func (s *Server) ProcessOrder(ctx echo.Context) error {
	var req ProcessOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	method, err := discount.ParseMethod(req.PaymentMethod)
	if err != nil {
		return badRequest(ctx, "Invalid payment method: "+err.Error())
	}

	o, err := newOrder(req)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	cmd, err := commands.NewProcessOrderCommand(o)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	processor, err := s.processors.CreateOrderProcessor(method, req.PromoRate)
	if err != nil {
		if isValidationError(err) {
			return badRequest(ctx, "Invalid payment options: "+err.Error())
		}
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to set up order processing",
		})
	}

	result, err := processor.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if !pastStart(result) && isValidationError(err) {
			return badRequest(ctx, "Order rejected: "+err.Error())
		}
		return ctx.JSON(http.StatusBadGateway, ProcessingFailure{
			Error: Error{
				Code:    http.StatusBadGateway,
				Message: "Order processing failed: " + err.Error(),
			},
			ID:      result.OrderID.String(),
			Status:  result.Status.String(),
			Journal: journal(result.Journal),
		})
	}

	response := ProcessOrderResponse{
		ID:                 result.OrderID.String(),
		Status:             result.Status.String(),
		Subtotal:           result.Subtotal,
		Total:              result.Total,
		Gateway:            result.Charge.Gateway,
		TransactionID:      result.Charge.TransactionID,
		AnalyticsDelivered: result.Analytics.Delivered,
		Journal:            journal(result.Journal),
	}
	if result.Analytics.Err != nil {
		response.AnalyticsError = result.Analytics.Err.Error()
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrders handles GET /api/v1/orders?limit=N - lists saved orders, newest first.
func (s *Server) GetOrders(ctx echo.Context) error {
	var limit int
	if err := echo.QueryParamsBinder(ctx).Int("limit", &limit).BindError(); err != nil {
		return badRequest(ctx, "Invalid limit")
	}

	query, err := queries.NewGetProcessedOrdersQuery(limit)
	if err != nil {
		return badRequest(ctx, "Invalid limit: "+err.Error())
	}

	records, err := s.lister.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}

	response := make([]ProcessedOrder, len(records))
	for i, r := range records {
		response[i] = ProcessedOrder{
			ID:      r.ID.String(),
			Status:  r.Status.String(),
			Total:   r.Total,
			Email:   r.Email,
			Country: r.Country,
		}
		if !r.SavedAt.IsZero() {
			savedAt := r.SavedAt
			response[i].SavedAt = &savedAt
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func newOrder(req ProcessOrderRequest) (*order.Order, error) {
	email, emailErr := kernel.NewEmail(req.Email)
	country, countryErr := kernel.NewCountry(req.Country)

	var itemErr error
	items := make([]order.Item, 0, len(req.Items))
	for _, r := range req.Items {
		quantity := 1
		if r.Quantity != nil {
			quantity = *r.Quantity
		}
		item, err := order.NewItem(r.Price, quantity)
		if err != nil {
			itemErr = errors.Join(itemErr, err)
			continue
		}
		items = append(items, item)
	}

	if err := errors.Join(emailErr, countryErr, itemErr); err != nil {
		return nil, err
	}
	return order.NewOrder(kernel.NewUUID(), email, items, country)
}

// pastStart reports whether processing began, in which case the customer may
// already have been charged and the failure is not the client's fault.
func pastStart(result commands.ProcessOrderResult) bool {
	return result.Status == order.Processing ||
		result.Status == order.Done ||
		result.Charge.TransactionID != ""
}

func isValidationError(err error) bool {
	return errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsOutOfRange)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}

func journal(lines []string) []string {
	if lines == nil {
		return []string{}
	}
	return lines
}
