// Package http exposes the ordering engine over a JSON HTTP API. The
// upstream gateway authenticates callers and forwards their identity in the
// X-User-Id and X-User-Role headers; this layer trusts those headers, maps
// them to commands and queries, and translates domain errors to status
// codes.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"canteen/internal/core/application/usecases/commands"
	"canteen/internal/core/application/usecases/queries"
	"canteen/internal/core/domain/model/kernel"
	"canteen/internal/core/domain/model/order"
	"canteen/internal/core/ports"
	"canteen/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Identity headers set by the gateway.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	placeOrderHandler   commands.PlaceOrderCommandHandler
	changeStatusHandler commands.ChangeOrderStatusCommandHandler
	getOrderHandler     queries.GetOrderQueryHandler
	listCustomerHandler queries.ListCustomerOrdersQueryHandler
	listOrdersHandler   queries.ListOrdersQueryHandler
	dailySalesHandler   queries.GetDailySalesQueryHandler
	listMenuHandler     queries.ListMenuQueryHandler
	userDirectory       ports.UserDirectory
	logger              *slog.Logger
}

// NewServer creates an HTTP server wired to the given use case handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	changeStatusHandler commands.ChangeOrderStatusCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listCustomerHandler queries.ListCustomerOrdersQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	dailySalesHandler queries.GetDailySalesQueryHandler,
	listMenuHandler queries.ListMenuQueryHandler,
	userDirectory ports.UserDirectory,
	logger *slog.Logger,
) *Server {
	return &Server{
		placeOrderHandler:   placeOrderHandler,
		changeStatusHandler: changeStatusHandler,
		getOrderHandler:     getOrderHandler,
		listCustomerHandler: listCustomerHandler,
		listOrdersHandler:   listOrdersHandler,
		dailySalesHandler:   dailySalesHandler,
		listMenuHandler:     listMenuHandler,
		userDirectory:       userDirectory,
		logger:              logger,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.GET("/menu", s.ListMenu)
	api.POST("/orders", s.PlaceOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/my", s.ListMyOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.PATCH("/orders/:id/status", s.ChangeOrderStatus)
	api.GET("/reports/daily-sales", s.GetDailySales)
}

// ListMenu handles GET /api/v1/menu.
func (s *Server) ListMenu(ctx echo.Context) error {
	items, err := s.listMenuHandler.Handle(ctx.Request().Context(), queries.NewListMenuQuery())
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]MenuItem, 0, len(items))
	for _, item := range items {
		response = append(response, MenuItem{
			ID:             item.ID.String(),
			Name:           item.Name,
			Description:    item.Description,
			Category:       item.Category,
			Price:          item.Price,
			AvailableStock: item.AvailableStock,
			IsVeg:          item.IsVeg,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// PlaceOrder handles POST /api/v1/orders.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	userID, _, err := s.identity(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	var request PlaceOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	cart := make([]commands.CartLine, 0, len(request.Items))
	for _, item := range request.Items {
		itemID, idErr := kernel.UUIDFromString(item.ItemID)
		if idErr != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "invalid item id: " + item.ItemID,
			})
		}
		cart = append(cart, commands.CartLine{ItemID: itemID, Quantity: item.Quantity})
	}

	paymentMode, err := order.PaymentModeFromString(request.PaymentMode)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewPlaceOrderCommand(userID, cart, paymentMode)
	if err != nil {
		return s.writeError(ctx, err)
	}

	placed, err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := orderFromAggregate(placed)
	profile := s.customerProfile(ctx.Request().Context(), placed.CustomerID())
	response.CustomerName = profile.Name
	response.CustomerEmail = profile.Email

	return ctx.JSON(http.StatusCreated, response)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	userID, role, err := s.identity(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "invalid order id",
		})
	}

	query, err := queries.NewGetOrderQuery(orderID, userID, role)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromResponse(response))
}

// ListMyOrders handles GET /api/v1/orders/my.
func (s *Server) ListMyOrders(ctx echo.Context) error {
	userID, _, err := s.identity(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	query, err := queries.NewListCustomerOrdersQuery(userID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	responses, err := s.listCustomerHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ordersFromResponses(responses))
}

// ListOrders handles GET /api/v1/orders with optional status, from, and to
// filters.
func (s *Server) ListOrders(ctx echo.Context) error {
	_, role, err := s.identity(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	status := order.StatusUnknown
	if raw := ctx.QueryParam("status"); raw != "" {
		status, err = order.StatusFromString(raw)
		if err != nil {
			return s.writeError(ctx, err)
		}
	}

	from, err := parseDateParam(ctx.QueryParam("from"))
	if err != nil {
		return s.writeError(ctx, err)
	}
	to, err := parseDateParam(ctx.QueryParam("to"))
	if err != nil {
		return s.writeError(ctx, err)
	}

	query, err := queries.NewListOrdersQuery(role, status, from, to)
	if err != nil {
		return s.writeError(ctx, err)
	}

	responses, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ordersFromResponses(responses))
}

// ChangeOrderStatus handles PATCH /api/v1/orders/:id/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	_, role, err := s.identity(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "invalid order id",
		})
	}

	var request ChangeStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	next, err := order.StatusFromString(request.Status)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, next, role)
	if err != nil {
		return s.writeError(ctx, err)
	}

	updated, err := s.changeStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromAggregate(updated))
}

// GetDailySales handles GET /api/v1/reports/daily-sales. The day query
// parameter defaults to today.
func (s *Server) GetDailySales(ctx echo.Context) error {
	_, role, err := s.identity(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	day := time.Now().UTC()
	if raw := ctx.QueryParam("day"); raw != "" {
		day, err = time.Parse(time.DateOnly, raw)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "invalid day, expected YYYY-MM-DD",
			})
		}
	}

	query, err := queries.NewGetDailySalesQuery(role, day)
	if err != nil {
		return s.writeError(ctx, err)
	}

	report, err := s.dailySalesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	statuses := make([]StatusCount, 0, len(report.StatusBreakdown))
	for _, entry := range report.StatusBreakdown {
		statuses = append(statuses, StatusCount{
			Status: entry.Status,
			Count:  entry.Count,
		})
	}

	items := make([]ItemSales, 0, len(report.Items))
	for _, item := range report.Items {
		items = append(items, ItemSales{
			Name:     item.Name,
			Quantity: item.Quantity,
			Revenue:  item.Revenue,
		})
	}

	return ctx.JSON(http.StatusOK, DailySales{
		Day:               report.Day.Format(time.DateOnly),
		OrderCount:        report.OrderCount,
		TotalRevenue:      report.TotalRevenue,
		AverageOrderValue: report.AverageOrderValue,
		CounterRevenue:    report.CounterRevenue,
		OnlineRevenue:     report.OnlineRevenue,
		StatusBreakdown:   statuses,
		Items:             items,
	})
}

// identity reads the caller's id and role from the gateway headers.
func (s *Server) identity(ctx echo.Context) (kernel.UUID, kernel.Role, error) {
	userID, err := kernel.UUIDFromString(ctx.Request().Header.Get(HeaderUserID))
	if err != nil {
		return kernel.UUID{}, "", errs.NewAuthorizationError("missing or invalid " + HeaderUserID + " header")
	}

	role, err := kernel.RoleFromString(ctx.Request().Header.Get(HeaderUserRole))
	if err != nil {
		return kernel.UUID{}, "", errs.NewAuthorizationError("missing or invalid " + HeaderUserRole + " header")
	}

	return userID, role, nil
}

// customerProfile resolves the customer's public profile for receipts.
// Lookup failures are non-fatal; the order response then omits name and
// email.
func (s *Server) customerProfile(ctx context.Context, customerID kernel.UUID) ports.UserProfile {
	if s.userDirectory == nil {
		return ports.UserProfile{}
	}

	profile, err := s.userDirectory.Get(ctx, customerID)
	if err != nil {
		s.logger.Warn("failed to resolve customer profile",
			"customerId", customerID.String(),
			"error", err)
		return ports.UserProfile{}
	}

	return profile
}

// writeError translates domain errors to HTTP status codes.
func (s *Server) writeError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, errs.ErrConflict):
		code = http.StatusConflict
		message = err.Error()
	case errors.Is(err, errs.ErrNotAuthorized):
		code = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
		message = err.Error()
	default:
		s.logger.Error("request failed", "error", err)
	}

	return ctx.JSON(code, Error{Code: code, Message: message})
}

func orderFromAggregate(aggregate *order.Order) Order {
	lines := make([]OrderLine, 0, len(aggregate.Lines()))
	for _, line := range aggregate.Lines() {
		lines = append(lines, OrderLine{
			ItemID:    line.ItemID().String(),
			Name:      line.Name(),
			UnitPrice: line.UnitPrice(),
			Quantity:  line.Quantity(),
			Subtotal:  line.Subtotal(),
		})
	}

	history := make([]StatusChange, 0, len(aggregate.History()))
	for _, entry := range aggregate.History() {
		history = append(history, StatusChange{Status: entry.Status.String(), At: entry.At})
	}

	return Order{
		ID:          aggregate.ID().String(),
		CustomerID:  aggregate.CustomerID().String(),
		Token:       aggregate.Token().String(),
		Status:      aggregate.Status().String(),
		PaymentMode: aggregate.PaymentMode().String(),
		TotalAmount: aggregate.TotalAmount(),
		Lines:       lines,
		History:     history,
		CreatedAt:   aggregate.CreatedAt(),
		UpdatedAt:   aggregate.UpdatedAt(),
	}
}

func ordersFromResponses(responses []queries.OrderResponse) []Order {
	orders := make([]Order, 0, len(responses))
	for _, response := range responses {
		orders = append(orders, orderFromResponse(response))
	}
	return orders
}

func parseDateParam(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}

	parsed, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause("date", err)
	}

	return parsed, nil
}
