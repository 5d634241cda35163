// Package http exposes the dispatch core over a JSON API.
// Handlers delegate to command and query handlers; no business logic lives
// here.
package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// SimulationControl starts and stops the background traffic generator.
type SimulationControl interface {
	Start()
	Stop()
	IsRunning() bool
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	placeOrderHandler      commands.PlaceOrderCommandHandler
	registerDriverHandler  commands.RegisterDriverCommandHandler
	acceptNextOrderHandler commands.AcceptNextOrderCommandHandler
	advanceOrderHandler    commands.AdvanceOrderCommandHandler
	rateDriverHandler      commands.RateDriverCommandHandler

	// Query handlers
	orderHistoryHandler      queries.GetOrderHistoryQueryHandler
	driverLeaderboardHandler queries.GetDriverLeaderboardQueryHandler

	dispatcher *services.Dispatcher
	simulation SimulationControl
}

// NewServer creates a new HTTP server with the required handlers.
func NewServer(
	dispatcher *services.Dispatcher,
	simulation SimulationControl,
	orderHistoryHandler queries.GetOrderHistoryQueryHandler,
	driverLeaderboardHandler queries.GetDriverLeaderboardQueryHandler,
) *Server {
	return &Server{
		placeOrderHandler:        commands.NewPlaceOrderCommandHandler(dispatcher),
		registerDriverHandler:    commands.NewRegisterDriverCommandHandler(dispatcher),
		acceptNextOrderHandler:   commands.NewAcceptNextOrderCommandHandler(dispatcher),
		advanceOrderHandler:      commands.NewAdvanceOrderCommandHandler(dispatcher),
		rateDriverHandler:        commands.NewRateDriverCommandHandler(dispatcher),
		orderHistoryHandler:      orderHistoryHandler,
		driverLeaderboardHandler: driverLeaderboardHandler,
		dispatcher:               dispatcher,
		simulation:               simulation,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.PlaceOrder)
	api.GET("/orders", s.GetOrders)
	api.GET("/orders/history", s.GetOrderHistory)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/advance", s.AdvanceOrder)

	api.POST("/drivers", s.RegisterDriver)
	api.GET("/drivers", s.GetDrivers)
	api.GET("/drivers/leaderboard", s.GetDriverLeaderboard)
	api.POST("/drivers/:id/accept", s.AcceptNextOrder)
	api.POST("/drivers/:id/ratings", s.RateDriver)

	api.GET("/dashboard", s.GetDashboard)
	api.POST("/simulation/start", s.StartSimulation)
	api.POST("/simulation/stop", s.StopSimulation)

	e.GET("/health", s.Health)
}

// PlaceOrder handles POST /api/v1/orders - places a new order.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var request PlaceOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(request.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer id: "+err.Error())
	}

	cmd, err := commands.NewPlaceOrderCommand(customerID, request.Items, request.TotalPrice)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	view, err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return businessError(ctx, err, "Failed to place order")
	}

	return ctx.JSON(http.StatusCreated, newOrder(view))
}

// GetOrders handles GET /api/v1/orders - retrieves all live orders.
func (s *Server) GetOrders(ctx echo.Context) error {
	views, err := s.dispatcher.Orders(ctx.Request().Context())
	if err != nil {
		return internalError(ctx, "Failed to retrieve orders")
	}

	response := make([]Order, len(views))
	for i, view := range views {
		response[i] = newOrder(view)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:id - retrieves one live order.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	view, err := s.dispatcher.Order(ctx.Request().Context(), orderID)
	if err != nil {
		return businessError(ctx, err, "Failed to retrieve order")
	}

	return ctx.JSON(http.StatusOK, newOrder(view))
}

// AdvanceOrder handles POST /api/v1/orders/:id/advance - moves an order one
// step along its lifecycle.
func (s *Server) AdvanceOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	cmd, err := commands.NewAdvanceOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	view, err := s.advanceOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return businessError(ctx, err, "Failed to advance order")
	}

	return ctx.JSON(http.StatusOK, newOrder(view))
}

// RegisterDriver handles POST /api/v1/drivers - registers a new driver.
func (s *Server) RegisterDriver(ctx echo.Context) error {
	var request RegisterDriverRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRegisterDriverCommand(request.Name)
	if err != nil {
		return badRequest(ctx, "Invalid driver data: "+err.Error())
	}

	driverID, err := s.registerDriverHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return businessError(ctx, err, "Failed to register driver")
	}

	return ctx.JSON(http.StatusCreated, RegisterDriverResponse{ID: driverID.String()})
}

// GetDrivers handles GET /api/v1/drivers - retrieves all live drivers.
func (s *Server) GetDrivers(ctx echo.Context) error {
	views, err := s.dispatcher.Drivers(ctx.Request().Context())
	if err != nil {
		return internalError(ctx, "Failed to retrieve drivers")
	}

	response := make([]Driver, len(views))
	for i, view := range views {
		response[i] = newDriver(view)
	}

	return ctx.JSON(http.StatusOK, response)
}

// AcceptNextOrder handles POST /api/v1/drivers/:id/accept - the driver takes
// the oldest queued order.
func (s *Server) AcceptNextOrder(ctx echo.Context) error {
	driverID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid driver id: "+err.Error())
	}

	cmd, err := commands.NewAcceptNextOrderCommand(driverID)
	if err != nil {
		return badRequest(ctx, "Invalid driver id: "+err.Error())
	}

	view, err := s.acceptNextOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return businessError(ctx, err, "Failed to accept order")
	}

	return ctx.JSON(http.StatusOK, newOrder(view))
}

// RateDriver handles POST /api/v1/drivers/:id/ratings - submits a rating.
func (s *Server) RateDriver(ctx echo.Context) error {
	driverID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid driver id: "+err.Error())
	}

	var request RateDriverRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRateDriverCommand(driverID, request.Rating)
	if err != nil {
		return badRequest(ctx, "Invalid rating: "+err.Error())
	}

	if err = s.rateDriverHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return businessError(ctx, err, "Failed to rate driver")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetDashboard handles GET /api/v1/dashboard - the aggregate live snapshot.
func (s *Server) GetDashboard(ctx echo.Context) error {
	snapshot, err := s.dispatcher.Snapshot(ctx.Request().Context())
	if err != nil {
		return internalError(ctx, "Failed to build dashboard")
	}

	return ctx.JSON(http.StatusOK, newDashboard(snapshot))
}

// GetOrderHistory handles GET /api/v1/orders/history - archived orders.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	query := queries.NewGetOrderHistoryQuery()

	records, err := s.orderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve order history")
	}

	response := make([]ArchivedOrder, len(records))
	for i, record := range records {
		response[i] = newArchivedOrder(record)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetDriverLeaderboard handles GET /api/v1/drivers/leaderboard - archived
// drivers ordered by rating.
func (s *Server) GetDriverLeaderboard(ctx echo.Context) error {
	query := queries.NewGetDriverLeaderboardQuery()

	records, err := s.driverLeaderboardHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve driver leaderboard")
	}

	response := make([]LeaderboardEntry, len(records))
	for i, record := range records {
		response[i] = newLeaderboardEntry(record)
	}

	return ctx.JSON(http.StatusOK, response)
}

// StartSimulation handles POST /api/v1/simulation/start.
// Starting an already running simulation is a no-op.
func (s *Server) StartSimulation(ctx echo.Context) error {
	s.simulation.Start()
	return ctx.NoContent(http.StatusAccepted)
}

// StopSimulation handles POST /api/v1/simulation/stop.
// Stopping a simulation that is not running is a no-op.
func (s *Server) StopSimulation(ctx echo.Context) error {
	s.simulation.Stop()
	return ctx.NoContent(http.StatusAccepted)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, Error{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}

// businessError maps domain errors onto HTTP status codes: missing objects
// become 404, rejected preconditions become 409, everything else is a 500.
func businessError(ctx echo.Context, err error, message string) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: message + ": " + err.Error(),
		})
	case errors.Is(err, services.ErrNoOrderQueued),
		errors.Is(err, driver.ErrDriverIsBusy),
		errors.Is(err, driver.ErrDriverIsNotAvailable),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: message + ": " + err.Error(),
		})
	default:
		return internalError(ctx, message)
	}
}
