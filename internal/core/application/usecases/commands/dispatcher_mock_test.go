package commands_test

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
)

// fakeDispatcher records calls and returns canned results for handler tests.
type fakeDispatcher struct {
	registered []*driver.Driver

	placeOrderCustomer kernel.UUID
	placeOrderItems    []string
	placeOrderTotal    float64

	acceptedDriver kernel.UUID
	advancedOrder  kernel.UUID
	ratedDriver    kernel.UUID
	ratedValue     int

	view services.OrderView
	err  error
}

func (f *fakeDispatcher) RegisterDriver(_ context.Context, aggregate *driver.Driver) error {
	f.registered = append(f.registered, aggregate)
	return f.err
}

func (f *fakeDispatcher) PlaceOrder(_ context.Context, customerID kernel.UUID, items []string, totalPrice float64) (services.OrderView, error) {
	f.placeOrderCustomer = customerID
	f.placeOrderItems = items
	f.placeOrderTotal = totalPrice
	return f.view, f.err
}

func (f *fakeDispatcher) AcceptNextOrder(_ context.Context, driverID kernel.UUID) (services.OrderView, error) {
	f.acceptedDriver = driverID
	return f.view, f.err
}

func (f *fakeDispatcher) AdvanceOrder(_ context.Context, orderID kernel.UUID) (services.OrderView, error) {
	f.advancedOrder = orderID
	return f.view, f.err
}

func (f *fakeDispatcher) RateDriver(_ context.Context, driverID kernel.UUID, rating int) error {
	f.ratedDriver = driverID
	f.ratedValue = rating
	return f.err
}
