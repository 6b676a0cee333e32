// Package api exposes the domain API functions of the reservation backend.
// Each function decides per call, via the Selector, whether the in-process
// mock responder or the HTTP transport serves it, and propagates normalized
// errors from either unchanged.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/Goden-Gun/reserve-lib/pkg/transport"
)

// Real-backend endpoints.
const (
	PathReserve  = "/book/reserve"
	PathLogin    = "/login"
	PathLogout   = "/logout"
	PathRegister = "/register"
)

// Options define API wiring.
type Options struct {
	// Transport serves calls when the selector routes to the real backend.
	Transport *transport.Client
	// Mock serves calls otherwise. Defaults to a stock NewMock.
	Mock *Mock
	// UseMock defaults to DefaultSelector (RESERVE_USE_MOCK).
	UseMock Selector
}

// API bundles the domain functions behind one backend selector.
type API struct {
	transport *transport.Client
	mock      *Mock
	useMock   Selector
}

// New creates the API facade.
func New(opts Options) (*API, error) {
	if opts.Transport == nil {
		return nil, errors.New("transport client is required")
	}
	if opts.Mock == nil {
		opts.Mock = NewMock(MockOptions{})
	}
	if opts.UseMock == nil {
		opts.UseMock = DefaultSelector()
	}
	return &API{
		transport: opts.Transport,
		mock:      opts.Mock,
		useMock:   opts.UseMock,
	}, nil
}

// ReserveBook submits a pickup reservation.
func (a *API) ReserveBook(ctx context.Context, payload ReservePayload) (ReserveResponse, error) {
	if a.useMock() {
		return a.mock.Reserve(ctx, payload)
	}
	return transport.Request[ReserveResponse](ctx, a.transport, transport.RequestConfig{
		Method: http.MethodPost,
		Path:   PathReserve,
		Body:   payload,
	})
}

// Login authenticates an account.
func (a *API) Login(ctx context.Context, payload LoginPayload) (LoginResponse, error) {
	if a.useMock() {
		return a.mock.Login(ctx, payload)
	}
	return transport.Request[LoginResponse](ctx, a.transport, transport.RequestConfig{
		Method: http.MethodPost,
		Path:   PathLogin,
		Body:   payload,
	})
}

// Logout ends the server-side session.
func (a *API) Logout(ctx context.Context) (LogoutResponse, error) {
	if a.useMock() {
		return a.mock.Logout(ctx)
	}
	return transport.Request[LogoutResponse](ctx, a.transport, transport.RequestConfig{
		Method: http.MethodPost,
		Path:   PathLogout,
	})
}

// Register creates an account.
func (a *API) Register(ctx context.Context, payload RegisterPayload) (RegisterResponse, error) {
	if a.useMock() {
		return a.mock.Register(ctx, payload)
	}
	return transport.Request[RegisterResponse](ctx, a.transport, transport.RequestConfig{
		Method: http.MethodPost,
		Path:   PathRegister,
		Body:   payload,
	})
}
