package api

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Goden-Gun/reserve-lib/pkg/auth"
	"github.com/Goden-Gun/reserve-lib/pkg/codes"
	"github.com/Goden-Gun/reserve-lib/pkg/transport"
)

// DefaultMockDelay is the artificial latency on mock reservations, there to
// exercise the caller's pending/loading state.
const DefaultMockDelay = 600 * time.Millisecond

// MockOptions configure the in-process responder.
type MockOptions struct {
	// Delay applies to Reserve only; login/register/logout resolve
	// immediately, matching the backend contract's latency profile.
	Delay time.Duration
	// TokenSecret, when set, makes mock logins issue signed JWTs instead of
	// opaque timestamp tokens.
	TokenSecret string
	TokenTTL    time.Duration
}

// Mock simulates the reservation backend without a network. It validates the
// happy-path contract and never fails on its own; failure-path behavior is
// exercised by arming a one-shot fault with FailNextWith.
type Mock struct {
	delay    time.Duration
	tokenCfg auth.SessionTokenConfig

	mu    sync.Mutex
	fault *transport.Error
}

// NewMock creates a mock responder.
func NewMock(opts MockOptions) *Mock {
	delay := opts.Delay
	if delay <= 0 {
		delay = DefaultMockDelay
	}
	return &Mock{
		delay: delay,
		tokenCfg: auth.SessionTokenConfig{
			Secret: opts.TokenSecret,
			TTL:    opts.TokenTTL,
		},
	}
}

// FailNextWith arms a fault returned by the next call, then disarmed. The
// fault must already be a normalized error so callers see the same taxonomy
// the transport produces.
func (m *Mock) FailNextWith(terr *transport.Error) {
	m.mu.Lock()
	m.fault = terr
	m.mu.Unlock()
}

func (m *Mock) takeFault() *transport.Error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f := m.fault
	m.fault = nil
	return f
}

// Reserve resolves with a pending reservation after the artificial delay.
// Ids embed the current time plus a random suffix so they stay distinct
// within the same millisecond.
func (m *Mock) Reserve(ctx context.Context, _ ReservePayload) (ReserveResponse, error) {
	if f := m.takeFault(); f != nil {
		return ReserveResponse{}, f
	}
	select {
	case <-ctx.Done():
		return ReserveResponse{}, normalizeCtx(ctx.Err())
	case <-time.After(m.delay):
	}
	return ReserveResponse{
		ReserveID: fmt.Sprintf("mock-reserve-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8]),
		Status:    StatusPending,
	}, nil
}

// Login resolves immediately with a synthesized token, echoing the account.
func (m *Mock) Login(_ context.Context, payload LoginPayload) (LoginResponse, error) {
	if f := m.takeFault(); f != nil {
		return LoginResponse{}, f
	}
	token, err := auth.GenerateSessionToken(payload.Account, "", m.tokenCfg)
	if err != nil {
		return LoginResponse{}, &transport.Error{
			Message: err.Error(),
			Status:  0,
			Cause:   err,
		}
	}
	return LoginResponse{
		Token:   token,
		Account: payload.Account,
	}, nil
}

// Register resolves immediately with a synthesized user id and the submitted
// fields echoed back.
func (m *Mock) Register(_ context.Context, payload RegisterPayload) (RegisterResponse, error) {
	if f := m.takeFault(); f != nil {
		return RegisterResponse{}, f
	}
	return RegisterResponse{
		ID:    fmt.Sprintf("mock-user-%d", time.Now().UnixMilli()),
		Name:  payload.Name,
		Phone: payload.Phone,
		Email: payload.Email,
	}, nil
}

// Logout resolves immediately with a success indicator.
func (m *Mock) Logout(_ context.Context) (LogoutResponse, error) {
	if f := m.takeFault(); f != nil {
		return LogoutResponse{}, f
	}
	return LogoutResponse{Success: true}, nil
}

func normalizeCtx(err error) *transport.Error {
	if err == context.DeadlineExceeded {
		return &transport.Error{
			Message: codes.ErrTimeout.Message,
			Status:  0,
			Code:    codes.ErrTimeout.Symbol,
			Cause:   err,
		}
	}
	return &transport.Error{
		Message: transport.MsgTransient,
		Status:  0,
		Cause:   err,
	}
}
