package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Goden-Gun/reserve-lib/pkg/codes"
	"github.com/Goden-Gun/reserve-lib/pkg/config"
	"github.com/Goden-Gun/reserve-lib/pkg/transport"
)

func fastMock() *Mock {
	return NewMock(MockOptions{Delay: time.Millisecond})
}

func newTestAPI(t *testing.T, handler http.Handler, selector Selector) *API {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	tc, err := transport.NewClient(transport.Options{BaseURL: srv.URL})
	require.NoError(t, err)
	a, err := New(Options{Transport: tc, Mock: fastMock(), UseMock: selector})
	require.NoError(t, err)
	return a
}

func TestMockReservePendingWithDistinctIDs(t *testing.T) {
	m := fastMock()
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		resp, err := m.Reserve(ctx, ReservePayload{BookID: "b-1", BookTitle: "岛上书店"})
		require.NoError(t, err)
		assert.Equal(t, StatusPending, resp.Status)
		require.NotEmpty(t, resp.ReserveID)
		assert.False(t, seen[resp.ReserveID], "reserve ids must be distinct: %s", resp.ReserveID)
		seen[resp.ReserveID] = true
	}
}

func TestMockReserveHonorsDelay(t *testing.T) {
	m := NewMock(MockOptions{Delay: 50 * time.Millisecond})
	start := time.Now()
	_, err := m.Reserve(context.Background(), ReservePayload{})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestMockReserveCancelledContext(t *testing.T) {
	m := NewMock(MockOptions{Delay: time.Second})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := m.Reserve(ctx, ReservePayload{})
	terr, ok := transport.AsError(err)
	require.True(t, ok, "mock must not leak raw context errors")
	assert.Equal(t, 0, terr.Status)
}

func TestMockLoginEchoesAccount(t *testing.T) {
	m := fastMock()
	resp, err := m.Login(context.Background(), LoginPayload{Account: "reader@book.local", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "reader@book.local", resp.Account)
	assert.NotEmpty(t, resp.Token)
}

func TestMockRegisterEchoesFields(t *testing.T) {
	m := fastMock()
	resp, err := m.Register(context.Background(), RegisterPayload{
		Name: "terr", Phone: "13800000000", Email: "terr@book.local", Password: "pw12345678",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "terr", resp.Name)
	assert.Equal(t, "13800000000", resp.Phone)
	assert.Equal(t, "terr@book.local", resp.Email)
}

func TestMockLogoutSucceeds(t *testing.T) {
	resp, err := fastMock().Logout(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestMockFaultIsOneShot(t *testing.T) {
	m := fastMock()
	armed := &transport.Error{
		Message: codes.ErrBookNotAvailable.Message,
		Status:  409,
		Code:    codes.ErrBookNotAvailable.Symbol,
	}
	m.FailNextWith(armed)

	_, err := m.Reserve(context.Background(), ReservePayload{})
	terr, ok := transport.AsError(err)
	require.True(t, ok)
	assert.Same(t, armed, terr)

	_, err = m.Reserve(context.Background(), ReservePayload{})
	require.NoError(t, err, "fault disarms after one call")
}

func TestSelectorEvaluatedPerCall(t *testing.T) {
	var hits int
	useMock := true
	a := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		require.Equal(t, PathLogout, r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true}`))
	}), func() bool { return useMock })

	ctx := context.Background()
	_, err := a.Logout(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, hits, "mock path must not hit the network")

	// Flip after construction: the next call must route to the transport.
	useMock = false
	resp, err := a.Logout(ctx)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 1, hits)
}

func TestDefaultSelectorTracksEnvironment(t *testing.T) {
	sel := DefaultSelector()

	t.Setenv(config.EnvUseMock, "false")
	assert.False(t, sel())

	t.Setenv(config.EnvUseMock, "true")
	assert.True(t, sel())
}

func TestReserveAgainstRealBackend(t *testing.T) {
	a := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, PathReserve, r.URL.Path)
		_, _ = w.Write([]byte(`{"reserveId":"r-100","status":"confirmed","estimatedTime":"30m"}`))
	}), func() bool { return false })

	resp, err := a.ReserveBook(context.Background(), ReservePayload{
		BookID: "b-1", BookTitle: "岛上书店", Name: "terr", Phone: "13800000000", PickupDate: "11 月 08 日 18:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "r-100", resp.ReserveID)
	assert.Equal(t, StatusConfirmed, resp.Status)
	assert.Equal(t, "30m", resp.EstimatedTime)
}

func TestBackendRejectionPropagatesUnchanged(t *testing.T) {
	a := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"该图书已被预约，请选择其他图书","code":"BOOK_NOT_AVAILABLE"}`))
	}), func() bool { return false })

	_, err := a.ReserveBook(context.Background(), ReservePayload{BookID: "b-1"})
	terr, ok := transport.AsError(err)
	require.True(t, ok)
	assert.Equal(t, codes.ErrBookNotAvailable.Symbol, terr.Code)
	assert.Equal(t, http.StatusConflict, terr.Status)
}
