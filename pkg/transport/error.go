package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"syscall"

	"github.com/Goden-Gun/reserve-lib/pkg/codes"
)

// Fallback messages for failures the backend gave us nothing better for.
const (
	MsgRequestFailed = "请求失败"
	MsgUnknownError  = "未知错误"
	MsgTransient     = "服务器开小差了，请稍后再试"
)

// Error is the normalized shape every failure path converges to at the
// transport boundary. Status mirrors the backend's protocol status code;
// 0 is reserved for transport-level failures (timeout, connectivity,
// unclassifiable exceptions). No raw platform error escapes the client.
type Error struct {
	Message string
	Status  int
	Code    string          // backend rejection symbol, or a codes.* symbol for status 0
	Data    json.RawMessage // raw response body, when one was received
	Cause   error           // original cause, preserved for diagnostics
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("request failed: %s (status=%d, code=%s)", e.Message, e.Status, e.Code)
	}
	return fmt.Sprintf("request failed: %s (status=%d)", e.Message, e.Status)
}

func (e *Error) Unwrap() error { return e.Cause }

// AsError returns the normalized error inside err, if any.
func AsError(err error) (*Error, bool) {
	var terr *Error
	if errors.As(err, &terr) {
		return terr, true
	}
	return nil, false
}

// normalizeResponse converts an out-of-range response into a normalized
// error: status from the wire, message from the body when it carries one.
func normalizeResponse(status int, body []byte) *Error {
	var payload struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	_ = json.Unmarshal(body, &payload) // best effort, body may not be JSON

	msg := payload.Message
	if msg == "" {
		msg = MsgRequestFailed
	}
	return &Error{
		Message: msg,
		Status:  status,
		Code:    payload.Code,
		Data:    body,
	}
}

// classifyNetwork maps a failure from the HTTP round trip (no response
// received) to the status-0 taxonomy: timeout, connectivity, or transient.
func classifyNetwork(err error) *Error {
	if isTimeout(err) {
		return &Error{
			Message: codes.ErrTimeout.Message,
			Status:  0,
			Code:    codes.ErrTimeout.Symbol,
			Cause:   err,
		}
	}
	if isConnectivity(err) {
		return &Error{
			Message: codes.ErrNetwork.Message,
			Status:  0,
			Code:    codes.ErrNetwork.Symbol,
			Cause:   err,
		}
	}
	return &Error{
		Message: MsgTransient,
		Status:  0,
		Cause:   err,
	}
}

// normalizeUnknown wraps a non-network exception (body encode/decode, request
// construction) keeping its message when it has one.
func normalizeUnknown(err error) *Error {
	msg := MsgUnknownError
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return &Error{
		Message: msg,
		Status:  0,
		Cause:   err,
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isConnectivity(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETUNREACH) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}
