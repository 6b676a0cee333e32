package codes

// ErrorCode represents structured rejection codes shared between the
// reservation backend and its clients. Numeric 0 is reserved for failures
// classified on the client side, where no protocol status is available.
type ErrorCode struct {
	Numeric int32
	Symbol  string
	Message string
}

var (
	// ErrBookNotAvailable indicates the book was reserved by someone else first.
	ErrBookNotAvailable = ErrorCode{Numeric: 40901, Symbol: "BOOK_NOT_AVAILABLE", Message: "该图书已被预约，请选择其他图书"}
	// ErrUnauthorized indicates token verification failure.
	ErrUnauthorized = ErrorCode{Numeric: 40101, Symbol: "TOKEN_INVALID", Message: "登录状态已失效，请重新登录"}
	// ErrInvalidPayload indicates malformed request payload.
	ErrInvalidPayload = ErrorCode{Numeric: 41001, Symbol: "INVALID_PAYLOAD", Message: "请求参数有误"}
	// ErrNetwork indicates the server could not be reached at all.
	ErrNetwork = ErrorCode{Numeric: 0, Symbol: "NETWORK_ERROR", Message: "无法连接到服务器，请检查网络连接"}
	// ErrTimeout indicates the deadline elapsed before any response arrived.
	ErrTimeout = ErrorCode{Numeric: 0, Symbol: "REQUEST_TIMEOUT", Message: "请求超时，请检查网络连接"}
	// ErrInternal indicates unknown server error.
	ErrInternal = ErrorCode{Numeric: 50001, Symbol: "INTERNAL_ERROR", Message: "服务器开小差了，请稍后再试"}
)

// Registry exposes a static list for validation or docs.
var Registry = []ErrorCode{
	ErrBookNotAvailable,
	ErrUnauthorized,
	ErrInvalidPayload,
	ErrNetwork,
	ErrTimeout,
	ErrInternal,
}

// Lookup returns the registered code for a symbol, if any.
func Lookup(symbol string) (ErrorCode, bool) {
	for _, c := range Registry {
		if c.Symbol == symbol {
			return c, true
		}
	}
	return ErrorCode{}, false
}
