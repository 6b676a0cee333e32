package api

// ReserveStatus is the lifecycle state of a submitted reservation.
type ReserveStatus string

const (
	StatusPending   ReserveStatus = "pending"
	StatusConfirmed ReserveStatus = "confirmed"
	StatusRejected  ReserveStatus = "rejected"
)

// ReservePayload is the reservation submission body.
type ReservePayload struct {
	BookID     string `json:"bookId"`
	BookTitle  string `json:"bookTitle"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	PickupDate string `json:"pickupDate"`
	Comment    string `json:"comment,omitempty"`
}

// ReserveResponse is the server-issued reservation receipt. It is consumed
// once to render confirmation and not retained in app state.
type ReserveResponse struct {
	ReserveID     string        `json:"reserveId"`
	Status        ReserveStatus `json:"status"`
	EstimatedTime string        `json:"estimatedTime,omitempty"`
}

// LoginPayload carries the account credentials.
type LoginPayload struct {
	Account  string `json:"account"`
	Password string `json:"password"`
}

// LoginResponse echoes the account plus whatever profile fields the backend
// knows; missing fields are derived client-side.
type LoginResponse struct {
	Token   string `json:"token,omitempty"`
	Account string `json:"account"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Avatar  string `json:"avatar,omitempty"`
	CardNo  string `json:"cardNo,omitempty"`
}

// RegisterPayload is the account creation body.
type RegisterPayload struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse is the created account.
type RegisterResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// LogoutResponse reports whether the server acknowledged the logout.
type LogoutResponse struct {
	Success bool `json:"success"`
}
