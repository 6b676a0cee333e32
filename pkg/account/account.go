// Package account implements the sign-in, sign-out and registration flows
// on top of the domain API and the session store. Backends may return a
// partial profile on login; the missing fields are derived locally so the
// rest of the app always sees a complete one.
package account

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Goden-Gun/reserve-lib/pkg/api"
	log "github.com/Goden-Gun/reserve-lib/pkg/logger"
	"github.com/Goden-Gun/reserve-lib/pkg/session"
)

// DefaultAvatar is used when the backend returns no avatar URL.
const DefaultAvatar = "https://placehold.co/144x144?text=RD"

const (
	MsgCredentialsRequired = "请输入账号和密码"
	MsgRegisterIncomplete  = "请完整填写信息"
	MsgPasswordMismatch    = "两次输入的密码不一致"
	MsgTermsRequired       = "请先阅读并同意服务条款"

	// 密码强度提示
	HintPasswordRule  = "至少 8 位，包含字母和数字"
	HintPasswordShort = "密码长度不足"
	HintPasswordMixed = "需同时包含字母和数字"
	HintPasswordGood  = "密码强度良好"
)

// ValidationError is a local input failure; its Message is display text.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// API is the slice of the domain API the account flows need.
type API interface {
	Login(ctx context.Context, payload api.LoginPayload) (api.LoginResponse, error)
	Logout(ctx context.Context) (api.LogoutResponse, error)
	Register(ctx context.Context, payload api.RegisterPayload) (api.RegisterResponse, error)
}

// Service binds the account flows to a session store.
type Service struct {
	api  API
	sess *session.Store
}

// NewService builds the account service. Both arguments are required.
func NewService(a API, sess *session.Store) (*Service, error) {
	if a == nil {
		return nil, fmt.Errorf("account: api is required")
	}
	if sess == nil {
		return nil, fmt.Errorf("account: session store is required")
	}
	return &Service{api: a, sess: sess}, nil
}

// Login authenticates the account and stores the resulting profile and
// token in the session. Network errors propagate unchanged; the session is
// only written on success.
func (s *Service) Login(ctx context.Context, account, password string) (session.Profile, error) {
	account = strings.TrimSpace(account)
	if account == "" || password == "" {
		return session.Profile{}, &ValidationError{Message: MsgCredentialsRequired}
	}

	resp, err := s.api.Login(ctx, api.LoginPayload{Account: account, Password: password})
	if err != nil {
		return session.Profile{}, err
	}

	profile := session.Profile{
		Name:   firstNonEmpty(resp.Name, deriveName(resp.Account)),
		Email:  firstNonEmpty(resp.Email, deriveEmail(resp.Account)),
		Phone:  firstNonEmpty(resp.Phone, derivePhone(resp.Account)),
		Avatar: firstNonEmpty(resp.Avatar, DefaultAvatar),
		CardNo: resp.CardNo,
	}
	if profile.CardNo == "" {
		profile.CardNo = session.GenerateCardNo()
	}
	token := resp.Token
	if token == "" {
		token = fmt.Sprintf("token-%d", time.Now().UnixMilli())
	}
	if err := s.sess.SetUser(ctx, profile, token); err != nil {
		return session.Profile{}, err
	}
	return profile, nil
}

// Logout clears the session. A failing logout request is deliberately
// ignored: the user asked to leave, and the local session is the source of
// truth for that intent.
func (s *Service) Logout(ctx context.Context) {
	if _, err := s.api.Logout(ctx); err != nil {
		log.WithError(err).Debug("logout 请求失败，忽略")
	}
	s.sess.ClearUser(ctx)
}

// RegisterForm is the registration input, confirm password and terms
// agreement included.
type RegisterForm struct {
	Name     string
	Phone    string
	Email    string
	Password string
	Confirm  string
	Agree    bool
}

// Register validates the form and creates the account. The confirm and
// agree fields never leave the client.
func (s *Service) Register(ctx context.Context, form RegisterForm) (api.RegisterResponse, error) {
	if form.Name == "" || form.Phone == "" || form.Email == "" ||
		form.Password == "" || form.Confirm == "" {
		return api.RegisterResponse{}, &ValidationError{Message: MsgRegisterIncomplete}
	}
	if form.Password != form.Confirm {
		return api.RegisterResponse{}, &ValidationError{Message: MsgPasswordMismatch}
	}
	if !form.Agree {
		return api.RegisterResponse{}, &ValidationError{Message: MsgTermsRequired}
	}
	return s.api.Register(ctx, api.RegisterPayload{
		Name:     form.Name,
		Phone:    form.Phone,
		Email:    form.Email,
		Password: form.Password,
	})
}

var (
	hasLetter = regexp.MustCompile(`[A-Za-z]`)
	hasDigit  = regexp.MustCompile(`[0-9]`)
	nonDigit  = regexp.MustCompile(`[^\d]`)
)

// PasswordHint grades a candidate password for display next to the input.
func PasswordHint(password string) string {
	switch {
	case password == "":
		return HintPasswordRule
	case len(password) < 8:
		return HintPasswordShort
	case !hasLetter.MatchString(password) || !hasDigit.MatchString(password):
		return HintPasswordMixed
	default:
		return HintPasswordGood
	}
}

// MembershipLevel derives the display tier from the card number. Guests get
// their own label.
func MembershipLevel(p *session.Profile) string {
	if p == nil {
		return "游客"
	}
	if p.CardNo == "" {
		return "青铜会员"
	}
	suffix := int(p.CardNo[len(p.CardNo)-1] - '0')
	if suffix < 0 || suffix > 9 {
		return "青铜会员"
	}
	switch suffix % 3 {
	case 0:
		return "金卡会员"
	case 1:
		return "银卡会员"
	default:
		return "青铜会员"
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// deriveName takes the part before '@', falling back to a generic reader
// name for empty accounts.
func deriveName(account string) string {
	name, _, _ := strings.Cut(account, "@")
	if name == "" {
		return "图书读者"
	}
	return name
}

// deriveEmail treats anything with '@' as an email already; other accounts
// get a synthetic local domain.
func deriveEmail(account string) string {
	if strings.Contains(account, "@") {
		return account
	}
	return strings.Join(strings.Fields(account), "") + "@book.local"
}

// derivePhone masks the digits of the account into a display number, with a
// fixed placeholder when too few digits exist.
func derivePhone(account string) string {
	digits := nonDigit.ReplaceAllString(account, "")
	switch {
	case len(digits) >= 11:
		return digits[:3] + "****" + digits[7:11]
	case len(digits) >= 7:
		return digits[:3] + "****" + digits[len(digits)-4:]
	default:
		return "137****0000"
	}
}
