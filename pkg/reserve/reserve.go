// Package reserve implements the reservation form controller: catalog
// browsing with debounced keyword filtering, ordered form validation,
// single-in-flight submission and user-facing error mapping. It is the only
// layer that turns normalized request errors into display text.
package reserve

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/Goden-Gun/reserve-lib/pkg/api"
	"github.com/Goden-Gun/reserve-lib/pkg/catalog"
	"github.com/Goden-Gun/reserve-lib/pkg/codes"
	"github.com/Goden-Gun/reserve-lib/pkg/session"
	"github.com/Goden-Gun/reserve-lib/pkg/transport"
)

// 面向用户的提示文案
const (
	MsgSelectBook     = "请选择需要预约的图书"
	MsgNameRequired   = "请输入取书人姓名"
	MsgPhoneRequired  = "请输入联系方式"
	MsgPhoneInvalid   = "请输入正确的手机号码"
	MsgDateRequired   = "请选择取书日期"
	MsgBookTaken      = "该图书已被预约，请选择其他图书"
	MsgConnectivity   = "网络连接失败，请检查网络后重试"
	MsgSubmitFailed   = "预约失败，请稍后重试"
	MsgSubmitInFlight = "正在提交，请稍候"
)

var phonePattern = regexp.MustCompile(`^1[3-9]\d{9}$`)

// ValidationError is a synchronous local rule failure. It never reaches the
// network and its Message is shown to the user as-is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ErrSubmitInFlight rejects a second submit while one is pending.
var ErrSubmitInFlight = errors.New(MsgSubmitInFlight)

// Form holds the editable reservation fields.
type Form struct {
	Name       string
	Phone      string
	PickupDate string
	Comment    string
}

// Result is the outcome of a successful submission.
type Result struct {
	ReserveID string
	Status    api.ReserveStatus
}

// Reserver is the slice of the domain API the controller needs.
type Reserver interface {
	ReserveBook(ctx context.Context, payload api.ReservePayload) (api.ReserveResponse, error)
}

// Options configures a Controller.
type Options struct {
	// API performs the reservation call. Required.
	API Reserver
	// Session, when set, pre-fills and backfills name/phone from the
	// signed-in profile.
	Session *session.Store
	// Books overrides the catalog snapshot; defaults to catalog.Books().
	Books []catalog.Book
	// Debounce is the keyword quiet interval; defaults to
	// catalog.DefaultDebounce.
	Debounce time.Duration
}

// Controller drives one reservation attempt at a time over the catalog.
type Controller struct {
	reserver Reserver
	sess     *session.Store

	mu         sync.Mutex
	books      []catalog.Book
	category   catalog.Category
	keyword    string
	visible    []catalog.Book
	selected   *catalog.Book
	form       Form
	prefill    string
	submitting bool
	onVisible  func([]catalog.Book)

	debounce    *catalog.Debouncer
	unsubscribe func()
}

// NewController builds a controller over the given catalog, browsing the
// first category. Close must be called when the controller is discarded.
func NewController(opts Options) (*Controller, error) {
	if opts.API == nil {
		return nil, errors.New("reserve: Options.API is required")
	}
	books := opts.Books
	if books == nil {
		books = catalog.Books()
	}
	c := &Controller{
		reserver: opts.API,
		sess:     opts.Session,
		books:    books,
		category: catalog.Categories()[0].Value,
		debounce: catalog.NewDebouncer(opts.Debounce),
	}
	c.visible = catalog.Filter(c.books, c.category, "")
	if c.sess != nil {
		c.applyProfile(c.sess.Profile())
		c.unsubscribe = c.sess.Subscribe(func(profile *session.Profile, _ string) {
			c.applyProfile(profile)
		})
	}
	return c, nil
}

// Close cancels the pending debounce timer and the session subscription.
func (c *Controller) Close() {
	c.debounce.Stop()
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}

// OnVisibleChange registers a callback fired whenever the visible book list
// is recomputed. The callback runs with the controller lock released.
func (c *Controller) OnVisibleChange(fn func([]catalog.Book)) {
	c.mu.Lock()
	c.onVisible = fn
	c.mu.Unlock()
}

// Visible returns the current filtered book list.
func (c *Controller) Visible() []catalog.Book {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]catalog.Book, len(c.visible))
	copy(out, c.visible)
	return out
}

// Category returns the selected category.
func (c *Controller) Category() catalog.Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.category
}

// SetCategory switches the browsed category and re-filters immediately,
// bypassing the keyword debounce.
func (c *Controller) SetCategory(category catalog.Category) {
	c.mu.Lock()
	c.category = category
	fn := c.refreshLocked()
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// SetKeyword records the search keyword and schedules a debounced
// re-filter; rapid edits coalesce into one evaluation.
func (c *Controller) SetKeyword(keyword string) {
	c.mu.Lock()
	c.keyword = keyword
	c.mu.Unlock()
	c.debounce.Schedule(func() {
		c.mu.Lock()
		fn := c.refreshLocked()
		c.mu.Unlock()
		if fn != nil {
			fn()
		}
	})
}

// refreshLocked recomputes the visible list and returns the notification
// to run outside the lock, nil when no callback is registered.
func (c *Controller) refreshLocked() func() {
	c.visible = catalog.Filter(c.books, c.category, c.keyword)
	if c.onVisible == nil {
		return nil
	}
	fn := c.onVisible
	snapshot := make([]catalog.Book, len(c.visible))
	copy(snapshot, c.visible)
	return func() { fn(snapshot) }
}

// Select picks a book for reservation. A book with no remaining slots is
// not selectable; the caller should have disabled the affordance already.
func (c *Controller) Select(book catalog.Book) error {
	if !book.Reservable() {
		return &ValidationError{Field: "book", Message: MsgBookTaken}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	b := book
	c.selected = &b
	// 默认备注跟随所选图书，但不覆盖用户自己填写的内容
	prefill := fmt.Sprintf("预约《%s》", book.Title)
	if c.form.Comment == "" || c.form.Comment == c.prefill {
		c.form.Comment = prefill
	}
	c.prefill = prefill
	return nil
}

// Selected returns the selected book, nil when none.
func (c *Controller) Selected() *catalog.Book {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		return nil
	}
	b := *c.selected
	return &b
}

// Form returns a copy of the current form fields.
func (c *Controller) Form() Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// SetForm replaces the form fields with user input.
func (c *Controller) SetForm(form Form) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = form
}

// Validate runs the submission rules in order and returns the first
// failure. Rules: book selected, name, phone present, phone well-formed,
// pickup date present.
func (c *Controller) Validate() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validateLocked()
}

func (c *Controller) validateLocked() error {
	if c.selected == nil {
		return &ValidationError{Field: "book", Message: MsgSelectBook}
	}
	if strings.TrimSpace(c.form.Name) == "" {
		return &ValidationError{Field: "name", Message: MsgNameRequired}
	}
	phone := strings.TrimSpace(c.form.Phone)
	if phone == "" {
		return &ValidationError{Field: "phone", Message: MsgPhoneRequired}
	}
	if !ValidPhone(phone) {
		return &ValidationError{Field: "phone", Message: MsgPhoneInvalid}
	}
	if strings.TrimSpace(c.form.PickupDate) == "" {
		return &ValidationError{Field: "pickupDate", Message: MsgDateRequired}
	}
	return nil
}

// ValidPhone reports whether s is a mainland mobile number after stripping
// all whitespace.
func ValidPhone(s string) bool {
	return phonePattern.MatchString(stripSpace(s))
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// Submit validates and sends the reservation. Only one submission may be in
// flight; on success the form resets and the selection and keyword clear,
// on failure every field is preserved so the user can retry.
func (c *Controller) Submit(ctx context.Context) (Result, error) {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return Result{}, ErrSubmitInFlight
	}
	if err := c.validateLocked(); err != nil {
		c.mu.Unlock()
		return Result{}, err
	}
	payload := api.ReservePayload{
		BookID:     c.selected.ID,
		BookTitle:  c.selected.Title,
		Name:       strings.TrimSpace(c.form.Name),
		Phone:      stripSpace(c.form.Phone),
		PickupDate: strings.TrimSpace(c.form.PickupDate),
		Comment:    strings.TrimSpace(c.form.Comment),
	}
	c.submitting = true
	c.mu.Unlock()

	resp, err := c.reserver.ReserveBook(ctx, payload)

	c.mu.Lock()
	c.submitting = false
	if err != nil {
		// 失败时保留表单内容，用户修正后可直接重试
		c.mu.Unlock()
		return Result{}, err
	}
	c.resetLocked()
	fn := c.refreshLocked()
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
	return Result{ReserveID: resp.ReserveID, Status: resp.Status}, nil
}

// Submitting reports whether a submission is in flight.
func (c *Controller) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// resetLocked restores the post-success state: defaults pre-filled from the
// signed-in profile, no selection, no keyword.
func (c *Controller) resetLocked() {
	c.form = Form{}
	c.prefill = ""
	c.selected = nil
	c.keyword = ""
	if c.sess != nil {
		if p := c.sess.Profile(); p != nil {
			c.form.Name = p.Name
			c.form.Phone = p.Phone
		}
	}
}

// applyProfile backfills empty name/phone from a freshly arrived profile
// without overwriting anything the user already typed.
func (c *Controller) applyProfile(p *session.Profile) {
	if p == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if strings.TrimSpace(c.form.Name) == "" {
		c.form.Name = p.Name
	}
	if strings.TrimSpace(c.form.Phone) == "" {
		c.form.Phone = p.Phone
	}
}

// FailureMessage maps a submission error to display text. Priority: the
// book-taken rejection code, then connectivity failures, then the error's
// own message, then a generic retry prompt.
func FailureMessage(err error) string {
	if err == nil {
		return ""
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	terr, ok := transport.AsError(err)
	if !ok {
		return MsgSubmitFailed
	}
	switch {
	case terr.Code == codes.ErrBookNotAvailable.Symbol:
		return MsgBookTaken
	case terr.Code == codes.ErrNetwork.Symbol,
		terr.Status == 0 && terr.Message == "":
		return MsgConnectivity
	case terr.Message != "":
		return terr.Message
	default:
		return MsgSubmitFailed
	}
}
