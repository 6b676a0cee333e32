package reserve

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Goden-Gun/reserve-lib/pkg/api"
	"github.com/Goden-Gun/reserve-lib/pkg/catalog"
	"github.com/Goden-Gun/reserve-lib/pkg/codes"
	"github.com/Goden-Gun/reserve-lib/pkg/session"
	"github.com/Goden-Gun/reserve-lib/pkg/storage"
	"github.com/Goden-Gun/reserve-lib/pkg/transport"
)

type reserverFunc func(ctx context.Context, payload api.ReservePayload) (api.ReserveResponse, error)

func (f reserverFunc) ReserveBook(ctx context.Context, payload api.ReservePayload) (api.ReserveResponse, error) {
	return f(ctx, payload)
}

func okReserver(resp api.ReserveResponse) reserverFunc {
	return func(context.Context, api.ReservePayload) (api.ReserveResponse, error) {
		return resp, nil
	}
}

func newController(t *testing.T, r Reserver) *Controller {
	t.Helper()
	c, err := NewController(Options{API: r, Debounce: 10 * time.Millisecond})
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestNewControllerRequiresAPI(t *testing.T) {
	_, err := NewController(Options{})
	assert.Error(t, err)
}

func TestValidationOrder(t *testing.T) {
	c := newController(t, okReserver(api.ReserveResponse{}))

	assert.EqualError(t, c.Validate(), MsgSelectBook)

	require.NoError(t, c.Select(catalog.Books()[0]))
	c.SetForm(Form{})
	assert.EqualError(t, c.Validate(), MsgNameRequired)

	c.SetForm(Form{Name: "  张三  "})
	assert.EqualError(t, c.Validate(), MsgPhoneRequired)

	c.SetForm(Form{Name: "张三", Phone: "12345"})
	assert.EqualError(t, c.Validate(), MsgPhoneInvalid)

	c.SetForm(Form{Name: "张三", Phone: "13800000000"})
	assert.EqualError(t, c.Validate(), MsgDateRequired)

	c.SetForm(Form{Name: "张三", Phone: "13800000000", PickupDate: "2026-09-01 14:00"})
	assert.NoError(t, c.Validate())
}

func TestValidPhone(t *testing.T) {
	assert.True(t, ValidPhone("13800000000"))
	assert.True(t, ValidPhone("138 0000 0000")) // 去除空白后合法
	assert.True(t, ValidPhone("19912345678"))
	assert.False(t, ValidPhone("12345678901")) // 第二位必须是 3-9
	assert.False(t, ValidPhone("1380000000"))  // 只有 10 位
	assert.False(t, ValidPhone("138000000000"))
	assert.False(t, ValidPhone("23800000000"))
	assert.False(t, ValidPhone(""))
}

func TestSelectRejectsZeroSlots(t *testing.T) {
	c := newController(t, okReserver(api.ReserveResponse{}))
	err := c.Select(catalog.Book{ID: "b-x", Title: "无货", Slots: 0})
	require.Error(t, err)
	assert.Nil(t, c.Selected())
}

func TestSelectPrefillsComment(t *testing.T) {
	c := newController(t, okReserver(api.ReserveResponse{}))
	books := catalog.Books()

	require.NoError(t, c.Select(books[0]))
	assert.Equal(t, "预约《深入理解 TypeScript》", c.Form().Comment)

	// 换书时自动备注跟随更新
	require.NoError(t, c.Select(books[1]))
	assert.Equal(t, "预约《React 状态管理模式解析》", c.Form().Comment)

	// 用户自己写的备注不被覆盖
	form := c.Form()
	form.Comment = "周末来取"
	c.SetForm(form)
	require.NoError(t, c.Select(books[0]))
	assert.Equal(t, "周末来取", c.Form().Comment)
}

func TestSubmitSendsTrimmedPayload(t *testing.T) {
	var got api.ReservePayload
	c := newController(t, reserverFunc(func(_ context.Context, p api.ReservePayload) (api.ReserveResponse, error) {
		got = p
		return api.ReserveResponse{ReserveID: "r-1", Status: api.StatusPending}, nil
	}))

	require.NoError(t, c.Select(catalog.Books()[0]))
	c.SetForm(Form{
		Name:       "  张三 ",
		Phone:      "138 0000 0000",
		PickupDate: " 2026-09-01 14:00 ",
		Comment:    " 周末来取 ",
	})

	res, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "r-1", res.ReserveID)
	assert.Equal(t, api.StatusPending, res.Status)

	assert.Equal(t, "b-1", got.BookID)
	assert.Equal(t, "深入理解 TypeScript", got.BookTitle)
	assert.Equal(t, "张三", got.Name)
	assert.Equal(t, "13800000000", got.Phone)
	assert.Equal(t, "2026-09-01 14:00", got.PickupDate)
	assert.Equal(t, "周末来取", got.Comment)
}

func TestSubmitSuccessResetsState(t *testing.T) {
	sess := session.NewStore(storage.NewMemoryStore())
	require.NoError(t, sess.SetUser(context.Background(), session.Profile{
		Name:  "李四",
		Phone: "13912345678",
	}, "tok"))

	c, err := NewController(Options{
		API:      okReserver(api.ReserveResponse{ReserveID: "r-2", Status: api.StatusPending}),
		Session:  sess,
		Debounce: 10 * time.Millisecond,
	})
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Select(catalog.Books()[0]))
	c.SetForm(Form{Name: "张三", Phone: "13800000000", PickupDate: "2026-09-01"})
	c.SetKeyword("typescript")

	_, err = c.Submit(context.Background())
	require.NoError(t, err)

	// 成功后清空选择与关键字，表单回填会话资料
	assert.Nil(t, c.Selected())
	form := c.Form()
	assert.Equal(t, "李四", form.Name)
	assert.Equal(t, "13912345678", form.Phone)
	assert.Empty(t, form.PickupDate)
	assert.Empty(t, form.Comment)
	assert.Len(t, c.Visible(), 2) // 关键字清除后恢复整个分类
}

func TestSubmitFailurePreservesState(t *testing.T) {
	terr := &transport.Error{
		Message: "预约人数已满",
		Status:  http.StatusConflict,
	}
	c := newController(t, reserverFunc(func(context.Context, api.ReservePayload) (api.ReserveResponse, error) {
		return api.ReserveResponse{}, terr
	}))

	require.NoError(t, c.Select(catalog.Books()[0]))
	form := Form{Name: "张三", Phone: "13800000000", PickupDate: "2026-09-01", Comment: "备注"}
	c.SetForm(form)

	_, err := c.Submit(context.Background())
	require.Error(t, err)
	var got *transport.Error
	require.True(t, errors.As(err, &got))
	assert.Same(t, terr, got)

	// 失败后表单与选择原样保留
	assert.Equal(t, form, c.Form())
	require.NotNil(t, c.Selected())
	assert.Equal(t, "b-1", c.Selected().ID)
	assert.False(t, c.Submitting())
}

func TestSubmitInFlightGuard(t *testing.T) {
	release := make(chan struct{})
	c := newController(t, reserverFunc(func(context.Context, api.ReservePayload) (api.ReserveResponse, error) {
		<-release
		return api.ReserveResponse{ReserveID: "r-3", Status: api.StatusPending}, nil
	}))

	require.NoError(t, c.Select(catalog.Books()[0]))
	c.SetForm(Form{Name: "张三", Phone: "13800000000", PickupDate: "2026-09-01"})

	done := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background())
		done <- err
	}()

	require.Eventually(t, c.Submitting, time.Second, 5*time.Millisecond)
	_, err := c.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(release)
	assert.NoError(t, <-done)
	assert.False(t, c.Submitting())
}

func TestValidationFailureSkipsNetwork(t *testing.T) {
	called := false
	c := newController(t, reserverFunc(func(context.Context, api.ReservePayload) (api.ReserveResponse, error) {
		called = true
		return api.ReserveResponse{}, nil
	}))

	_, err := c.Submit(context.Background())
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, MsgSelectBook, verr.Message)
	assert.False(t, called)
}

func TestKeywordDebounceAndCategorySwitch(t *testing.T) {
	c := newController(t, okReserver(api.ReserveResponse{}))

	// 连续输入只触发最后一次过滤
	c.SetKeyword("type")
	c.SetKeyword("typescript")
	require.Eventually(t, func() bool {
		v := c.Visible()
		return len(v) == 1 && v[0].ID == "b-1"
	}, time.Second, 5*time.Millisecond)

	// 切换分类立即生效，不等待防抖
	c.SetCategory(catalog.CategoryLiterature)
	v := c.Visible()
	require.Len(t, v, 0) // 关键字仍是 typescript，文学分类无匹配

	c.SetKeyword("")
	require.Eventually(t, func() bool {
		return len(c.Visible()) == 2
	}, time.Second, 5*time.Millisecond)
}

func TestProfileArrivalBackfillsEmptyFields(t *testing.T) {
	sess := session.NewStore(storage.NewMemoryStore())
	c, err := NewController(Options{
		API:      okReserver(api.ReserveResponse{}),
		Session:  sess,
		Debounce: 10 * time.Millisecond,
	})
	require.NoError(t, err)
	defer c.Close()

	c.SetForm(Form{Name: "张三"})

	require.NoError(t, sess.SetUser(context.Background(), session.Profile{
		Name:  "李四",
		Phone: "13912345678",
	}, "tok"))

	// 已输入的姓名不被覆盖，空的电话被回填
	form := c.Form()
	assert.Equal(t, "张三", form.Name)
	assert.Equal(t, "13912345678", form.Phone)
}

func TestFailureMessageMapping(t *testing.T) {
	assert.Empty(t, FailureMessage(nil))

	assert.Equal(t, MsgPhoneInvalid,
		FailureMessage(&ValidationError{Message: MsgPhoneInvalid}))

	assert.Equal(t, MsgBookTaken, FailureMessage(&transport.Error{
		Status:  http.StatusConflict,
		Code:    codes.ErrBookNotAvailable.Symbol,
		Message: "backend wording ignored",
	}))

	assert.Equal(t, MsgConnectivity, FailureMessage(&transport.Error{
		Status: 0,
		Code:   codes.ErrNetwork.Symbol,
	}))
	assert.Equal(t, MsgConnectivity, FailureMessage(&transport.Error{Status: 0}))

	// 超时带有自己的文案，按原样展示
	assert.Equal(t, codes.ErrTimeout.Message, FailureMessage(&transport.Error{
		Status:  0,
		Code:    codes.ErrTimeout.Symbol,
		Message: codes.ErrTimeout.Message,
	}))

	assert.Equal(t, "预约人数已满", FailureMessage(&transport.Error{
		Status:  http.StatusConflict,
		Message: "预约人数已满",
	}))

	assert.Equal(t, MsgSubmitFailed, FailureMessage(&transport.Error{
		Status: http.StatusBadGateway,
	}))
	assert.Equal(t, MsgSubmitFailed, FailureMessage(errors.New("boom")))
}
