package session

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Goden-Gun/reserve-lib/pkg/storage"
)

type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, error) {
	return "", errors.New("storage down")
}
func (failingStore) Set(context.Context, string, string) error { return errors.New("storage down") }
func (failingStore) Remove(context.Context, string) error      { return errors.New("storage down") }

func testProfile() Profile {
	return Profile{
		Name:   "terr",
		Email:  "terr@book.local",
		Phone:  "13800000000",
		CardNo: "L2511081234",
	}
}

func TestSetUserClearUserInvariant(t *testing.T) {
	ctx := context.Background()
	s := NewStore(storage.NewMemoryStore())

	require.Nil(t, s.Profile())
	require.Empty(t, s.Token())

	require.NoError(t, s.SetUser(ctx, testProfile(), "tok-1"))
	require.NotNil(t, s.Profile())
	require.Equal(t, "tok-1", s.Token())
	require.True(t, s.Authenticated())

	s.ClearUser(ctx)
	require.Nil(t, s.Profile())
	require.Empty(t, s.Token())
	require.False(t, s.Authenticated())
}

func TestSetUserRejectsEmptyToken(t *testing.T) {
	s := NewStore(storage.NewMemoryStore())
	require.Error(t, s.SetUser(context.Background(), testProfile(), ""))
	require.Nil(t, s.Profile())
}

func TestMirrorAndRestore(t *testing.T) {
	ctx := context.Background()
	mirror := storage.NewMemoryStore()

	s := NewStore(mirror)
	require.NoError(t, s.SetUser(ctx, testProfile(), "tok-1"))

	// A fresh store over the same mirror restores the session.
	restored := NewStore(mirror)
	restored.Restore(ctx)
	require.Equal(t, "tok-1", restored.Token())
	require.NotNil(t, restored.Profile())
	assert.Equal(t, "terr", restored.Profile().Name)
	assert.Equal(t, "13800000000", restored.Profile().Phone)

	s.ClearUser(ctx)
	cleared := NewStore(mirror)
	cleared.Restore(ctx)
	require.Empty(t, cleared.Token())
	require.Nil(t, cleared.Profile())
}

func TestRestoreIgnoresHalfWrittenMirror(t *testing.T) {
	ctx := context.Background()
	mirror := storage.NewMemoryStore()
	require.NoError(t, mirror.Set(ctx, TokenKey, "tok-orphan"))

	s := NewStore(mirror)
	s.Restore(ctx)
	require.Empty(t, s.Token(), "token without profile must not restore")
	require.Nil(t, s.Profile())
}

func TestStorageFailureKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	s := NewStore(failingStore{})

	require.NoError(t, s.SetUser(ctx, testProfile(), "tok-1"))
	require.Equal(t, "tok-1", s.Token(), "mirror failure must not roll back memory")

	s.ClearUser(ctx)
	require.Empty(t, s.Token())
}

func TestSubscribeNotifiesAndCancels(t *testing.T) {
	ctx := context.Background()
	s := NewStore(storage.NewMemoryStore())

	var calls int
	var lastToken string
	cancel := s.Subscribe(func(_ *Profile, token string) {
		calls++
		lastToken = token
	})

	require.NoError(t, s.SetUser(ctx, testProfile(), "tok-1"))
	require.Equal(t, 1, calls)
	require.Equal(t, "tok-1", lastToken)

	s.ClearUser(ctx)
	require.Equal(t, 2, calls)
	require.Empty(t, lastToken)

	cancel()
	require.NoError(t, s.SetUser(ctx, testProfile(), "tok-2"))
	require.Equal(t, 2, calls, "cancelled subscriber must not fire")
}

func TestGenerateCardNoFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^L\d{6}\d{4}$`)
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		no := GenerateCardNo()
		require.True(t, pattern.MatchString(no), "unexpected card no %q", no)
		seen[no] = true
	}
	assert.Greater(t, len(seen), 1, "card numbers should vary")
}
