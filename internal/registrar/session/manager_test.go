package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/registrar/internal/registrar/domain"
	"github.com/aussiebroadwan/registrar/internal/registrar/store/drivers/sqlite"
	"github.com/aussiebroadwan/registrar/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

var leader = domain.User{ID: "u-1", Username: "leader", Role: domain.RoleTeamLeader}

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newTestManager(t *testing.T, store Store) (*Manager, *clock) {
	t.Helper()
	m, err := NewManager(store, testSecret, time.Hour, true)
	require.NoError(t, err)
	c := &clock{now: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)}
	m.Now = c.Now
	return m, c
}

func issue(t *testing.T, m *Manager) (*http.Cookie, domain.Session) {
	t.Helper()
	rec := httptest.NewRecorder()
	s, err := m.Issue(context.Background(), rec, leader)
	require.NoError(t, err)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0], s
}

func requestWith(c *http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if c != nil {
		r.AddCookie(c)
	}
	return r
}

func TestManager_IssueAndResolve(t *testing.T) {
	store := NewMemoryStore()
	m, _ := newTestManager(t, store)

	cookie, s := issue(t, m)
	require.Equal(t, CookieName, cookie.Name)
	require.True(t, cookie.HttpOnly)
	require.True(t, cookie.Secure)
	require.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	require.Equal(t, "/", cookie.Path)
	require.Equal(t, 3600, cookie.MaxAge)

	require.Equal(t, leader.ID, s.UserID)
	require.Equal(t, domain.RoleTeamLeader, s.Role)
	require.Equal(t, 1, store.Len())

	got, ok, err := m.Resolve(context.Background(), requestWith(cookie))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, s.ID, got.ID)
	require.Equal(t, "leader", got.Username)

	p, ok, err := m.Authenticate(requestWith(cookie))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "team_leader", p.Role)
	require.True(t, p.Can(domain.CapRegistrationsRead))
	require.False(t, p.Can(domain.CapUsersManage))
}

func TestManager_StoresFingerprintNotCookieID(t *testing.T) {
	m, _ := newTestManager(t, NewMemoryStore())

	cookie, s := issue(t, m)
	claims, err := m.Tokens.Verify(cookie.Value, m.Now())
	require.NoError(t, err)
	require.NotEqual(t, claims.SID, s.ID)
	require.Equal(t, cryptox.FingerprintToken(claims.SID), s.ID)
}

func TestManager_AnonymousCases(t *testing.T) {
	m, c := newTestManager(t, NewMemoryStore())
	cookie, _ := issue(t, m)

	t.Run("no cookie", func(t *testing.T) {
		_, ok, err := m.Resolve(context.Background(), requestWith(nil))
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("tampered cookie", func(t *testing.T) {
		bad := *cookie
		bad.Value = cookie.Value[:len(cookie.Value)/2] + "x" + cookie.Value[len(cookie.Value)/2+1:]
		if bad.Value == cookie.Value {
			bad.Value = "x" + cookie.Value
		}
		_, ok, err := m.Resolve(context.Background(), requestWith(&bad))
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("garbage cookie", func(t *testing.T) {
		_, ok, err := m.Resolve(context.Background(), requestWith(&http.Cookie{Name: CookieName, Value: "abc"}))
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("cookie signed with another secret", func(t *testing.T) {
		other, err := NewManager(NewMemoryStore(), []byte("ffffffffffffffffffffffffffffffff"), time.Hour, false)
		require.NoError(t, err)
		foreign, _ := issue(t, other)
		_, ok, err := m.Resolve(context.Background(), requestWith(foreign))
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("expired", func(t *testing.T) {
		c.now = c.now.Add(2 * time.Hour)
		_, ok, err := m.Resolve(context.Background(), requestWith(cookie))
		require.NoError(t, err)
		require.False(t, ok)
	})
}

func TestManager_DestroyIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	m, _ := newTestManager(t, store)
	cookie, _ := issue(t, m)

	rec := httptest.NewRecorder()
	require.NoError(t, m.Destroy(context.Background(), rec, requestWith(cookie)))
	require.Equal(t, 0, store.Len())

	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	require.Equal(t, CookieName, cleared[0].Name)
	require.Empty(t, cleared[0].Value)
	require.Less(t, cleared[0].MaxAge, 0)

	_, ok, err := m.Resolve(context.Background(), requestWith(cookie))
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, m.Destroy(context.Background(), httptest.NewRecorder(), requestWith(cookie)))
	require.NoError(t, m.Destroy(context.Background(), httptest.NewRecorder(), requestWith(nil)))
}

func TestManager_Purge(t *testing.T) {
	store := NewMemoryStore()
	m, c := newTestManager(t, store)
	issue(t, m)
	issue(t, m)

	n, err := m.Purge(context.Background())
	require.NoError(t, err)
	require.Zero(t, n)

	c.now = c.now.Add(2 * time.Hour)
	n, err = m.Purge(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
	require.Equal(t, 0, store.Len())
}

func TestNewManager_Defaults(t *testing.T) {
	m, err := NewManager(NewMemoryStore(), testSecret, 0, false)
	require.NoError(t, err)
	require.Equal(t, DefaultTTL, m.TTL)

	_, err = NewManager(NewMemoryStore(), []byte("short"), time.Hour, false)
	require.Error(t, err)
}

func TestDatabaseStore(t *testing.T) {
	ctx := context.Background()

	db, err := sqlite.NewStore(sqlite.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.ApplyMigrations())

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, db.Users().CreateUser(ctx, domain.User{
		ID: leader.ID, Username: leader.Username, PasswordHash: "x", Role: leader.Role,
		CreatedAt: now, UpdatedAt: now,
	}))

	ds := NewDatabaseStore(db)
	m, c := newTestManager(t, ds)
	c.now = now

	cookie, s := issue(t, m)
	got, ok, err := m.Resolve(ctx, requestWith(cookie))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, s.ID, got.ID)
	require.NoError(t, ds.Ping(ctx))

	c.now = now.Add(2 * time.Hour)
	_, ok, err = m.Resolve(ctx, requestWith(cookie))
	require.NoError(t, err)
	require.False(t, ok)

	n, err := m.Purge(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
}

func TestOpen(t *testing.T) {
	s, err := Open(context.Background(), StoreMemory, nil, "")
	require.NoError(t, err)
	require.IsType(t, &MemoryStore{}, s)

	_, err = Open(context.Background(), StoreRedis, nil, "")
	require.Error(t, err)

	_, err = Open(context.Background(), "file", nil, "")
	require.Error(t, err)

	require.True(t, ValidStoreKind(StoreDatabase))
	require.False(t, ValidStoreKind("file"))
}
