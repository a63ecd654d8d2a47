package session

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, redismock.ClientMock) {
	rdb, mock := redismock.NewClientMock()
	store := NewStore(rdb, []byte("test-secret"), time.Hour)
	store.newID = func() string { return "sid-1" }
	return store, mock
}

func TestStore_CreateAndLoad(t *testing.T) {
	ctx := context.Background()
	store, mock := newTestStore(t)

	mock.ExpectSet("session:sid-1", `{"user_id":7,"flash":"Registered!"}`, time.Hour).SetVal("OK")
	sess, token, err := store.Create(ctx, 7, "Registered!")
	require.NoError(t, err)
	assert.Equal(t, "sid-1", sess.ID)
	assert.NotEmpty(t, token)

	mock.ExpectGet("session:sid-1").SetVal(`{"user_id":7,"flash":"Registered!"}`)
	loaded, err := store.Load(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, &Session{ID: "sid-1", UserID: 7, Flash: "Registered!"}, loaded)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_LoadRejectsBadTokens(t *testing.T) {
	ctx := context.Background()

	t.Run("garbage", func(t *testing.T) {
		store, mock := newTestStore(t)
		_, err := store.Load(ctx, "not-a-token")
		assert.ErrorIs(t, err, ErrNoSession)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("signed with another secret", func(t *testing.T) {
		other, otherMock := newTestStore(t)
		other.secret = []byte("another-secret")
		otherMock.ExpectSet("session:sid-1", `{"user_id":7}`, time.Hour).SetVal("OK")
		_, token, err := other.Create(ctx, 7, "")
		require.NoError(t, err)

		store, _ := newTestStore(t)
		_, err = store.Load(ctx, token)
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("expired", func(t *testing.T) {
		store, mock := newTestStore(t)
		store.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		mock.ExpectSet("session:sid-1", `{"user_id":7}`, time.Hour).SetVal("OK")
		_, token, err := store.Create(ctx, 7, "")
		require.NoError(t, err)

		store.now = time.Now
		_, err = store.Load(ctx, token)
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("revoked", func(t *testing.T) {
		store, mock := newTestStore(t)
		mock.ExpectSet("session:sid-1", `{"user_id":7}`, time.Hour).SetVal("OK")
		_, token, err := store.Create(ctx, 7, "")
		require.NoError(t, err)

		mock.ExpectGet("session:sid-1").RedisNil()
		_, err = store.Load(ctx, token)
		assert.ErrorIs(t, err, ErrNoSession)
	})
}

func TestStore_SaveKeepsTTL(t *testing.T) {
	store, mock := newTestStore(t)
	mock.ExpectSet("session:sid-1", `{"user_id":7}`, redis.KeepTTL).SetVal("OK")

	err := store.Save(context.Background(), &Session{ID: "sid-1", UserID: 7})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Destroy(t *testing.T) {
	store, mock := newTestStore(t)
	mock.ExpectDel("session:sid-1").SetVal(1)

	assert.NoError(t, store.Destroy(context.Background(), "sid-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserIDContext(t *testing.T) {
	_, ok := UserID(context.Background())
	assert.False(t, ok)

	id, ok := UserID(WithUserID(context.Background(), 9))
	assert.True(t, ok)
	assert.Equal(t, uint(9), id)
}
