package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestWeekCache(t *testing.T) {
	db := testDB(t)

	_, ok := db.GetWeekCache("abc", 1)
	assert.False(t, ok)

	require.NoError(t, db.PutWeekCache("abc", 1, []byte(`[{"id":"x"}]`)))

	payload, ok := db.GetWeekCache("abc", 1)
	require.True(t, ok)
	assert.Equal(t, `[{"id":"x"}]`, string(payload))

	// Same key, different week is a separate entry.
	_, ok = db.GetWeekCache("abc", 2)
	assert.False(t, ok)

	// Replacing overwrites.
	require.NoError(t, db.PutWeekCache("abc", 1, []byte(`[]`)))
	payload, ok = db.GetWeekCache("abc", 1)
	require.True(t, ok)
	assert.Equal(t, `[]`, string(payload))
}

func TestPushSubscriptions(t *testing.T) {
	db := testDB(t)

	subA := `{"endpoint":"https://push.example/a"}`
	subB := `{"endpoint":"https://push.example/b"}`

	require.NoError(t, db.SavePushSubscription(subA))
	require.NoError(t, db.SavePushSubscription(subB))
	// Duplicates are silently ignored.
	require.NoError(t, db.SavePushSubscription(subA))

	subs, err := db.PushSubscriptions()
	require.NoError(t, err)
	assert.Equal(t, []string{subA, subB}, subs)

	require.NoError(t, db.DeletePushSubscription(subA))
	subs, err = db.PushSubscriptions()
	require.NoError(t, err)
	assert.Equal(t, []string{subB}, subs)
}
