package hub_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YashRana52/INSTRAGRAM/internal/hub"
)

func TestRegistry_BindAndResolve(t *testing.T) {
	r := hub.NewRegistry()

	r.Bind("u1", "s1")

	sid, ok := r.Resolve("u1")
	require.True(t, ok)
	assert.Equal(t, "s1", sid)

	_, ok = r.Resolve("u2")
	assert.False(t, ok)
}

func TestRegistry_BindIsIdempotent(t *testing.T) {
	r := hub.NewRegistry()

	r.Bind("u1", "s1")
	r.Bind("u1", "s1")

	sid, ok := r.Resolve("u1")
	require.True(t, ok)
	assert.Equal(t, "s1", sid)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_LastConnectionWins(t *testing.T) {
	r := hub.NewRegistry()

	r.Bind("u1", "s1")
	r.Bind("u1", "s2")

	sid, ok := r.Resolve("u1")
	require.True(t, ok)
	assert.Equal(t, "s2", sid)
	assert.Equal(t, 1, r.Len())
}

// A quick reconnect must not be evicted by the old session's late
// disconnect.
func TestRegistry_StaleUnbindDoesNotEvictNewSession(t *testing.T) {
	r := hub.NewRegistry()

	r.Bind("u1", "s1")
	r.Bind("u1", "s2")

	uid, ok := r.Unbind("s1")
	assert.False(t, ok)
	assert.Empty(t, uid)

	sid, ok := r.Resolve("u1")
	require.True(t, ok)
	assert.Equal(t, "s2", sid)
}

func TestRegistry_UnbindReturnsOwner(t *testing.T) {
	r := hub.NewRegistry()

	r.Bind("u1", "s1")

	uid, ok := r.Unbind("s1")
	require.True(t, ok)
	assert.Equal(t, "u1", uid)

	_, ok = r.Resolve("u1")
	assert.False(t, ok)
}

func TestRegistry_OnlineUsersTracksMostRecentOperations(t *testing.T) {
	r := hub.NewRegistry()

	r.Bind("u1", "s1")
	r.Bind("u2", "s2")
	assert.ElementsMatch(t, []string{"u1", "u2"}, r.OnlineUsers())

	_, ok := r.Unbind("s1")
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"u2"}, r.OnlineUsers())

	_, ok = r.Unbind("s2")
	require.True(t, ok)
	assert.Empty(t, r.OnlineUsers())
}

func TestRegistry_UnbindUnknownSessionIsNoop(t *testing.T) {
	r := hub.NewRegistry()

	r.Bind("u1", "s1")

	_, ok := r.Unbind("never-seen")
	assert.False(t, ok)
	assert.ElementsMatch(t, []string{"u1"}, r.OnlineUsers())
}
