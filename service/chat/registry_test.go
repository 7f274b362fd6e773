package chat

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(connID, userID string) *Client {
	return NewClient(connID, userID, nil, 64)
}

func TestRegistryOnlineMatchesModel(t *testing.T) {
	reg := NewRegistry()
	rng := rand.New(rand.NewSource(42))

	users := []string{"alice", "bob", "carol", "dave", "erin"}
	clients := map[string]*Client{}
	model := map[string]map[string]bool{} // reference: user -> conn set

	modelOnline := func() []string {
		out := []string{}
		for u, conns := range model {
			if len(conns) > 0 {
				out = append(out, u)
			}
		}
		sort.Strings(out)
		return out
	}

	for i := 0; i < 2000; i++ {
		user := users[rng.Intn(len(users))]
		connID := fmt.Sprintf("%s-%d", user, rng.Intn(4))
		c, ok := clients[connID]
		if !ok {
			c = newTestClient(connID, user)
			clients[connID] = c
		}

		if rng.Intn(2) == 0 {
			reg.register(user, c)
			if model[user] == nil {
				model[user] = map[string]bool{}
			}
			model[user][connID] = true
		} else {
			reg.deregister(user, c)
			delete(model[user], connID)
		}

		require.Equal(t, modelOnline(), reg.OnlineUserIDs(), "iteration %d", i)
	}
}

func TestRegistrySecondConnectionDoesNotEvictFirst(t *testing.T) {
	reg := NewRegistry()
	c1 := newTestClient("c1", "alice")
	c2 := newTestClient("c2", "alice")

	reg.register("alice", c1)
	mut := reg.register("alice", c2)

	require.True(t, mut.changed)
	assert.False(t, mut.wentOnline, "alice was already online")
	assert.Len(t, reg.ClientsFor("alice"), 2)
	assert.Equal(t, []string{"alice"}, reg.OnlineUserIDs())

	// dropping one tab keeps the other and keeps the user online
	mut = reg.deregister("alice", c1)
	require.True(t, mut.changed)
	assert.False(t, mut.wentOffline)
	require.Len(t, reg.ClientsFor("alice"), 1)
	assert.Equal(t, "c2", reg.ClientsFor("alice")[0].ConnID)
	assert.Equal(t, []string{"alice"}, reg.OnlineUserIDs())
}

func TestRegistryDeregisterIdempotent(t *testing.T) {
	reg := NewRegistry()
	c1 := newTestClient("c1", "alice")

	// never-registered pair is a quiet no-op
	mut := reg.deregister("alice", c1)
	assert.False(t, mut.changed)

	reg.register("alice", c1)
	mut = reg.deregister("alice", c1)
	require.True(t, mut.changed)
	assert.True(t, mut.wentOffline)

	// double removal changes nothing
	mut = reg.deregister("alice", c1)
	assert.False(t, mut.changed)
	assert.Empty(t, reg.OnlineUserIDs())
	assert.Empty(t, reg.ClientsFor("alice"))
}

func TestRegistryDuplicateRegisterIsNoOp(t *testing.T) {
	reg := NewRegistry()
	c1 := newTestClient("c1", "alice")

	mut := reg.register("alice", c1)
	require.True(t, mut.changed)

	mut = reg.register("alice", c1)
	assert.False(t, mut.changed, "same connection registered twice")
	assert.Len(t, reg.ClientsFor("alice"), 1)
}

func TestRegistryEmptySetEqualsAbsent(t *testing.T) {
	reg := NewRegistry()
	c1 := newTestClient("c1", "alice")

	reg.register("alice", c1)
	reg.deregister("alice", c1)

	// readers cannot tell a drained user from one never seen
	assert.Empty(t, reg.ClientsFor("alice"))
	assert.Empty(t, reg.ClientsFor("nobody"))
	assert.Empty(t, reg.OnlineUserIDs())
}
