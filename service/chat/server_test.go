package chat

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/Sourasish01/MERN-ChatApp/tools/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	return NewServer(ServerConf{
		NodeID: "node_test",
		JWT:    security.DefaultOptions([]byte("test-secret")),
	})
}

// drainFrames empties a client's send queue and decodes every frame.
func drainFrames(t *testing.T, c *Client) []outFrameDecoded {
	t.Helper()
	var out []outFrameDecoded
	for {
		select {
		case payload, ok := <-c.send:
			if !ok {
				return out
			}
			var f outFrameDecoded
			require.NoError(t, json.Unmarshal(payload, &f))
			out = append(out, f)
		default:
			return out
		}
	}
}

type outFrameDecoded struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func presenceSets(t *testing.T, frames []outFrameDecoded) [][]string {
	t.Helper()
	var sets [][]string
	for _, f := range frames {
		if f.Event != EventOnlineUsers {
			continue
		}
		var ids []string
		require.NoError(t, json.Unmarshal(f.Data, &ids))
		sets = append(sets, ids)
	}
	return sets
}

func TestEveryMutationBroadcastsPostMutationState(t *testing.T) {
	s := newTestServer()
	c1 := newTestClient("c1", "alice")
	c2 := newTestClient("c2", "alice")
	c3 := newTestClient("c3", "bob")

	s.Register("alice", c1)
	s.Register("alice", c2)
	s.Register("bob", c3)

	// c1 saw all three mutations, each reflecting the state after it
	sets := presenceSets(t, drainFrames(t, c1))
	require.Equal(t, [][]string{
		{"alice"},
		{"alice"},
		{"alice", "bob"},
	}, sets)

	// c3 only existed for the last one
	sets = presenceSets(t, drainFrames(t, c3))
	require.Equal(t, [][]string{{"alice", "bob"}}, sets)

	// duplicate register announces nothing
	s.Register("bob", c3)
	assert.Empty(t, drainFrames(t, c3))

	// deregister announces to the remaining connections
	s.Deregister("bob", c3)
	sets = presenceSets(t, drainFrames(t, c1))
	require.Equal(t, [][]string{{"alice"}}, sets)

	// duplicate deregister announces nothing either
	s.Deregister("bob", c3)
	assert.Empty(t, drainFrames(t, c1))
}

func TestDisconnectNeverReportedOnlineAgain(t *testing.T) {
	s := newTestServer()
	c1 := newTestClient("c1", "alice")
	c2 := newTestClient("c2", "bob")

	s.Register("alice", c1)
	s.Register("bob", c2)
	drainFrames(t, c1)

	// bob disconnects, then a third user arrives: every broadcast observed
	// from here on must exclude bob
	s.Deregister("bob", c2)
	c3 := newTestClient("c3", "carol")
	s.Register("carol", c3)

	for _, set := range presenceSets(t, drainFrames(t, c1)) {
		assert.NotContains(t, set, "bob")
	}
	// and the final state is exactly alice+carol
	assert.Equal(t, []string{"alice", "carol"}, s.OnlineUserIDs())
}

func TestConcurrentChurnBroadcastsInMutationOrder(t *testing.T) {
	s := newTestServer()
	watcher := NewClient("watch", "watcher", nil, 4096)
	s.Register("watcher", watcher)

	// Users connect and disconnect from racing goroutines. Broadcast enqueue
	// order must match mutation order, so once the churn settles the last
	// frame the watcher received reflects the true final state: nobody who
	// fully disconnected may appear in it.
	const workers = 8
	const cycles = 20
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			user := fmt.Sprintf("churn%d", w)
			for i := 0; i < cycles; i++ {
				c := newTestClient(fmt.Sprintf("%s-conn%d", user, i), user)
				s.Register(user, c)
				s.Deregister(user, c)
			}
		}(w)
	}
	wg.Wait()

	sets := presenceSets(t, drainFrames(t, watcher))
	require.NotEmpty(t, sets)
	last := sets[len(sets)-1]
	require.Equal(t, s.OnlineUserIDs(), last)
	for w := 0; w < workers; w++ {
		assert.NotContains(t, last, fmt.Sprintf("churn%d", w))
	}
}

func TestBroadcastSkipsFailingConnection(t *testing.T) {
	s := newTestServer()
	dead := NewClient("dead", "alice", nil, 1)
	dead.Close() // enqueue will fail from now on
	live := newTestClient("live", "bob")

	s.Register("alice", dead)
	s.Register("bob", live)

	// the dead client never aborts the fan-out: live still got both frames
	sets := presenceSets(t, drainFrames(t, live))
	require.Equal(t, [][]string{{"alice", "bob"}}, sets)
}

func TestAnonymousClientStaysInert(t *testing.T) {
	s := newTestServer()
	ghost := newTestClient("ghost", "")
	alice := newTestClient("c1", "alice")

	// a connection with no user id is never registered; a later presence
	// change does not reach it
	s.Register("alice", alice)

	assert.Empty(t, drainFrames(t, ghost))
	assert.Equal(t, []string{"alice"}, s.OnlineUserIDs())
}
