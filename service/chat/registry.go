package chat

import (
	"sort"
	"sync"
)

// Registry is the in-memory map from user id to that user's live clients.
// It is the single source of truth for "who is online" on this node.
// An absent user and a user with an empty set are the same state: the
// per-user map is dropped as soon as its last client leaves.
type Registry struct {
	mu     sync.Mutex
	byUser map[string]map[string]*Client // user -> conn_id -> client
	byConn map[string]*Client            // conn_id -> client
}

func NewRegistry() *Registry {
	return &Registry{
		byUser: make(map[string]map[string]*Client),
		byConn: make(map[string]*Client),
	}
}

// mutation describes the outcome of one register/deregister, captured under
// the registry lock so the online snapshot is consistent with the change.
type mutation struct {
	changed     bool
	wentOnline  bool      // user's first client arrived
	wentOffline bool      // user's last client left
	online      []string  // sorted post-mutation online set
	targets     []*Client // every live client post-mutation
}

// register adds the client under userID. Re-registering the same client is
// a no-op (changed=false), so no duplicate delivery can result.
func (r *Registry) register(userID string, c *Client) mutation {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := r.byUser[userID]
	if m == nil {
		m = make(map[string]*Client)
		r.byUser[userID] = m
	}
	if _, dup := m[c.ConnID]; dup {
		return mutation{changed: false}
	}
	m[c.ConnID] = c
	r.byConn[c.ConnID] = c

	return mutation{
		changed:    true,
		wentOnline: len(m) == 1,
		online:     r.onlineLocked(),
		targets:    r.allLocked(),
	}
}

// deregister removes the client from userID's set. Removing an absent
// client or user is a no-op, never an error: the disconnect path may race
// with cleanup and double-remove.
func (r *Registry) deregister(userID string, c *Client) mutation {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := r.byUser[userID]
	if m == nil {
		return mutation{changed: false}
	}
	if _, ok := m[c.ConnID]; !ok {
		return mutation{changed: false}
	}
	delete(m, c.ConnID)
	delete(r.byConn, c.ConnID)

	last := len(m) == 0
	if last {
		delete(r.byUser, userID)
	}
	return mutation{
		changed:     true,
		wentOffline: last,
		online:      r.onlineLocked(),
		targets:     r.allLocked(),
	}
}

// ClientsFor returns the user's live clients, possibly empty. An unknown
// user is simply offline.
func (r *Registry) ClientsFor(userID string) []*Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := r.byUser[userID]
	if len(m) == 0 {
		return nil
	}
	out := make([]*Client, 0, len(m))
	for _, c := range m {
		out = append(out, c)
	}
	return out
}

// OnlineUserIDs returns a sorted snapshot of every user id with at least
// one live client.
func (r *Registry) OnlineUserIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.onlineLocked()
}

func (r *Registry) onlineLocked() []string {
	out := make([]string, 0, len(r.byUser))
	for user := range r.byUser {
		out = append(out, user)
	}
	sort.Strings(out)
	return out
}

func (r *Registry) allLocked() []*Client {
	out := make([]*Client, 0, len(r.byConn))
	for _, c := range r.byConn {
		out = append(out, c)
	}
	return out
}
