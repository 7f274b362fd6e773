package chat

import (
	"context"
	"sync"
	"time"

	"github.com/Sourasish01/MERN-ChatApp/logger"
	"github.com/Sourasish01/MERN-ChatApp/service/storage"
	"github.com/Sourasish01/MERN-ChatApp/tools/safe"
	"github.com/Sourasish01/MERN-ChatApp/tools/security"
)

const sendQueueSize = 64

// Server owns the connection registry and drives presence broadcasts and
// message routing. One instance per process; handed by reference to the
// HTTP layer.
type Server struct {
	nodeID      string
	reg         *Registry
	jwtOpts     security.Options
	requireAuth bool

	// bcastMu serializes each registry mutation with its presence fan-out.
	// Without it two racing mutations could enqueue their broadcasts in
	// inverted order, and a snapshot taken before a disconnect could be the
	// last one clients ever see.
	bcastMu sync.Mutex
}

type ServerConf struct {
	NodeID string
	// JWT verifies the session cookie carried on the websocket handshake.
	JWT security.Options
	// RequireAuth refuses handshakes whose claimed userId is not backed by
	// a valid session cookie. When false the claimed id is trusted as-is.
	RequireAuth bool
}

func NewServer(conf ServerConf) *Server {
	return &Server{
		nodeID:      conf.NodeID,
		reg:         NewRegistry(),
		jwtOpts:     conf.JWT,
		requireAuth: conf.RequireAuth,
	}
}

// OnlineUserIDs exposes the current presence snapshot.
func (s *Server) OnlineUserIDs() []string { return s.reg.OnlineUserIDs() }

// Register adds a client under userID and announces the new presence state
// to everyone. Registering the same client twice is a no-op and announces
// nothing.
func (s *Server) Register(userID string, c *Client) {
	s.bcastMu.Lock()
	mut := s.reg.register(userID, c)
	if mut.changed {
		broadcastPresence(mut.online, mut.targets)
	}
	s.bcastMu.Unlock()
	if !mut.changed {
		return
	}
	logger.Infof("[chat] register user=%s conn=%s online=%d", userID, c.ConnID, len(mut.online))
	if mut.wentOnline {
		s.mirrorOnline(userID)
	}
}

// Deregister removes a client and announces the new presence state. The
// snapshot is computed after the removal, under the same lock, so the
// departing user is never reported online again. Safe to call for a client
// that was never registered or is already gone.
func (s *Server) Deregister(userID string, c *Client) {
	s.bcastMu.Lock()
	mut := s.reg.deregister(userID, c)
	if mut.changed {
		broadcastPresence(mut.online, mut.targets)
	}
	s.bcastMu.Unlock()
	if !mut.changed {
		return
	}
	logger.Infof("[chat] deregister user=%s conn=%s online=%d", userID, c.ConnID, len(mut.online))
	if mut.wentOffline {
		s.mirrorOffline(userID)
	}
}

// Redis mirror writes are best-effort and off the hot path; the registry
// answered already.
func (s *Server) mirrorOnline(userID string) {
	safe.Go(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := storage.PresenceOnline(ctx, userID, s.nodeID); err != nil {
			logger.Warnf("[chat] presence mirror online user=%s: %v", userID, err)
		}
	})
}

func (s *Server) mirrorOffline(userID string) {
	safe.Go(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := storage.PresenceOffline(ctx, userID); err != nil {
			logger.Warnf("[chat] presence mirror offline user=%s: %v", userID, err)
		}
	})
}
