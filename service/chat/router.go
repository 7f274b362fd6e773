package chat

import (
	"context"
	"time"

	"github.com/Sourasish01/MERN-ChatApp/logger"
	"github.com/Sourasish01/MERN-ChatApp/module/chat/model"
	"github.com/Sourasish01/MERN-ChatApp/service/storage"
	"github.com/Sourasish01/MERN-ChatApp/tools/safe"
)

// RouteMessage delivers a freshly persisted message to the receiver's live
// clients, if any. Delivery is best-effort and at-most-once per connection:
// an offline receiver is a normal no-op (they will pull history on next
// load), and a failed push to one client never blocks the others.
func (s *Server) RouteMessage(msg *model.Message) {
	if msg == nil {
		return
	}
	targets := s.reg.ClientsFor(msg.ReceiverID)
	if len(targets) == 0 {
		s.noteRemotePresence(msg.ReceiverID, msg.MsgID)
		return
	}
	payload, err := MarshalNewMessage(msg)
	if err != nil {
		logger.Errorf("[router] marshal message id=%s: %v", msg.MsgID, err)
		return
	}
	for _, c := range targets {
		if err := c.Enqueue(payload); err != nil {
			logger.Warnf("[router] drop message id=%s conn=%s: %v", msg.MsgID, c.ConnID, err)
		}
	}
}

// noteRemotePresence consults the redis mirror when the receiver has no
// local clients. A live key on another node means the user is connected
// elsewhere; the log line is the breadcrumb for tracing such misses. Without
// redis this is a no-op.
func (s *Server) noteRemotePresence(userID, msgID string) {
	safe.Go(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		node, online, err := storage.PresenceLookup(ctx, userID)
		if err != nil {
			logger.Warnf("[router] presence lookup user=%s: %v", userID, err)
			return
		}
		if online && node != s.nodeID {
			logger.Infof("[router] receiver=%s of msg=%s online on %s, not delivered here", userID, msgID, node)
		}
	})
}
