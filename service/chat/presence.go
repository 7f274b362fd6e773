package chat

import (
	"github.com/Sourasish01/MERN-ChatApp/logger"
)

// broadcastPresence pushes the online snapshot to every live client.
// Called synchronously after each registry mutation with targets captured
// under the registry lock, so every broadcast reflects the post-mutation
// state and a disconnecting user can never reappear as online.
//
// Failures are isolated per client: a slow or closed client is logged and
// skipped, the rest of the fan-out continues.
func broadcastPresence(online []string, targets []*Client) {
	payload, err := MarshalPresence(online)
	if err != nil {
		logger.Errorf("[presence] marshal online set: %v", err)
		return
	}
	for _, c := range targets {
		if err := c.Enqueue(payload); err != nil {
			logger.Warnf("[presence] drop for conn=%s user=%s: %v", c.ConnID, c.UserID, err)
		}
	}
}
