package chat

import (
	"encoding/json"

	"github.com/Sourasish01/MERN-ChatApp/module/chat/model"
	"github.com/Sourasish01/MERN-ChatApp/tools/decode"
	"github.com/pkg/errors"
)

// Wire events. Names match what the web client subscribes to.
const (
	EventOnlineUsers = "getOnlineUsers"
	EventNewMessage  = "newMessage"
	EventPing        = "ping"
	EventPong        = "pong"
)

// Frame is the envelope for every websocket event in either direction.
type Frame struct {
	Event string         `json:"event"`
	Data  map[string]any `json:"data,omitempty"`
}

// ParseFrame decodes an inbound client frame.
func ParseFrame(raw []byte) (*Frame, error) {
	var f Frame
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, errors.Wrap(err, "unmarshal frame")
	}
	if f.Event == "" {
		return nil, errors.New("frame missing event")
	}
	return &f, nil
}

// PingPayload is the only inbound payload the server interprets.
type PingPayload struct {
	TS int64 `json:"ts,omitempty"`
}

func ExtractPingPayload(f *Frame) (*PingPayload, error) {
	if f.Data == nil {
		return &PingPayload{}, nil
	}
	return decode.Map[PingPayload](f.Data)
}

type outFrame struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// MarshalPresence builds a getOnlineUsers frame from the online snapshot.
func MarshalPresence(online []string) ([]byte, error) {
	if online == nil {
		online = []string{}
	}
	return json.Marshal(outFrame{Event: EventOnlineUsers, Data: online})
}

// MarshalNewMessage builds a newMessage frame carrying the full record.
func MarshalNewMessage(m *model.Message) ([]byte, error) {
	if m == nil {
		return nil, errors.New("nil message")
	}
	return json.Marshal(outFrame{Event: EventNewMessage, Data: m})
}

// MarshalPong answers a ping, echoing the client timestamp.
func MarshalPong(ts int64) ([]byte, error) {
	return json.Marshal(outFrame{Event: EventPong, Data: PingPayload{TS: ts}})
}
