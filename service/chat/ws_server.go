package chat

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/Sourasish01/MERN-ChatApp/logger"
	"github.com/Sourasish01/MERN-ChatApp/tools/ids"
	"github.com/Sourasish01/MERN-ChatApp/tools/safe"
	"github.com/Sourasish01/MERN-ChatApp/tools/security"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// HandleWS is the websocket entry point: GET /ws?userId=<id>.
//
// Identity comes from the handshake. The claimed userId must be backed by
// the same session cookie the REST layer issues; a mismatch or (when
// required) a missing cookie refuses the connection before registration.
// A handshake with no userId at all is accepted but inert: the socket is
// served, it just never joins the registry and receives nothing.
func (s *Server) HandleWS(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Infof("[ws] upgrade failed: %v", err)
		return
	}

	userID := c.Query("userId")
	if userID != "" {
		if ok := s.authorizeHandshake(c, userID); !ok {
			refuse(ws, "session verification failed")
			return
		}
	}

	client := NewClient(ids.GenerateString(), userID, ws, sendQueueSize)
	safe.Go(client.writePump)

	// Exactly one deregistration per connection lifetime, however many
	// disconnect signals the transport produces.
	var closeOnce sync.Once
	closeConn := func() {
		closeOnce.Do(func() {
			if client.UserID != "" {
				s.Deregister(client.UserID, client)
			}
			client.Close()
		})
	}
	defer closeConn()

	if userID != "" {
		s.Register(userID, client)
	}

	s.readLoop(client, ws)
}

// authorizeHandshake validates the session cookie against the claimed id.
func (s *Server) authorizeHandshake(c *gin.Context, claimed string) bool {
	token, err := c.Cookie(security.SessionCookie)
	if err != nil || token == "" {
		if s.requireAuth {
			logger.Warnf("[ws] refuse user=%s: no session cookie", claimed)
			return false
		}
		// Permissive mode: trust the claimed id, as the observed
		// deployment did.
		return true
	}
	sub, err := security.Verify(s.jwtOpts, token)
	if err != nil {
		logger.Warnf("[ws] refuse user=%s: %v", claimed, err)
		return false
	}
	if sub != claimed {
		logger.Warnf("[ws] refuse user=%s: cookie issued for %s", claimed, sub)
		return false
	}
	return true
}

// readLoop consumes inbound frames until the peer goes away. The server
// only interprets pings; everything else is ignored.
func (s *Server) readLoop(client *Client, ws *websocket.Conn) {
	for {
		mt, data, rerr := ws.ReadMessage()
		if rerr != nil {
			if websocket.IsCloseError(rerr,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				logger.Infof("[ws] peer closed conn=%s", client.ConnID)
			} else if ne, ok := rerr.(net.Error); ok && ne.Timeout() {
				logger.Infof("[ws] read timeout conn=%s", client.ConnID)
			} else {
				logger.Infof("[ws] read err conn=%s: %v", client.ConnID, rerr)
			}
			return
		}
		if mt != websocket.TextMessage && mt != websocket.BinaryMessage {
			continue
		}

		frame, perr := ParseFrame(data)
		if perr != nil {
			logger.Infof("[ws] bad frame conn=%s: %v", client.ConnID, perr)
			continue
		}
		if frame.Event == EventPing {
			s.handlePing(client, frame)
		}
	}
}

func (s *Server) handlePing(client *Client, frame *Frame) {
	p, err := ExtractPingPayload(frame)
	if err != nil {
		logger.Infof("[ws] bad ping conn=%s: %v", client.ConnID, err)
		return
	}
	if p.TS == 0 {
		p.TS = time.Now().UnixMilli()
	}
	pong, err := MarshalPong(p.TS)
	if err != nil {
		return
	}
	if err := client.Enqueue(pong); err != nil {
		logger.Warnf("[ws] drop pong conn=%s: %v", client.ConnID, err)
	}
}

func refuse(ws *websocket.Conn, reason string) {
	deadline := time.Now().Add(writeDeadline)
	_ = ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason), deadline)
	_ = ws.Close()
}
