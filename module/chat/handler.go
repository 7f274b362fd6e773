package chat

import (
	"context"
	"net/http"

	"github.com/Sourasish01/MERN-ChatApp/logger"
	midsec "github.com/Sourasish01/MERN-ChatApp/middleware/security"
	"github.com/Sourasish01/MERN-ChatApp/module/chat/model"
	"github.com/Sourasish01/MERN-ChatApp/service/media"
	"github.com/Sourasish01/MERN-ChatApp/tools/errs"
	"github.com/gin-gonic/gin"
)

// Store is the slice of the message store the handlers need.
type Store interface {
	Save(ctx context.Context, senderID, receiverID, text, image string) (*model.Message, error)
	ListBetween(ctx context.Context, userA, userB string) ([]model.Message, error)
}

// Router pushes a persisted message to the receiver's live connections.
// Implemented by the realtime server; delivery is best-effort.
type Router interface {
	RouteMessage(msg *model.Message)
}

// Handler serves message history and send.
type Handler struct {
	messages Store
	router   Router
	uploader media.Uploader
}

func NewHandler(messages Store, router Router, uploader media.Uploader) *Handler {
	return &Handler{messages: messages, router: router, uploader: uploader}
}

// History returns every message between the caller and :id, oldest first.
func (h *Handler) History(c *gin.Context) {
	me := midsec.CurrentUser(c)
	peer := c.Param("id")

	msgs, err := h.messages.ListBetween(c.Request.Context(), me.UserID, peer)
	if err != nil {
		h.internal(c, "list messages", err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}

type sendReq struct {
	Text  string `json:"text"`
	Image string `json:"image"` // data URI, optional
}

// Send persists a message to :id and then routes it live. Routing after a
// successful save: an offline receiver still gets the record on their next
// history fetch.
func (h *Handler) Send(c *gin.Context) {
	me := midsec.CurrentUser(c)
	receiverID := c.Param("id")

	var req sendReq
	if err := c.ShouldBindJSON(&req); err != nil {
		ce := errs.ErrBadRequest
		c.JSON(ce.Code, ce)
		return
	}
	if req.Text == "" && req.Image == "" {
		ce := errs.ErrBadRequest.WithDetail("message must carry text or an image")
		c.JSON(ce.Code, ce)
		return
	}

	var imageURL string
	if req.Image != "" {
		url, err := h.uploader.Upload(c.Request.Context(), req.Image)
		if err != nil {
			ce := errs.ErrBadRequest.WithDetail("invalid image payload")
			c.JSON(ce.Code, ce)
			return
		}
		imageURL = url
	}

	msg, err := h.messages.Save(c.Request.Context(), me.UserID, receiverID, req.Text, imageURL)
	if err != nil {
		h.internal(c, "save message", err)
		return
	}

	h.router.RouteMessage(msg)

	c.JSON(http.StatusCreated, msg)
}

func (h *Handler) internal(c *gin.Context, op string, err error) {
	logger.Errorf("[chat] %s: %v", op, err)
	ce := errs.ErrInternal
	c.JSON(ce.Code, ce)
}
