package user

import (
	"context"
	"net/http"

	"github.com/Sourasish01/MERN-ChatApp/logger"
	midsec "github.com/Sourasish01/MERN-ChatApp/middleware/security"
	"github.com/Sourasish01/MERN-ChatApp/module/user/model"
	userservice "github.com/Sourasish01/MERN-ChatApp/module/user/service"
	"github.com/Sourasish01/MERN-ChatApp/service/media"
	"github.com/Sourasish01/MERN-ChatApp/tools/errs"
	"github.com/Sourasish01/MERN-ChatApp/tools/security"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Store is the slice of the user directory the auth handlers need.
type Store interface {
	Create(ctx context.Context, email, fullName, passwordHash string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, userID string) (*model.User, error)
	UpdateAvatar(ctx context.Context, userID, faceURL string) (*model.User, error)
	ListOthers(ctx context.Context, selfID string) ([]model.User, error)
}

// Handler serves the account endpoints: signup, login, logout, profile
// update and the auth check the client runs on load.
type Handler struct {
	users        Store
	jwt          security.Options
	uploader     media.Uploader
	secureCookie bool
}

func NewHandler(users Store, jwt security.Options, uploader media.Uploader, secureCookie bool) *Handler {
	return &Handler{users: users, jwt: jwt, uploader: uploader, secureCookie: secureCookie}
}

type signupReq struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Signup(c *gin.Context) {
	var req signupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		ce := errs.ErrBadRequest
		c.JSON(ce.Code, ce)
		return
	}
	if req.FullName == "" || req.Email == "" || req.Password == "" {
		ce := errs.ErrMissingFields
		c.JSON(ce.Code, ce)
		return
	}
	if len(req.Password) < 6 {
		ce := errs.ErrPasswordTooShort
		c.JSON(ce.Code, ce)
		return
	}

	if _, err := h.users.FindByEmail(c.Request.Context(), req.Email); err == nil {
		ce := errs.ErrEmailTaken
		c.JSON(ce.Code, ce)
		return
	} else if !errors.Is(err, userservice.ErrNotFound) {
		h.internal(c, "signup lookup", err)
		return
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		h.internal(c, "hash password", err)
		return
	}

	u, err := h.users.Create(c.Request.Context(), req.Email, req.FullName, hash)
	if errors.Is(err, userservice.ErrEmailExists) {
		ce := errs.ErrEmailTaken
		c.JSON(ce.Code, ce)
		return
	}
	if err != nil {
		h.internal(c, "create user", err)
		return
	}

	if err := h.setSessionCookie(c, u.UserID); err != nil {
		h.internal(c, "issue session", err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		ce := errs.ErrBadRequest
		c.JSON(ce.Code, ce)
		return
	}

	u, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if errors.Is(err, userservice.ErrNotFound) {
		ce := errs.ErrInvalidCredentials
		c.JSON(ce.Code, ce)
		return
	}
	if err != nil {
		h.internal(c, "login lookup", err)
		return
	}
	if !security.CheckPassword(u.PasswordHash, req.Password) {
		ce := errs.ErrInvalidCredentials
		c.JSON(ce.Code, ce)
		return
	}

	if err := h.setSessionCookie(c, u.UserID); err != nil {
		h.internal(c, "issue session", err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(security.SessionCookie, "", -1, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
}

type updateProfileReq struct {
	ProfilePic string `json:"profilePic"`
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	me := midsec.CurrentUser(c)
	var req updateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil || req.ProfilePic == "" {
		ce := errs.ErrBadRequest.WithDetail("profile pic is required")
		c.JSON(ce.Code, ce)
		return
	}

	url, err := h.uploader.Upload(c.Request.Context(), req.ProfilePic)
	if err != nil {
		ce := errs.ErrBadRequest.WithDetail("invalid image payload")
		c.JSON(ce.Code, ce)
		return
	}

	u, err := h.users.UpdateAvatar(c.Request.Context(), me.UserID, url)
	if err != nil {
		h.internal(c, "update avatar", err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// Check returns the authenticated account; the client calls it on every
// page load to restore the session.
func (h *Handler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, midsec.CurrentUser(c))
}

// ListOthers feeds the sidebar roster: everyone except the caller.
func (h *Handler) ListOthers(c *gin.Context) {
	me := midsec.CurrentUser(c)
	users, err := h.users.ListOthers(c.Request.Context(), me.UserID)
	if err != nil {
		h.internal(c, "list users", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) setSessionCookie(c *gin.Context, userID string) error {
	token, _, err := security.Generate(h.jwt, userID)
	if err != nil {
		return err
	}
	maxAge := int(h.jwt.TTL.Seconds())
	if maxAge <= 0 {
		maxAge = 7 * 24 * 60 * 60
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(security.SessionCookie, token, maxAge, "/", "", h.secureCookie, true)
	return nil
}

func (h *Handler) internal(c *gin.Context, op string, err error) {
	logger.Errorf("[user] %s: %v", op, err)
	ce := errs.ErrInternal
	c.JSON(ce.Code, ce)
}
