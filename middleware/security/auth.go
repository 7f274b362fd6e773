package security

import (
	"context"

	"github.com/Sourasish01/MERN-ChatApp/logger"
	usermodel "github.com/Sourasish01/MERN-ChatApp/module/user/model"
	userservice "github.com/Sourasish01/MERN-ChatApp/module/user/service"
	"github.com/Sourasish01/MERN-ChatApp/tools/errs"
	sec "github.com/Sourasish01/MERN-ChatApp/tools/security"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// CtxUserKey is where the middleware parks the authenticated user for
// downstream handlers.
const CtxUserKey = "authUser"

// UserFinder resolves a verified token subject to a full user record.
type UserFinder interface {
	FindByID(ctx context.Context, userID string) (*usermodel.User, error)
}

// Middleware authenticates the session cookie and loads the account. It
// aborts with 401 on a missing/invalid token, 404 when the account behind
// a valid token no longer exists, and 500 when the store cannot answer.
func Middleware(opts sec.Options, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sec.SessionCookie)
		if err != nil || token == "" {
			ce := errs.ErrUnauthorized
			c.AbortWithStatusJSON(ce.Code, ce)
			return
		}

		userID, err := sec.Verify(opts, token)
		if err != nil {
			logger.Infof("[auth] token rejected: %v", err)
			ce := errs.ErrInvalidToken
			c.AbortWithStatusJSON(ce.Code, ce)
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if errors.Is(err, userservice.ErrNotFound) {
			ce := errs.ErrUserNotFound
			c.AbortWithStatusJSON(ce.Code, ce)
			return
		}
		if err != nil {
			logger.Errorf("[auth] load user %s: %v", userID, err)
			ce := errs.ErrInternal
			c.AbortWithStatusJSON(ce.Code, ce)
			return
		}

		c.Set(CtxUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user the middleware authenticated, or nil when
// the route is not behind Middleware.
func CurrentUser(c *gin.Context) *usermodel.User {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*usermodel.User)
	return u
}
