package middleware

import "github.com/gin-gonic/gin"

type RouteOpt struct {
	IsAuth bool
}

// Group wraps a gin route group with the session-auth middleware so route
// tables can declare protection per endpoint.
type Group struct {
	r    gin.IRoutes
	auth gin.HandlerFunc
}

func NewGroup(r gin.IRoutes, auth gin.HandlerFunc) *Group {
	return &Group{r: r, auth: auth}
}

func (g *Group) POST(path string, handler gin.HandlerFunc, opt RouteOpt) {
	if opt.IsAuth {
		g.r.POST(path, g.auth, handler)
	} else {
		g.r.POST(path, handler)
	}
}

func (g *Group) GET(path string, handler gin.HandlerFunc, opt RouteOpt) {
	if opt.IsAuth {
		g.r.GET(path, g.auth, handler)
	} else {
		g.r.GET(path, handler)
	}
}

func (g *Group) PUT(path string, handler gin.HandlerFunc, opt RouteOpt) {
	if opt.IsAuth {
		g.r.PUT(path, g.auth, handler)
	} else {
		g.r.PUT(path, handler)
	}
}
