// Package api wires the HTTP surface: routes, request decoding and error
// mapping. All validation and permission checks live in the service layer.
package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"splitledger/internal/auth"
	"splitledger/internal/middleware"
	"splitledger/internal/service"
	"splitledger/internal/session"
)

// Deps are the collaborators the router needs.
type Deps struct {
	Auth     *auth.Service
	Tokens   *auth.TokenManager
	Groups   *service.GroupService
	Expenses *service.ExpenseService
	Personal *service.PersonalService
	Sessions *session.Manager

	AllowedOrigins []string
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(), middleware.Metrics())

	corsCfg := cors.DefaultConfig()
	if len(deps.AllowedOrigins) == 1 && deps.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = deps.AllowedOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	ah := &authHandlers{auth: deps.Auth, tokens: deps.Tokens}
	gh := &groupHandlers{groups: deps.Groups}
	eh := &expenseHandlers{expenses: deps.Expenses}
	bh := &balanceHandlers{sessions: deps.Sessions}
	ph := &personalHandlers{personal: deps.Personal}

	v1 := r.Group("/api/v1")
	v1.POST("/auth/register", ah.register)
	v1.POST("/auth/login", ah.login)

	authed := v1.Group("", middleware.Auth(deps.Tokens))
	authed.POST("/auth/logout", ah.logout)

	authed.POST("/groups", gh.create)
	authed.GET("/groups", gh.list)
	authed.GET("/groups/:id", gh.get)
	authed.GET("/groups/:id/activity", gh.activity)

	authed.GET("/groups/:id/expenses", eh.list)
	authed.POST("/groups/:id/expenses", eh.add)
	authed.PUT("/groups/:id/expenses/:expenseId", eh.update)
	authed.DELETE("/groups/:id/expenses/:expenseId", eh.delete)
	authed.GET("/groups/:id/balances", eh.balances)

	authed.GET("/balances", bh.totals)
	authed.GET("/balances/stream", bh.stream)

	authed.GET("/personal", ph.list)
	authed.POST("/personal", ph.add)
	authed.DELETE("/personal/:expenseId", ph.delete)
	authed.GET("/personal/total", ph.total)

	return r
}
