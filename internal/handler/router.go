package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Adam-Mik/Projekt-zespolowy/internal/auth"
	"github.com/Adam-Mik/Projekt-zespolowy/internal/middleware"
)

// NewRouter wires the REST surface. Registration and login are the only
// unauthenticated application routes; everything under /api/ besides login
// requires a valid bearer token.
func NewRouter(authHandler *AuthHandler, groupHandler *GroupHandler, expenseHandler *ExpenseHandler, jwtManager *auth.JWTManager) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.Metrics())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/users/", authHandler.Register)
	// The mobile client registers through its /api/ base path.
	r.POST("/api/users/", authHandler.Register)
	r.POST("/api/login/", authHandler.Login)

	api := r.Group("/api", middleware.RequireAuth(jwtManager))

	api.GET("/groups/", groupHandler.List)
	api.POST("/groups/", groupHandler.Create)
	api.GET("/groups/:id/", groupHandler.Get)
	api.PUT("/groups/:id/", groupHandler.Update)
	api.DELETE("/groups/:id/", groupHandler.Delete)
	api.GET("/groups/:id/balances/", groupHandler.Balances)

	api.GET("/expenses/", expenseHandler.List)
	api.POST("/expenses/", expenseHandler.Create)
	api.GET("/expenses/:id/", expenseHandler.Get)
	api.PUT("/expenses/:id/", expenseHandler.Update)
	api.DELETE("/expenses/:id/", expenseHandler.Delete)

	return r
}
