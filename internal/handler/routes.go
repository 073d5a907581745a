package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/gertonargent/gta-backend/internal/middleware"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, advisorLimiter *middleware.RateLimiter, authHandler *AuthHandler, profileHandler *ProfileHandler, budgetHandler *BudgetHandler, transactionHandler *TransactionHandler, goalHandler *GoalHandler, advisorHandler *AdvisorHandler, wsHandler *WebSocketHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Auth routes (public except /me)
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/google", authHandler.GoogleLogin)
	auth.GET("/google/callback", authHandler.GoogleCallback)
	auth.GET("/me", authHandler.Me, authMiddleware.Authenticate())

	// Profile routes (protected)
	profile := api.Group("/profile")
	profile.Use(authMiddleware.Authenticate())
	profile.GET("", profileHandler.GetProfile)
	profile.PUT("", profileHandler.UpdateProfile)
	profile.POST("/avatar", profileHandler.UploadAvatar)

	// Budget routes (protected)
	budgets := api.Group("/budgets")
	budgets.Use(authMiddleware.Authenticate())
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/summary", budgetHandler.GetBudgetSummary)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	// Transaction routes (protected)
	transactions := api.Group("/transactions")
	transactions.Use(authMiddleware.Authenticate())
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/summary", transactionHandler.GetTransactionSummary)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Goal routes (protected)
	goals := api.Group("/goals")
	goals.Use(authMiddleware.Authenticate())
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.GET("/summary", goalHandler.GetGoalSummary)
	goals.GET("/:id", goalHandler.GetGoal)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.POST("/:id/add", goalHandler.AddToGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)

	// Advisor routes (protected, rate limited)
	advisor := api.Group("/advisor")
	advisor.Use(authMiddleware.Authenticate())
	advisor.Use(middleware.RateLimitMiddleware(advisorLimiter))
	advisor.POST("/analyze", advisorHandler.Analyze)
	advisor.POST("/chat", advisorHandler.Chat)
	advisor.POST("/chat/confirm", advisorHandler.ConfirmProposal)
	advisor.POST("/voice", advisorHandler.Voice)
	advisor.GET("/projection", advisorHandler.GetProjection)

	// WebSocket endpoint (token validated via query param)
	e.GET("/ws", wsHandler.HandleWS)
}
