package handler

import (
	"net/http"

	"github.com/ViniciusBessa/planejando-api/internal/middleware"
	"github.com/labstack/echo/v4"
)

// Handlers groups the per-resource handlers wired by RegisterRoutes
type Handlers struct {
	Auth     *AuthHandler
	User     *UserHandler
	Category *CategoryHandler
	Expense  *ExpenseHandler
	Revenue  *RevenueHandler
	Goal     *GoalHandler
}

// RegisterRoutes mounts the API under /api/v1. Every route runs the optional
// authenticator first, then any extra middlewares (rate limiting needs the
// authenticated user, so it must run after Authenticate); RequireAuth and
// RequireAdmin gate the protected groups.
func RegisterRoutes(e *echo.Echo, h Handlers, auth *middleware.AuthMiddleware, extra ...echo.MiddlewareFunc) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	v1 := e.Group("/api/v1", append([]echo.MiddlewareFunc{auth.Authenticate()}, extra...)...)

	authGroup := v1.Group("/auth")
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/login", h.Auth.Login)
	authGroup.GET("/user", h.Auth.CurrentUser, auth.RequireAuth())

	users := v1.Group("/users")
	users.GET("", h.User.GetUsers, auth.RequireAuth(), auth.RequireAdmin())
	users.POST("/resetpassword", h.User.ForgotPassword)
	users.GET("/resetpassword/:token", h.User.CheckResetToken)
	users.PATCH("/resetpassword", h.User.ResetPassword)
	users.DELETE("/account", h.User.DeleteOwnAccount, auth.RequireAuth())
	users.PATCH("/account/name", h.User.UpdateName, auth.RequireAuth())
	users.PATCH("/account/email", h.User.UpdateEmail, auth.RequireAuth())
	users.PATCH("/account/password", h.User.UpdatePassword, auth.RequireAuth())
	users.GET("/:userId", h.User.GetUserByID, auth.RequireAuth(), auth.RequireAdmin())
	users.DELETE("/:userId", h.User.DeleteUser, auth.RequireAuth(), auth.RequireAdmin())

	categories := v1.Group("/categories")
	categories.GET("", h.Category.GetCategories)
	categories.GET("/:categoryId", h.Category.GetCategory)
	categories.POST("", h.Category.CreateCategory, auth.RequireAuth(), auth.RequireAdmin())
	categories.PATCH("/:categoryId", h.Category.UpdateCategory, auth.RequireAuth(), auth.RequireAdmin())
	categories.DELETE("/:categoryId", h.Category.DeleteCategory, auth.RequireAuth(), auth.RequireAdmin())

	expenses := v1.Group("/expenses", auth.RequireAuth())
	expenses.GET("", h.Expense.GetExpenses)
	expenses.GET("/:expenseId", h.Expense.GetExpense)
	expenses.POST("", h.Expense.CreateExpense)
	expenses.PATCH("/:expenseId", h.Expense.UpdateExpense)
	expenses.DELETE("/:expenseId", h.Expense.DeleteExpense)

	revenues := v1.Group("/revenues", auth.RequireAuth())
	revenues.GET("", h.Revenue.GetRevenues)
	revenues.GET("/:revenueId", h.Revenue.GetRevenue)
	revenues.POST("", h.Revenue.CreateRevenue)
	revenues.PATCH("/:revenueId", h.Revenue.UpdateRevenue)
	revenues.DELETE("/:revenueId", h.Revenue.DeleteRevenue)

	goals := v1.Group("/goals", auth.RequireAuth())
	goals.GET("", h.Goal.GetGoals)
	goals.GET("/:goalId", h.Goal.GetGoal)
	goals.POST("", h.Goal.CreateGoal)
	goals.PATCH("/:goalId", h.Goal.UpdateGoal)
	goals.DELETE("/:goalId", h.Goal.DeleteGoal)
}
