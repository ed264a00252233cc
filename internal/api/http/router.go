package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/leafscan-service/internal/api/http/handlers"
	"github.com/spec-kit/leafscan-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Reports        *handlers.ReportsHandler
	Diagnosis      *handlers.DiagnosisHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/api/auth")
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/verify-otp", cfg.Auth.VerifyOtp)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/resend-otp", cfg.Auth.ResendOtp)
	authGroup.Post("/forgot-password", cfg.Auth.ForgotPassword)
	authGroup.Post("/reset-password", cfg.Auth.ResetPassword)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	usersGroup := app.Group("/api/users", cfg.AuthMiddleware.Handle)
	usersGroup.Get("/profile", cfg.Users.GetProfile)
	usersGroup.Put("/profile", cfg.Users.UpdateProfile)
	usersGroup.Post("/change-password", cfg.Users.ChangePassword)

	reportsGroup := app.Group("/api/reports", cfg.AuthMiddleware.Handle)
	reportsGroup.Post("/", cfg.Reports.Create)
	reportsGroup.Get("/", cfg.Reports.List)
	reportsGroup.Get("/stats/summary", cfg.Reports.Stats)
	reportsGroup.Post("/sync", cfg.Reports.Sync)
	reportsGroup.Get("/:id", cfg.Reports.Get)

	app.Post("/predict", cfg.AuthMiddleware.Handle, cfg.Diagnosis.Predict)
}
