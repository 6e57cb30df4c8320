package router

import (
	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"

	"github.com/hostelpad/hostelpad/app/controllers"
	"github.com/hostelpad/hostelpad/internal/pkg/middleware"
	"github.com/hostelpad/hostelpad/internal/pkg/oauth"
	"github.com/hostelpad/hostelpad/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// init oauth providers
	oauth.Setup()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	// Initialize controllers with their repositories
	controllers.InitializeHostelController()
	controllers.InitializeFavouriteController()
	controllers.InitializePaymentController()
	controllers.InitializeUploadController()

	h.registerPublicRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Social OAuth
	app.Get("/auth/:provider", gothfiber.BeginAuthHandler)
	app.Get("/auth/:provider/callback", controllers.HandleOAuthCallback)
	app.Get("/auth/logout", controllers.HandleOAuthLogout)

	// Payment provider webhooks (no session, signature-verified in controller).
	// Registered POST-only so other methods are rejected by the framework.
	app.Post("/webhooks/paystack", controllers.GetPaymentController().HandlePaystackWebhook)
}
