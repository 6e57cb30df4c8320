package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/hostelpad/hostelpad/app/controllers"
	"github.com/hostelpad/hostelpad/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New(limiter.Config{
		Max: 120,
	}))
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	v1 := api.Group("/v1")

	// Account
	v1.Post("/auth/register", controllers.HandleAuthRegister)
	v1.Post("/auth/login", controllers.HandleAuthLogin)
	v1.Post("/auth/logout", middleware.RequireAPISessionAuth, controllers.HandleAuthLogout)
	v1.Get("/me", middleware.RequireAPISessionAuth, controllers.HandleGetUserProfile)

	// Hostel discovery (public)
	hostelCtrl := controllers.GetHostelController()
	v1.Get("/hostels", hostelCtrl.HandleListHostels)
	v1.Get("/hostels/search", hostelCtrl.HandleSearchHostels)
	v1.Get("/hostels/:uuid", hostelCtrl.HandleGetHostel)

	// Listing management (partners only)
	v1.Post("/hostels", middleware.RequireAPISessionAuth, middleware.RequirePartner, hostelCtrl.HandleCreateHostel)
	v1.Post("/uploads/photos", middleware.RequireAPISessionAuth, middleware.RequirePartner, controllers.GetUploadController().HandleUploadPhoto)

	// Favourites
	favCtrl := controllers.GetFavouriteController()
	v1.Get("/favourites", middleware.RequireAPISessionAuth, favCtrl.HandleListFavourites)
	v1.Post("/favourites/:uuid", middleware.RequireAPISessionAuth, favCtrl.HandleAddFavourite)
	v1.Delete("/favourites/:uuid", middleware.RequireAPISessionAuth, favCtrl.HandleRemoveFavourite)

	// Partner upgrade payments
	payCtrl := controllers.GetPaymentController()
	v1.Post("/payments/checkout", middleware.RequireAPISessionAuth, payCtrl.HandleCheckout)
	v1.Get("/payments/status", middleware.RequireAPISessionAuth, payCtrl.HandlePaymentStatus)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
