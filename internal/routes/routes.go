package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/patinhas/adoption-api/internal/config"
	"github.com/patinhas/adoption-api/internal/docs"
	"github.com/patinhas/adoption-api/internal/handlers"
	"github.com/patinhas/adoption-api/internal/metrics"
	"github.com/patinhas/adoption-api/internal/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	Health    *handlers.HealthHandler
	Users     *handlers.UserHandler
	Pets      *handlers.PetHandler
	Adoptions *handlers.AdoptionHandler
	Donations *handlers.DonationHandler
	Addresses *handlers.AddressHandler
	Questions *handlers.QuestionHandler
}

func Setup(app *fiber.App, cfg *config.Config, identifier middleware.Identifier, h Handlers) {
	app.Get("/health", h.Health.Check)
	app.Get("/metrics", metrics.Handler())
	if cfg.StorageType == "local" {
		app.Static("/uploads", cfg.UploadDir)
	}

	api := app.Group("/api")

	// General API rate limiter: 120 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)
	api.Get("/docs/*", adaptor.HTTPHandlerFunc(httpSwagger.Handler(
		httpSwagger.InstanceName(docs.SwaggerInfo.InstanceName()),
		httpSwagger.URL("/api/docs/doc.json"),
	)))

	protected := middleware.JWTProtected(cfg, identifier)
	admin := middleware.AdminRequired()
	self := middleware.SelfOrAdmin("user_id")

	// Auth: 10 req/min per IP (stricter)
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.Refresh)
	auth.Post("/logout", protected, h.Auth.Logout)
	auth.Post("/password/reset", h.Auth.RequestPasswordReset)
	auth.Post("/password/reset/:token", h.Auth.ResetPassword)

	// Users: registration is public, so JWT is applied per route.
	users := api.Group("/users")
	users.Post("/", h.Users.Register)
	users.Get("/me", protected, h.Users.Me)
	users.Put("/me", protected, h.Users.UpdateMe)
	users.Put("/me/password", protected, h.Users.ChangePassword)
	users.Get("/", protected, admin, h.Users.List)
	users.Get("/:user_id", protected, admin, h.Users.Get)
	users.Put("/:user_id", protected, admin, h.Users.Update)
	users.Delete("/:user_id", protected, admin, h.Users.Delete)
	users.Patch("/:user_id/admin", protected, admin, h.Users.SetAdmin)

	users.Get("/:user_id/addresses", protected, self, h.Addresses.ListForUser)
	users.Post("/:user_id/addresses", protected, self, h.Addresses.CreateForUser)
	users.Get("/:user_id/addresses/:address_id", protected, self, h.Addresses.GetForUser)
	users.Put("/:user_id/addresses/:address_id", protected, self, h.Addresses.UpdateForUser)
	users.Delete("/:user_id/addresses/:address_id", protected, self, h.Addresses.DeleteForUser)

	users.Get("/:user_id/adoptions", protected, self, h.Adoptions.ListForUser)
	users.Post("/:user_id/adoptions", protected, self, h.Adoptions.CreateForUser)
	users.Get("/:user_id/adoptions/:adoption_id", protected, self, h.Adoptions.GetForUser)
	users.Put("/:user_id/adoptions/:adoption_id", protected, self, h.Adoptions.UpdateForUser)
	users.Delete("/:user_id/adoptions/:adoption_id", protected, self, h.Adoptions.DeleteForUser)

	users.Get("/:user_id/donations", protected, self, h.Donations.ListForUser)
	users.Post("/:user_id/donations", protected, self, h.Donations.CreateForUser)
	users.Get("/:user_id/donations/:donation_id", protected, self, h.Donations.GetForUser)
	users.Delete("/:user_id/donations/:donation_id", protected, self, h.Donations.DeleteForUser)

	pets := api.Group("/pets", protected)
	pets.Get("/", h.Pets.List)
	pets.Post("/", h.Pets.Create)
	pets.Get("/:pet_id", h.Pets.Get)
	pets.Put("/:pet_id", admin, h.Pets.Update)
	pets.Delete("/:pet_id", admin, h.Pets.Delete)
	pets.Get("/:pet_id/images", h.Pets.ListImages)
	pets.Post("/:pet_id/images", h.Pets.UploadImage)
	pets.Get("/:pet_id/images/:image_id", h.Pets.GetImage)
	pets.Delete("/:pet_id/images/:image_id", h.Pets.DeleteImage)
	pets.Get("/:pet_id/adoptions", admin, h.Adoptions.ListForPet)
	pets.Get("/:pet_id/adoptions/:adoption_id", h.Adoptions.GetForPet)
	pets.Get("/:pet_id/donations", h.Donations.ListForPet)
	pets.Get("/:pet_id/donations/:donation_id", h.Donations.GetForPet)

	images := api.Group("/pet_images", protected)
	images.Get("/", h.Pets.ListAllImages)
	images.Post("/", h.Pets.CreateImage)
	images.Get("/:image_id", h.Pets.GetImageByID)
	images.Delete("/:image_id", h.Pets.DeleteImageByID)

	adoptions := api.Group("/adoptions", protected)
	adoptions.Post("/", h.Adoptions.Create)
	adoptions.Get("/", admin, h.Adoptions.List)
	adoptions.Get("/:adoption_id", h.Adoptions.Get)
	adoptions.Put("/:adoption_id/status", admin, h.Adoptions.UpdateStatus)
	adoptions.Delete("/:adoption_id", h.Adoptions.Delete)
	adoptions.Get("/:adoption_id/questions", h.Adoptions.ListQuestions)
	adoptions.Post("/:adoption_id/questions", admin, h.Adoptions.AttachQuestion)
	adoptions.Get("/:adoption_id/questions/:question_id", h.Adoptions.GetQuestion)
	adoptions.Delete("/:adoption_id/questions/:question_id", admin, h.Adoptions.DetachQuestion)
	adoptions.Get("/:adoption_id/answers", h.Adoptions.ListAnswers)
	adoptions.Post("/:adoption_id/answers", h.Adoptions.AddAnswers)
	adoptions.Get("/:adoption_id/answers/:answer_id", h.Adoptions.GetAnswer)
	adoptions.Put("/:adoption_id/answers/:answer_id", h.Adoptions.UpdateAnswer)
	adoptions.Delete("/:adoption_id/answers/:answer_id", admin, h.Adoptions.DeleteAnswer)

	donations := api.Group("/donations", protected)
	donations.Post("/", h.Donations.Create)
	donations.Get("/", admin, h.Donations.List)
	donations.Get("/user", h.Donations.Mine)
	donations.Get("/:donation_id", h.Donations.Get)
	donations.Delete("/:donation_id", admin, h.Donations.Delete)

	addresses := api.Group("/addresses", protected)
	addresses.Get("/", admin, h.Addresses.List)
	addresses.Post("/", h.Addresses.Create)
	addresses.Get("/:address_id", h.Addresses.Get)
	addresses.Put("/:address_id", h.Addresses.Update)
	addresses.Delete("/:address_id", h.Addresses.Delete)

	// Types are registered first so "types" is never read as a question id.
	questions := api.Group("/questions", protected)
	questions.Get("/types", h.Questions.ListTypes)
	questions.Post("/types", admin, h.Questions.CreateType)
	questions.Get("/types/:type_id", h.Questions.GetType)
	questions.Put("/types/:type_id", admin, h.Questions.UpdateType)
	questions.Delete("/types/:type_id", admin, h.Questions.DeleteType)
	questions.Get("/", h.Questions.List)
	questions.Post("/", admin, h.Questions.Create)
	questions.Get("/:question_id", h.Questions.Get)
	questions.Put("/:question_id", admin, h.Questions.Update)
	questions.Delete("/:question_id", admin, h.Questions.Delete)
}
