package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	"canvaclone/api/config"
	_ "canvaclone/api/docs"
	"canvaclone/api/handlers"
	"canvaclone/api/internal/mailer"
	"canvaclone/api/internal/storage"
	"canvaclone/api/internal/token"
	"canvaclone/api/middleware"
	"canvaclone/api/utils"
)

// @title Canva Clone API
// @version 1.0
// @description Backend API for the design-creation application.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := config.NewLogger()

	supabaseClient, err := config.NewSupabaseClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Supabase: %v", err)
	}

	uploader := storage.NewUploader(supabaseClient.Storage, cfg.StorageBucket)
	tokens := token.NewService(cfg.JWTSecret)
	mail := mailer.New(cfg.SMTP)

	h := handlers.NewApplicationHandler(appLogger, supabaseClient, uploader, tokens, mail)
	requireAuth := middleware.RequireAuth(tokens, supabaseClient, appLogger)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.RequestLogger(appLogger))

	app.Get("/api-docs/*", fiberSwagger.WrapHandler)

	// Health check route
	app.Get("/api/ping", func(c *fiber.Ctx) error {
		return utils.Ok(c, fiber.Map{"hello": "hello word"}, "Found")
	})

	// User routes
	user := app.Group("/api/user")
	user.Post("/register", h.RegisterUser)
	user.Post("/login", h.LoginUser)
	user.Get("/user-details", requireAuth, h.GetUserDetails)

	// Design routes
	design := app.Group("/api/design", requireAuth)
	design.Post("/create-user-design", h.CreateUserDesign)
	design.Get("/user-design/:design_id", h.GetUserDesign)
	design.Put("/update-user-design/:design_id", h.UpdateUserDesign)
	design.Get("/user-designs", h.GetUserDesigns)
	design.Put("/delete-user-image/:design_id", h.DeleteUserDesign)
	design.Post("/add-user-image", h.AddUserImage)
	design.Get("/get-user-image", h.GetUserImages)
	design.Get("/design-images", h.GetDesignImages)
	design.Get("/background-images", h.GetBackgroundImages)
	design.Get("/templates", h.GetTemplates)
	design.Get("/add-user-template/:template_id", h.AddUserTemplate)

	// Unmatched routes get the envelope too
	app.Use(func(c *fiber.Ctx) error {
		return utils.NotFound(c, "That route does not exist - "+c.OriginalURL())
	})

	appLogger.Infof("Starting API server on port %s...", cfg.ServerPort)
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
