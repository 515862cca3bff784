package FiberConfig

import (
	"fmt"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/template/html"
	"gorm.io/gorm"

	"AgencyHub/Controllers"
	"AgencyHub/Models"
	"AgencyHub/Notifications"
	"AgencyHub/Workflow"
	"AgencyHub/middleware"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, notifications *Notifications.Service) {
	// Initialize handlers
	engine := Workflow.NewEngine(db, notifications)

	authController := Controllers.NewAuthController(db)
	clientController := Controllers.NewClientController(db)
	taskController := Controllers.NewTaskController(db, engine)
	notificationController := Controllers.NewNotificationController(db, notifications)
	calendarController := Controllers.NewCalendarController(db)
	contentController := Controllers.NewContentController(db)
	presentationController := Controllers.NewPresentationController(db)
	reportController := Controllers.NewReportController(db)
	previewController := Controllers.NewLinkPreviewController()
	avatarController := Controllers.NewAvatarController(db)
	logController := Controllers.NewLogController(db)

	// Public presentation page - the link id is the capability
	app.Get("/presentation/:id", presentationController.Render)

	// API group
	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authController.Register)
	auth.Post("/login", authController.Login)
	auth.Post("/logout", authController.Logout)
	auth.Get("/me", middleware.Verify(Models.RoleUser), authController.Me)
	auth.Post("/avatar", middleware.Verify(Models.RoleUser), avatarController.Upload)

	api.Get("/team", middleware.Verify(Models.RoleUser), authController.Team)

	// Client routes
	clients := api.Group("/clients", middleware.Verify(Models.RoleUser))
	clients.Get("/", clientController.GetClients)
	clients.Post("/", middleware.Verify(Models.RoleAdmin), clientController.CreateClient)
	clients.Get("/:id", clientController.GetClient)
	clients.Put("/:id", middleware.Verify(Models.RoleAdmin), clientController.UpdateClient)
	clients.Delete("/:id", middleware.Verify(Models.RoleAdmin), clientController.DeleteClient)
	clients.Get("/:id/report.xlsx", reportController.ClientReport)

	// Task routes - CRUD plus the RACI transition endpoints
	tasks := api.Group("/tasks", middleware.Verify(Models.RoleUser))
	tasks.Get("/", taskController.GetTasks)
	tasks.Post("/", taskController.CreateTask)
	tasks.Get("/:id", taskController.GetTask)
	tasks.Put("/:id", taskController.UpdateTask)
	tasks.Delete("/:id", middleware.Verify(Models.RoleAdmin), taskController.DeleteTask)
	tasks.Get("/:id/roles", taskController.GetRoles)
	tasks.Post("/:id/complete", taskController.Complete)
	tasks.Post("/:id/approve", taskController.Approve)
	tasks.Post("/:id/request-correction", taskController.RequestCorrection)
	tasks.Post("/:id/consult", taskController.Consult)

	// Notification routes - polled by clients
	notificationsGroup := api.Group("/notifications", middleware.Verify(Models.RoleUser))
	notificationsGroup.Get("/", notificationController.GetNotifications)
	notificationsGroup.Get("/unread-count", notificationController.UnreadCount)
	notificationsGroup.Put("/read-all", notificationController.MarkAllRead)
	notificationsGroup.Put("/:id/read", notificationController.MarkRead)
	notificationsGroup.Post("/token", notificationController.UpdateToken)

	// Calendar routes
	calendar := api.Group("/calendar", middleware.Verify(Models.RoleUser))
	calendar.Get("/", calendarController.GetEvents)
	calendar.Get("/week", calendarController.GetWeek)
	calendar.Post("/", calendarController.CreateEvent)
	calendar.Put("/:id", calendarController.UpdateEvent)
	calendar.Delete("/:id", calendarController.DeleteEvent)

	// Community content routes
	content := api.Group("/content", middleware.Verify(Models.RoleUser))
	content.Get("/", contentController.GetContent)
	content.Get("/weeks", contentController.GetWeeks)
	content.Post("/", contentController.CreateContent)
	content.Put("/:id", contentController.UpdateContent)
	content.Delete("/:id", contentController.DeleteContent)

	// Presentation links
	links := api.Group("/links", middleware.Verify(Models.RoleUser))
	links.Post("/", presentationController.CreateLink)
	links.Get("/", middleware.Verify(Models.RoleAdmin), presentationController.GetLinks)

	// Link metadata preview
	api.Post("/preview", middleware.Verify(Models.RoleUser), previewController.Preview)

	// Activity logs (admin)
	api.Get("/logs", middleware.Verify(Models.RoleAdmin), logController.GetLogs)
}

func FiberConfig(notifications *Notifications.Service) {
	fmt.Println("Server Up...")
	engine := html.New("./Templates", ".html")
	// Html Template engine
	app := fiber.New(fiber.Config{
		Views: engine,
	})
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           300,
	}))

	app.Static("/uploads", "./uploads")

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	SetupRoutes(app, Models.DB, notifications)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	log.Fatal(app.Listen(":" + port))
}
