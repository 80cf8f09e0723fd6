package main

import (
	"log"

	"supportdesk/config"
	notificationControllers "supportdesk/controllers/notifications"
	settingsControllers "supportdesk/controllers/settings"
	supportControllers "supportdesk/controllers/support"
	"supportdesk/database"
	"supportdesk/middleware"
	"supportdesk/notifications"
	"supportdesk/repository"
	notificationRoutes "supportdesk/routers/notificationRoutes"
	settingsRoutes "supportdesk/routers/settingsRoutes"
	supportRoutes "supportdesk/routers/supportRoutes"
	settingsServices "supportdesk/services/settings"
	supportServices "supportdesk/services/support"
	"supportdesk/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	db := database.ConnectDb(cfg.DB)

	settings := settingsServices.NewService(repository.NewSettingsStore(db))
	lookup := notifications.NewRecipientLookup(db, settings)

	// In-app notifications are always on; the other channels follow configuration.
	inbox := notifications.NewInApp(db, "support")
	channels := notifications.Fanout{inbox}

	var mailer notifications.Mailer
	switch {
	case cfg.EmailSender == "":
	case cfg.SendGridAPIKey != "":
		mailer = notifications.NewSendGridMailer(cfg.SendGridAPIKey, cfg.EmailSender)
	default:
		mailer = notifications.SMTPMailer{Host: cfg.SMTPHost, Port: cfg.SMTPPort, From: cfg.EmailSender, Password: cfg.Password}
	}
	if mailer != nil {
		channels = append(channels, notifications.NewEmail(lookup, mailer))
	}

	if cfg.SMSApiURL != "" {
		channels = append(channels, notifications.NewSMS(lookup, cfg.SMSApiURL, cfg.SMSApiKey, cfg.SMSTimeout))
	}

	if cfg.RedisURL != "" {
		rdb, err := database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: Redis unavailable, notification stream disabled: %v", err)
		} else {
			defer rdb.Close()
			channels = append(channels, notifications.NewStream(rdb, cfg.NotificationStream))
		}
	}

	tickets := supportServices.NewService(
		repository.NewTicketStore(db),
		channels,
		supportServices.WithPageSize(cfg.SupportPageSize),
	)

	if mailer != nil {
		digest, err := utils.InitializeSupportDigestScheduler(cfg.SupportDigestCron, db, tickets, mailer, cfg.SupportDigestEmail)
		if err != nil {
			log.Fatalf("Failed to start support digest: %v", err)
		}
		defer digest.Stop()
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	auth := middleware.JWTMiddleware(cfg.JWTKey)
	supportRoutes.SetupSupportRoutes(app, supportControllers.NewTicketController(tickets), auth, middleware.AdminOnly(db))
	settingsRoutes.SetupSettingsRoutes(app, settingsControllers.NewSettingsController(settings), auth)
	notificationRoutes.SetupNotificationRoutes(app, notificationControllers.NewNotificationController(inbox), auth)

	log.Printf("Server is running on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
