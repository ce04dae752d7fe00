package main

import (
	"fmt"
	"log"
	"net/url"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"Backend-Reward-Pipeline/src/controllers"
	"Backend-Reward-Pipeline/src/database"
	"Backend-Reward-Pipeline/src/jobs"
	"Backend-Reward-Pipeline/src/routes"
	"Backend-Reward-Pipeline/src/services/classify"
	"Backend-Reward-Pipeline/src/services/email"
	"Backend-Reward-Pipeline/src/services/rewards"
	"Backend-Reward-Pipeline/src/services/submissions"
)

func main() {

	err := database.ConnectMongoDB()
	if err != nil {
		log.Fatalf("Error connecting to the database: %v", err)
	}

	// Redis is optional; without it rejection emails go out inline
	database.InitRedis()
	database.InitAsynq()

	sender, err := email.NewSMTPSenderFromEnv()
	if err != nil {
		log.Fatal("❌ SMTP not configured:", err)
	}
	emailSvc := email.NewService(sender)

	issuer, err := rewards.NewIssuerFromEnv()
	if err != nil {
		log.Fatal("❌ Payment provider not configured:", err)
	}

	store := submissions.NewService(database.SubmissionCollection)

	if database.AsynqClient != nil {
		jobs.StartWorker(emailSvc, store)
	}

	webhookCtrl := controllers.NewWebhookController(store, issuer, emailSvc, classify.ConfigFromEnv(), database.AsynqClient)
	adminCtrl := controllers.NewAdminController(store, emailSvc)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
	}))

	routes.InitRoutes(app, webhookCtrl, adminCtrl)

	appURI := os.Getenv("APP_URI")
	if appURI == "" {
		appURI = "8888"
	}

	log.Println("Server is running on port " + appURI)
	err = app.Listen(fmt.Sprintf(":%s", url.PathEscape(appURI)))
	if err != nil {
		log.Fatal(err)
	}

}
