package main

import (
	"AgencyHub/CronJobs"
	"AgencyHub/FiberConfig"
	"AgencyHub/Models"
	"AgencyHub/Notifications"
	"AgencyHub/Seeder"
	"AgencyHub/Slack"
	"log"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	Models.Connect()

	if os.Getenv("SEED") == "true" {
		if err := Seeder.Run(Models.DB, "seed.json5"); err != nil {
			log.Println("Seeding failed:", err)
		}
	}

	var pushers []Notifications.Pusher
	fcm, err := Notifications.NewFCMPusher(Models.DB)
	if err != nil {
		log.Println("Failed to initialize Firebase:", err)
	} else if fcm != nil {
		pushers = append(pushers, fcm)
	}
	if mailer := Notifications.NewEmailPusher(Models.DB); mailer != nil {
		pushers = append(pushers, mailer)
	}

	notifications := Notifications.NewService(Models.DB, pushers...)

	digest := Slack.NewDigest(Models.DB)
	scheduler := CronJobs.NewReminderScheduler(Models.DB, notifications, digest, false)
	if err := scheduler.Start(); err != nil {
		log.Println("Failed to start reminder scheduler:", err)
	}
	defer scheduler.Stop()

	FiberConfig.FiberConfig(notifications)
}
