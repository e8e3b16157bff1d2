package mailqueue

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"bridalstudio/config"
	"bridalstudio/services/notification"
)

// InitMailWorker runs the async mail worker in background.
func InitMailWorker(mailer notification.Mailer) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisMailQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBookingConfirmation, handleConfirmationTask(mailer))
	mux.HandleFunc(TypeAdminAlert, handleAdminAlertTask(mailer))

	// Start async worker with retry logic
	go func() {
		log.Println("[MailWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[MailWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[MailWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleConfirmationTask(mailer notification.Mailer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		var p MailPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[MailWorker] Invalid payload: %v", err)
			return err
		}

		if err := mailer.SendBookingConfirmation(p.toBooking()); err != nil {
			log.Printf("[MailWorker] Failed to send booking confirmation for %s: %v", p.BookingID, err)
			return err
		}
		log.Printf("[MailWorker] Booking confirmation email sent to %s", p.Email)
		return nil
	}
}

func handleAdminAlertTask(mailer notification.Mailer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		var p MailPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[MailWorker] Invalid payload: %v", err)
			return err
		}

		if err := mailer.SendAdminNotification(p.toBooking()); err != nil {
			log.Printf("[MailWorker] Failed to send admin notification for %s: %v", p.BookingID, err)
			return err
		}
		log.Println("[MailWorker] Admin notification email sent")
		return nil
	}
}
