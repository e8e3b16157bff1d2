package mailqueue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"bridalstudio/config"
	"bridalstudio/models"
)

// sendTimeout bounds each mail task so a stalled SMTP dial cannot hold a
// worker slot indefinitely.
const sendTimeout = 30 * time.Second

// Client enqueues booking emails on the Redis-backed mail queue.
type Client struct {
	inner *asynq.Client
}

// NewClient builds a queue client from the loaded application config.
func NewClient() *Client {
	return &Client{
		inner: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisMailQueueDB,
		}),
	}
}

// QueueBookingConfirmation enqueues a customer confirmation email.
func (c *Client) QueueBookingConfirmation(booking *models.Booking) error {
	return c.enqueue(TypeBookingConfirmation, booking)
}

// QueueAdminAlert enqueues an admin notification email.
func (c *Client) QueueAdminAlert(booking *models.Booking) error {
	return c.enqueue(TypeAdminAlert, booking)
}

func (c *Client) enqueue(taskType string, booking *models.Booking) error {
	payload, err := json.Marshal(payloadFromBooking(booking))
	if err != nil {
		return fmt.Errorf("failed to marshal mail payload: %w", err)
	}
	if _, err := c.inner.Enqueue(asynq.NewTask(taskType, payload), asynq.Timeout(sendTimeout)); err != nil {
		return fmt.Errorf("failed to enqueue %s for booking %s: %w", taskType, booking.ID, err)
	}
	return nil
}

// Close releases the underlying queue connection.
func (c *Client) Close() error {
	return c.inner.Close()
}
