package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// redisPinger and mongoPinger cover the Ping surface of the real clients so
// probes can run against fakes in tests.
type redisPinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

type mongoPinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

// HealthStatus is the latest probe of the services the API depends on:
// MongoDB, the auth token cache and the mail queue broker.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	AuthCache bool      `json:"authCache"`
	MailQueue bool      `json:"mailQueue"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the most recent health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// probeHealth pings each backing service once. A failure in one service is
// reported independently of the others.
func probeHealth(ctx context.Context, db mongoPinger, authCache, mailQueue redisPinger) HealthStatus {
	return HealthStatus{
		Mongo:     db.Ping(ctx, nil) == nil,
		AuthCache: authCache.Ping(ctx).Err() == nil,
		MailQueue: mailQueue.Ping(ctx).Err() == nil,
		CheckedAt: time.Now(),
	}
}

// StartHealthMonitor probes the backing services once a minute and keeps the
// snapshot served by the health endpoint current.
func StartHealthMonitor(mongoClient *mongo.Client, authCache, mailQueue *redis.Client) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		ctx := context.Background()
		for range ticker.C {
			snapshot := probeHealth(ctx, mongoClient, authCache, mailQueue)

			healthMu.Lock()
			currentHealth = snapshot
			healthMu.Unlock()
		}
	}()
}
