package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/reachdesk/backend/internal/config"
	"github.com/reachdesk/backend/internal/db"
	"github.com/reachdesk/backend/internal/events"
	"go.uber.org/zap"
)

// lifecycle-tail subscribes to lifecycle events published by the API and
// logs each one. It is the reference consumer for events:lifecycle.
func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	subscriber := events.NewRedisSubscriber(rdb, log)

	err = subscriber.Subscribe(ctx, events.LifecycleChannel, func(event events.Event) {
		if event.Type != events.EventLifecycleChanged {
			log.Debug("ignoring event", zap.String("type", event.Type))
			return
		}
		ids, _ := event.Payload["ids"].([]any)
		log.Info("lifecycle changed",
			zap.Any("entity", event.Payload["entity"]),
			zap.Any("action", event.Payload["action"]),
			zap.Any("user_id", event.Payload["user_id"]),
			zap.Int("count", len(ids)),
			zap.Any("ids", ids),
		)
	})
	if err != nil {
		log.Fatal("failed to subscribe", zap.String("channel", events.LifecycleChannel), zap.Error(err))
	}

	log.Info("lifecycle-tail started", zap.String("channel", events.LifecycleChannel))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down lifecycle-tail")
	cancel()
}
