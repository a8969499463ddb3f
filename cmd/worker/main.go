package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"medhub-backend/internal/bootstrap"
	"medhub-backend/internal/shared/config"
	"medhub-backend/internal/workerproc"
)

const (
	defaultVisibilitySeconds  = 1200
	defaultWorkerConcurrency  = 4
	defaultShutdownTimeoutSec = 30
	defaultPollIntervalSec    = 5
	defaultPollBatchSize      = 10
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.BuildWorker(cfg)
	if err != nil {
		log.Fatalf("bootstrap build: %v", err)
	}
	defer app.Close()

	if strings.TrimSpace(cfg.SQSQueueURL) == "" {
		runPollingMode(ctx, app)
		return
	}
	runQueueMode(ctx, app)
}

// runPollingMode scans the documents table for pending work. It is the
// mode used when no queue is configured.
func runPollingMode(ctx context.Context, app *bootstrap.App) {
	interval := time.Duration(envInt("MH_POLL_INTERVAL_SECONDS", defaultPollIntervalSec)) * time.Second
	batchSize := envInt("MH_POLL_BATCH_SIZE", defaultPollBatchSize)

	log.Printf("worker started in polling mode interval=%s batch=%d", interval, batchSize)
	err := workerproc.RunPoller(ctx, app.DocumentsRepo, app.Processor, interval, batchSize)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("poller: %v", err)
	}
}

// runQueueMode consumes the SQS queue built by bootstrap.
func runQueueMode(ctx context.Context, app *bootstrap.App) {
	if app.Queue == nil {
		log.Fatalf("queue mode requested but no queue client was built")
	}

	visibilitySeconds := envInt("MH_SQS_VISIBILITY_TIMEOUT_SECONDS", defaultVisibilitySeconds)
	app.Queue.SetVisibilityTimeout(int32(visibilitySeconds))

	opts := workerproc.ConsumeOptions{
		Concurrency:     envInt("MH_WORKER_CONCURRENCY", defaultWorkerConcurrency),
		ShutdownTimeout: time.Duration(envInt("MH_SHUTDOWN_TIMEOUT_SECONDS", defaultShutdownTimeoutSec)) * time.Second,
	}

	log.Printf("worker started in queue mode concurrency=%d visibility=%ds", opts.Concurrency, visibilitySeconds)
	err := workerproc.RunConsumer(ctx, app.Queue, app.Processor, opts)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("consumer: %v", err)
	}
}

func envInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return val
}
