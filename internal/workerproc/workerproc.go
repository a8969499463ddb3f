package workerproc

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"sync"
	"time"

	"medhub-backend/internal/documents"
	"medhub-backend/internal/queue"
	"medhub-backend/internal/shared/metrics"
	"medhub-backend/internal/shared/telemetry"
)

// DocumentProcessor drives one document through the extraction
// pipeline.
type DocumentProcessor interface {
	ProcessDocument(ctx context.Context, documentID string) error
}

// MessageMeta captures details useful for logging and diagnostics.
type MessageMeta struct {
	BodyLen int
	BodySHA string
}

// ComputeMeta returns the body length and SHA-256 hash.
func ComputeMeta(body string) MessageMeta {
	if body == "" {
		return MessageMeta{BodyLen: 0, BodySHA: ""}
	}
	sum := sha256.Sum256([]byte(body))
	return MessageMeta{BodyLen: len(body), BodySHA: hex.EncodeToString(sum[:])}
}

// ErrEmptyBody indicates an empty queue payload.
type ErrEmptyBody struct {
	Meta MessageMeta
}

func (e ErrEmptyBody) Error() string { return "empty message body" }

// ErrDecode indicates a JSON decode failure.
type ErrDecode struct {
	Meta MessageMeta
	Err  error
}

func (e ErrDecode) Error() string {
	if e.Err == nil {
		return "decode message"
	}
	return "decode message: " + e.Err.Error()
}

// ErrMissingDocumentID indicates a message missing the document id.
type ErrMissingDocumentID struct {
	Meta      MessageMeta
	RequestID string
}

func (e ErrMissingDocumentID) Error() string { return "missing document id" }

// ErrProcess indicates processing failed after successful parsing.
type ErrProcess struct {
	DocumentID string
	RequestID  string
	Err        error
}

func (e ErrProcess) Error() string {
	if e.Err == nil {
		return "process document"
	}
	return "process document: " + e.Err.Error()
}

func (e ErrProcess) Unwrap() error { return e.Err }

// ParseMessage validates and decodes the queue payload.
func ParseMessage(body string) (queue.Message, MessageMeta, error) {
	meta := ComputeMeta(body)
	if strings.TrimSpace(body) == "" {
		return queue.Message{}, meta, ErrEmptyBody{Meta: meta}
	}

	msg, err := queue.DecodeMessage([]byte(body))
	if err != nil {
		return queue.Message{}, meta, ErrDecode{Meta: meta, Err: err}
	}
	if strings.TrimSpace(msg.DocumentID) == "" {
		return msg, meta, ErrMissingDocumentID{Meta: meta, RequestID: msg.RequestID}
	}
	return msg, meta, nil
}

// HandleMessage parses, validates, and processes a message payload. The
// decoded message is returned even when processing fails so callers can
// log the ids involved.
func HandleMessage(ctx context.Context, proc DocumentProcessor, body string) (queue.Message, error) {
	msg, _, err := ParseMessage(body)
	if err != nil {
		return msg, err
	}

	if err := proc.ProcessDocument(ctx, msg.DocumentID); err != nil {
		return msg, ErrProcess{DocumentID: msg.DocumentID, RequestID: msg.RequestID, Err: err}
	}
	return msg, nil
}

// unrecoverable reports whether the message can never succeed no matter
// how often it is redelivered.
func unrecoverable(err error) bool {
	var empty ErrEmptyBody
	var decode ErrDecode
	var missing ErrMissingDocumentID
	return errors.As(err, &empty) || errors.As(err, &decode) || errors.As(err, &missing)
}

// ConsumeOptions tunes the consumer loop.
type ConsumeOptions struct {
	// Concurrency caps in-flight deliveries. Zero or negative means 1.
	Concurrency int
	// ShutdownTimeout bounds the wait for in-flight deliveries after
	// the context is cancelled. Zero or negative means 30s.
	ShutdownTimeout time.Duration
}

// RunConsumer receives queue deliveries and processes them until the
// context is cancelled. Unparseable payloads are acknowledged so they
// stop cycling; processing failures leave the message unacknowledged
// for redelivery; successes acknowledge after the fact.
func RunConsumer(ctx context.Context, consumer queue.Consumer, proc DocumentProcessor, opts ConsumeOptions) error {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 30 * time.Second
	}

	sem := make(chan struct{}, opts.Concurrency)
	var wg sync.WaitGroup

receiveLoop:
	for {
		if err := ctx.Err(); err != nil {
			break
		}

		deliveries, err := consumer.Receive(ctx, 10)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			telemetry.Error("worker.receive_failed", map[string]any{"error": err.Error()})
			sleepCtx(ctx, 5*time.Second)
			continue
		}

		for _, d := range deliveries {
			select {
			case <-ctx.Done():
				break receiveLoop
			case sem <- struct{}{}:
			}
			wg.Add(1)
			go func(d queue.Delivery) {
				defer wg.Done()
				defer func() { <-sem }()
				handleDelivery(ctx, consumer, proc, d)
			}(d)
		}
	}

	waitDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(waitDone)
	}()
	select {
	case <-waitDone:
	case <-time.After(opts.ShutdownTimeout):
		telemetry.Error("worker.shutdown_timeout", map[string]any{
			"timeout": opts.ShutdownTimeout.String(),
		})
	}
	return ctx.Err()
}

// handleDelivery runs one delivery through the pipeline and decides its
// acknowledgement fate.
func handleDelivery(ctx context.Context, consumer queue.Consumer, proc DocumentProcessor, d queue.Delivery) {
	metrics.IncWorkerJobsReceived()

	msg, err := HandleMessage(ctx, proc, d.Body)
	switch {
	case err == nil:
		if ack(ctx, consumer, d, msg) {
			telemetry.Info("worker.document.completed", deliveryFields(d, msg))
			metrics.IncWorkerJobsCompleted()
		}
	case unrecoverable(err):
		meta := ComputeMeta(d.Body)
		fields := deliveryFields(d, msg)
		fields["body_len"] = meta.BodyLen
		if meta.BodySHA != "" {
			fields["body_sha256"] = meta.BodySHA
		}
		fields["error"] = err.Error()
		telemetry.Error("worker.document.unparseable", fields)
		if ack(ctx, consumer, d, msg) {
			metrics.IncWorkerJobsDeletedUnrecoverable()
		}
	default:
		fields := deliveryFields(d, msg)
		fields["error"] = err.Error()
		telemetry.Error("worker.document.failed", fields)
		metrics.IncWorkerJobsFailed()
	}
}

func ack(ctx context.Context, consumer queue.Consumer, d queue.Delivery, msg queue.Message) bool {
	if err := consumer.Ack(ctx, d.Handle); err != nil {
		fields := deliveryFields(d, msg)
		fields["error"] = err.Error()
		telemetry.Error("worker.document.ack_failed", fields)
		return false
	}
	return true
}

func deliveryFields(d queue.Delivery, msg queue.Message) map[string]any {
	fields := map[string]any{
		"document_id":    msg.DocumentID,
		"sqs_message_id": d.MessageID,
		"receive_count":  d.ReceiveCount,
	}
	if strings.TrimSpace(msg.RequestID) != "" {
		fields["request_id"] = msg.RequestID
	}
	return fields
}

// RunPoller scans for pending documents oldest first and processes them
// in batches. It is the fallback when no queue is configured.
func RunPoller(ctx context.Context, docs documents.Repo, proc DocumentProcessor, interval time.Duration, batchSize int) error {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if batchSize <= 0 {
		batchSize = 10
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		pending, err := docs.ListByStatus(ctx, documents.StatusPending, batchSize, 0)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			telemetry.Error("worker.poll_failed", map[string]any{"error": err.Error()})
			sleepCtx(ctx, interval)
			continue
		}

		for _, doc := range pending {
			if err := proc.ProcessDocument(ctx, doc.ID); err != nil {
				telemetry.Error("worker.process_failed", map[string]any{
					"document_id": doc.ID,
					"error":       err.Error(),
				})
			}
		}

		if len(pending) < batchSize {
			sleepCtx(ctx, interval)
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
