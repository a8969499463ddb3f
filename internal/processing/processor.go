package processing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"medhub-backend/internal/documents"
	"medhub-backend/internal/extract"
	"medhub-backend/internal/extractions"
	"medhub-backend/internal/llm"
	"medhub-backend/internal/shared/metrics"
	"medhub-backend/internal/shared/storage/object"
	"medhub-backend/internal/shared/telemetry"
)

// Processor runs the extraction pipeline for a single document:
// pending→processing, fetch bytes, extract text, call the model,
// persist the result, processing→completed. Storage and model failures
// become a failed document, a normal observable outcome. Persistence
// failures on the transitions themselves surface to the caller.
type Processor struct {
	Docs    documents.Repo
	Results extractions.Repo
	Store   object.ObjectStore
	LLM     llm.Client
}

// ProcessDocument drives one document through the pipeline. Documents
// not in pending are skipped; retries re-enter through the explicit
// status endpoint, never here.
func (p *Processor) ProcessDocument(ctx context.Context, documentID string) error {
	doc, err := p.Docs.Get(ctx, documentID)
	if err != nil {
		return err
	}
	if doc.ProcessingStatus != documents.StatusPending {
		telemetry.Info("processing.skip", map[string]any{
			"document_id": doc.ID,
			"status":      doc.ProcessingStatus,
		})
		return nil
	}

	if _, err := p.Docs.UpdateStatus(ctx, doc.ID, documents.StatusProcessing); err != nil {
		return fmt.Errorf("mark processing: %w", err)
	}
	metrics.IncProcessingStarted()
	started := time.Now()

	result, extractErr := p.runExtraction(ctx, doc)
	if extractErr != nil {
		telemetry.Error("processing.failed", map[string]any{
			"document_id": doc.ID,
			"user_id":     doc.UserID,
			"error":       extractErr.Error(),
		})
		metrics.IncProcessingFailed()
		if _, err := p.Docs.UpdateStatus(ctx, doc.ID, documents.StatusFailed); err != nil {
			return fmt.Errorf("mark failed: %w", err)
		}
		return nil
	}

	if err := p.Results.Create(ctx, result); err != nil {
		return fmt.Errorf("persist extraction result: %w", err)
	}
	if _, err := p.Docs.UpdateStatus(ctx, doc.ID, documents.StatusCompleted); err != nil {
		return fmt.Errorf("mark completed: %w", err)
	}

	metrics.IncProcessingCompleted()
	metrics.ObserveProcessingDurationMs(float64(time.Since(started).Milliseconds()))
	telemetry.Info("processing.completed", map[string]any{
		"document_id":   doc.ID,
		"user_id":       doc.UserID,
		"document_type": result.DocumentType,
	})
	return nil
}

func (p *Processor) runExtraction(ctx context.Context, doc documents.Document) (extractions.ExtractedData, error) {
	if doc.StoragePath == "" {
		return extractions.ExtractedData{}, errors.New("document has no storage path")
	}

	body, err := p.Store.Open(ctx, doc.StoragePath)
	if err != nil {
		return extractions.ExtractedData{}, fmt.Errorf("open stored bytes: %w", err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return extractions.ExtractedData{}, fmt.Errorf("read stored bytes: %w", err)
	}

	text, err := extract.FromBytes(ctx, data, doc.MimeType, doc.OriginalFilename)
	if err != nil {
		return extractions.ExtractedData{}, fmt.Errorf("extract text: %w", err)
	}

	extraction, err := p.LLM.ExtractMedicalData(ctx, text)
	if err != nil {
		return extractions.ExtractedData{}, err
	}

	return extractions.ExtractedData{
		ID:           uuid.NewString(),
		DocumentID:   doc.ID,
		UserID:       doc.UserID,
		DocumentType: extractions.DocumentType(extraction.DocumentType),
		Fields:       extraction.Fields,
		ExtractedAt:  time.Now().UTC(),
	}, nil
}
