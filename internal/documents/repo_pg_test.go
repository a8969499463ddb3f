package documents

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateStartsPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	doc := Document{
		ID:               "doc-1",
		UserID:           "user-1",
		OriginalFilename: "labs.pdf",
		MimeType:         "application/pdf",
		SizeBytes:        1234,
		StoragePath:      "abc/def_labs.pdf",
		FileHash:         "abc123",
		UploadedAt:       time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO documents").
		WithArgs(
			doc.ID,
			doc.UserID,
			doc.OriginalFilename,
			sqlmock.AnyArg(), // mime_type
			doc.SizeBytes,
			sqlmock.AnyArg(), // storage_path
			sqlmock.AnyArg(), // file_hash
			string(StatusPending),
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), doc); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func documentRows(docs ...Document) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "original_filename", "mime_type", "size_bytes",
		"storage_path", "file_hash", "processing_status", "uploaded_at",
	})
	for _, d := range docs {
		rows.AddRow(d.ID, d.UserID, d.OriginalFilename, d.MimeType, d.SizeBytes,
			d.StoragePath, d.FileHash, string(d.ProcessingStatus), d.UploadedAt)
	}
	return rows
}

func TestPGRepoGetByIDScopesOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	doc := Document{
		ID: "doc-1", UserID: "user-1", OriginalFilename: "labs.pdf",
		ProcessingStatus: StatusPending, UploadedAt: time.Now().UTC(),
	}

	mock.ExpectQuery("SELECT .+ FROM documents").
		WithArgs("user-1", "doc-1").
		WillReturnRows(documentRows(doc))

	got, err := repo.GetByID(context.Background(), "user-1", "doc-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ID != "doc-1" || got.ProcessingStatus != StatusPending {
		t.Fatalf("unexpected document %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateStatusReturnsRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	doc := Document{
		ID: "doc-1", UserID: "user-1", OriginalFilename: "labs.pdf",
		ProcessingStatus: StatusProcessing, UploadedAt: time.Now().UTC(),
	}

	mock.ExpectQuery("UPDATE documents").
		WithArgs(string(StatusProcessing), "doc-1").
		WillReturnRows(documentRows(doc))

	got, err := repo.UpdateStatus(context.Background(), "doc-1", StatusProcessing)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if got.ProcessingStatus != StatusProcessing {
		t.Fatalf("expected processing, got %s", got.ProcessingStatus)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoFindByHash(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	doc := Document{
		ID: "doc-1", UserID: "user-1", OriginalFilename: "labs.pdf",
		FileHash: "abc123", ProcessingStatus: StatusCompleted, UploadedAt: time.Now().UTC(),
	}

	mock.ExpectQuery("SELECT .+ FROM documents").
		WithArgs("user-1", "abc123").
		WillReturnRows(documentRows(doc))

	got, err := repo.FindByHash(context.Background(), "user-1", "abc123")
	if err != nil {
		t.Fatalf("FindByHash: %v", err)
	}
	if got.FileHash != "abc123" {
		t.Fatalf("unexpected hash %s", got.FileHash)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListByStatusOldestFirstQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	base := time.Now().UTC()
	older := Document{ID: "doc-1", UserID: "u", OriginalFilename: "a.pdf", ProcessingStatus: StatusPending, UploadedAt: base}
	newer := Document{ID: "doc-2", UserID: "u", OriginalFilename: "b.pdf", ProcessingStatus: StatusPending, UploadedAt: base.Add(time.Minute)}

	mock.ExpectQuery("SELECT .+ FROM documents").
		WithArgs(string(StatusPending), 20, 0).
		WillReturnRows(documentRows(older, newer))

	docs, err := repo.ListByStatus(context.Background(), StatusPending, 20, 0)
	if err != nil {
		t.Fatalf("ListByStatus: %v", err)
	}
	if len(docs) != 2 || docs[0].ID != "doc-1" {
		t.Fatalf("unexpected result %+v", docs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
