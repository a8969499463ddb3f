package documents

import "time"

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	DocumentID       string    `json:"documentId"`
	OriginalFilename string    `json:"originalFilename"`
	MimeType         string    `json:"mimeType,omitempty"`
	SizeBytes        int64     `json:"sizeBytes"`
	FileHash         string    `json:"fileHash,omitempty"`
	ProcessingStatus Status    `json:"processingStatus"`
	UploadedAt       time.Time `json:"uploadedAt"`
}

func toResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		DocumentID:       doc.ID,
		OriginalFilename: doc.OriginalFilename,
		MimeType:         doc.MimeType,
		SizeBytes:        doc.SizeBytes,
		FileHash:         doc.FileHash,
		ProcessingStatus: doc.ProcessingStatus,
		UploadedAt:       doc.UploadedAt,
	}
}
