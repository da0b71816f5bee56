package services

import (
	"context"

	"docstash/internal/domain/models"
)

// DocumentService handles document business logic
type DocumentService interface {
	// CreateDocument creates a new document, unfiled or inside a folder.
	// When filed, the result carries the owning folder's shallow projection
	// for immediate display.
	CreateDocument(ctx context.Context, ownerID string, req *CreateDocumentRequest) (*CreateDocumentResult, error)

	// GetDocument retrieves a document with its content
	GetDocument(ctx context.Context, ownerID, documentID string) (*models.Document, error)

	// ListDocuments retrieves all of an owner's documents (metadata only)
	ListDocuments(ctx context.Context, ownerID string) ([]models.Document, error)

	// UpdateDocument replaces a document's payload and folder assignment
	UpdateDocument(ctx context.Context, ownerID, documentID string, req *UpdateDocumentRequest) (*models.Document, error)

	// DeleteDocument deletes a single document. Reports false (and no
	// error) when the document is absent or unowned.
	DeleteDocument(ctx context.Context, ownerID, documentID string) (bool, error)
}

// CreateDocumentRequest represents a document creation request
type CreateDocumentRequest struct {
	Title       string  `json:"title"`
	Content     string  `json:"content"`
	ContentType string  `json:"content_type"`
	FolderID    *string `json:"folder_id,omitempty"` // null = unfiled
}

// UpdateDocumentRequest represents a document update request. The folder
// assignment is fully replaced on every update: an absent or empty folder_id
// means unfiled, never "leave unchanged".
type UpdateDocumentRequest struct {
	Title       string  `json:"title"`
	Content     string  `json:"content"`
	ContentType string  `json:"content_type"`
	FolderID    *string `json:"folder_id,omitempty"`
}

// CreateDocumentResult is the creation response: the document plus the
// shallow projection of its owning folder (nil when unfiled).
type CreateDocumentResult struct {
	Document *models.Document     `json:"document"`
	Folder   *models.FolderDetail `json:"folder,omitempty"`
}
