package repositories

import (
	"context"

	"docstash/internal/domain/models"
)

// DocumentRepository defines data access operations for documents
type DocumentRepository interface {
	// Create inserts a new document and fills in its store-assigned fields
	Create(ctx context.Context, doc *models.Document) error

	// GetByID retrieves a document by ID regardless of owner.
	// Ownership checks happen above this layer.
	GetByID(ctx context.Context, id string) (*models.Document, error)

	// ListByOwner retrieves all of an owner's documents, metadata only
	// (content is not loaded).
	ListByOwner(ctx context.Context, ownerID string) ([]models.Document, error)

	// ListByFolder lists an owner's documents filed in a folder.
	// A nil folderID lists unfiled documents.
	ListByFolder(ctx context.Context, ownerID string, folderID *string) ([]models.Document, error)

	// ListByFolderIDs retrieves metadata for every document filed in any of
	// the given folders. Used to collect a deletion set before a cascade.
	ListByFolderIDs(ctx context.Context, folderIDs []string) ([]models.Document, error)

	// UpdateWithVersion commits the document's mutable fields only if the
	// stored version still equals expectedVersion, then bumps the token.
	// Returns domain.ErrConflict (wrapped) when no row matched.
	UpdateWithVersion(ctx context.Context, doc *models.Document, expectedVersion int64) error

	// DeleteByIDs deletes the given documents in one statement and reports
	// how many rows were removed.
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
}
