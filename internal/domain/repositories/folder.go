package repositories

import (
	"context"

	"docstash/internal/domain/models"
)

// FolderRepository defines data access operations for folders
type FolderRepository interface {
	// Create inserts a new folder and fills in its store-assigned fields
	Create(ctx context.Context, folder *models.Folder) error

	// GetByID retrieves a folder by ID regardless of owner.
	// Ownership checks happen above this layer.
	GetByID(ctx context.Context, id string) (*models.Folder, error)

	// ListChildren lists an owner's immediate child folders.
	// A nil parentID lists root-level folders.
	ListChildren(ctx context.Context, ownerID string, parentID *string) ([]models.Folder, error)

	// GetAllByOwner retrieves all of an owner's folders (flat list)
	GetAllByOwner(ctx context.Context, ownerID string) ([]models.Folder, error)

	// UpdateWithVersion commits the folder's mutable fields only if the
	// stored version still equals expectedVersion, then bumps the token.
	// Returns domain.ErrConflict (wrapped) when no row matched.
	UpdateWithVersion(ctx context.Context, folder *models.Folder, expectedVersion int64) error

	// DeleteByIDs deletes the given folders in one statement and reports
	// how many rows were removed.
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
}
