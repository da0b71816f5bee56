package services

import (
	"context"

	"docstash/internal/domain/models"
	"docstash/internal/httputil"
)

// FolderService handles folder business logic
type FolderService interface {
	// CreateFolder creates a new folder, optionally under a parent
	CreateFolder(ctx context.Context, ownerID string, req *CreateFolderRequest) (*models.Folder, error)

	// GetFolderDetail returns the shallow projection of a folder: the folder
	// plus its immediate child folders and direct documents
	GetFolderDetail(ctx context.Context, ownerID, folderID string) (*models.FolderDetail, error)

	// UpdateFolder renames and/or reparents a folder
	UpdateFolder(ctx context.Context, ownerID, folderID string, req *UpdateFolderRequest) (*models.Folder, error)

	// DeleteFolder deletes a folder and its full subtree atomically.
	// Reports false (and no error) when the folder is absent or unowned.
	DeleteFolder(ctx context.Context, ownerID, folderID string) (bool, error)
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parent_folder_id,omitempty"` // null for root
}

// UpdateFolderRequest represents a folder update request.
// ParentID is tri-state: absent leaves the parent unchanged, null moves the
// folder to root, a value moves it under that folder.
type UpdateFolderRequest struct {
	Name     string                  `json:"name"`
	ParentID httputil.OptionalString `json:"parent_folder_id"`
}
