package services

import (
	"context"

	"docstash/internal/domain/models"
)

// ResourceAuthorizer resolves an entity reference against a requesting owner.
// Every mutating operation resolves its target through this interface before
// touching it; ownership is never cached between calls.
//
// Resolution is read-only and signals:
//   - domain.ErrNotFound when the entity does not exist
//   - domain.ErrForbidden when it exists but belongs to another owner
type ResourceAuthorizer interface {
	// ResolveOwnedFolder returns the folder only if ownerID owns it
	ResolveOwnedFolder(ctx context.Context, ownerID, folderID string) (*models.Folder, error)

	// ResolveOwnedDocument returns the document only if ownerID owns it
	ResolveOwnedDocument(ctx context.Context, ownerID, documentID string) (*models.Document, error)
}
