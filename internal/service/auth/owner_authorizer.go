package auth

import (
	"context"
	"fmt"

	"docstash/internal/domain"
	"docstash/internal/domain/models"
	"docstash/internal/domain/repositories"
	"docstash/internal/domain/services"
)

// OwnerAuthorizer implements ResourceAuthorizer with direct ownership checks:
// a requester may touch an entity only when the entity's owner_id matches the
// requester's identity.
//
// This is the simplest authorization model. For future extensibility:
// - RoleBasedAuthorizer: check the requester's role on the entity
// - SharingAuthorizer: check whether the entity was shared with the requester
type OwnerAuthorizer struct {
	folderRepo repositories.FolderRepository
	docRepo    repositories.DocumentRepository
}

// NewOwnerAuthorizer creates a new ownership-based authorizer
func NewOwnerAuthorizer(
	folderRepo repositories.FolderRepository,
	docRepo repositories.DocumentRepository,
) services.ResourceAuthorizer {
	return &OwnerAuthorizer{
		folderRepo: folderRepo,
		docRepo:    docRepo,
	}
}

// ResolveOwnedFolder returns the folder only if ownerID owns it
func (a *OwnerAuthorizer) ResolveOwnedFolder(ctx context.Context, ownerID, folderID string) (*models.Folder, error) {
	folder, err := a.folderRepo.GetByID(ctx, folderID)
	if err != nil {
		return nil, err
	}

	if folder.OwnerID != ownerID {
		return nil, fmt.Errorf("access denied to folder %s: %w", folderID, domain.ErrForbidden)
	}

	return folder, nil
}

// ResolveOwnedDocument returns the document only if ownerID owns it
func (a *OwnerAuthorizer) ResolveOwnedDocument(ctx context.Context, ownerID, documentID string) (*models.Document, error) {
	doc, err := a.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	if doc.OwnerID != ownerID {
		return nil, fmt.Errorf("access denied to document %s: %w", documentID, domain.ErrForbidden)
	}

	return doc, nil
}
