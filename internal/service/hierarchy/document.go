package hierarchy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"docstash/internal/contenttypes"
	"docstash/internal/domain"
	"docstash/internal/domain/models"
	"docstash/internal/domain/repositories"
	"docstash/internal/domain/services"
)

type documentService struct {
	docRepo      repositories.DocumentRepository
	folderRepo   repositories.FolderRepository
	txManager    repositories.TransactionManager
	authorizer   services.ResourceAuthorizer
	contentTypes *contenttypes.Registry
	logger       *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	docRepo repositories.DocumentRepository,
	folderRepo repositories.FolderRepository,
	txManager repositories.TransactionManager,
	authorizer services.ResourceAuthorizer,
	contentTypes *contenttypes.Registry,
	logger *slog.Logger,
) services.DocumentService {
	return &documentService{
		docRepo:      docRepo,
		folderRepo:   folderRepo,
		txManager:    txManager,
		authorizer:   authorizer,
		contentTypes: contentTypes,
		logger:       logger,
	}
}

// CreateDocument creates a new document, unfiled or inside an owned folder.
// The folder reference is validated inside the same transaction as the
// insert so the document cannot land in a folder that a concurrent cascade
// delete is removing.
func (s *documentService) CreateDocument(ctx context.Context, ownerID string, req *services.CreateDocumentRequest) (*services.CreateDocumentResult, error) {
	// Normalize empty string to nil for unfiled documents
	if req.FolderID != nil && *req.FolderID == "" {
		req.FolderID = nil
	}

	contentType, err := s.resolveContentType(req.ContentType)
	if err != nil {
		return nil, err
	}
	if err := validateDocumentFields(req.Title, req.Content); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	now := time.Now()
	doc := &models.Document{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		FolderID:    req.FolderID,
		Title:       strings.TrimSpace(req.Title),
		Content:     req.Content,
		ContentType: contentType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if req.FolderID != nil {
			if _, err := s.authorizer.ResolveOwnedFolder(txCtx, ownerID, *req.FolderID); err != nil {
				if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrForbidden) {
					return fmt.Errorf("folder %s: %w", *req.FolderID, domain.ErrInvalidFolder)
				}
				return fmt.Errorf("resolve folder: %w", err)
			}
		}

		return s.docRepo.Create(txCtx, doc)
	})
	if err != nil {
		return nil, err
	}

	result := &services.CreateDocumentResult{Document: doc}

	// Attach the owning folder's shallow projection for immediate display
	if doc.FolderID != nil {
		folder, err := s.authorizer.ResolveOwnedFolder(ctx, ownerID, *doc.FolderID)
		if err == nil {
			detail, err := buildFolderDetail(ctx, s.folderRepo, s.docRepo, folder)
			if err != nil {
				s.logger.Warn("failed to project owning folder", "folder_id", *doc.FolderID, "error", err)
			} else {
				result.Folder = detail
			}
		}
	}

	s.logger.Info("document created",
		"id", doc.ID,
		"title", doc.Title,
		"owner_id", ownerID,
		"folder_id", doc.FolderID,
		"content_type", doc.ContentType,
	)

	return result, nil
}

// GetDocument retrieves a document with its content
func (s *documentService) GetDocument(ctx context.Context, ownerID, documentID string) (*models.Document, error) {
	return s.authorizer.ResolveOwnedDocument(ctx, ownerID, documentID)
}

// ListDocuments retrieves all of an owner's documents (metadata only)
func (s *documentService) ListDocuments(ctx context.Context, ownerID string) ([]models.Document, error) {
	docs, err := s.docRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []models.Document{}
	}
	return docs, nil
}

// UpdateDocument replaces a document's payload and folder assignment. The
// folder assignment is total: a missing or empty folder_id files the
// document as unfiled, it never means "leave unchanged".
func (s *documentService) UpdateDocument(ctx context.Context, ownerID, documentID string, req *services.UpdateDocumentRequest) (*models.Document, error) {
	if req.FolderID != nil && *req.FolderID == "" {
		req.FolderID = nil
	}

	contentType, err := s.resolveContentType(req.ContentType)
	if err != nil {
		return nil, err
	}
	if err := validateDocumentFields(req.Title, req.Content); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var updated *models.Document

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		doc, err := s.authorizer.ResolveOwnedDocument(txCtx, ownerID, documentID)
		if err != nil {
			return err
		}
		expected := doc.Version

		if req.FolderID != nil {
			folder, err := s.authorizer.ResolveOwnedFolder(txCtx, ownerID, *req.FolderID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return fmt.Errorf("folder %s: %w", *req.FolderID, domain.ErrInvalidFolder)
				}
				return err
			}
			doc.FolderID = &folder.ID
		} else {
			doc.FolderID = nil
		}

		doc.Title = strings.TrimSpace(req.Title)
		doc.Content = req.Content
		doc.ContentType = contentType
		doc.UpdatedAt = time.Now()

		if err := s.docRepo.UpdateWithVersion(txCtx, doc, expected); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				if _, getErr := s.docRepo.GetByID(txCtx, doc.ID); getErr != nil {
					return getErr
				}
				return &domain.VersionConflictError{
					EntityType:      "document",
					EntityID:        doc.ID,
					ExpectedVersion: expected,
				}
			}
			return err
		}

		updated = doc
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document updated",
		"id", updated.ID,
		"title", updated.Title,
		"folder_id", updated.FolderID,
		"version", updated.Version,
	)

	return updated, nil
}

// DeleteDocument deletes a single document. Missing or unowned targets are
// a silent no-op, by contract. Deleting a document never touches its folder.
func (s *documentService) DeleteDocument(ctx context.Context, ownerID, documentID string) (bool, error) {
	doc, err := s.authorizer.ResolveOwnedDocument(ctx, ownerID, documentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrForbidden) {
			return false, nil
		}
		return false, err
	}

	rows, err := s.docRepo.DeleteByIDs(ctx, []string{doc.ID})
	if err != nil {
		return false, fmt.Errorf("delete document %s: %w", documentID, err)
	}

	if rows == 0 {
		// Lost a race with another delete; same outcome, same contract
		return false, nil
	}

	s.logger.Info("document deleted", "id", documentID, "owner_id", ownerID)
	return true, nil
}

// resolveContentType defaults an empty content type and checks membership
// against the registry.
func (s *documentService) resolveContentType(contentType string) (string, error) {
	if contentType == "" {
		return s.contentTypes.Default(), nil
	}
	if !s.contentTypes.IsAllowed(contentType) {
		return "", fmt.Errorf("%w: unknown content type %q", domain.ErrValidation, contentType)
	}
	return contentType, nil
}
