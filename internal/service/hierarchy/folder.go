package hierarchy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"docstash/internal/domain"
	"docstash/internal/domain/models"
	"docstash/internal/domain/repositories"
	"docstash/internal/domain/services"
)

type folderService struct {
	folderRepo repositories.FolderRepository
	docRepo    repositories.DocumentRepository
	txManager  repositories.TransactionManager
	authorizer services.ResourceAuthorizer
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo repositories.FolderRepository,
	docRepo repositories.DocumentRepository,
	txManager repositories.TransactionManager,
	authorizer services.ResourceAuthorizer,
	logger *slog.Logger,
) services.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		docRepo:    docRepo,
		txManager:  txManager,
		authorizer: authorizer,
		logger:     logger,
	}
}

// CreateFolder creates a new folder. The parent reference, when present, is
// re-validated inside the same transaction that inserts the folder so a
// concurrent cascade delete cannot leave the new folder orphaned.
func (s *folderService) CreateFolder(ctx context.Context, ownerID string, req *services.CreateFolderRequest) (*models.Folder, error) {
	// Normalize empty string to nil for root-level folders
	if req.ParentID != nil && *req.ParentID == "" {
		req.ParentID = nil
	}

	if err := validateCreateFolderRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	now := time.Now()
	folder := &models.Folder{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		ParentID:  req.ParentID,
		Name:      strings.TrimSpace(req.Name),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if req.ParentID != nil {
			if _, err := s.authorizer.ResolveOwnedFolder(txCtx, ownerID, *req.ParentID); err != nil {
				if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrForbidden) {
					return fmt.Errorf("parent folder %s: %w", *req.ParentID, domain.ErrInvalidParent)
				}
				return fmt.Errorf("resolve parent folder: %w", err)
			}
		}

		return s.folderRepo.Create(txCtx, folder)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"owner_id", ownerID,
		"parent_folder_id", folder.ParentID,
	)

	return folder, nil
}

// GetFolderDetail returns the shallow projection of a folder
func (s *folderService) GetFolderDetail(ctx context.Context, ownerID, folderID string) (*models.FolderDetail, error) {
	folder, err := s.authorizer.ResolveOwnedFolder(ctx, ownerID, folderID)
	if err != nil {
		return nil, err
	}

	return buildFolderDetail(ctx, s.folderRepo, s.docRepo, folder)
}

// UpdateFolder renames and/or reparents a folder. The read, the ancestor
// check and the version-checked write run in one transaction.
func (s *folderService) UpdateFolder(ctx context.Context, ownerID, folderID string, req *services.UpdateFolderRequest) (*models.Folder, error) {
	if err := validateFolderName(req.Name); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var updated *models.Folder

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		folder, err := s.authorizer.ResolveOwnedFolder(txCtx, ownerID, folderID)
		if err != nil {
			return err
		}
		expected := folder.Version

		folder.Name = strings.TrimSpace(req.Name)

		// Tri-state: only touch the parent when the field was present
		if req.ParentID.Present {
			if req.ParentID.Value != nil && *req.ParentID.Value != "" {
				// New parent ownership is always validated, regardless of
				// whether the folder is currently nested
				parent, err := s.authorizer.ResolveOwnedFolder(txCtx, ownerID, *req.ParentID.Value)
				if err != nil {
					if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrForbidden) {
						return fmt.Errorf("parent folder %s: %w", *req.ParentID.Value, domain.ErrInvalidParent)
					}
					return fmt.Errorf("resolve parent folder: %w", err)
				}

				if err := s.ensureNoCycle(txCtx, folder.ID, parent); err != nil {
					return err
				}

				folder.ParentID = &parent.ID
			} else {
				// null = move to root
				folder.ParentID = nil
			}
		}

		folder.UpdatedAt = time.Now()

		if err := s.folderRepo.UpdateWithVersion(txCtx, folder, expected); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				// Version check missed: decide whether the folder is gone
				// or a concurrent writer got there first
				if _, getErr := s.folderRepo.GetByID(txCtx, folder.ID); getErr != nil {
					return getErr
				}
				return &domain.VersionConflictError{
					EntityType:      "folder",
					EntityID:        folder.ID,
					ExpectedVersion: expected,
				}
			}
			return err
		}

		updated = folder
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder updated",
		"id", updated.ID,
		"name", updated.Name,
		"parent_folder_id", updated.ParentID,
		"version", updated.Version,
	)

	return updated, nil
}

// ensureNoCycle walks the ancestor chain of the proposed parent and rejects
// the move if it would make the folder its own ancestor.
func (s *folderService) ensureNoCycle(ctx context.Context, folderID string, newParent *models.Folder) error {
	if newParent.ID == folderID {
		return fmt.Errorf("%w: cannot move a folder under itself", domain.ErrValidation)
	}

	seen := map[string]bool{newParent.ID: true}
	current := newParent

	for current.ParentID != nil {
		ancestorID := *current.ParentID
		if ancestorID == folderID {
			return fmt.Errorf("%w: cannot move a folder under its own descendant", domain.ErrValidation)
		}
		// Corrupted ancestry loop: stop walking rather than spin
		if seen[ancestorID] {
			break
		}
		seen[ancestorID] = true

		ancestor, err := s.folderRepo.GetByID(ctx, ancestorID)
		if err != nil {
			return fmt.Errorf("walk ancestor chain: %w", err)
		}
		current = ancestor
	}

	return nil
}

// DeleteFolder deletes a folder and its full subtree in one transaction.
// Missing or unowned targets are a silent no-op, by contract.
func (s *folderService) DeleteFolder(ctx context.Context, ownerID, folderID string) (bool, error) {
	performed := false
	var folderCount, docCount int

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		folder, err := s.authorizer.ResolveOwnedFolder(txCtx, ownerID, folderID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrForbidden) {
				return nil
			}
			return fmt.Errorf("%w: resolve folder %s: %v", domain.ErrDeleteFailed, folderID, err)
		}

		folderIDs, err := s.collectSubtree(txCtx, ownerID, folder.ID)
		if err != nil {
			return fmt.Errorf("%w: collect subtree of %s: %v", domain.ErrDeleteFailed, folderID, err)
		}

		docs, err := s.docRepo.ListByFolderIDs(txCtx, folderIDs)
		if err != nil {
			return fmt.Errorf("%w: collect documents under %s: %v", domain.ErrDeleteFailed, folderID, err)
		}

		docIDs := make([]string, 0, len(docs))
		for i := range docs {
			docIDs = append(docIDs, docs[i].ID)
		}

		if _, err := s.docRepo.DeleteByIDs(txCtx, docIDs); err != nil {
			return fmt.Errorf("%w: delete documents under %s: %v", domain.ErrDeleteFailed, folderID, err)
		}
		if _, err := s.folderRepo.DeleteByIDs(txCtx, folderIDs); err != nil {
			return fmt.Errorf("%w: delete folders under %s: %v", domain.ErrDeleteFailed, folderID, err)
		}

		performed = true
		folderCount = len(folderIDs)
		docCount = len(docIDs)
		return nil
	})
	if err != nil {
		return false, err
	}

	if performed {
		s.logger.Info("folder deleted",
			"id", folderID,
			"owner_id", ownerID,
			"folders_removed", folderCount,
			"documents_removed", docCount,
		)
	}

	return performed, nil
}

// collectSubtree gathers the IDs of a folder and every descendant folder
// using an explicit worklist, depth bounded only by the stored edges. The
// seen set guards against corrupted parent cycles.
func (s *folderService) collectSubtree(ctx context.Context, ownerID, rootID string) ([]string, error) {
	var collected []string
	seen := make(map[string]bool)
	stack := []string{rootID}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if seen[id] {
			continue
		}
		seen[id] = true
		collected = append(collected, id)

		children, err := s.folderRepo.ListChildren(ctx, ownerID, &id)
		if err != nil {
			return nil, err
		}
		for i := range children {
			stack = append(stack, children[i].ID)
		}
	}

	return collected, nil
}
