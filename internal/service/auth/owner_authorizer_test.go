package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"docstash/internal/domain"
	"docstash/internal/domain/models"
)

type stubFolderRepo struct {
	folders map[string]*models.Folder
}

func (r *stubFolderRepo) Create(ctx context.Context, folder *models.Folder) error { return nil }

func (r *stubFolderRepo) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	if f, ok := r.folders[id]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
}

func (r *stubFolderRepo) ListChildren(ctx context.Context, ownerID string, parentID *string) ([]models.Folder, error) {
	return nil, nil
}

func (r *stubFolderRepo) GetAllByOwner(ctx context.Context, ownerID string) ([]models.Folder, error) {
	return nil, nil
}

func (r *stubFolderRepo) UpdateWithVersion(ctx context.Context, folder *models.Folder, expectedVersion int64) error {
	return nil
}

func (r *stubFolderRepo) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	return 0, nil
}

type stubDocRepo struct {
	docs map[string]*models.Document
}

func (r *stubDocRepo) Create(ctx context.Context, doc *models.Document) error { return nil }

func (r *stubDocRepo) GetByID(ctx context.Context, id string) (*models.Document, error) {
	if d, ok := r.docs[id]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
}

func (r *stubDocRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Document, error) {
	return nil, nil
}

func (r *stubDocRepo) ListByFolder(ctx context.Context, ownerID string, folderID *string) ([]models.Document, error) {
	return nil, nil
}

func (r *stubDocRepo) ListByFolderIDs(ctx context.Context, folderIDs []string) ([]models.Document, error) {
	return nil, nil
}

func (r *stubDocRepo) UpdateWithVersion(ctx context.Context, doc *models.Document, expectedVersion int64) error {
	return nil
}

func (r *stubDocRepo) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	return 0, nil
}

func TestResolveOwnedFolder(t *testing.T) {
	authorizer := NewOwnerAuthorizer(
		&stubFolderRepo{folders: map[string]*models.Folder{
			"f1": {ID: "f1", OwnerID: "alice", Name: "Mine"},
		}},
		&stubDocRepo{},
	)
	ctx := context.Background()

	tests := []struct {
		name     string
		ownerID  string
		folderID string
		wantErr  error
	}{
		{"owned", "alice", "f1", nil},
		{"foreign", "bob", "f1", domain.ErrForbidden},
		{"missing", "alice", "f2", domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			folder, err := authorizer.ResolveOwnedFolder(ctx, tt.ownerID, tt.folderID)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("resolve: %v", err)
				}
				if folder.ID != tt.folderID {
					t.Errorf("resolved %s, want %s", folder.ID, tt.folderID)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolveOwnedDocument(t *testing.T) {
	authorizer := NewOwnerAuthorizer(
		&stubFolderRepo{},
		&stubDocRepo{docs: map[string]*models.Document{
			"d1": {ID: "d1", OwnerID: "alice", Title: "Mine"},
		}},
	)
	ctx := context.Background()

	tests := []struct {
		name    string
		ownerID string
		docID   string
		wantErr error
	}{
		{"owned", "alice", "d1", nil},
		{"foreign", "bob", "d1", domain.ErrForbidden},
		{"missing", "alice", "d2", domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := authorizer.ResolveOwnedDocument(ctx, tt.ownerID, tt.docID)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("resolve: %v", err)
				}
				if doc.ID != tt.docID {
					t.Errorf("resolved %s, want %s", doc.ID, tt.docID)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
