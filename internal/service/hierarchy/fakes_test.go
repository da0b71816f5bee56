package hierarchy

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"docstash/internal/contenttypes"
	"docstash/internal/domain"
	"docstash/internal/domain/models"
	"docstash/internal/domain/repositories"
	"docstash/internal/domain/services"
	serviceAuth "docstash/internal/service/auth"
)

// fakeTxManager runs the function directly; atomicity is not under test here.
type fakeTxManager struct{}

func (fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

// fakeFolderRepo is an in-memory FolderRepository with insertion-ordered
// listings, mirroring the created_at ordering of the real queries.
type fakeFolderRepo struct {
	folders map[string]*models.Folder
	order   []string

	// forceUpdateConflict makes the next UpdateWithVersion report a
	// version-check miss regardless of the stored token.
	forceUpdateConflict bool

	// deleteOnUpdate removes the row at update time, simulating a
	// concurrent delete landing between the read and the write.
	deleteOnUpdate bool
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{folders: make(map[string]*models.Folder)}
}

func copyFolder(f *models.Folder) *models.Folder {
	c := *f
	return &c
}

func (r *fakeFolderRepo) Create(ctx context.Context, folder *models.Folder) error {
	if folder.Version == 0 {
		folder.Version = 1
	}
	r.folders[folder.ID] = copyFolder(folder)
	r.order = append(r.order, folder.ID)
	return nil
}

func (r *fakeFolderRepo) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	f, ok := r.folders[id]
	if !ok {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	return copyFolder(f), nil
}

func (r *fakeFolderRepo) ListChildren(ctx context.Context, ownerID string, parentID *string) ([]models.Folder, error) {
	var out []models.Folder
	for _, id := range r.order {
		f, ok := r.folders[id]
		if !ok || f.OwnerID != ownerID {
			continue
		}
		if parentID == nil {
			if f.ParentID == nil {
				out = append(out, *f)
			}
		} else if f.ParentID != nil && *f.ParentID == *parentID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *fakeFolderRepo) GetAllByOwner(ctx context.Context, ownerID string) ([]models.Folder, error) {
	var out []models.Folder
	for _, id := range r.order {
		if f, ok := r.folders[id]; ok && f.OwnerID == ownerID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *fakeFolderRepo) UpdateWithVersion(ctx context.Context, folder *models.Folder, expectedVersion int64) error {
	if r.deleteOnUpdate {
		r.deleteOnUpdate = false
		delete(r.folders, folder.ID)
		return fmt.Errorf("folder %s at version %d: %w", folder.ID, expectedVersion, domain.ErrConflict)
	}
	if r.forceUpdateConflict {
		r.forceUpdateConflict = false
		return fmt.Errorf("folder %s at version %d: %w", folder.ID, expectedVersion, domain.ErrConflict)
	}
	stored, ok := r.folders[folder.ID]
	if !ok || stored.Version != expectedVersion {
		return fmt.Errorf("folder %s at version %d: %w", folder.ID, expectedVersion, domain.ErrConflict)
	}
	folder.Version = expectedVersion + 1
	r.folders[folder.ID] = copyFolder(folder)
	return nil
}

func (r *fakeFolderRepo) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := r.folders[id]; ok {
			delete(r.folders, id)
			n++
		}
	}
	return n, nil
}

// fakeDocRepo is an in-memory DocumentRepository.
type fakeDocRepo struct {
	docs  map[string]*models.Document
	order []string

	forceUpdateConflict bool
	deleteOnUpdate      bool
}

func newFakeDocRepo() *fakeDocRepo {
	return &fakeDocRepo{docs: make(map[string]*models.Document)}
}

func copyDoc(d *models.Document) *models.Document {
	c := *d
	return &c
}

func (r *fakeDocRepo) Create(ctx context.Context, doc *models.Document) error {
	if doc.Version == 0 {
		doc.Version = 1
	}
	r.docs[doc.ID] = copyDoc(doc)
	r.order = append(r.order, doc.ID)
	return nil
}

func (r *fakeDocRepo) GetByID(ctx context.Context, id string) (*models.Document, error) {
	d, ok := r.docs[id]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	return copyDoc(d), nil
}

func (r *fakeDocRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Document, error) {
	var out []models.Document
	for _, id := range r.order {
		if d, ok := r.docs[id]; ok && d.OwnerID == ownerID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeDocRepo) ListByFolder(ctx context.Context, ownerID string, folderID *string) ([]models.Document, error) {
	var out []models.Document
	for _, id := range r.order {
		d, ok := r.docs[id]
		if !ok || d.OwnerID != ownerID {
			continue
		}
		if folderID == nil {
			if d.FolderID == nil {
				out = append(out, *d)
			}
		} else if d.FolderID != nil && *d.FolderID == *folderID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeDocRepo) ListByFolderIDs(ctx context.Context, folderIDs []string) ([]models.Document, error) {
	inSet := make(map[string]bool, len(folderIDs))
	for _, id := range folderIDs {
		inSet[id] = true
	}
	var out []models.Document
	for _, id := range r.order {
		if d, ok := r.docs[id]; ok && d.FolderID != nil && inSet[*d.FolderID] {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeDocRepo) UpdateWithVersion(ctx context.Context, doc *models.Document, expectedVersion int64) error {
	if r.deleteOnUpdate {
		r.deleteOnUpdate = false
		delete(r.docs, doc.ID)
		return fmt.Errorf("document %s at version %d: %w", doc.ID, expectedVersion, domain.ErrConflict)
	}
	if r.forceUpdateConflict {
		r.forceUpdateConflict = false
		return fmt.Errorf("document %s at version %d: %w", doc.ID, expectedVersion, domain.ErrConflict)
	}
	stored, ok := r.docs[doc.ID]
	if !ok || stored.Version != expectedVersion {
		return fmt.Errorf("document %s at version %d: %w", doc.ID, expectedVersion, domain.ErrConflict)
	}
	doc.Version = expectedVersion + 1
	r.docs[doc.ID] = copyDoc(doc)
	return nil
}

func (r *fakeDocRepo) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := r.docs[id]; ok {
			delete(r.docs, id)
			n++
		}
	}
	return n, nil
}

// testEnv bundles the services under test over shared in-memory repos.
type testEnv struct {
	folderRepo *fakeFolderRepo
	docRepo    *fakeDocRepo
	folders    services.FolderService
	documents  services.DocumentService
	tree       services.TreeService
}

func newTestEnv(t interface{ Fatalf(string, ...interface{}) }) *testEnv {
	folderRepo := newFakeFolderRepo()
	docRepo := newFakeDocRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	contentTypes, err := contenttypes.NewRegistry()
	if err != nil {
		t.Fatalf("load content type registry: %v", err)
	}

	authorizer := serviceAuth.NewOwnerAuthorizer(folderRepo, docRepo)
	txManager := fakeTxManager{}

	return &testEnv{
		folderRepo: folderRepo,
		docRepo:    docRepo,
		folders:    NewFolderService(folderRepo, docRepo, txManager, authorizer, logger),
		documents:  NewDocumentService(docRepo, folderRepo, txManager, authorizer, contentTypes, logger),
		tree:       NewTreeService(folderRepo, docRepo, logger),
	}
}

func (e *testEnv) mustCreateFolder(t interface{ Fatalf(string, ...interface{}) }, ownerID, name string, parentID *string) *models.Folder {
	folder, err := e.folders.CreateFolder(context.Background(), ownerID, &services.CreateFolderRequest{
		Name:     name,
		ParentID: parentID,
	})
	if err != nil {
		t.Fatalf("create folder %q: %v", name, err)
	}
	return folder
}

func (e *testEnv) mustCreateDocument(t interface{ Fatalf(string, ...interface{}) }, ownerID, title string, folderID *string) *models.Document {
	result, err := e.documents.CreateDocument(context.Background(), ownerID, &services.CreateDocumentRequest{
		Title:    title,
		Content:  "content of " + title,
		FolderID: folderID,
	})
	if err != nil {
		t.Fatalf("create document %q: %v", title, err)
	}
	return result.Document
}
