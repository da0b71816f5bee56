package hierarchy

import (
	"context"
	"log/slog"

	"docstash/internal/domain/models"
	"docstash/internal/domain/repositories"
	"docstash/internal/domain/services"
)

// treeService implements the TreeService interface
type treeService struct {
	folderRepo repositories.FolderRepository
	docRepo    repositories.DocumentRepository
	logger     *slog.Logger
}

// NewTreeService creates a new tree service
func NewTreeService(
	folderRepo repositories.FolderRepository,
	docRepo repositories.DocumentRepository,
	logger *slog.Logger,
) services.TreeService {
	return &treeService{
		folderRepo: folderRepo,
		docRepo:    docRepo,
		logger:     logger,
	}
}

// GetOwnerTree builds the full recursive folder tree for an owner from two
// flat queries. Sibling order is insertion order (creation time).
func (s *treeService) GetOwnerTree(ctx context.Context, ownerID string) (*models.Tree, error) {
	allFolders, err := s.folderRepo.GetAllByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	allDocs, err := s.docRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	// First pass: create all folder nodes
	nodes := make(map[string]*models.FolderNode, len(allFolders))
	for i := range allFolders {
		f := &allFolders[i]
		nodes[f.ID] = &models.FolderNode{
			ID:        f.ID,
			Name:      f.Name,
			ParentID:  f.ParentID,
			CreatedAt: f.CreatedAt,
			Folders:   []*models.FolderNode{},
			Documents: []models.DocumentSummary{},
		}
	}

	// Second pass: child adjacency and root set
	children := make(map[string][]string)
	var rootIDs []string
	for i := range allFolders {
		f := &allFolders[i]
		if f.ParentID == nil {
			rootIDs = append(rootIDs, f.ID)
		} else {
			children[*f.ParentID] = append(children[*f.ParentID], f.ID)
		}
	}

	// Third pass: file document summaries under their folders
	rootDocs := make([]models.DocumentSummary, 0)
	for i := range allDocs {
		d := &allDocs[i]
		if d.FolderID == nil {
			rootDocs = append(rootDocs, d.Summary())
			continue
		}
		if parent, exists := nodes[*d.FolderID]; exists {
			parent.Documents = append(parent.Documents, d.Summary())
		}
	}

	// Recursive expansion from the roots. The on-path set skips any edge
	// that would revisit a node on the current path, so a corrupted parent
	// cycle in stored data degrades to a truncated branch instead of
	// unbounded recursion.
	onPath := make(map[string]bool)
	var expand func(id string) *models.FolderNode
	expand = func(id string) *models.FolderNode {
		node := nodes[id]
		onPath[id] = true
		for _, childID := range children[id] {
			if onPath[childID] || nodes[childID] == nil {
				continue
			}
			node.Folders = append(node.Folders, expand(childID))
		}
		delete(onPath, id)
		return node
	}

	rootFolders := make([]*models.FolderNode, 0, len(rootIDs))
	for _, id := range rootIDs {
		rootFolders = append(rootFolders, expand(id))
	}

	tree := &models.Tree{
		Folders:   rootFolders,
		Documents: rootDocs,
	}

	s.logger.Debug("owner tree built",
		"owner_id", ownerID,
		"folder_count", len(allFolders),
		"document_count", len(allDocs),
	)

	return tree, nil
}
