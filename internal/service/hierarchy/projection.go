package hierarchy

import (
	"context"
	"fmt"

	"docstash/internal/domain/models"
	"docstash/internal/domain/repositories"
)

// buildFolderDetail assembles the shallow projection of a folder: the folder
// itself, its immediate child folders and summaries of its direct documents.
func buildFolderDetail(
	ctx context.Context,
	folderRepo repositories.FolderRepository,
	docRepo repositories.DocumentRepository,
	folder *models.Folder,
) (*models.FolderDetail, error) {
	children, err := folderRepo.ListChildren(ctx, folder.OwnerID, &folder.ID)
	if err != nil {
		return nil, fmt.Errorf("list child folders: %w", err)
	}

	docs, err := docRepo.ListByFolder(ctx, folder.OwnerID, &folder.ID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	summaries := make([]models.DocumentSummary, 0, len(docs))
	for i := range docs {
		summaries = append(summaries, docs[i].Summary())
	}

	if children == nil {
		children = []models.Folder{}
	}

	return &models.FolderDetail{
		Folder:    folder,
		Folders:   children,
		Documents: summaries,
	}, nil
}
