package models

import "time"

// Tree represents the full recursive projection of an owner's hierarchy,
// starting from every root folder.
type Tree struct {
	Folders   []*FolderNode     `json:"folders"`
	Documents []DocumentSummary `json:"documents"` // unfiled documents
}

// FolderNode represents a folder in the tree with nested children
type FolderNode struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	ParentID  *string           `json:"parent_folder_id"`
	CreatedAt time.Time         `json:"created_at"`
	Folders   []*FolderNode     `json:"folders"` // pointers for proper nesting
	Documents []DocumentSummary `json:"documents"`
}

// DocumentSummary is a document reference without its content payload
type DocumentSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	FolderID    *string   `json:"folder_id"`
	ContentType string    `json:"content_type"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FolderDetail is the shallow projection of a single folder: the folder
// itself, its immediate child folders and its direct documents.
type FolderDetail struct {
	Folder    *Folder           `json:"folder"`
	Folders   []Folder          `json:"folders"`
	Documents []DocumentSummary `json:"documents"`
}

// Summary strips a document down to its tree/list representation.
func (d *Document) Summary() DocumentSummary {
	return DocumentSummary{
		ID:          d.ID,
		Title:       d.Title,
		FolderID:    d.FolderID,
		ContentType: d.ContentType,
		UpdatedAt:   d.UpdatedAt,
	}
}
