package services

import (
	"context"

	"docstash/internal/domain/models"
)

// TreeService builds hierarchy projections for external consumption
type TreeService interface {
	// GetOwnerTree builds the full recursive folder tree for an owner,
	// starting from every root folder. Document payloads are omitted.
	GetOwnerTree(ctx context.Context, ownerID string) (*models.Tree, error)
}
