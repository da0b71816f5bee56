package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"docstash/internal/domain"
	"docstash/internal/domain/models"
	"docstash/internal/domain/repositories"
)

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a new folder and fills in its store-assigned fields
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, owner_id, parent_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at, version
	`, r.tables.Folders)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		folder.ID,
		folder.OwnerID,
		folder.ParentID,
		folder.Name,
		folder.CreatedAt,
		folder.UpdatedAt,
	).Scan(&folder.CreatedAt, &folder.UpdatedAt, &folder.Version)

	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("parent of folder %q: %w", folder.Name, domain.ErrInvalidParent)
		}
		return fmt.Errorf("create folder: %w", err)
	}

	return nil
}

// GetByID retrieves a folder by ID regardless of owner
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, owner_id, parent_id, name, created_at, updated_at, version
		FROM %s
		WHERE id = $1
	`, r.tables.Folders)

	var folder models.Folder
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&folder.ID,
		&folder.OwnerID,
		&folder.ParentID,
		&folder.Name,
		&folder.CreatedAt,
		&folder.UpdatedAt,
		&folder.Version,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return &folder, nil
}

// ListChildren lists an owner's immediate child folders
func (r *PostgresFolderRepository) ListChildren(ctx context.Context, ownerID string, parentID *string) ([]models.Folder, error) {
	var query string
	var args []interface{}

	if parentID == nil {
		query = fmt.Sprintf(`
			SELECT id, owner_id, parent_id, name, created_at, updated_at, version
			FROM %s
			WHERE owner_id = $1 AND parent_id IS NULL
			ORDER BY created_at ASC
		`, r.tables.Folders)
		args = append(args, ownerID)
	} else {
		query = fmt.Sprintf(`
			SELECT id, owner_id, parent_id, name, created_at, updated_at, version
			FROM %s
			WHERE owner_id = $1 AND parent_id = $2
			ORDER BY created_at ASC
		`, r.tables.Folders)
		args = append(args, ownerID, *parentID)
	}

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list folder children: %w", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var folder models.Folder
		err := rows.Scan(
			&folder.ID,
			&folder.OwnerID,
			&folder.ParentID,
			&folder.Name,
			&folder.CreatedAt,
			&folder.UpdatedAt,
			&folder.Version,
		)
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}

// GetAllByOwner retrieves all of an owner's folders (flat list)
func (r *PostgresFolderRepository) GetAllByOwner(ctx context.Context, ownerID string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, owner_id, parent_id, name, created_at, updated_at, version
		FROM %s
		WHERE owner_id = $1
		ORDER BY created_at ASC
	`, r.tables.Folders)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get all folders: %w", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var folder models.Folder
		err := rows.Scan(
			&folder.ID,
			&folder.OwnerID,
			&folder.ParentID,
			&folder.Name,
			&folder.CreatedAt,
			&folder.UpdatedAt,
			&folder.Version,
		)
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}

// UpdateWithVersion commits the folder's mutable fields under an optimistic
// version check. The WHERE clause carries the expected token so the check
// and the write are one atomic statement.
func (r *PostgresFolderRepository) UpdateWithVersion(ctx context.Context, folder *models.Folder, expectedVersion int64) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, parent_id = $2, updated_at = $3, version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`, r.tables.Folders)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		folder.Name,
		folder.ParentID,
		folder.UpdatedAt,
		folder.ID,
		expectedVersion,
	).Scan(&folder.Version)

	if err != nil {
		if isPgNoRowsError(err) {
			return fmt.Errorf("folder %s at version %d: %w", folder.ID, expectedVersion, domain.ErrConflict)
		}
		return fmt.Errorf("update folder: %w", err)
	}

	return nil
}

// DeleteByIDs deletes the given folders in one statement
func (r *PostgresFolderRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ANY($1)`, r.tables.Folders)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, ids)
	if err != nil {
		return 0, fmt.Errorf("delete folders: %w", err)
	}

	return result.RowsAffected(), nil
}
