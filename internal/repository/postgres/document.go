package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"docstash/internal/domain"
	"docstash/internal/domain/models"
	"docstash/internal/domain/repositories"
)

// PostgresDocumentRepository implements the DocumentRepository interface
type PostgresDocumentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(config *RepositoryConfig) repositories.DocumentRepository {
	return &PostgresDocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a new document and fills in its store-assigned fields
func (r *PostgresDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, owner_id, folder_id, title, content, content_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at, version
	`, r.tables.Documents)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		doc.ID,
		doc.OwnerID,
		doc.FolderID,
		doc.Title,
		doc.Content,
		doc.ContentType,
		doc.CreatedAt,
		doc.UpdatedAt,
	).Scan(&doc.CreatedAt, &doc.UpdatedAt, &doc.Version)

	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("folder of document %q: %w", doc.Title, domain.ErrInvalidFolder)
		}
		return fmt.Errorf("create document: %w", err)
	}

	return nil
}

// GetByID retrieves a document by ID regardless of owner
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	query := fmt.Sprintf(`
		SELECT id, owner_id, folder_id, title, content, content_type, created_at, updated_at, version
		FROM %s
		WHERE id = $1
	`, r.tables.Documents)

	var doc models.Document
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&doc.ID,
		&doc.OwnerID,
		&doc.FolderID,
		&doc.Title,
		&doc.Content,
		&doc.ContentType,
		&doc.CreatedAt,
		&doc.UpdatedAt,
		&doc.Version,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	return &doc, nil
}

// ListByOwner retrieves all of an owner's documents, metadata only
func (r *PostgresDocumentRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Document, error) {
	query := fmt.Sprintf(`
		SELECT id, owner_id, folder_id, title, content_type, created_at, updated_at, version
		FROM %s
		WHERE owner_id = $1
		ORDER BY created_at ASC
	`, r.tables.Documents)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var doc models.Document
		err := rows.Scan(
			&doc.ID,
			&doc.OwnerID,
			&doc.FolderID,
			&doc.Title,
			&doc.ContentType,
			&doc.CreatedAt,
			&doc.UpdatedAt,
			&doc.Version,
		)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	return docs, nil
}

// ListByFolder lists an owner's documents filed in a folder
func (r *PostgresDocumentRepository) ListByFolder(ctx context.Context, ownerID string, folderID *string) ([]models.Document, error) {
	var query string
	var args []interface{}

	if folderID == nil {
		query = fmt.Sprintf(`
			SELECT id, owner_id, folder_id, title, content_type, created_at, updated_at, version
			FROM %s
			WHERE owner_id = $1 AND folder_id IS NULL
			ORDER BY created_at ASC
		`, r.tables.Documents)
		args = append(args, ownerID)
	} else {
		query = fmt.Sprintf(`
			SELECT id, owner_id, folder_id, title, content_type, created_at, updated_at, version
			FROM %s
			WHERE owner_id = $1 AND folder_id = $2
			ORDER BY created_at ASC
		`, r.tables.Documents)
		args = append(args, ownerID, *folderID)
	}

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents in folder: %w", err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var doc models.Document
		err := rows.Scan(
			&doc.ID,
			&doc.OwnerID,
			&doc.FolderID,
			&doc.Title,
			&doc.ContentType,
			&doc.CreatedAt,
			&doc.UpdatedAt,
			&doc.Version,
		)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	return docs, nil
}

// ListByFolderIDs retrieves metadata for every document filed in any of the
// given folders
func (r *PostgresDocumentRepository) ListByFolderIDs(ctx context.Context, folderIDs []string) ([]models.Document, error) {
	if len(folderIDs) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT id, owner_id, folder_id, title, content_type, created_at, updated_at, version
		FROM %s
		WHERE folder_id = ANY($1)
	`, r.tables.Documents)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, folderIDs)
	if err != nil {
		return nil, fmt.Errorf("list documents by folders: %w", err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var doc models.Document
		err := rows.Scan(
			&doc.ID,
			&doc.OwnerID,
			&doc.FolderID,
			&doc.Title,
			&doc.ContentType,
			&doc.CreatedAt,
			&doc.UpdatedAt,
			&doc.Version,
		)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	return docs, nil
}

// UpdateWithVersion commits the document's mutable fields under an optimistic
// version check, one atomic statement.
func (r *PostgresDocumentRepository) UpdateWithVersion(ctx context.Context, doc *models.Document, expectedVersion int64) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, content = $2, content_type = $3, folder_id = $4, updated_at = $5, version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING version
	`, r.tables.Documents)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		doc.Title,
		doc.Content,
		doc.ContentType,
		doc.FolderID,
		doc.UpdatedAt,
		doc.ID,
		expectedVersion,
	).Scan(&doc.Version)

	if err != nil {
		if isPgNoRowsError(err) {
			return fmt.Errorf("document %s at version %d: %w", doc.ID, expectedVersion, domain.ErrConflict)
		}
		return fmt.Errorf("update document: %w", err)
	}

	return nil
}

// DeleteByIDs deletes the given documents in one statement
func (r *PostgresDocumentRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ANY($1)`, r.tables.Documents)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, ids)
	if err != nil {
		return 0, fmt.Errorf("delete documents: %w", err)
	}

	return result.RowsAffected(), nil
}
