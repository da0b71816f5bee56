package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"docstash/internal/config"
	"docstash/internal/contenttypes"
	"docstash/internal/domain/services"
	"docstash/internal/repository/postgres"
	serviceAuth "docstash/internal/service/auth"
	"docstash/internal/service/hierarchy"
)

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed sample data")
	clearData := flag.Bool("clear-data", false, "Clear all folders and documents (keep schema)")
	ownerID := flag.String("owner", "00000000-0000-0000-0000-000000000001", "Owner ID to seed sample data for")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("BLOCKED: cannot run destructive operations (--drop-tables or --clear-data) in production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Printf("Dropping tables (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
	}

	if *clearData {
		log.Printf("Clearing data (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
		if err := clearAllData(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		return
	}

	log.Printf("Setting up schema (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to set up schema: %v", err)
	}

	if *schemaOnly {
		log.Printf("Schema ready")
		return
	}

	if err := seedSampleData(ctx, pool, tables, *ownerID, logger); err != nil {
		log.Fatalf("Failed to seed sample data: %v", err)
	}
	log.Printf("Seeded sample data for owner %s", *ownerID)
}

// runSchema creates tables if they don't exist
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	createFolders := `
		CREATE TABLE IF NOT EXISTS ` + tables.Folders + ` (
			id UUID PRIMARY KEY,
			owner_id UUID NOT NULL,
			parent_id UUID REFERENCES ` + tables.Folders + `(id),
			name TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			version BIGINT NOT NULL DEFAULT 1
		)
	`
	if _, err := pool.Exec(ctx, createFolders); err != nil {
		return err
	}

	createDocuments := `
		CREATE TABLE IF NOT EXISTS ` + tables.Documents + ` (
			id UUID PRIMARY KEY,
			owner_id UUID NOT NULL,
			folder_id UUID REFERENCES ` + tables.Folders + `(id),
			title TEXT NOT NULL,
			content TEXT NOT NULL DEFAULT '',
			content_type TEXT NOT NULL DEFAULT 'markdown',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			version BIGINT NOT NULL DEFAULT 1
		)
	`
	if _, err := pool.Exec(ctx, createDocuments); err != nil {
		return err
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `folders_owner_parent ON ` + tables.Folders + `(owner_id, parent_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `documents_owner ON ` + tables.Documents + `(owner_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `documents_folder ON ` + tables.Documents + `(folder_id)`,
	}

	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return err
		}
	}

	return nil
}

// dropAllTables drops all tables in reverse order (to respect foreign keys)
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	for _, table := range []string{tables.Documents, tables.Folders} {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return err
		}
		log.Printf("  dropped %s", table)
	}
	return nil
}

// clearAllData clears all documents and folders but keeps the schema
func clearAllData(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	if _, err := pool.Exec(ctx, "DELETE FROM "+tables.Documents); err != nil {
		return err
	}
	if _, err := pool.Exec(ctx, "DELETE FROM "+tables.Folders); err != nil {
		return err
	}
	return nil
}

// seedSampleData creates a small sample hierarchy through the services so
// every invariant check runs on the seeded data too.
func seedSampleData(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, ownerID string, logger *slog.Logger) error {
	repoConfig := &postgres.RepositoryConfig{Pool: pool, Tables: tables, Logger: logger}
	folderRepo := postgres.NewFolderRepository(repoConfig)
	docRepo := postgres.NewDocumentRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	contentTypes, err := contenttypes.NewRegistry()
	if err != nil {
		return err
	}

	authorizer := serviceAuth.NewOwnerAuthorizer(folderRepo, docRepo)
	folderService := hierarchy.NewFolderService(folderRepo, docRepo, txManager, authorizer, logger)
	docService := hierarchy.NewDocumentService(docRepo, folderRepo, txManager, authorizer, contentTypes, logger)

	notes, err := folderService.CreateFolder(ctx, ownerID, &services.CreateFolderRequest{Name: "Notes"})
	if err != nil {
		return err
	}

	drafts, err := folderService.CreateFolder(ctx, ownerID, &services.CreateFolderRequest{
		Name:     "Drafts",
		ParentID: &notes.ID,
	})
	if err != nil {
		return err
	}

	if _, err := docService.CreateDocument(ctx, ownerID, &services.CreateDocumentRequest{
		Title:    "Welcome",
		Content:  "# Welcome\n\nThis document lives in Notes.",
		FolderID: &notes.ID,
	}); err != nil {
		return err
	}

	if _, err := docService.CreateDocument(ctx, ownerID, &services.CreateDocumentRequest{
		Title:    "First draft",
		Content:  "Work in progress.",
		FolderID: &drafts.ID,
	}); err != nil {
		return err
	}

	if _, err := docService.CreateDocument(ctx, ownerID, &services.CreateDocumentRequest{
		Title:   "Scratchpad",
		Content: "Unfiled scratch space.",
	}); err != nil {
		return err
	}

	return nil
}
