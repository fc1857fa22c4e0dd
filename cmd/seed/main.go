package main

import (
	"context"
	_ "embed"
	"flag"
	"log"
	"log/slog"
	"os"

	"devfolio/internal/config"
	"devfolio/internal/repository/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed technologies.yaml
var technologiesYAML []byte

type catalog struct {
	Technologies []string `yaml:"technologies"`
}

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed the technology catalog")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("🚫 BLOCKED: Cannot run --drop-tables in production environment")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	if *schemaOnly {
		log.Printf("🏗️  Setting up schema only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else {
		log.Printf("🌱 Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	}

	// Create database connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Drop tables if requested
	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	// Run schema to ensure tables exist
	log.Println("📋 Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	// Exit early if schema-only mode
	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	// Seed the technology catalog
	var cat catalog
	if err := yaml.Unmarshal(technologiesYAML, &cat); err != nil {
		log.Fatalf("Failed to parse technology catalog: %v", err)
	}

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	technologyRepo := postgres.NewTechnologyRepository(repoConfig)

	log.Printf("🔧 Seeding %d technologies...", len(cat.Technologies))
	for _, name := range cat.Technologies {
		if err := technologyRepo.Upsert(ctx, name); err != nil {
			log.Printf("❌ Failed to seed technology '%s': %v", name, err)
		}
	}

	log.Println("🎉 Seeding complete!")
}

// runSchema creates tables if they don't exist
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	// Create users table
	createUsers := `
		CREATE TABLE IF NOT EXISTS ` + tables.Users + ` (
			id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createUsers); err != nil {
		return err
	}

	// Create technologies table
	createTechnologies := `
		CREATE TABLE IF NOT EXISTS ` + tables.Technologies + ` (
			id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		)
	`
	if _, err := pool.Exec(ctx, createTechnologies); err != nil {
		return err
	}

	// Create projects table. Deleting a user does NOT cascade here; the
	// service layer owns the cascade so it stays in one explicit transaction.
	createProjects := `
		CREATE TABLE IF NOT EXISTS ` + tables.Projects + ` (
			id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES ` + tables.Users + `(id),
			name TEXT NOT NULL,
			description TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createProjects); err != nil {
		return err
	}

	// Create project-technology link table
	createProjectsTechnologies := `
		CREATE TABLE IF NOT EXISTS ` + tables.ProjectsTechnologies + ` (
			project_id BIGINT NOT NULL REFERENCES ` + tables.Projects + `(id),
			technology_id BIGINT NOT NULL REFERENCES ` + tables.Technologies + `(id),
			UNIQUE(project_id, technology_id)
		)
	`
	if _, err := pool.Exec(ctx, createProjectsTechnologies); err != nil {
		return err
	}

	// Create user-favorite edge table. The check constraint rejects
	// self-favorites even if a caller bypasses the service guard.
	createUsersFavorites := `
		CREATE TABLE IF NOT EXISTS ` + tables.UsersFavorites + ` (
			user_id BIGINT NOT NULL REFERENCES ` + tables.Users + `(id),
			fav_user_id BIGINT NOT NULL REFERENCES ` + tables.Users + `(id),
			UNIQUE(user_id, fav_user_id),
			CHECK (user_id <> fav_user_id)
		)
	`
	if _, err := pool.Exec(ctx, createUsersFavorites); err != nil {
		return err
	}

	// Create project-favorite edge table
	createProjectsFavorites := `
		CREATE TABLE IF NOT EXISTS ` + tables.ProjectsFavorites + ` (
			user_id BIGINT NOT NULL REFERENCES ` + tables.Users + `(id),
			project_id BIGINT NOT NULL REFERENCES ` + tables.Projects + `(id),
			UNIQUE(user_id, project_id)
		)
	`
	if _, err := pool.Exec(ctx, createProjectsFavorites); err != nil {
		return err
	}

	// Create indexes
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `projects_user_id ON ` + tables.Projects + `(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `projects_technologies_project ON ` + tables.ProjectsTechnologies + `(project_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `users_favorites_user ON ` + tables.UsersFavorites + `(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `users_favorites_fav ON ` + tables.UsersFavorites + `(fav_user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `projects_favorites_user ON ` + tables.ProjectsFavorites + `(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `projects_favorites_project ON ` + tables.ProjectsFavorites + `(project_id)`,
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
	tableNames := []string{
		tables.ProjectsFavorites,
		tables.UsersFavorites,
		tables.ProjectsTechnologies,
		tables.Projects,
		tables.Technologies,
		tables.Users,
	}

	for _, table := range tableNames {
		dropSQL := "DROP TABLE IF EXISTS " + table + " CASCADE"
		if _, err := pool.Exec(ctx, dropSQL); err != nil {
			return err
		}
		log.Printf("  ✓ Dropped %s", table)
	}

	return nil
}
