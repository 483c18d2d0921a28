package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/CrowderSoup/taskboard/board"
)

// InitDB opens the SQLite database at path and creates the tables.
func InitDB(path string) (*sql.DB, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS tenants (
		id TEXT PRIMARY KEY,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tenants table: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS board_data (
		tenant_id TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (tenant_id) REFERENCES tenants(id)
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create board_data table: %w", err)
	}

	log.Printf("Database initialized at %s", path)
	return db, nil
}

func ensureDir(path string) error {
	if strings.Contains(path, ":memory:") || strings.Contains(path, "mode=memory") {
		return nil
	}
	clean := strings.TrimPrefix(path, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create database dir %q: %w", dir, err)
	}
	return nil
}

// BoardStore persists one board snapshot per tenant.
type BoardStore struct {
	db *sql.DB
}

func NewBoardStore(db *sql.DB) *BoardStore {
	return &BoardStore{db: db}
}

// Load returns the stored snapshot for tenant, or nil if the tenant has
// never been saved.
func (s *BoardStore) Load(ctx context.Context, tenant string) (*board.Snapshot, error) {
	row := s.db.QueryRowContext(ctx, "SELECT data FROM board_data WHERE tenant_id = ?", tenant)

	var dataStr string
	err := row.Scan(&dataStr)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query board data: %w", err)
	}

	var doc BoardDocument
	if err := json.Unmarshal([]byte(dataStr), &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal board data: %w", err)
	}
	if doc.Version > documentVersion {
		return nil, fmt.Errorf("board data version %d is newer than supported version %d", doc.Version, documentVersion)
	}

	return &doc.Board, nil
}

// Save writes snap for tenant, creating the tenant on first save.
func (s *BoardStore) Save(ctx context.Context, tenant string, snap board.Snapshot) error {
	dataJSON, err := json.Marshal(BoardDocument{Version: documentVersion, Board: snap})
	if err != nil {
		return fmt.Errorf("failed to marshal board data: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "INSERT OR IGNORE INTO tenants (id) VALUES (?)", tenant); err != nil {
		return fmt.Errorf("failed to insert tenant: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO board_data (tenant_id, data, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(tenant_id) DO UPDATE SET
			data = excluded.data,
			updated_at = CURRENT_TIMESTAMP
	`, tenant, string(dataJSON))
	if err != nil {
		return fmt.Errorf("failed to upsert board data: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Tenants lists every tenant with a stored board.
func (s *BoardStore) Tenants(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT tenant_id FROM board_data ORDER BY tenant_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query tenants: %w", err)
	}
	defer rows.Close()

	var tenants []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan tenant: %w", err)
		}
		tenants = append(tenants, id)
	}
	return tenants, rows.Err()
}
