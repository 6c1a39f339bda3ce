// Package store persists parsed chat exports into the SQLite warehouse.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mimicai/mimic/internal/migrate"
	"github.com/mimicai/mimic/internal/whatsapp"
)

// Store wraps the warehouse database.
type Store struct {
	db *sql.DB
}

// Open migrates the warehouse schema and opens a connection.
func Open(dbPath string) (*Store, error) {
	if err := migrate.MigrateWarehouse(dbPath); err != nil {
		return nil, fmt.Errorf("failed to migrate warehouse: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open warehouse: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// ImportRecord describes one stored export.
type ImportRecord struct {
	ID              string    `json:"id"`
	FileName        string    `json:"file_name"`
	DisplayName     string    `json:"display_name"`
	MessageCount    int       `json:"message_count"`
	NoticesFiltered int       `json:"notices_filtered"`
	ImportedAt      time.Time `json:"imported_at"`
}

// SaveImport writes a parse result as one import batch. All rows go in a
// single transaction so a failed import leaves no partial data behind.
// Returns the generated import id.
func (s *Store) SaveImport(result *whatsapp.Result, fileName, displayName string) (string, error) {
	importID := uuid.New().String()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO imports (id, file_name, display_name, message_count, notices_filtered, imported_ts)
		VALUES (?, ?, ?, ?, ?, ?)
	`, importID, fileName, displayName, len(result.Messages), result.Stats.NoticesFiltered, time.Now().Unix()); err != nil {
		return "", fmt.Errorf("failed to insert import: %w", err)
	}

	senderIDs, err := upsertSenders(tx, result.Senders)
	if err != nil {
		return "", err
	}

	for seq, msg := range result.Messages {
		senderID, ok := senderIDs[msg.Sender]
		if !ok {
			return "", fmt.Errorf("message %d references unknown sender %q", seq, msg.Sender)
		}

		var mediaType interface{}
		if msg.MediaType != "" {
			mediaType = msg.MediaType
		}

		if _, err := tx.Exec(`
			INSERT INTO messages (import_id, sender_id, seq, content, timestamp, is_media, media_type)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, importID, senderID, seq, msg.Text, msg.Timestamp, msg.IsMedia, mediaType); err != nil {
			return "", fmt.Errorf("failed to insert message %d: %w", seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit import: %w", err)
	}

	return importID, nil
}

// upsertSenders inserts any new sender names and returns name -> id for
// all of them. Existing rows keep their ids so senders dedupe across
// imports.
func upsertSenders(tx *sql.Tx, names []string) (map[string]int64, error) {
	ids := make(map[string]int64, len(names))

	for _, name := range names {
		if _, err := tx.Exec(`
			INSERT INTO senders (name) VALUES (?)
			ON CONFLICT(name) DO NOTHING
		`, name); err != nil {
			return nil, fmt.Errorf("failed to upsert sender %q: %w", name, err)
		}

		var id int64
		if err := tx.QueryRow(`SELECT id FROM senders WHERE name = ?`, name).Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to resolve sender %q: %w", name, err)
		}
		ids[name] = id
	}

	return ids, nil
}

// ListSenders returns all sender names in the warehouse, alphabetical.
func (s *Store) ListSenders() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM senders ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query senders: %w", err)
	}
	defer rows.Close()

	senders := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan sender: %w", err)
		}
		senders = append(senders, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating senders: %w", err)
	}

	return senders, nil
}

// ListImports returns all import batches, most recent first.
func (s *Store) ListImports() ([]ImportRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, file_name, display_name, message_count, notices_filtered, imported_ts
		FROM imports
		ORDER BY imported_ts DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query imports: %w", err)
	}
	defer rows.Close()

	imports := []ImportRecord{}
	for rows.Next() {
		var rec ImportRecord
		var importedTS int64
		if err := rows.Scan(&rec.ID, &rec.FileName, &rec.DisplayName, &rec.MessageCount, &rec.NoticesFiltered, &importedTS); err != nil {
			return nil, fmt.Errorf("failed to scan import: %w", err)
		}
		rec.ImportedAt = time.Unix(importedTS, 0)
		imports = append(imports, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating imports: %w", err)
	}

	return imports, nil
}

// GetMessages returns the stored messages of one import in original
// transcript order.
func (s *Store) GetMessages(importID string) ([]whatsapp.Message, error) {
	rows, err := s.db.Query(`
		SELECT se.name, m.content, m.timestamp, m.is_media, COALESCE(m.media_type, '')
		FROM messages m
		INNER JOIN senders se ON se.id = m.sender_id
		WHERE m.import_id = ?
		ORDER BY m.seq
	`, importID)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	messages := []whatsapp.Message{}
	for rows.Next() {
		var msg whatsapp.Message
		if err := rows.Scan(&msg.Sender, &msg.Text, &msg.Timestamp, &msg.IsMedia, &msg.MediaType); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}

	return messages, nil
}

// WarehouseStats summarizes everything stored so far.
type WarehouseStats struct {
	Imports       int `json:"imports"`
	Messages      int `json:"messages"`
	Senders       int `json:"senders"`
	MediaMessages int `json:"media_messages"`
}

// Stats computes warehouse-wide counts.
func (s *Store) Stats() (*WarehouseStats, error) {
	stats := &WarehouseStats{}

	row := s.db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM imports),
			(SELECT COUNT(*) FROM messages),
			(SELECT COUNT(*) FROM senders),
			(SELECT COUNT(*) FROM messages WHERE is_media = 1)
	`)
	if err := row.Scan(&stats.Imports, &stats.Messages, &stats.Senders, &stats.MediaMessages); err != nil {
		return nil, fmt.Errorf("failed to compute warehouse stats: %w", err)
	}

	return stats, nil
}

// Reset deletes the warehouse file. Missing files are not an error.
func Reset(dbPath string) error {
	if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove warehouse: %w", err)
	}
	return nil
}
