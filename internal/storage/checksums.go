package storage

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	_ "github.com/mattn/go-sqlite3"
)

// Checksum is the recorded digest of one rendered output file.
type Checksum struct {
	Path       string    `json:"path"`
	Digest     string    `json:"digest"`
	RecordedAt time.Time `json:"recorded_at"`
}

// ChecksumStore remembers what the last apply wrote so a later apply can tell
// whether the user edited the output by hand. Paths are stored relative to
// the output dir.
type ChecksumStore struct {
	db   *sql.DB
	root string
	fs   billy.Filesystem
}

// OpenChecksums opens (creating if needed) the checksum database at dbPath
// for the output dir outDir.
func OpenChecksums(dbPath, outDir string) (*ChecksumStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create checksum directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open checksum database: %w", err)
	}

	s := &ChecksumStore{db: db, root: outDir, fs: osfs.New(outDir)}
	if err := s.createTable(); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to initialize checksum database schema: %w", err)
	}

	return s, nil
}

func (s *ChecksumStore) createTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS output_checksums (
		path TEXT PRIMARY KEY,
		digest TEXT NOT NULL,
		recorded_at DATETIME NOT NULL
	);
	`
	_, err := s.db.Exec(query)
	return err
}

// Record replaces every stored checksum with the digests of the files now in
// the output dir.
func (s *ChecksumStore) Record() error {
	digests := make(map[string]string)
	err := util.Walk(s.fs, "/", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		digest, err := s.digest(path)
		if err != nil {
			return err
		}
		digests[strings.TrimPrefix(filepath.ToSlash(path), "/")] = digest
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to checksum %s: %w", s.root, err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin checksum transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM output_checksums"); err != nil {
		return fmt.Errorf("failed to clear checksums: %w", err)
	}

	now := time.Now()
	for path, digest := range digests {
		_, err := tx.Exec(`
			INSERT INTO output_checksums (path, digest, recorded_at)
			VALUES (?, ?, ?)
		`, path, digest, now)
		if err != nil {
			return fmt.Errorf("failed to record checksum for %s: %w", path, err)
		}
	}

	return tx.Commit()
}

// Verify returns the recorded paths whose contents changed since Record.
// Files that no longer exist are not reported.
func (s *ChecksumStore) Verify() ([]string, error) {
	entries, err := s.Entries()
	if err != nil {
		return nil, err
	}

	var modified []string
	for _, entry := range entries {
		digest, err := s.digest(entry.Path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if digest != entry.Digest {
			modified = append(modified, entry.Path)
		}
	}

	sort.Strings(modified)
	return modified, nil
}

// Entries lists every stored checksum ordered by path.
func (s *ChecksumStore) Entries() ([]Checksum, error) {
	rows, err := s.db.Query(`
		SELECT path, digest, recorded_at
		FROM output_checksums
		ORDER BY path
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query checksums: %w", err)
	}
	defer rows.Close()

	var entries []Checksum
	for rows.Next() {
		var entry Checksum
		if err := rows.Scan(&entry.Path, &entry.Digest, &entry.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan checksum row: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (s *ChecksumStore) digest(path string) (string, error) {
	f, err := s.fs.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Close closes the database connection
func (s *ChecksumStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
