// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive persists published issues in SQLite and answers
// what-ran-before queries against them.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/digest-engine/pkg/types"
)

const dbFile = "digest.db"

// Section labels used in the records table.
const (
	sectionTextPapers  = "text_papers"
	sectionTextBlogs   = "text_blogs"
	sectionOtherPapers = "other_papers"
	sectionRest        = "rest"
)

// Store manages the issue archive SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the archive database at archiveDir/digest.db
// and creates the schema if it does not exist.
func NewStore(archiveDir string) (*Store, error) {
	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	dbPath := filepath.Join(archiveDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS issues (
			number INTEGER PRIMARY KEY,
			date TEXT NOT NULL,
			editorial TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS records (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			issue_number INTEGER NOT NULL REFERENCES issues(number),
			section TEXT NOT NULL,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			authors TEXT,
			abstract TEXT,
			url TEXT,
			published TEXT,
			source TEXT,
			citation_count INTEGER,
			relevance_score REAL,
			topic TEXT,
			also_found_in TEXT,
			summary TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_issue ON records(issue_number)`,
		`CREATE INDEX IF NOT EXISTS idx_records_section ON records(section)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table over titles with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='records_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE records_fts USING fts5(title, content=records, content_rowid=rowid)`,
			`CREATE TRIGGER records_ai AFTER INSERT ON records BEGIN
				INSERT INTO records_fts(rowid, title) VALUES (new.rowid, new.title);
			END`,
			`CREATE TRIGGER records_ad AFTER DELETE ON records BEGIN
				INSERT INTO records_fts(records_fts, rowid, title) VALUES('delete', old.rowid, old.title);
			END`,
			`CREATE TRIGGER records_au AFTER UPDATE ON records BEGIN
				INSERT INTO records_fts(records_fts, rowid, title) VALUES('delete', old.rowid, old.title);
				INSERT INTO records_fts(rowid, title) VALUES (new.rowid, new.title);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// SaveIssue stores one issue and all its records. Saving an issue number
// that already exists replaces the previous contents.
func (s *Store) SaveIssue(ctx context.Context, issue types.Issue) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM records WHERE issue_number = ?`, issue.Number); err != nil {
		return fmt.Errorf("deleting old records: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO issues (number, date, editorial, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(number) DO UPDATE SET
			date=excluded.date, editorial=excluded.editorial, created_at=excluded.created_at`,
		issue.Number, issue.Date, issue.Editorial, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting issue: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (issue_number, section, position, title, authors, abstract, url,
			published, source, citation_count, relevance_score, topic, also_found_in, summary)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	insert := func(section string, records []types.Record) error {
		for i, rec := range records {
			authorsJSON, _ := json.Marshal(rec.Authors)
			_, err := stmt.ExecContext(ctx,
				issue.Number, section, i, rec.Title, string(authorsJSON), rec.Abstract,
				rec.URL, rec.Published, string(rec.Source), rec.CitationCount,
				rec.RelevanceScore, string(rec.Topic), string(rec.AlsoFoundIn), rec.Summary,
			)
			if err != nil {
				return fmt.Errorf("inserting record %q: %w", rec.Title, err)
			}
		}
		return nil
	}

	for _, sec := range []struct {
		name    string
		records []types.Record
	}{
		{sectionTextPapers, issue.Sections.TextPapers},
		{sectionTextBlogs, issue.Sections.TextBlogs},
		{sectionOtherPapers, issue.Sections.OtherPapers},
		{sectionRest, issue.Rest},
	} {
		if err := insert(sec.name, sec.records); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetIssue loads one archived issue with its sections and rest list.
func (s *Store) GetIssue(ctx context.Context, number int) (types.Issue, error) {
	var issue types.Issue
	var editorial sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT number, date, editorial FROM issues WHERE number = ?`, number,
	).Scan(&issue.Number, &issue.Date, &editorial)
	if err != nil {
		if err == sql.ErrNoRows {
			return types.Issue{}, fmt.Errorf("issue %d not found", number)
		}
		return types.Issue{}, fmt.Errorf("looking up issue: %w", err)
	}
	issue.Editorial = editorial.String

	rows, err := s.db.QueryContext(ctx,
		`SELECT section, title, authors, abstract, url, published, source,
			citation_count, relevance_score, topic, also_found_in, summary
		 FROM records WHERE issue_number = ? ORDER BY section, position`, number)
	if err != nil {
		return types.Issue{}, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var section string
		rec, err := scanRecord(rows, &section)
		if err != nil {
			return types.Issue{}, err
		}

		switch section {
		case sectionTextPapers:
			issue.Sections.TextPapers = append(issue.Sections.TextPapers, rec)
		case sectionTextBlogs:
			issue.Sections.TextBlogs = append(issue.Sections.TextBlogs, rec)
		case sectionOtherPapers:
			issue.Sections.OtherPapers = append(issue.Sections.OtherPapers, rec)
		case sectionRest:
			issue.Rest = append(issue.Rest, rec)
		}
	}
	return issue, rows.Err()
}

// IssueSummary is one row of the archive listing.
type IssueSummary struct {
	Number    int    `json:"issue" yaml:"issue"`
	Date      string `json:"date" yaml:"date"`
	Records   int    `json:"records" yaml:"records"`
	CreatedAt string `json:"created_at" yaml:"created_at"`
}

// ListIssues returns all archived issues, newest first.
func (s *Store) ListIssues(ctx context.Context) ([]IssueSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT i.number, i.date, i.created_at, count(r.rowid)
		 FROM issues i LEFT JOIN records r ON r.issue_number = i.number
		 GROUP BY i.number ORDER BY i.number DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing issues: %w", err)
	}
	defer rows.Close()

	var issues []IssueSummary
	for rows.Next() {
		var is IssueSummary
		if err := rows.Scan(&is.Number, &is.Date, &is.CreatedAt, &is.Records); err != nil {
			return nil, fmt.Errorf("scanning issue row: %w", err)
		}
		issues = append(issues, is)
	}
	return issues, rows.Err()
}

// recordScanner matches *sql.Rows and *sql.Row.
type recordScanner interface {
	Scan(dest ...any) error
}

func scanRecord(rows recordScanner, section *string) (types.Record, error) {
	var (
		rec         types.Record
		authorsJSON sql.NullString
		abstract    sql.NullString
		url         sql.NullString
		published   sql.NullString
		source      sql.NullString
		topic       sql.NullString
		alsoFoundIn sql.NullString
		summary     sql.NullString
	)

	if err := rows.Scan(
		section, &rec.Title, &authorsJSON, &abstract, &url, &published, &source,
		&rec.CitationCount, &rec.RelevanceScore, &topic, &alsoFoundIn, &summary,
	); err != nil {
		return types.Record{}, fmt.Errorf("scanning record row: %w", err)
	}

	if authorsJSON.Valid {
		json.Unmarshal([]byte(authorsJSON.String), &rec.Authors)
	}
	rec.Abstract = abstract.String
	rec.URL = url.String
	rec.Published = published.String
	rec.Source = types.Source(source.String)
	rec.Topic = types.Topic(topic.String)
	rec.AlsoFoundIn = types.Source(alsoFoundIn.String)
	rec.Summary = summary.String
	return rec, nil
}
