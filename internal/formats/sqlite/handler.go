// Package sqlite reads glossaries stored in SQLite databases with an
// entries(word, alts, definition) table and an optional info(key, value)
// table.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/FocuswithJustin/JuniperGlossary/core/errors"
	"github.com/FocuswithJustin/JuniperGlossary/core/glossary"
	sqlitedb "github.com/FocuswithJustin/JuniperGlossary/core/sqlite"
	"github.com/FocuswithJustin/JuniperGlossary/internal/archive"
	"github.com/FocuswithJustin/JuniperGlossary/internal/formats"
	"github.com/FocuswithJustin/JuniperGlossary/internal/logging"
)

// Name is the registry name of the format.
const Name = "sqlite"

// Magic is the SQLite file header.
var Magic = []byte("SQLite format 3\x00")

// Reader implements formats.Reader.
type Reader struct{}

// Handler returns the registry entry for SQLite glossaries.
func Handler() *formats.Handler {
	return &formats.Handler{
		Name:        Name,
		Description: "SQLite glossary database",
		Extensions:  []string{".db", ".sqlite", ".sqlite3"},
		Magic:       Magic,
		Reader:      Reader{},
	}
}

// Register registers this reader with the formats registry.
func Register() {
	formats.Register(Handler())
}

func init() {
	Register()
}

// Read loads the glossary stored at path. Compressed databases are
// extracted to a temporary file first.
func (Reader) Read(ctx context.Context, path string) (*glossary.Glossary, error) {
	dbPath := path
	if archive.IsCompressed(path) {
		tmp, err := extract(path)
		if err != nil {
			return nil, err
		}
		defer os.Remove(tmp)
		dbPath = tmp
	}

	db, err := sqlitedb.OpenReadOnly(dbPath)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	defer db.Close()

	ok, err := sqlitedb.HasTable(ctx, db, "entries")
	if err != nil {
		return nil, errors.NewParse(Name, path, err.Error())
	}
	if !ok {
		return nil, errors.NewParse(Name, path, "no entries table")
	}

	glos := glossary.New()
	if err := readInfo(ctx, db, glos); err != nil {
		return nil, errors.NewParse(Name, path, err.Error())
	}
	if err := readEntries(ctx, db, glos); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.NewParse(Name, path, err.Error())
	}

	if glos.GetInfo(glossary.InfoName) == "" {
		glos.SetInfo(glossary.InfoName, formats.DefaultName(path))
	}
	logging.Debug("read sqlite glossary", "path", path, "entries", glos.Len(), "driver", sqlitedb.DriverName())
	return glos, nil
}

func readInfo(ctx context.Context, db *sql.DB, glos *glossary.Glossary) error {
	ok, err := sqlitedb.HasTable(ctx, db, "info")
	if err != nil || !ok {
		return err
	}
	rows, err := db.QueryContext(ctx, `SELECT key, value FROM info`)
	if err != nil {
		return fmt.Errorf("query info: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var key string
		var value sql.NullString
		if err := rows.Scan(&key, &value); err != nil {
			return fmt.Errorf("scan info: %w", err)
		}
		glos.SetInfo(key, value.String)
	}
	return rows.Err()
}

func readEntries(ctx context.Context, db *sql.DB, glos *glossary.Glossary) error {
	rows, err := db.QueryContext(ctx, `SELECT word, alts, definition FROM entries ORDER BY rowid`)
	if err != nil {
		return fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			word       string
			alts, defn sql.NullString
		)
		if err := rows.Scan(&word, &alts, &defn); err != nil {
			return fmt.Errorf("scan entry: %w", err)
		}
		glos.AddEntry(glossary.Entry{
			Word:       word,
			Alts:       splitAlts(alts.String),
			Definition: defn.String,
		})
	}
	return rows.Err()
}

func splitAlts(s string) []string {
	if s == "" {
		return nil
	}
	var alts []string
	for _, a := range strings.Split(s, "|") {
		if a = strings.TrimSpace(a); a != "" {
			alts = append(alts, a)
		}
	}
	return alts
}

// extract decompresses path into a temporary file and returns its name.
func extract(path string) (string, error) {
	r, err := archive.Open(path)
	if err != nil {
		return "", errors.NewIO("read", path, err)
	}
	defer r.Close()

	tmp, err := os.CreateTemp("", "glossary-*.db")
	if err != nil {
		return "", errors.NewIO("create temp", path, err)
	}
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", errors.NewIO("decompress", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", errors.NewIO("decompress", path, err)
	}
	return tmp.Name(), nil
}
