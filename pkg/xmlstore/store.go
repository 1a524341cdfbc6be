// Package xmlstore implements a generic record store backed by a single XML
// document per collection. Every operation is a full read-modify-write cycle
// against the backing file; there is no in-memory caching and no locking, so
// the store assumes a single writer.
package xmlstore

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"github.com/smallbiznis/facturador/internal/clock"
	"go.uber.org/zap"
)

// StampLayout is the format applied to the last-modified timestamp of every
// persisted record.
const StampLayout = "2006-01-02 15:04:05"

// Record is the contract persisted types must satisfy. Records are identified
// by an opaque string id and carry a server-assigned timestamp refreshed on
// every insert and update.
type Record interface {
	RecordID() string
	StampedAt() string
	SetStampedAt(string)
}

// Store persists one named collection of T records. The document shape is a
// root element named after the collection holding one <items> element per
// record.
type Store[T Record] struct {
	path string
	name string
	log  *zap.Logger
	clk  clock.Clock
}

type document[T Record] struct {
	XMLName xml.Name
	Items   []T `xml:"items"`
}

// New builds a store for the collection name rooted at dir. The backing file
// is <dir>/<name>.xml and its root element is <name>.
func New[T Record](dir, name string, log *zap.Logger, clk clock.Clock) *Store[T] {
	return &Store[T]{
		path: filepath.Join(dir, name+".xml"),
		name: name,
		log:  log.Named("xmlstore").With(zap.String("collection", name)),
		clk:  clk,
	}
}

// Path returns the location of the backing file.
func (s *Store[T]) Path() string { return s.path }

// EnsureInitialized creates the parent directory and an empty collection
// shell when the backing file is absent. Calling it repeatedly is harmless.
func (s *Store[T]) EnsureInitialized() error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("xmlstore: create %s: %w", dir, err)
		}
	}
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("xmlstore: stat %s: %w", s.path, err)
	}
	return s.write(document[T]{})
}

// ReadAll returns every record in the collection. A missing file, an empty
// document or malformed content all yield an empty slice; read problems are
// logged, never surfaced.
func (s *Store[T]) ReadAll() []T {
	return s.load().Items
}

// FindByID scans the collection and returns the first record whose id equals
// the given value. Duplicate ids may coexist; only the first match is
// reported.
func (s *Store[T]) FindByID(id string) (T, bool) {
	for _, rec := range s.load().Items {
		if rec.RecordID() == id {
			return rec, true
		}
	}
	var zero T
	return zero, false
}

// Insert appends the record and writes the whole document back. The record's
// timestamp is stamped with the current local time when not already present.
// Id uniqueness is not enforced.
func (s *Store[T]) Insert(rec T) error {
	doc := s.load()
	if rec.StampedAt() == "" {
		rec.SetStampedAt(s.clk.Now().Format(StampLayout))
	}
	doc.Items = append(doc.Items, rec)
	return s.write(doc)
}

// Update applies merge to the first record matching id, refreshes its
// timestamp and writes the document back. It reports whether a record was
// found; only I/O failures yield an error.
func (s *Store[T]) Update(id string, merge func(T)) (bool, error) {
	doc := s.load()
	for i, rec := range doc.Items {
		if rec.RecordID() != id {
			continue
		}
		merge(rec)
		rec.SetStampedAt(s.clk.Now().Format(StampLayout))
		doc.Items[i] = rec
		if err := s.write(doc); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// Delete removes the first record matching id by position and writes the
// document back. It reports whether a record was found.
func (s *Store[T]) Delete(id string) (bool, error) {
	doc := s.load()
	for i, rec := range doc.Items {
		if rec.RecordID() != id {
			continue
		}
		doc.Items = append(doc.Items[:i], doc.Items[i+1:]...)
		if err := s.write(doc); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

func (s *Store[T]) load() document[T] {
	var doc document[T]
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("read failed, treating collection as empty", zap.Error(err))
		}
		return doc
	}
	if len(raw) == 0 {
		return doc
	}
	if err := xml.Unmarshal(raw, &doc); err != nil {
		s.log.Warn("malformed document, treating collection as empty", zap.Error(err))
		return document[T]{}
	}
	return doc
}

func (s *Store[T]) write(doc document[T]) error {
	doc.XMLName = xml.Name{Local: s.name}
	raw, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("xmlstore: marshal %s: %w", s.name, err)
	}
	raw = append([]byte(xml.Header), raw...)
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("xmlstore: write %s: %w", s.path, err)
	}
	return nil
}
