// Package store persists the crawl results as a single JSON document.
// Every mutation is a full read-modify-write; writes go through a temp
// file and rename so a crash never leaves a half-written document.
package store

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"linkroster/internal/models"
)

// Store is a handle on the document at Path. It does not cache: each
// operation re-reads the file, matching the one-writer single-process
// model.
type Store struct {
	Path string
}

func New(path string) *Store {
	return &Store{Path: path}
}

// Exists reports whether the document file is already on disk.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.Path)
	return err == nil
}

// Init writes a fresh document for company with no employees. It never
// overwrites an existing file.
func (s *Store) Init(company string) error {
	if s.Exists() {
		return nil
	}
	return s.write(models.CompanyStore{Company: company, Employees: []models.EmployeeRecord{}})
}

// Load reads the document.
func (s *Store) Load() (models.CompanyStore, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return models.CompanyStore{}, errors.Wrapf(err, "reading %s", s.Path)
	}
	var doc models.CompanyStore
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.CompanyStore{}, errors.Wrapf(err, "parsing %s", s.Path)
	}
	return doc, nil
}

// Contains reports whether an employee with url is already recorded.
func (s *Store) Contains(url string) (bool, error) {
	doc, err := s.Load()
	if err != nil {
		return false, err
	}
	for _, e := range doc.Employees {
		if e.URL == url {
			return true, nil
		}
	}
	return false, nil
}

// Append adds rec to the document. Duplicate URLs are the caller's
// problem: the crawl checks Contains before opening a profile tab.
func (s *Store) Append(rec models.EmployeeRecord) error {
	doc, err := s.Load()
	if err != nil {
		return err
	}
	doc.Employees = append(doc.Employees, rec)
	return s.write(doc)
}

// Upsert replaces the record matching rec.URL in place, or appends when
// no record matches. The only update path in the system.
func (s *Store) Upsert(rec models.EmployeeRecord) error {
	doc, err := s.Load()
	if err != nil {
		return err
	}
	replaced := false
	for i := range doc.Employees {
		if doc.Employees[i].URL == rec.URL {
			doc.Employees[i] = rec
			replaced = true
		}
	}
	if !replaced {
		doc.Employees = append(doc.Employees, rec)
	}
	return s.write(doc)
}

// write marshals doc and swaps it in atomically. Four-space indent and
// unescaped text keep the document diffable and readable.
func (s *Store) write(doc models.CompanyStore) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrapf(err, "encoding %s", s.Path)
	}

	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.Path)+".tmp-*")
	if err != nil {
		return errors.Wrapf(err, "creating temp file in %s", dir)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrapf(err, "writing %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "closing %s", tmpName)
	}
	if err := os.Rename(tmpName, s.Path); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "replacing %s", s.Path)
	}
	return nil
}
