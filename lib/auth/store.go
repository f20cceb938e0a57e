package auth

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/gravitational/trace"
)

// Document maps a normalized instance host to the credentials stored for it.
// Entry order is insertion order; it carries no selection meaning.
type Document map[string][]Credential

// Store persists the full credential document. It is pure persistence:
// callers always supply the complete desired state.
type Store interface {
	// Load reads the persisted document, returning an empty one if none
	// exists yet
	Load() (Document, error)

	// Save overwrites the persisted document
	Save(Document) error
}

// FileStore keeps the document as a single JSON file.
//
// NB: racy, does not use file-locking or similar. Concurrent invocations of
// the CLI may lose a write; acceptable for a single-user local tool.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultStorePath returns the well-known credential file location.
func DefaultStorePath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", trace.Wrap(err)
	}
	return filepath.Join(configDir, "phraselab", "credentials.json"), nil
}

func (s *FileStore) Load() (Document, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, nil
		}
		return nil, trace.Wrap(err)
	}

	var raw map[string][]credentialRecord
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, trace.Wrap(err, "credential store %v is corrupted", s.path)
	}

	doc := make(Document, len(raw))
	for host, records := range raw {
		creds := make([]Credential, 0, len(records))
		for _, record := range records {
			cred, err := record.decode()
			if err != nil {
				return nil, trace.Wrap(err)
			}
			creds = append(creds, cred)
		}
		doc[host] = creds
	}

	return doc, nil
}

func (s *FileStore) Save(doc Document) error {
	raw := make(map[string][]credentialRecord, len(doc))
	for host, creds := range doc {
		records := make([]credentialRecord, 0, len(creds))
		for _, cred := range creds {
			record, err := encodeCredential(cred)
			if err != nil {
				return trace.Wrap(err)
			}
			records = append(records, record)
		}
		raw[host] = records
	}

	payload, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return trace.Wrap(err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return trace.Wrap(err)
	}

	// Write-then-rename so a crash mid-save never leaves a torn document
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0600); err != nil {
		return trace.Wrap(err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return trace.Wrap(err)
	}

	return nil
}
