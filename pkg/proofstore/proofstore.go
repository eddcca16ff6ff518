package proofstore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxProofSize caps proof uploads at 10 MB.
const maxProofSize = 10 << 20

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
}

var (
	ErrTooLarge         = errors.New("proof file exceeds the maximum allowed size")
	ErrUnsupportedType  = errors.New("proof file type is not supported")
	ErrReferenceInvalid = errors.New("proof reference is invalid")
)

// Store keeps proof-of-payment files on local disk, partitioned per
// clinic. A proof must be fully written before the payment that cites it
// is recorded; callers treat a store failure as fatal to the settlement.
type Store struct {
	basePath string
}

// NewStore creates a proof store rooted at basePath
func NewStore(basePath string) (*Store, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("proof store: %w", err)
	}
	return &Store{basePath: basePath}, nil
}

// Save writes a proof file and returns its reference. The reference is
// what gets stored on the payment record.
func (s *Store) Save(clinicID uuid.UUID, filename string, size int64, r io.Reader) (string, error) {
	if size > maxProofSize {
		return "", ErrTooLarge
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedType
	}

	ref := fmt.Sprintf("%s/%d-%s%s", clinicID, time.Now().Unix(), uuid.New().String()[:8], ext)
	dest := filepath.Join(s.basePath, filepath.FromSlash(ref))

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("proof store: %w", err)
	}

	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("proof store: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, io.LimitReader(r, maxProofSize)); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("proof store: %w", err)
	}
	return ref, nil
}

// Open returns a reader for a stored proof
func (s *Store) Open(ref string) (io.ReadCloser, error) {
	path, err := s.resolve(ref)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrReferenceInvalid
		}
		return nil, fmt.Errorf("proof store: %w", err)
	}
	return f, nil
}

// Delete removes a stored proof
func (s *Store) Delete(ref string) error {
	path, err := s.resolve(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("proof store: %w", err)
	}
	return nil
}

// resolve maps a reference to an on-disk path, rejecting anything that
// escapes the store root.
func (s *Store) resolve(ref string) (string, error) {
	if ref == "" || strings.Contains(ref, "..") {
		return "", ErrReferenceInvalid
	}
	path := filepath.Join(s.basePath, filepath.FromSlash(ref))
	rel, err := filepath.Rel(s.basePath, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", ErrReferenceInvalid
	}
	return path, nil
}
