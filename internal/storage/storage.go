package storage

import "io"

// Storage persists creative assets. Keys are slash-separated relative
// paths chosen by the caller.
type Storage interface {
	// Save writes the content under key and returns the public URL.
	Save(key string, content io.Reader) (string, error)
	// Open returns a reader for the stored content.
	Open(key string) (io.ReadCloser, error)
	// Delete removes the stored content. Deleting a missing key is not
	// an error.
	Delete(key string) error
}

type Config struct {
	BasePath string
	BaseURL  string
}

// NewStorage builds the configured backend. Only the local-disk
// backend is wired at the moment.
func NewStorage(cfg Config) (Storage, error) {
	return NewLocalStorage(cfg.BasePath, cfg.BaseURL)
}
