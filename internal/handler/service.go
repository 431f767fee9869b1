// Package handler provides the HTTP handlers exposing the directory index
// over a REST API.
package handler

import (
	"errors"
	"net/http"
	"sync"

	"github.com/init-helpful/dirhub/index"
)

// Service serializes access to the shared index. The index itself assumes
// a single owner, so every handler and the watcher callback go through one
// mutex here.
type Service struct {
	mu  sync.Mutex
	idx *index.Index
}

// NewService wraps an index for concurrent HTTP access.
func NewService(idx *index.Index) *Service {
	return &Service{idx: idx}
}

// With runs fn with exclusive access to the index.
func (s *Service) With(fn func(*index.Index) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.idx)
}

// Refresh re-populates the index from disk.
func (s *Service) Refresh() error {
	return s.With(func(x *index.Index) error { return x.Refresh() })
}

// statusFor maps index errors to HTTP status codes: lookup misses to 404,
// caller mistakes to 400, filesystem failures to 500.
func statusFor(err error) int {
	var notFound *index.NotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound
	}
	var validation *index.ValidationError
	if errors.As(err, &validation) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
