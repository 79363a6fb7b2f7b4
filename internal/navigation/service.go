// Package navigation steps through the images that share a directory with
// the current one.
package navigation

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"pixview/internal/domain"
)

// Lister returns the ordered image paths of a directory
type Lister interface {
	List(dir string) ([]string, error)
}

// Service finds the neighbours of an image. The directory is listed again on
// every call, so files added or removed meanwhile are picked up.
type Service struct {
	lister Lister
	log    *zap.Logger
}

// NewService creates a new navigation service
func NewService(lister Lister, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{lister: lister, log: log}
}

// Next returns the image after current. ok is false at the last image.
func (s *Service) Next(current string) (string, bool, error) {
	return s.step(current, 1)
}

// Previous returns the image before current. ok is false at the first image.
func (s *Service) Previous(current string) (string, bool, error) {
	return s.step(current, -1)
}

// Adjacent reports whether current has a previous and a next image
func (s *Service) Adjacent(current string) (hasPrev, hasNext bool, err error) {
	paths, idx, err := s.locate(current)
	if err != nil {
		return false, false, err
	}
	return idx > 0, idx < len(paths)-1, nil
}

func (s *Service) step(current string, delta int) (string, bool, error) {
	paths, idx, err := s.locate(current)
	if err != nil {
		return "", false, err
	}

	target := idx + delta
	if target < 0 || target >= len(paths) {
		s.log.Debug("no adjacent image", zap.String("path", current), zap.Int("delta", delta))
		return "", false, nil
	}
	return paths[target], true, nil
}

// locate lists the directory of current and finds current in it
func (s *Service) locate(current string) ([]string, int, error) {
	current = filepath.Clean(current)
	paths, err := s.lister.List(filepath.Dir(current))
	if err != nil {
		return nil, 0, err
	}

	for i, p := range paths {
		if filepath.Clean(p) == current {
			return paths, i, nil
		}
	}
	return nil, 0, fmt.Errorf("%s: %w", current, domain.ErrNotFound)
}
