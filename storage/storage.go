// Package storage holds the image-persistence collaborators. The service
// layer only sees ImageStore; the concrete backend is picked in main.go.
package storage

import "context"

// ImageStore persists an image payload under a name and returns the public
// reference that goes into the recipe row.
type ImageStore interface {
	Save(ctx context.Context, name string, data []byte, contentType string) (string, error)
}
