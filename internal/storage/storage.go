// Package storage abstracts where uploaded gallery media lives. Paths are
// slash-separated keys relative to the media root, and are the same strings
// recorded in the gallery document.
package storage

import "io"

type Storage interface {
	Save(path string, r io.Reader, contentType string) error
	// Delete is best-effort from the caller's point of view: the gallery
	// document change stands even if the blob removal fails.
	Delete(path string) error
}
