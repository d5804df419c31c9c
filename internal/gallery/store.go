// Package gallery persists the public gallery metadata as a single JSON
// document with two ordered collections. Every mutation reads the whole
// document, applies the change and rewrites the file; a process-level mutex
// serializes writers.
package gallery

import (
	"encoding/json"
	"errors"
	"os"
	"sort"
	"sync"
	"time"
)

var ErrNotFound = errors.New("gallery item not found")

type Image struct {
	ID         int       `json:"id"`
	Filename   string    `json:"filename"`
	Path       string    `json:"path"`
	Alt        string    `json:"alt"`
	Order      int       `json:"order"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type Video struct {
	ID            int       `json:"id"`
	Filename      string    `json:"filename"`
	VideoPath     string    `json:"videoPath"`
	ThumbnailPath string    `json:"thumbnailPath"`
	Title         string    `json:"title"`
	Order         int       `json:"order"`
	UploadedAt    time.Time `json:"uploadedAt"`
}

type Document struct {
	Images []Image `json:"images"`
	Videos []Video `json:"videos"`
}

// OrderUpdate is one {id, order} pair of a reorder request.
type OrderUpdate struct {
	ID    int `json:"id" binding:"required"`
	Order int `json:"order" binding:"required"`
}

type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the current document. A missing or empty file reads as an
// empty gallery.
func (s *Store) Load() (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *Store) read() (*Document, error) {
	doc := &Document{Images: []Image{}, Videos: []Video{}}

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return doc, nil
	}

	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, err
	}
	if doc.Images == nil {
		doc.Images = []Image{}
	}
	if doc.Videos == nil {
		doc.Videos = []Video{}
	}
	return doc, nil
}

func (s *Store) write(doc *Document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0644)
}

func nextImageID(images []Image) int {
	max := 0
	for _, img := range images {
		if img.ID > max {
			max = img.ID
		}
	}
	return max + 1
}

func nextVideoID(videos []Video) int {
	max := 0
	for _, v := range videos {
		if v.ID > max {
			max = v.ID
		}
	}
	return max + 1
}

// AddImage assigns the id and display order and appends the image.
func (s *Store) AddImage(img Image) (*Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	img.ID = nextImageID(doc.Images)
	img.Order = len(doc.Images) + 1
	if img.UploadedAt.IsZero() {
		img.UploadedAt = time.Now()
	}
	doc.Images = append(doc.Images, img)

	if err := s.write(doc); err != nil {
		return nil, err
	}
	return &img, nil
}

func (s *Store) AddVideo(v Video) (*Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	v.ID = nextVideoID(doc.Videos)
	v.Order = len(doc.Videos) + 1
	if v.UploadedAt.IsZero() {
		v.UploadedAt = time.Now()
	}
	doc.Videos = append(doc.Videos, v)

	if err := s.write(doc); err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *Store) UpdateImageAlt(id int, alt string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}

	for i := range doc.Images {
		if doc.Images[i].ID == id {
			doc.Images[i].Alt = alt
			return s.write(doc)
		}
	}
	return ErrNotFound
}

func (s *Store) UpdateVideoTitle(id int, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}

	for i := range doc.Videos {
		if doc.Videos[i].ID == id {
			doc.Videos[i].Title = title
			return s.write(doc)
		}
	}
	return ErrNotFound
}

// ReplaceVideoThumbnail swaps the stored thumbnail path and returns the old
// one so the caller can remove the backing file.
func (s *Store) ReplaceVideoThumbnail(id int, thumbnailPath string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return "", err
	}

	for i := range doc.Videos {
		if doc.Videos[i].ID == id {
			old := doc.Videos[i].ThumbnailPath
			doc.Videos[i].ThumbnailPath = thumbnailPath
			if err := s.write(doc); err != nil {
				return "", err
			}
			return old, nil
		}
	}
	return "", ErrNotFound
}

// DeleteImage removes the image and renumbers the remaining display order to
// a dense 1..N sequence. The removed item is returned for file cleanup.
func (s *Store) DeleteImage(id int) (*Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range doc.Images {
		if doc.Images[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrNotFound
	}

	removed := doc.Images[idx]
	doc.Images = append(doc.Images[:idx], doc.Images[idx+1:]...)
	for i := range doc.Images {
		doc.Images[i].Order = i + 1
	}

	if err := s.write(doc); err != nil {
		return nil, err
	}
	return &removed, nil
}

func (s *Store) DeleteVideo(id int) (*Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range doc.Videos {
		if doc.Videos[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrNotFound
	}

	removed := doc.Videos[idx]
	doc.Videos = append(doc.Videos[:idx], doc.Videos[idx+1:]...)
	for i := range doc.Videos {
		doc.Videos[i].Order = i + 1
	}

	if err := s.write(doc); err != nil {
		return nil, err
	}
	return &removed, nil
}

// ReorderImages applies the given {id, order} pairs, then stably sorts the
// collection by the order field. Unknown ids are ignored.
func (s *Store) ReorderImages(updates []OrderUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}

	for _, u := range updates {
		for i := range doc.Images {
			if doc.Images[i].ID == u.ID {
				doc.Images[i].Order = u.Order
				break
			}
		}
	}

	sort.SliceStable(doc.Images, func(i, j int) bool {
		return doc.Images[i].Order < doc.Images[j].Order
	})

	return s.write(doc)
}

func (s *Store) ReorderVideos(updates []OrderUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}

	for _, u := range updates {
		for i := range doc.Videos {
			if doc.Videos[i].ID == u.ID {
				doc.Videos[i].Order = u.Order
				break
			}
		}
	}

	sort.SliceStable(doc.Videos, func(i, j int) bool {
		return doc.Videos[i].Order < doc.Videos[j].Order
	})

	return s.write(doc)
}
