package usecase

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"velvetroom/internal/gallery"
	"velvetroom/internal/storage"
	"velvetroom/pkg/config"
	"velvetroom/pkg/logger"
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

var videoExtensions = map[string]string{
	"video/mp4":       ".mp4",
	"video/webm":      ".webm",
	"video/quicktime": ".mov",
}

// Upload carries one multipart file part into the use case layer.
type Upload struct {
	File        io.Reader
	Filename    string
	ContentType string
	Size        int64
}

type GalleryAdminUseCase interface {
	List() (*gallery.Document, error)
	UploadImage(up Upload, alt string) (*gallery.Image, error)
	UploadVideo(video Upload, thumbnail Upload, title string) (*gallery.Video, error)
	UpdateImageAlt(id int, alt string) error
	UpdateVideoTitle(id int, title string) error
	ReplaceVideoThumbnail(id int, thumbnail Upload) (*gallery.Video, error)
	DeleteImage(id int) error
	DeleteVideo(id int) error
	ReorderImages(updates []gallery.OrderUpdate) error
	ReorderVideos(updates []gallery.OrderUpdate) error
}

type galleryAdminUseCase struct {
	store   *gallery.Store
	files   storage.Storage
	cfg     *config.Config
	logger  *logger.Logger
	nowFunc func() time.Time
}

func NewGalleryAdminUseCase(store *gallery.Store, files storage.Storage, cfg *config.Config, logger *logger.Logger) GalleryAdminUseCase {
	return &galleryAdminUseCase{
		store:   store,
		files:   files,
		cfg:     cfg,
		logger:  logger,
		nowFunc: time.Now,
	}
}

func (uc *galleryAdminUseCase) List() (*gallery.Document, error) {
	return uc.store.Load()
}

func (uc *galleryAdminUseCase) validateUpload(up Upload, allowed map[string]string) (string, error) {
	ext, ok := allowed[up.ContentType]
	if !ok {
		return "", invalid(fmt.Sprintf("unsupported file type %q", up.ContentType))
	}
	if up.Size <= 0 {
		return "", invalid("empty file")
	}
	if up.Size > uc.cfg.MaxUploadBytes {
		return "", invalid("file too large")
	}
	return ext, nil
}

func (uc *galleryAdminUseCase) UploadImage(up Upload, alt string) (*gallery.Image, error) {
	ext, err := uc.validateUpload(up, imageExtensions)
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("img_%d_%s%s", uc.nowFunc().Unix(), uuid.New().String(), ext)
	path := filepath.ToSlash(filepath.Join(uc.cfg.ImageDir, filename))

	if err := uc.files.Save(path, up.File, up.ContentType); err != nil {
		return nil, err
	}

	img, err := uc.store.AddImage(gallery.Image{
		Filename: filename,
		Path:     path,
		Alt:      strings.TrimSpace(alt),
	})
	if err != nil {
		uc.files.Delete(path)
		return nil, err
	}

	uc.logger.Info("Gallery image %d uploaded (%s)", img.ID, filename)
	return img, nil
}

func (uc *galleryAdminUseCase) UploadVideo(video Upload, thumbnail Upload, title string) (*gallery.Video, error) {
	videoExt, err := uc.validateUpload(video, videoExtensions)
	if err != nil {
		return nil, err
	}
	thumbExt, err := uc.validateUpload(thumbnail, imageExtensions)
	if err != nil {
		return nil, err
	}

	base := fmt.Sprintf("video_%d_%s", uc.nowFunc().Unix(), uuid.New().String())
	videoFilename := base + videoExt
	videoPath := filepath.ToSlash(filepath.Join(uc.cfg.VideoDir, videoFilename))
	thumbPath := filepath.ToSlash(filepath.Join(uc.cfg.VideoDir, base+"_thumb"+thumbExt))

	if err := uc.files.Save(videoPath, video.File, video.ContentType); err != nil {
		return nil, err
	}
	if err := uc.files.Save(thumbPath, thumbnail.File, thumbnail.ContentType); err != nil {
		uc.files.Delete(videoPath)
		return nil, err
	}

	v, err := uc.store.AddVideo(gallery.Video{
		Filename:      videoFilename,
		VideoPath:     videoPath,
		ThumbnailPath: thumbPath,
		Title:         strings.TrimSpace(title),
	})
	if err != nil {
		uc.files.Delete(videoPath)
		uc.files.Delete(thumbPath)
		return nil, err
	}

	uc.logger.Info("Gallery video %d uploaded (%s)", v.ID, videoFilename)
	return v, nil
}

func (uc *galleryAdminUseCase) UpdateImageAlt(id int, alt string) error {
	err := uc.store.UpdateImageAlt(id, strings.TrimSpace(alt))
	if errors.Is(err, gallery.ErrNotFound) {
		return invalid("image not found")
	}
	return err
}

func (uc *galleryAdminUseCase) UpdateVideoTitle(id int, title string) error {
	err := uc.store.UpdateVideoTitle(id, strings.TrimSpace(title))
	if errors.Is(err, gallery.ErrNotFound) {
		return invalid("video not found")
	}
	return err
}

func (uc *galleryAdminUseCase) ReplaceVideoThumbnail(id int, thumbnail Upload) (*gallery.Video, error) {
	thumbExt, err := uc.validateUpload(thumbnail, imageExtensions)
	if err != nil {
		return nil, err
	}

	newPath := filepath.ToSlash(filepath.Join(uc.cfg.VideoDir,
		fmt.Sprintf("thumb_%d_%s%s", uc.nowFunc().Unix(), uuid.New().String(), thumbExt)))

	if err := uc.files.Save(newPath, thumbnail.File, thumbnail.ContentType); err != nil {
		return nil, err
	}

	oldPath, err := uc.store.ReplaceVideoThumbnail(id, newPath)
	if err != nil {
		uc.files.Delete(newPath)
		if errors.Is(err, gallery.ErrNotFound) {
			return nil, invalid("video not found")
		}
		return nil, err
	}

	if oldPath != "" {
		if err := uc.files.Delete(oldPath); err != nil {
			uc.logger.Warn("Failed to remove old thumbnail %s: %v", oldPath, err)
		}
	}

	doc, err := uc.store.Load()
	if err != nil {
		return nil, err
	}
	for i := range doc.Videos {
		if doc.Videos[i].ID == id {
			return &doc.Videos[i], nil
		}
	}
	return nil, invalid("video not found")
}

func (uc *galleryAdminUseCase) DeleteImage(id int) error {
	removed, err := uc.store.DeleteImage(id)
	if err != nil {
		if errors.Is(err, gallery.ErrNotFound) {
			return invalid("image not found")
		}
		return err
	}

	if err := uc.files.Delete(removed.Path); err != nil {
		uc.logger.Warn("Failed to remove image file %s: %v", removed.Path, err)
	}
	uc.logger.Info("Gallery image %d deleted", id)
	return nil
}

func (uc *galleryAdminUseCase) DeleteVideo(id int) error {
	removed, err := uc.store.DeleteVideo(id)
	if err != nil {
		if errors.Is(err, gallery.ErrNotFound) {
			return invalid("video not found")
		}
		return err
	}

	if err := uc.files.Delete(removed.VideoPath); err != nil {
		uc.logger.Warn("Failed to remove video file %s: %v", removed.VideoPath, err)
	}
	if removed.ThumbnailPath != "" {
		if err := uc.files.Delete(removed.ThumbnailPath); err != nil {
			uc.logger.Warn("Failed to remove thumbnail %s: %v", removed.ThumbnailPath, err)
		}
	}
	uc.logger.Info("Gallery video %d deleted", id)
	return nil
}

func (uc *galleryAdminUseCase) ReorderImages(updates []gallery.OrderUpdate) error {
	if len(updates) == 0 {
		return invalid("no order updates given")
	}
	return uc.store.ReorderImages(updates)
}

func (uc *galleryAdminUseCase) ReorderVideos(updates []gallery.OrderUpdate) error {
	if len(updates) == 0 {
		return invalid("no order updates given")
	}
	return uc.store.ReorderVideos(updates)
}
