package usecase

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velvetroom/internal/gallery"
	"velvetroom/internal/storage"
)

func newGalleryAdmin(t *testing.T) (GalleryAdminUseCase, string) {
	t.Helper()

	dir := t.TempDir()
	store := gallery.NewStore(filepath.Join(dir, "gallery-data.json"))
	files := storage.NewLocal(dir)
	return NewGalleryAdminUseCase(store, files, newTestConfig(), testLogger()), dir
}

func pngUpload(content string) Upload {
	return Upload{
		File:        strings.NewReader(content),
		Filename:    "original.png",
		ContentType: "image/png",
		Size:        int64(len(content)),
	}
}

func mp4Upload(content string) Upload {
	return Upload{
		File:        strings.NewReader(content),
		Filename:    "clip.mp4",
		ContentType: "video/mp4",
		Size:        int64(len(content)),
	}
}

func TestUploadImage(t *testing.T) {
	uc, dir := newGalleryAdmin(t)

	img, err := uc.UploadImage(pngUpload("fake png bytes"), "  backstage  ")
	require.NoError(t, err)
	assert.Equal(t, 1, img.ID)
	assert.Equal(t, 1, img.Order)
	assert.Equal(t, "backstage", img.Alt)
	assert.True(t, strings.HasPrefix(img.Filename, "img_"))
	assert.True(t, strings.HasSuffix(img.Filename, ".png"))

	saved, err := os.ReadFile(filepath.Join(dir, img.Path))
	require.NoError(t, err)
	assert.Equal(t, "fake png bytes", string(saved))
}

func TestUploadImage_Rejected(t *testing.T) {
	uc, _ := newGalleryAdmin(t)

	var verr *ValidationError

	_, err := uc.UploadImage(Upload{
		File:        strings.NewReader("nope"),
		Filename:    "doc.pdf",
		ContentType: "application/pdf",
		Size:        4,
	}, "")
	assert.ErrorAs(t, err, &verr)

	big := pngUpload("x")
	big.Size = 200 * 1024 * 1024
	_, err = uc.UploadImage(big, "")
	assert.ErrorAs(t, err, &verr)

	empty := pngUpload("")
	_, err = uc.UploadImage(empty, "")
	assert.ErrorAs(t, err, &verr)
}

func TestUploadVideo(t *testing.T) {
	uc, dir := newGalleryAdmin(t)

	v, err := uc.UploadVideo(mp4Upload("fake mp4"), pngUpload("fake thumb"), "Teaser")
	require.NoError(t, err)
	assert.Equal(t, 1, v.ID)
	assert.Equal(t, "Teaser", v.Title)
	assert.True(t, strings.Contains(v.ThumbnailPath, "_thumb"))

	_, err = os.Stat(filepath.Join(dir, v.VideoPath))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, v.ThumbnailPath))
	assert.NoError(t, err)
}

func TestUploadVideo_BadThumbnailCleansUp(t *testing.T) {
	uc, dir := newGalleryAdmin(t)

	_, err := uc.UploadVideo(mp4Upload("fake mp4"), Upload{
		File:        strings.NewReader("nope"),
		Filename:    "thumb.txt",
		ContentType: "text/plain",
		Size:        4,
	}, "Teaser")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	entries, err := os.ReadDir(filepath.Join(dir, "uploads"))
	if err == nil {
		assert.Empty(t, entries)
	}
}

func TestDeleteImage_RemovesFile(t *testing.T) {
	uc, dir := newGalleryAdmin(t)

	img, err := uc.UploadImage(pngUpload("bytes"), "")
	require.NoError(t, err)

	require.NoError(t, uc.DeleteImage(img.ID))

	_, err = os.Stat(filepath.Join(dir, img.Path))
	assert.True(t, os.IsNotExist(err))

	var verr *ValidationError
	assert.ErrorAs(t, uc.DeleteImage(img.ID), &verr)
}

func TestDeleteVideo_RemovesFiles(t *testing.T) {
	uc, dir := newGalleryAdmin(t)

	v, err := uc.UploadVideo(mp4Upload("fake mp4"), pngUpload("thumb"), "")
	require.NoError(t, err)

	require.NoError(t, uc.DeleteVideo(v.ID))

	_, err = os.Stat(filepath.Join(dir, v.VideoPath))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, v.ThumbnailPath))
	assert.True(t, os.IsNotExist(err))
}

func TestReplaceVideoThumbnail(t *testing.T) {
	uc, dir := newGalleryAdmin(t)

	v, err := uc.UploadVideo(mp4Upload("fake mp4"), pngUpload("old thumb"), "")
	require.NoError(t, err)
	oldThumb := v.ThumbnailPath

	updated, err := uc.ReplaceVideoThumbnail(v.ID, pngUpload("new thumb"))
	require.NoError(t, err)
	assert.NotEqual(t, oldThumb, updated.ThumbnailPath)

	_, err = os.Stat(filepath.Join(dir, oldThumb))
	assert.True(t, os.IsNotExist(err))

	saved, err := os.ReadFile(filepath.Join(dir, updated.ThumbnailPath))
	require.NoError(t, err)
	assert.Equal(t, "new thumb", string(saved))
}

func TestReorderImages(t *testing.T) {
	uc, _ := newGalleryAdmin(t)

	first, err := uc.UploadImage(pngUpload("one"), "one")
	require.NoError(t, err)
	second, err := uc.UploadImage(pngUpload("two"), "two")
	require.NoError(t, err)

	require.NoError(t, uc.ReorderImages([]gallery.OrderUpdate{
		{ID: second.ID, Order: 1},
		{ID: first.ID, Order: 2},
	}))

	doc, err := uc.List()
	require.NoError(t, err)
	require.Len(t, doc.Images, 2)
	assert.Equal(t, second.ID, doc.Images[0].ID)

	var verr *ValidationError
	assert.ErrorAs(t, uc.ReorderImages(nil), &verr)
}

func TestUpdateImageAlt(t *testing.T) {
	uc, _ := newGalleryAdmin(t)

	img, err := uc.UploadImage(pngUpload("one"), "old")
	require.NoError(t, err)

	require.NoError(t, uc.UpdateImageAlt(img.ID, "new alt"))

	doc, err := uc.List()
	require.NoError(t, err)
	assert.Equal(t, "new alt", doc.Images[0].Alt)

	var verr *ValidationError
	assert.ErrorAs(t, uc.UpdateImageAlt(999, "x"), &verr)
}
