package model

import "errors"

// UploadResult is a stored blob's public URL and object key.
type UploadResult struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// Upload constraints
const (
	MaxImageSizeBytes  = 10 * 1024 * 1024
	MaxAvatarSizeBytes = 5 * 1024 * 1024

	AvatarWidth  = 200
	AvatarHeight = 200

	AvatarFolder = "avatars"
	CoverFolder  = "covers"
	PhotoFolder  = "photos"
	PostFolder   = "posts"

	ContentTypeJPEG = "image/jpeg"

	AvatarExt          = ".jpg"
	AvatarCacheControl = "public, max-age=31536000, immutable"
	MediaCacheControl  = "public, max-age=86400"
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// IsAllowedImageType reports whether the content type is an accepted upload format.
func IsAllowedImageType(contentType string) bool {
	_, ok := allowedImageTypes[contentType]
	return ok
}

// ImageExt returns the canonical file extension for an accepted content type.
func ImageExt(contentType string) string {
	return allowedImageTypes[contentType]
}

var (
	// ErrFileTooLarge is returned when an upload exceeds its size limit
	ErrFileTooLarge = errors.New("file too large")

	// ErrInvalidImageType is returned for unsupported image content types
	ErrInvalidImageType = errors.New("unsupported image type")
)
