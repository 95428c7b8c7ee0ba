package filemgr

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"fjwuems/utils"
)

type EntityType string
type PictureType string

const (
	EntityUser  EntityType = "user"
	EntityEvent EntityType = "event"

	PicPoster PictureType = "poster"
	PicLogo   PictureType = "logo"
)

var (
	AllowedExtensions = map[PictureType][]string{
		PicPoster: {".jpg", ".jpeg", ".png", ".webp"},
		PicLogo:   {".jpg", ".jpeg", ".png", ".webp"},
	}

	PictureSubfolders = map[PictureType]string{
		PicPoster: "poster",
		PicLogo:   "logo",
	}
)

const thumbWidth = 300

// ResolvePath gives the storage directory for an entity/picture pair,
// e.g. static/uploads/event/poster.
func ResolvePath(entity EntityType, picType PictureType) string {
	subfolder := PictureSubfolders[picType]
	if subfolder == "" {
		subfolder = "misc"
	}
	return filepath.Join("static", "uploads", strings.ToLower(string(entity)), subfolder)
}

func isExtensionAllowed(ext string, picType PictureType) bool {
	for _, a := range AllowedExtensions[picType] {
		if ext == a {
			return true
		}
	}
	return false
}

// SaveFormFile stores the named multipart file and returns the public
// path it is served from, or "" when the field is absent.
func SaveFormFile(form *multipart.Form, field string, entity EntityType, picType PictureType) (string, error) {
	if form == nil || len(form.File[field]) == 0 {
		return "", nil
	}
	header := form.File[field][0]

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !isExtensionAllowed(ext, picType) {
		return "", fmt.Errorf("unsupported file extension %q", ext)
	}

	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	// Sniff the real content type, the extension alone is not trusted.
	buff := make([]byte, 512)
	n, err := file.Read(buff)
	if err != nil && err != io.EOF {
		return "", err
	}
	if !strings.HasPrefix(http.DetectContentType(buff[:n]), "image/") {
		return "", fmt.Errorf("file %q is not an image", header.Filename)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	dir := ResolvePath(entity, picType)
	if err := utils.EnsureDir(dir); err != nil {
		return "", err
	}

	fileName := uuid.New().String() + ext
	dest := filepath.Join(dir, fileName)
	out, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		return "", err
	}

	if err := CreateThumb(dest); err != nil {
		// Thumbnail failure is not fatal; the original is already stored.
		log.Printf("thumbnail for %s failed: %v", dest, err)
	}

	return "/" + filepath.ToSlash(dest), nil
}

// CreateThumb writes a width-bound thumbnail next to the original with a
// _thumb suffix, preserving aspect ratio.
func CreateThumb(imagePath string) error {
	img, err := imaging.Open(imagePath)
	if err != nil {
		return err
	}
	thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)

	ext := filepath.Ext(imagePath)
	thumbPath := strings.TrimSuffix(imagePath, ext) + "_thumb.jpg"
	return imaging.Save(thumb, thumbPath, imaging.JPEGQuality(85))
}
