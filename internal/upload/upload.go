// File: internal/upload/upload.go
package upload

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp" // WebP decoder
)

// maxImageEdge bounds stored image dimensions; larger uploads are scaled down.
const maxImageEdge = 1000

// Saver persists multipart uploads under a base directory and hands back the
// public /uploads/... URL for the stored file.
type Saver struct {
	BaseDir string
}

// NewSaver creates a Saver rooted at baseDir.
func NewSaver(baseDir string) *Saver {
	return &Saver{BaseDir: baseDir}
}

// SaveImage decodes an uploaded image, scales it down to maxImageEdge if
// needed and re-encodes it as JPEG. Decoding doubles as the type check: a
// file that is not an image fails here.
func (s *Saver) SaveImage(fh *multipart.FileHeader, subdir, prefix string) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxImageEdge || bounds.Dy() > maxImageEdge {
		img = imaging.Fit(img, maxImageEdge, maxImageEdge, imaging.Lanczos)
	}

	name := fmt.Sprintf("%s-%s.jpg", prefix, uuid.NewString())
	dst, err := s.ensurePath(subdir, name)
	if err != nil {
		return "", err
	}
	if err := imaging.Save(img, dst, imaging.JPEGQuality(90)); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	return publicURL(subdir, name), nil
}

// SavePDF verifies the PDF magic bytes and stores the file unchanged.
func (s *Saver) SavePDF(fh *multipart.FileHeader, subdir, prefix string) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	header := make([]byte, 5)
	if _, err := io.ReadFull(src, header); err != nil || !bytes.Equal(header, []byte("%PDF-")) {
		return "", fmt.Errorf("not a PDF file")
	}

	name := fmt.Sprintf("%s-%s.pdf", prefix, uuid.NewString())
	dst, err := s.ensurePath(subdir, name)
	if err != nil {
		return "", err
	}
	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer out.Close()

	if _, err := out.Write(header); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	if _, err := io.Copy(out, src); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return publicURL(subdir, name), nil
}

// Remove deletes a previously stored file given its public URL. Unknown or
// out-of-tree URLs are ignored.
func (s *Saver) Remove(url string) error {
	rel, ok := relFromURL(url)
	if !ok {
		return nil
	}
	err := os.Remove(filepath.Join(s.BaseDir, rel))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Saver) ensurePath(subdir, name string) (string, error) {
	dir := filepath.Join(s.BaseDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	return filepath.Join(dir, name), nil
}

func publicURL(subdir, name string) string {
	return path.Join("/uploads", subdir, name)
}

func relFromURL(url string) (string, bool) {
	cleaned := path.Clean(url)
	const root = "/uploads/"
	if len(cleaned) <= len(root) || cleaned[:len(root)] != root {
		return "", false
	}
	return cleaned[len(root):], true
}
