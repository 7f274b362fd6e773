package media

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Uploader turns an inline image payload (a data URI, as the web client
// sends it) into a URL the client can fetch later.
type Uploader interface {
	Upload(ctx context.Context, dataURI string) (url string, err error)
}

// DiskUploader stores decoded images under Dir and serves them from
// BaseURL (the HTTP layer mounts Dir at that path).
type DiskUploader struct {
	Dir     string
	BaseURL string
}

func NewDiskUploader(dir, baseURL string) (*DiskUploader, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create upload dir")
	}
	return &DiskUploader{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

var extByMime = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Upload decodes a "data:image/...;base64,..." payload and writes it to disk.
func (u *DiskUploader) Upload(_ context.Context, dataURI string) (string, error) {
	mime, raw, err := splitDataURI(dataURI)
	if err != nil {
		return "", err
	}
	ext, ok := extByMime[mime]
	if !ok {
		return "", errors.Errorf("unsupported image type %q", mime)
	}

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", errors.Wrap(err, "decode image payload")
	}

	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(u.Dir, name), data, 0o644); err != nil {
		return "", errors.Wrap(err, "write image")
	}
	return u.BaseURL + "/" + name, nil
}

func splitDataURI(s string) (mime, payload string, err error) {
	if !strings.HasPrefix(s, "data:") {
		return "", "", errors.New("not a data URI")
	}
	rest := s[len("data:"):]
	sep := strings.Index(rest, ";base64,")
	if sep < 0 {
		return "", "", errors.New("missing base64 payload")
	}
	return rest[:sep], rest[sep+len(";base64,"):], nil
}
