package media

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/gabriel-vasile/mimetype"
)

// Picker stands in for the device media library: it turns file paths typed
// by the user into pending media files.
type Picker struct {
	open func(name string) (*os.File, error)
}

func NewPicker() *Picker {
	return &Picker{open: os.Open}
}

// Pick classifies every path as image or video by content. An unreadable
// file aborts with common.ErrPermissionDenied, anything that is neither an
// image nor a video with common.ErrUnsupportedMedia.
func (p *Picker) Pick(paths ...string) ([]models.PendingMediaFile, error) {
	picked := make([]models.PendingMediaFile, 0, len(paths))
	for _, path := range paths {
		f, err := p.pickOne(path)
		if err != nil {
			return nil, err
		}
		picked = append(picked, f)
	}
	return picked, nil
}

func (p *Picker) pickOne(path string) (models.PendingMediaFile, error) {
	file, err := p.open(path)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return models.PendingMediaFile{}, fmt.Errorf("%s: %w", path, common.ErrPermissionDenied)
		}
		return models.PendingMediaFile{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	mt, err := mimetype.DetectReader(file)
	if err != nil {
		return models.PendingMediaFile{}, fmt.Errorf("detect %s: %w", path, err)
	}

	var kind models.MediaType
	switch {
	case strings.HasPrefix(mt.String(), "image/"):
		kind = models.MediaImage
	case strings.HasPrefix(mt.String(), "video/"):
		kind = models.MediaVideo
	default:
		return models.PendingMediaFile{}, fmt.Errorf("%s is %s: %w", filepath.Base(path), mt.String(), common.ErrUnsupportedMedia)
	}

	return models.PendingMediaFile{Type: kind, URI: path, Filename: filepath.Base(path)}, nil
}
