package screens

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"net/http"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/dmitrijs2005/gophnotes/internal/netx"
)

// DefaultImageHeight is used until an image's natural size is known.
const DefaultImageHeight = 200

type Size struct {
	Width  int
	Height int
}

// DisplayHeight scales natural to containerWidth keeping the aspect ratio.
func DisplayHeight(natural Size, containerWidth int) int {
	if natural.Width <= 0 || natural.Height <= 0 || containerWidth <= 0 {
		return DefaultImageHeight
	}
	return (natural.Height*containerWidth + natural.Width/2) / natural.Width
}

// HTTPImageProber downloads an image and reads its dimensions from the
// header.
type HTTPImageProber struct {
	Client *http.Client
}

func (p HTTPImageProber) Probe(ctx context.Context, url string) (Size, error) {
	data, err := netx.Fetch(ctx, p.Client, url)
	if err != nil {
		return Size{}, err
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Size{}, fmt.Errorf("decode %s: %w", url, err)
	}
	if cfg.Width == 0 {
		return Size{}, fmt.Errorf("%s image %s has zero width", format, url)
	}
	return Size{Width: cfg.Width, Height: cfg.Height}, nil
}
