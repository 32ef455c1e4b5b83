package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
)

const (
	avatarSize = 250

	// maxAvatarPixels bounds the decoded size of an upload so a small,
	// highly compressed file cannot expand into a huge bitmap.
	maxAvatarPixels = 40_000_000
)

var (
	errAvatarEmpty       = errors.New("avatar is empty")
	errAvatarTooLarge    = errors.New("avatar exceeds size limit")
	errAvatarFormat      = errors.New("avatar must be jpeg or png")
	errAvatarTooManyPixs = errors.New("avatar dimensions are too large")
)

// normalizeAvatar checks that data is a JPEG or PNG of at most maxBytes and
// returns it scaled to avatarSize x avatarSize and encoded as PNG.
func normalizeAvatar(data []byte, maxBytes int64) ([]byte, error) {
	if len(data) == 0 {
		return nil, errAvatarEmpty
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, errAvatarTooLarge
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errAvatarFormat, err)
	}
	if format != "jpeg" && format != "png" {
		return nil, errAvatarFormat
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > maxAvatarPixels {
		return nil, errAvatarTooManyPixs
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errAvatarFormat, err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, avatarSize, avatarSize))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err = png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode avatar: %w", err)
	}

	return buf.Bytes(), nil
}
