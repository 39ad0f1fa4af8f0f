// Package media turns uploaded staff avatars into small webp images and
// stores them in an S3-compatible bucket.
package media

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
)

const (
	AvatarSide    = 256
	AvatarQuality = 80
	maxUpload     = 5 << 20
)

// Avatar decodes a jpeg, png or webp upload, scales it down to fit
// AvatarSide x AvatarSide keeping the aspect ratio and re-encodes it as
// webp. Smaller images are never enlarged.
func Avatar(r io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(r, maxUpload+1))
	if err != nil {
		return nil, apperr.Remote("avatar_read_failed", err)
	}
	if len(raw) > maxUpload {
		return nil, apperr.Validation("avatar_too_large")
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "avatar_unsupported_format", err)
	}

	w, h := fit(src.Bounds().Dx(), src.Bounds().Dy(), AvatarSide)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, dst, &webp.Options{Quality: AvatarQuality}); err != nil {
		return nil, apperr.Remote("avatar_encode_failed", err)
	}
	return buf.Bytes(), nil
}

func fit(w, h, side int) (int, int) {
	if w <= side && h <= side {
		return w, h
	}
	if w >= h {
		return side, max(1, h*side/w)
	}
	return max(1, w*side/h), side
}
