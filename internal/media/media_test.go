package media

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
)

func pngOf(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func TestAvatarScalesDownKeepingAspect(t *testing.T) {
	out, err := Avatar(pngOf(t, 1024, 512))
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 256, cfg.Width)
	assert.Equal(t, 128, cfg.Height)
}

func TestAvatarKeepsSmallImages(t *testing.T) {
	out, err := Avatar(pngOf(t, 64, 100))
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 100, cfg.Height)
}

func TestAvatarRejectsGarbage(t *testing.T) {
	_, err := Avatar(strings.NewReader("not an image"))
	assert.True(t, apperr.HasCode(err, "avatar_unsupported_format"))
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestFit(t *testing.T) {
	cases := []struct{ w, h, ew, eh int }{
		{256, 256, 256, 256},
		{512, 1024, 128, 256},
		{3000, 2, 256, 1},
	}
	for _, c := range cases {
		w, h := fit(c.w, c.h, 256)
		assert.Equal(t, c.ew, w)
		assert.Equal(t, c.eh, h)
	}
}

type fakePutter struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.in = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestPutAvatar(t *testing.T) {
	fp := &fakePutter{}
	u := &S3Uploader{client: fp, bucket: "avatars", publicURL: "https://cdn.example.com/avatars"}

	url, err := u.PutAvatar(context.Background(), "r1", "u1", []byte("webp"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/avatars/restaurants/r1/users/u1.webp", url)
	assert.Equal(t, "avatars", aws.ToString(fp.in.Bucket))
	assert.Equal(t, "image/webp", aws.ToString(fp.in.ContentType))
	assert.Equal(t, []byte("webp"), fp.body)

	_, err = u.PutAvatar(context.Background(), "", "u1", nil)
	assert.True(t, apperr.HasCode(err, "scope_required"))

	fp.err = errors.New("denied")
	_, err = u.PutAvatar(context.Background(), "r1", "u1", nil)
	assert.True(t, apperr.HasCode(err, "avatar_upload_failed"))
}

func TestNewS3UploaderPublicURL(t *testing.T) {
	u := NewS3Uploader(S3Options{Endpoint: "http://localhost:9000/", Region: "us-east-1", Bucket: "floor"})
	assert.Equal(t, "http://localhost:9000/floor", u.publicURL)
}
