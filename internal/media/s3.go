package media

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
)

type putter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Options struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	// PublicURL prefixes object keys in returned URLs. Defaults to
	// <endpoint>/<bucket>.
	PublicURL string
}

type S3Uploader struct {
	client    putter
	bucket    string
	publicURL string
}

func NewS3Uploader(opts S3Options) *S3Uploader {
	cfg := aws.Config{
		Region:      opts.Region,
		Credentials: credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	public := opts.PublicURL
	if public == "" {
		public = strings.TrimRight(opts.Endpoint, "/") + "/" + opts.Bucket
	}

	return &S3Uploader{client: client, bucket: opts.Bucket, publicURL: strings.TrimRight(public, "/")}
}

func AvatarKey(restaurantID, userID string) string {
	return fmt.Sprintf("restaurants/%s/users/%s.webp", restaurantID, userID)
}

// PutAvatar stores an encoded avatar and returns its public URL.
func (u *S3Uploader) PutAvatar(ctx context.Context, restaurantID, userID string, data []byte) (string, error) {
	if restaurantID == "" || userID == "" {
		return "", apperr.Validation("scope_required")
	}

	key := AvatarKey(restaurantID, userID)
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(u.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String("image/webp"),
		CacheControl: aws.String("public, max-age=86400"),
	})
	if err != nil {
		return "", apperr.Remote("avatar_upload_failed", err)
	}

	return u.publicURL + "/" + key, nil
}
