package images

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/adboard/internal/logging"
	"github.com/dmitrijs2005/adboard/internal/netx"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}

	uploadPresigned = netx.PutPresigned

	newObjectKey = func(now time.Time, ext string) string {
		return fmt.Sprintf("ads/%d/%02d/%02d/%s%s", now.Year(), now.Month(), now.Day(), uuid.New(), ext)
	}
)

// Presigned PUTs are used right away.
const putExpiry = 15 * time.Minute

// SigV4 presigned URLs cannot outlive a week.
const maxGetExpiry = 7 * 24 * time.Hour

// S3Config holds the settings of the s3 strategy.
type S3Config struct {
	Endpoint    string
	Region      string
	Bucket      string
	AccessKey   string
	SecretKey   string
	PublicURL   string
	URLExpiry   time.Duration
	MaxSize     int64
	Placeholder string
}

// S3 uploads images to a bucket through presigned PUT URLs and returns either
// a public object URL or a presigned GET URL.
type S3 struct {
	cfg     S3Config
	presign *s3.PresignClient
	http    netx.HTTPDoer
	logger  logging.Logger
	now     func() time.Time
}

// NewS3 builds the presign client. No request is made to the endpoint.
func NewS3(ctx context.Context, cfg S3Config, logger logging.Logger) (*S3, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	if cfg.URLExpiry <= 0 || cfg.URLExpiry > maxGetExpiry {
		cfg.URLExpiry = maxGetExpiry
	}

	return &S3{
		cfg:     cfg,
		presign: newS3PresignClient(client),
		http:    &http.Client{Timeout: time.Minute},
		logger:  logger.With("component", "images", "strategy", "s3"),
		now:     time.Now,
	}, nil
}

func (s *S3) Resolve(ctx context.Context, up *Upload) (string, error) {
	if up == nil || len(up.Data) == 0 {
		return s.cfg.Placeholder, nil
	}
	if int64(len(up.Data)) > s.cfg.MaxSize {
		return "", ErrTooLarge
	}
	if !strings.HasPrefix(up.ContentType, "image/") {
		return "", ErrNotImage
	}

	bucket := s.cfg.Bucket
	key := newObjectKey(s.now().UTC(), extension(up))
	contentType := up.ContentType

	req, err := presignPutObject(s.presign, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: &contentType,
	}, s3.WithPresignExpires(putExpiry))
	if err != nil {
		return "", fmt.Errorf("presign put: %w", err)
	}

	if err := uploadPresigned(ctx, s.http, req.URL, contentType, up.Data); err != nil {
		s.logger.Error(ctx, "image upload failed", "key", key, "error", err.Error())
		return "", fmt.Errorf("upload image: %w", err)
	}
	s.logger.Info(ctx, "image uploaded", "key", key, "size", len(up.Data))

	if s.cfg.PublicURL != "" {
		return strings.TrimRight(s.cfg.PublicURL, "/") + "/" + key, nil
	}

	get, err := presignGetObject(s.presign, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.cfg.URLExpiry))
	if err != nil {
		return "", fmt.Errorf("presign get: %w", err)
	}
	return get.URL, nil
}

// extension keeps the uploaded file's extension, falling back to one derived
// from the content type.
func extension(up *Upload) string {
	if ext := strings.ToLower(path.Ext(up.Filename)); ext != "" && len(ext) <= 6 {
		return ext
	}
	if exts, err := mime.ExtensionsByType(up.ContentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}
