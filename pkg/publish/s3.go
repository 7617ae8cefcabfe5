package publish

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/df07/go-lensing-raytracer/pkg/core"
)

// UploadTimeout bounds a single object upload
const UploadTimeout = 30 * time.Second

// Config describes an S3-compatible bucket that render artifacts are published to
type Config struct {
	Bucket    string
	Region    string
	Endpoint  string // Custom endpoint for S3-compatible stores, empty for AWS
	Prefix    string // Key prefix, e.g. "renders/"
	AccessKey string
	SecretKey string
}

// Enabled reports whether publishing is configured
func (c Config) Enabled() bool {
	return c.Bucket != ""
}

// Uploader publishes rendered images to a bucket
type Uploader struct {
	client s3iface.S3API
	config Config
	logger core.Logger
}

// NewUploader creates an uploader backed by a new AWS session.
// Static credentials are used when an access key is configured, otherwise
// the default AWS credential chain applies.
func NewUploader(config Config, logger core.Logger) (*Uploader, error) {
	if !config.Enabled() {
		return nil, fmt.Errorf("publish: no bucket configured")
	}

	awsConfig := &aws.Config{
		Region: aws.String(config.Region),
	}
	if config.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(config.AccessKey, config.SecretKey, "")
	}
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("publish: create session: %w", err)
	}

	return NewUploaderWithClient(s3.New(sess), config, logger), nil
}

// NewUploaderWithClient creates an uploader around an existing S3 client
func NewUploaderWithClient(client s3iface.S3API, config Config, logger core.Logger) *Uploader {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Uploader{client: client, config: config, logger: logger}
}

// Upload stores data under the configured prefix and returns the object key
func (u *Uploader) Upload(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	key := ObjectKey(u.config.Prefix, name)
	size := int64(len(data))
	_, err := u.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.config.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	u.logger.Printf("Uploaded %s to s3://%s (%d bytes)\n", key, u.config.Bucket, size)
	return key, nil
}

// ObjectKey joins a key prefix and object name with exactly one slash
func ObjectKey(prefix, name string) string {
	prefix = strings.Trim(prefix, "/")
	name = strings.TrimLeft(name, "/")
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

// ContentType returns the MIME type used for a rendered artifact name
func ContentType(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".png":
		return "image/png"
	case ".ppm":
		return "image/x-portable-pixmap"
	default:
		return "application/octet-stream"
	}
}
