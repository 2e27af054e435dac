// Package storage archives carrier-generated documents in S3.
package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/thcfit/shipping-gateway/config"
)

// ErrEmptyDocument is returned for a document without content.
var ErrEmptyDocument = errors.New("document has no content")

// ObjectPutter is the subset of the S3 client the archive uses.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Document is one base64-encoded file returned by the carrier.
type Document struct {
	// Owner groups the documents of one shipment, usually its tracking number.
	Owner       string
	TypeCode    string
	ImageFormat string
	Content     string
}

// DocumentArchive uploads documents and returns their URLs.
type DocumentArchive struct {
	client        ObjectPutter
	bucket        string
	region        string
	prefix        string
	publicBaseURL string
	now           func() time.Time
}

// NewDocumentArchive builds an archive from cfg. Static keys are used when
// set; otherwise the default AWS credential chain applies.
func NewDocumentArchive(ctx context.Context, cfg config.StorageConfig) (*DocumentArchive, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("S3 bucket is not configured")
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	sdkConfig, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(sdkConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewDocumentArchiveWithClient(client, cfg), nil
}

// NewDocumentArchiveWithClient builds an archive around an existing client.
func NewDocumentArchiveWithClient(client ObjectPutter, cfg config.StorageConfig) *DocumentArchive {
	return &DocumentArchive{
		client:        client,
		bucket:        cfg.Bucket,
		region:        cfg.Region,
		prefix:        strings.Trim(cfg.Prefix, "/"),
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		now:           time.Now,
	}
}

// Store uploads doc and returns the object URL.
func (a *DocumentArchive) Store(ctx context.Context, doc Document) (string, error) {
	if strings.TrimSpace(doc.Content) == "" {
		return "", ErrEmptyDocument
	}
	data, err := base64.StdEncoding.DecodeString(doc.Content)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s document: %w", doc.TypeCode, err)
	}

	key := a.objectKey(doc)
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType(doc.ImageFormat)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload document to S3: %w", err)
	}

	return a.objectURL(key), nil
}

func (a *DocumentArchive) objectKey(doc Document) string {
	owner := strings.TrimSpace(doc.Owner)
	if owner == "" {
		owner = "unassigned"
	}
	typeCode := strings.ToLower(strings.TrimSpace(doc.TypeCode))
	if typeCode == "" {
		typeCode = "document"
	}
	name := typeCode + "-" + uuid.NewString() + "." + extension(doc.ImageFormat)
	return path.Join(a.prefix, a.now().UTC().Format("2006/01/02"), owner, name)
}

func (a *DocumentArchive) objectURL(key string) string {
	if a.publicBaseURL != "" {
		return a.publicBaseURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucket, a.region, key)
}

func extension(format string) string {
	switch strings.ToUpper(strings.TrimSpace(format)) {
	case "PNG":
		return "png"
	case "JPEG", "JPG":
		return "jpg"
	case "GIF":
		return "gif"
	case "ZPL", "EPL", "LP2":
		return strings.ToLower(format)
	default:
		return "pdf"
	}
}

func contentType(format string) string {
	switch extension(format) {
	case "png":
		return "image/png"
	case "jpg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
