// Package archive uploads rendered reports to S3-compatible object storage
// such as Cloudflare R2.
package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aussiebroadwan/registrar/internal/registrar/domain"
	"github.com/aussiebroadwan/registrar/pkg/idx"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const contentTypePDF = "application/pdf"

// Config selects the R2 bucket reports are archived to.
type Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string

	// PublicBaseURL is optional; without it uploads return no URL.
	PublicBaseURL string

	// Endpoint overrides the R2 endpoint derived from AccountID.
	Endpoint string
}

// Enabled reports whether enough is configured to upload.
func (c Config) Enabled() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != "" && c.Bucket != "" &&
		(c.AccountID != "" || c.Endpoint != "")
}

func (c Config) endpoint() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", c.AccountID)
}

// PutObjectAPI is the part of the S3 client the uploader needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Uploader puts rendered reports into the bucket under Key.
type Uploader struct {
	Client        PutObjectAPI
	Bucket        string
	PublicBaseURL string
	Now           func() time.Time
	NewID         func() string
}

// New builds an Uploader on an S3 client pointed at the R2 endpoint with
// static credentials.
func New(ctx context.Context, cfg Config) (*Uploader, error) {
	if !cfg.Enabled() {
		return nil, errors.New("archive: account, credentials and bucket are required")
	}

	sdkCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("archive: load sdk config: %w", err)
	}

	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.endpoint())
		o.UsePathStyle = true
	})
	return &Uploader{
		Client:        client,
		Bucket:        cfg.Bucket,
		PublicBaseURL: cfg.PublicBaseURL,
		Now:           time.Now,
		NewID:         func() string { return idx.New().Lower() },
	}, nil
}

// Key returns the object key of a report: reports/<category>/<date>-<id>.pdf.
func Key(category string, at time.Time, id string) string {
	return fmt.Sprintf("reports/%s/%s-%s.pdf", category, at.UTC().Format("2006-01-02"), id)
}

// Upload stores pdf under a fresh key for category.
func (u *Uploader) Upload(ctx context.Context, category string, pdf []byte) (domain.ArchivedReport, error) {
	key := Key(category, u.Now(), u.NewID())
	_, err := u.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(pdf),
		ContentType:   aws.String(contentTypePDF),
		ContentLength: aws.Int64(int64(len(pdf))),
	})
	if err != nil {
		return domain.ArchivedReport{}, fmt.Errorf("put object %s: %w", key, err)
	}
	return domain.ArchivedReport{Key: key, URL: PublicURL(u.PublicBaseURL, key)}, nil
}

// PublicURL joins a public base URL and an object key. An empty or
// unparsable base yields "".
func PublicURL(base, key string) string {
	if base == "" || key == "" {
		return ""
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" {
		return ""
	}
	return u.JoinPath(strings.TrimPrefix(key, "/")).String()
}
