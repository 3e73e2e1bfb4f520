package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"roomrate/internal/app/policies"
)

var (
	ErrNotConfigured = errors.New("s3: report archive is not configured")
	ErrEmptyKey      = errors.New("s3: object key is required")
)

const defaultLinkTTL = 24 * time.Hour

type Options struct {
	Endpoint       string
	PublicEndpoint string
	AccessKey      string
	SecretKey      string
	Bucket         string
	UseSSL         bool
	LinkTTL        time.Duration
}

// Archive stores exported reports in a private bucket and hands out
// presigned download links.
type Archive struct {
	bucket         string
	publicEndpoint *url.URL
	linkTTL        time.Duration
	client         *minio.Client
	logger         *slog.Logger
	bucketInitOnce sync.Once
	bucketInitErr  error
}

func NewArchive(opts Options, logger *slog.Logger) (*Archive, error) {
	endpoint := strings.TrimSpace(opts.Endpoint)
	if endpoint == "" {
		return nil, errors.New("s3: endpoint is required")
	}
	bucket := strings.TrimSpace(opts.Bucket)
	if bucket == "" {
		return nil, errors.New("s3: bucket is required")
	}
	client, err := minio.New(hostOf(endpoint), &minio.Options{
		Creds:  credentials.NewStaticV4(strings.TrimSpace(opts.AccessKey), strings.TrimSpace(opts.SecretKey), ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("s3: create client: %w", err)
	}
	a := &Archive{bucket: bucket, client: client, logger: logger, linkTTL: opts.LinkTTL}
	if a.linkTTL <= 0 {
		a.linkTTL = defaultLinkTTL
	}
	if public := strings.TrimSpace(opts.PublicEndpoint); public != "" {
		parsed, err := url.Parse(public)
		if err != nil || parsed.Host == "" {
			return nil, fmt.Errorf("s3: invalid public endpoint %q", public)
		}
		a.publicEndpoint = parsed
	}
	return a, nil
}

func (a *Archive) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	if body == nil {
		return "", errors.New("s3: body is required")
	}
	key = strings.Trim(strings.TrimSpace(key), "/")
	if key == "" {
		return "", ErrEmptyKey
	}
	if err := a.ensureBucket(ctx); err != nil {
		return "", err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if size <= 0 {
		size = -1
	}
	info, err := a.client.PutObject(ctx, a.bucket, key, body, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("s3: put object: %w", err)
	}
	link, err := a.client.PresignedGetObject(ctx, a.bucket, key, a.linkTTL, url.Values{})
	if err != nil {
		return "", fmt.Errorf("s3: presign: %w", err)
	}
	location := a.publicLink(link)
	if a.logger != nil {
		a.logger.Info("report archived", "bucket", a.bucket, "key", key, "size", info.Size, "etag", info.ETag)
	}
	return location, nil
}

// Ping reports whether the bucket is reachable.
func (a *Archive) Ping(ctx context.Context) error {
	_, err := a.client.BucketExists(ctx, a.bucket)
	return err
}

func (a *Archive) ensureBucket(ctx context.Context) error {
	a.bucketInitOnce.Do(func() {
		exists, err := a.client.BucketExists(ctx, a.bucket)
		if err != nil {
			a.bucketInitErr = fmt.Errorf("s3: check bucket: %w", err)
			return
		}
		if exists {
			return
		}
		if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
			a.bucketInitErr = fmt.Errorf("s3: create bucket: %w", err)
		}
	})
	return a.bucketInitErr
}

// publicLink swaps the internal endpoint of a presigned link for the public
// one when the service runs behind a different hostname.
func (a *Archive) publicLink(link *url.URL) string {
	return rewriteHost(link, a.publicEndpoint)
}

func rewriteHost(link, public *url.URL) string {
	if public == nil {
		return link.String()
	}
	out := *link
	out.Scheme = public.Scheme
	out.Host = public.Host
	if prefix := strings.TrimRight(public.Path, "/"); prefix != "" {
		out.Path = prefix + out.Path
	}
	return out.String()
}

func hostOf(endpoint string) string {
	if parsed, err := url.Parse(endpoint); err == nil && parsed.Host != "" {
		return parsed.Host
	}
	return endpoint
}

// NoopArchive fails fast when S3 is unavailable.
type NoopArchive struct{}

func (NoopArchive) Upload(context.Context, string, io.Reader, int64, string) (string, error) {
	return "", ErrNotConfigured
}

var (
	_ policies.ReportArchive = (*Archive)(nil)
	_ policies.ReportArchive = NoopArchive{}
)
