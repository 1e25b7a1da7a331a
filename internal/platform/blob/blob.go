// Package blob stores uploaded files in an S3 compatible bucket
package blob

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"

	perr "villagevisits/internal/platform/errors"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Object is a stored file
type Object struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

// Store puts files and returns where they live
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (Object, error)
}

// Config holds connection settings, an empty Endpoint disables uploads
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL overrides the scheme://endpoint prefix of returned URLs
	PublicURL string
}

// Enabled reports whether uploads are configured
func (c Config) Enabled() bool { return c.Endpoint != "" }

// Minio is a Store over minio-go
type Minio struct {
	mc     *minio.Client
	bucket string
	base   string

	ensure sync.Once
	ensErr error
}

// New builds a Store for cfg, Disabled when no endpoint is configured
func New(cfg Config) (Store, error) {
	if !cfg.Enabled() {
		return Disabled{}, nil
	}
	return NewMinio(cfg)
}

// NewMinio creates a minio backed store
func NewMinio(cfg Config) (*Minio, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("blob: bucket is required")
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}
	base := strings.TrimRight(cfg.PublicURL, "/")
	if base == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		base = scheme + "://" + cfg.Endpoint
	}
	return &Minio{mc: mc, bucket: cfg.Bucket, base: base}, nil
}

// EnsureBucket creates the bucket on first use
func (m *Minio) EnsureBucket(ctx context.Context) error {
	m.ensure.Do(func() {
		ok, err := m.mc.BucketExists(ctx, m.bucket)
		if err != nil {
			m.ensErr = err
			return
		}
		if !ok {
			m.ensErr = m.mc.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{})
		}
	})
	return m.ensErr
}

// Put implements Store
func (m *Minio) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (Object, error) {
	if err := m.EnsureBucket(ctx); err != nil {
		return Object{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "file storage unavailable")
	}
	info, err := m.mc.PutObject(ctx, m.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return Object{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "file upload failed")
	}
	return Object{
		Key:         info.Key,
		URL:         m.base + "/" + m.bucket + "/" + info.Key,
		Size:        info.Size,
		ContentType: contentType,
	}, nil
}

// Disabled rejects uploads
type Disabled struct{}

// Put implements Store
func (Disabled) Put(context.Context, string, io.Reader, int64, string) (Object, error) {
	return Object{}, perr.New(perr.ErrorCodeUnavailable, "file uploads are not configured")
}

// Key builds a collision free object key under prefix keeping the file extension
func Key(prefix, filename string) string {
	ext := strings.ToLower(path.Ext(path.Base(strings.ReplaceAll(filename, "\\", "/"))))
	if len(ext) > 10 || strings.ContainsAny(ext, " ?#%") {
		ext = ""
	}
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return uuid.NewString() + ext
	}
	return prefix + "/" + uuid.NewString() + ext
}

// Memory keeps objects in memory, for tests
type Memory struct {
	mu      sync.Mutex
	Objects map[string][]byte
}

// Put implements Store
func (m *Memory) Put(_ context.Context, key string, r io.Reader, _ int64, contentType string) (Object, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return Object{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Objects == nil {
		m.Objects = map[string][]byte{}
	}
	m.Objects[key] = b
	return Object{Key: key, URL: "mem://" + key, Size: int64(len(b)), ContentType: contentType}, nil
}
