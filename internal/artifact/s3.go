// Package artifact publishes datasets and results to S3-compatible object
// storage.
package artifact

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// DefaultBucket is used when no bucket is configured.
const DefaultBucket = "jdkmig-artifacts"

type S3Config struct {
	Endpoint  string `yaml:"endpoint" json:"endpoint"`
	Region    string `yaml:"region" json:"region"`
	AccessKey string `yaml:"-" json:"-"`
	SecretKey string `yaml:"-" json:"-"`
	Bucket    string `yaml:"bucket" json:"bucket"`
	Prefix    string `yaml:"prefix" json:"prefix"`
	UseSSL    bool   `yaml:"use_ssl" json:"use_ssl"`
}

// ConfigFromEnv reads ARTIFACT_S3_* variables through getenv, falling back
// to the MinIO root credentials for local setups.
func ConfigFromEnv(getenv func(string) string) S3Config {
	get := func(keys ...string) string {
		for _, k := range keys {
			if v := strings.TrimSpace(getenv(k)); v != "" {
				return v
			}
		}
		return ""
	}
	cfg := S3Config{
		Endpoint:  get("ARTIFACT_S3_ENDPOINT"),
		Region:    get("ARTIFACT_S3_REGION"),
		AccessKey: get("ARTIFACT_S3_ACCESS_KEY", "MINIO_ROOT_USER"),
		SecretKey: get("ARTIFACT_S3_SECRET_KEY", "MINIO_ROOT_PASSWORD"),
		Bucket:    get("ARTIFACT_S3_BUCKET"),
		Prefix:    get("ARTIFACT_S3_PREFIX"),
	}
	if v := get("ARTIFACT_S3_USE_SSL"); v != "" {
		cfg.UseSSL, _ = strconv.ParseBool(v)
	}
	return cfg
}

// Merge fills the empty fields of c from other.
func (c S3Config) Merge(other S3Config) S3Config {
	pick := func(a, b string) string {
		if a != "" {
			return a
		}
		return b
	}
	c.Endpoint = pick(c.Endpoint, other.Endpoint)
	c.Region = pick(c.Region, other.Region)
	c.AccessKey = pick(c.AccessKey, other.AccessKey)
	c.SecretKey = pick(c.SecretKey, other.SecretKey)
	c.Bucket = pick(c.Bucket, other.Bucket)
	c.Prefix = pick(c.Prefix, other.Prefix)
	c.UseSSL = c.UseSSL || other.UseSSL
	return c
}

// S3Publisher uploads local files to one bucket.
type S3Publisher struct {
	client   *minio.Client
	bucket   string
	region   string
	prefix   string
	initOnce sync.Once
	initErr  error
}

func NewS3Publisher(cfg S3Config) (*S3Publisher, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("s3 access key and secret key are required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		bucket = DefaultBucket
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}
	return &S3Publisher{
		client: client,
		bucket: bucket,
		region: region,
		prefix: strings.Trim(cfg.Prefix, "/"),
	}, nil
}

// Bucket returns the target bucket name.
func (p *S3Publisher) Bucket() string { return p.bucket }

func (p *S3Publisher) ensureBucket(ctx context.Context) error {
	p.initOnce.Do(func() {
		exists, err := p.client.BucketExists(ctx, p.bucket)
		if err != nil {
			p.initErr = err
			return
		}
		if exists {
			return
		}
		p.initErr = p.client.MakeBucket(ctx, p.bucket, minio.MakeBucketOptions{Region: p.region})
	})
	return p.initErr
}

// Publish uploads the file at localPath under key, prefixed by the
// configured prefix. An empty key uses the file's base name. It returns
// the full object key.
func (p *S3Publisher) Publish(ctx context.Context, localPath, key string) (string, error) {
	if err := p.ensureBucket(ctx); err != nil {
		return "", fmt.Errorf("ensure bucket: %w", err)
	}
	objKey := ObjectKey(p.prefix, key, localPath)
	_, err := p.client.FPutObject(ctx, p.bucket, objKey, localPath, minio.PutObjectOptions{
		ContentType: ContentType(localPath),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", localPath, err)
	}
	return objKey, nil
}

// List returns the keys under the configured prefix, sorted.
func (p *S3Publisher) List(ctx context.Context) ([]string, error) {
	if err := p.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("ensure bucket: %w", err)
	}
	opts := minio.ListObjectsOptions{Recursive: true}
	if p.prefix != "" {
		opts.Prefix = p.prefix + "/"
	}
	var keys []string
	for obj := range p.client.ListObjects(ctx, p.bucket, opts) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		keys = append(keys, obj.Key)
	}
	sort.Strings(keys)
	return keys, nil
}

// ObjectKey joins prefix and key, defaulting key to the base name of
// localPath.
func ObjectKey(prefix, key, localPath string) string {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if key == "" {
		key = filepath.Base(localPath)
	}
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return key
	}
	return path.Join(prefix, key)
}

// ContentType guesses the media type of the pipeline's output files.
func ContentType(localPath string) string {
	switch strings.ToLower(filepath.Ext(localPath)) {
	case ".json":
		return "application/json"
	case ".jsonl":
		return "application/x-ndjson"
	case ".csv":
		return "text/csv"
	case ".txt":
		return "text/plain"
	case ".yaml", ".yml":
		return "application/yaml"
	}
	return "application/octet-stream"
}
