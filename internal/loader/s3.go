// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/apex/log"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/staranto/txtctl/internal/cacheutil"
)

// S3API is the part of the S3 client the source needs.
type S3API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// S3 reads tables from objects in one bucket. Path keys become object keys
// with the leading separator trimmed and the optional prefix prepended.
type S3 struct {
	client    S3API
	bucket    string
	prefix    string
	diskCache bool
}

// S3Option customizes an S3 source.
type S3Option func(*S3)

// WithPrefix places every object key under prefix.
func WithPrefix(prefix string) S3Option {
	return func(s *S3) { s.prefix = strings.Trim(prefix, "/") }
}

// WithDiskCache keeps object bodies in the cacheutil directory, keyed by
// ETag, so later processes only issue a HEAD request.
func WithDiskCache(enabled bool) S3Option {
	return func(s *S3) { s.diskCache = enabled }
}

// NewS3 returns an S3 source for bucket.
func NewS3(client S3API, bucket string, opts ...S3Option) *S3 {
	s := &S3{client: client, bucket: bucket}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ObjectKey maps a path key to the object key read from the bucket.
func (s *S3) ObjectKey(path string) string {
	key := strings.TrimLeft(path, "/")
	if s.prefix != "" {
		key = s.prefix + "/" + key
	}
	return key
}

// Read fetches the object for path.
func (s *S3) Read(ctx context.Context, path string) ([]byte, error) {
	key := s.ObjectKey(path)
	if !s.diskCache || !cacheutil.Enabled() {
		return s.get(ctx, key)
	}

	head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, s.translate(err, key)
	}

	etag := strings.Trim(aws.ToString(head.ETag), `"`)
	if etag == "" {
		return s.get(ctx, key)
	}

	subdirs := []string{"s3", s.bucket}
	clearKey := key + "@" + etag
	if entry, ok := cacheutil.Read(subdirs, clearKey); ok {
		log.Debugf("s3 cache hit for s3://%s/%s", s.bucket, key)
		return entry.Data, nil
	}

	body, err := s.get(ctx, key)
	if err != nil {
		return nil, err
	}
	if err := cacheutil.Write(subdirs, clearKey, body); err != nil {
		log.WithError(err).Warnf("failed to cache s3://%s/%s", s.bucket, key)
	}
	return body, nil
}

func (s *S3) get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, s.translate(err, key)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read s3://%s/%s: %w", s.bucket, key, err)
	}
	return body, nil
}

// translate maps missing-object errors onto fs.ErrNotExist.
func (s *S3) translate(err error, key string) error {
	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	if errors.As(err, &noSuchKey) || errors.As(err, &notFound) {
		return fmt.Errorf("s3://%s/%s: %w", s.bucket, key, fs.ErrNotExist)
	}
	return fmt.Errorf("failed to get S3 object s3://%s/%s: %w", s.bucket, key, err)
}
