// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/spf13/afero"

	awsx "github.com/staranto/txtctl/internal/aws"
)

// Source returns the raw bytes behind a resolved path. A missing object must
// be reported with an error matching fs.ErrNotExist.
type Source interface {
	Read(ctx context.Context, path string) ([]byte, error)
}

// Fs reads from an afero filesystem.
type Fs struct {
	fs afero.Fs
}

// NewFs returns a Source over fsys. A nil fsys means the OS filesystem.
func NewFs(fsys afero.Fs) *Fs {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Fs{fs: fsys}
}

// Read returns the file contents. Directories count as missing.
func (s *Fs) Read(_ context.Context, path string) ([]byte, error) {
	info, err := s.fs.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory: %w", path, fs.ErrNotExist)
	}
	return afero.ReadFile(s.fs, path)
}

// Settings selects and configures a Source.
type Settings struct {
	// Kind is "fs" (default) or "s3".
	Kind     string
	Bucket   string
	Prefix   string
	Region   string
	Profile  string
	Endpoint string
	// MaxAttempts caps S3 request attempts. Zero keeps the SDK default.
	MaxAttempts int
	// NoDiskCache turns off the on-disk copy of S3 objects.
	NoDiskCache bool
}

// NewSource builds the Source described by settings.
func NewSource(ctx context.Context, settings Settings) (Source, error) {
	switch settings.Kind {
	case "", "fs":
		return NewFs(nil), nil
	case "s3":
		if settings.Bucket == "" {
			return nil, fmt.Errorf("s3 source requires a bucket")
		}
		opts := []awsx.Option{
			awsx.WithProfile(settings.Profile),
			awsx.WithRegion(settings.Region),
			awsx.WithEndpoint(settings.Endpoint),
		}
		if settings.MaxAttempts > 0 {
			opts = append(opts, awsx.WithRetryer(func() aws.Retryer {
				return retry.AddWithMaxAttempts(retry.NewStandard(), settings.MaxAttempts)
			}))
		}
		cfg, err := awsx.LoadAWSConfig(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		client := awsx.NewS3(cfg, awsx.WithS3PathStyle(settings.Endpoint != ""))
		return NewS3(client, settings.Bucket,
			WithPrefix(settings.Prefix),
			WithDiskCache(!settings.NoDiskCache),
		), nil
	}
	return nil, fmt.Errorf("%w %q, must be fs or s3", ErrUnknownSource, settings.Kind)
}
