// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package loader

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/txtctl/internal/textstore"
)

type fakeObject struct {
	body string
	etag string
}

type fakeS3 struct {
	mu      sync.Mutex
	objects map[string]fakeObject
	gets    int
	heads   int
	err     error
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.err != nil {
		return nil, f.err
	}
	obj, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("no such key")}
	}
	return &s3.GetObjectOutput{
		Body: io.NopCloser(bytes.NewBufferString(obj.body)),
		ETag: aws.String(`"` + obj.etag + `"`),
	}, nil
}

func (f *fakeS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.heads++
	if f.err != nil {
		return nil, f.err
	}
	obj, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NotFound{Message: aws.String("not found")}
	}
	return &s3.HeadObjectOutput{ETag: aws.String(`"` + obj.etag + `"`)}, nil
}

func TestS3_ObjectKey(t *testing.T) {
	tests := []struct {
		prefix string
		path   string
		want   string
	}{
		{prefix: "", path: "/en/menu.yaml", want: "en/menu.yaml"},
		{prefix: "texts", path: "/en/menu.yaml", want: "texts/en/menu.yaml"},
		{prefix: "/texts/", path: "en/menu.yaml", want: "texts/en/menu.yaml"},
		{prefix: "", path: "menu.yaml", want: "menu.yaml"},
	}
	for _, tt := range tests {
		s := NewS3(&fakeS3{}, "bucket", WithPrefix(tt.prefix))
		assert.Equal(t, tt.want, s.ObjectKey(tt.path), tt.prefix+"|"+tt.path)
	}
}

func TestS3_Read_NoDiskCache(t *testing.T) {
	client := &fakeS3{objects: map[string]fakeObject{
		"texts/en/menu.yaml": {body: "open: Open\n", etag: "abc"},
	}}
	s := NewS3(client, "bucket", WithPrefix("texts"))

	body, err := s.Read(context.Background(), "/en/menu.yaml")
	require.NoError(t, err)
	assert.Equal(t, "open: Open\n", string(body))
	assert.Equal(t, 0, client.heads)
	assert.Equal(t, 1, client.gets)

	_, err = s.Read(context.Background(), "/fr/menu.yaml")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestS3_Read_DiskCache(t *testing.T) {
	t.Setenv("TXTCTL_CACHE_DIR", t.TempDir())
	t.Setenv("TXTCTL_CACHE", "")

	client := &fakeS3{objects: map[string]fakeObject{
		"en/menu.yaml": {body: "open: Open\n", etag: "v1"},
	}}
	s := NewS3(client, "bucket", WithDiskCache(true))
	ctx := context.Background()

	for range 2 {
		body, err := s.Read(ctx, "/en/menu.yaml")
		require.NoError(t, err)
		assert.Equal(t, "open: Open\n", string(body))
	}
	assert.Equal(t, 2, client.heads)
	assert.Equal(t, 1, client.gets, "second read served from disk")

	// A new ETag invalidates the cached copy.
	client.objects["en/menu.yaml"] = fakeObject{body: "open: Ouvrir\n", etag: "v2"}
	body, err := s.Read(ctx, "/en/menu.yaml")
	require.NoError(t, err)
	assert.Equal(t, "open: Ouvrir\n", string(body))
	assert.Equal(t, 2, client.gets)

	_, err = s.Read(ctx, "/fr/menu.yaml")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestS3_Read_OtherError(t *testing.T) {
	client := &fakeS3{err: errors.New("access denied")}
	s := NewS3(client, "bucket")

	_, err := s.Read(context.Background(), "/en/menu.yaml")
	require.Error(t, err)
	assert.NotErrorIs(t, err, fs.ErrNotExist)
	assert.ErrorContains(t, err, "access denied")

	// Through the loader the failure is a malformed source.
	_, err = New(s, YAML{}).Load(context.Background(), "/en/menu.yaml")
	assert.ErrorIs(t, err, textstore.ErrSourceMalformed)
}
