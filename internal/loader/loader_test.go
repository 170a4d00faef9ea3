// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package loader

import (
	"context"
	"errors"
	"io/fs"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/txtctl/internal/textstore"
)

func memFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	mem := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(mem, path, []byte(content), 0o644))
	}
	return mem
}

func TestFile_Load(t *testing.T) {
	mem := memFs(t, map[string]string{
		"/texts/greetings.yaml": "hello: Hi there\n",
		"/texts/broken.yaml":    "- not\n- a table\n",
		"/texts/empty.yaml":     "  \n",
		"/texts/dir.yaml/x":     "",
	})
	l := New(NewFs(mem), YAML{})

	tests := []struct {
		name    string
		path    string
		want    textstore.Table
		wantErr error
	}{
		{name: "valid table", path: "/texts/greetings.yaml", want: textstore.Table{"hello": textstore.Text("Hi there")}},
		{name: "absent", path: "/texts/nope.yaml", wantErr: textstore.ErrSourceAbsent},
		{name: "directory counts as absent", path: "/texts/dir.yaml", wantErr: textstore.ErrSourceAbsent},
		{name: "wrong shape", path: "/texts/broken.yaml", wantErr: textstore.ErrSourceMalformed},
		{name: "blank file", path: "/texts/empty.yaml", wantErr: textstore.ErrSourceMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := l.Load(context.Background(), tt.path)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type failingSource struct{ err error }

func (f failingSource) Read(context.Context, string) ([]byte, error) { return nil, f.err }

func TestFile_Load_ReadError(t *testing.T) {
	l := New(failingSource{err: errors.New("permission denied")}, JSON{})

	_, err := l.Load(context.Background(), "/x.json")
	assert.ErrorIs(t, err, textstore.ErrSourceMalformed)

	l = New(failingSource{err: fs.ErrNotExist}, JSON{})
	_, err = l.Load(context.Background(), "/x.json")
	assert.ErrorIs(t, err, textstore.ErrSourceAbsent)
}

// The store and a real loader together: one read per path key, failures
// memoized as empty tables.
func TestFile_WithStore(t *testing.T) {
	mem := memFs(t, map[string]string{
		"/texts/greetings.json": `{"hello":"Hi there","blank":""}`,
		"/texts/bad.json":       `[1,2]`,
	})
	l := New(NewFs(mem), JSON{})
	store := textstore.New(l, textstore.WithExtension(l.Extension()))
	ctx := context.Background()

	assert.Equal(t, "Hi there", store.Get(ctx, "/texts", "greetings", "hello", "??", nil))
	assert.Equal(t, "??", store.Get(ctx, "/texts/", "greetings", "blank", "??", nil))

	// Changing the file after the first load has no effect.
	require.NoError(t, afero.WriteFile(mem, "/texts/greetings.json", []byte(`{"hello":"changed"}`), 0o644))
	assert.Equal(t, "Hi there", store.Get(ctx, "/texts", "greetings", "hello", "??", nil))

	assert.Equal(t, "??", store.Get(ctx, "/texts", "bad", "hello", "??", nil))
	require.NoError(t, afero.WriteFile(mem, "/texts/bad.json", []byte(`{"hello":"fixed"}`), 0o644))
	assert.Equal(t, "??", store.Get(ctx, "/texts", "bad", "hello", "??", nil))

	assert.Equal(t, map[string]int{"/texts/greetings.json": 1, "/texts/bad.json": 1}, store.LoadCounts())
}

func TestNewSource(t *testing.T) {
	ctx := context.Background()

	src, err := NewSource(ctx, Settings{})
	require.NoError(t, err)
	assert.IsType(t, &Fs{}, src)

	src, err = NewSource(ctx, Settings{Kind: "fs"})
	require.NoError(t, err)
	assert.IsType(t, &Fs{}, src)

	_, err = NewSource(ctx, Settings{Kind: "s3"})
	assert.ErrorContains(t, err, "requires a bucket")

	_, err = NewSource(ctx, Settings{Kind: "ftp"})
	assert.ErrorIs(t, err, ErrUnknownSource)
}

func TestNewSource_S3(t *testing.T) {
	t.Setenv("AWS_CONFIG_FILE", t.TempDir()+"/config")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", t.TempDir()+"/credentials")
	t.Setenv("AWS_PROFILE", "")

	src, err := NewSource(context.Background(), Settings{
		Kind:     "s3",
		Bucket:   "texts",
		Prefix:   "/locales/",
		Region:   "us-east-1",
		Endpoint: "http://localhost:9000",
	})
	require.NoError(t, err)

	s3src, ok := src.(*S3)
	require.True(t, ok)
	assert.Equal(t, "locales/en/menu.yaml", s3src.ObjectKey("/en/menu.yaml"))
	assert.True(t, s3src.diskCache)
}
