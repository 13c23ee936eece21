package storage

import (
	"alcyxob/fitgpt/internal/config"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBucket = "fitgpt-test"

// fakeS3 answers path-style object requests for a single bucket.
type fakeS3 struct {
	mu       sync.Mutex
	requests []string
	objects  map[string]string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)

	key := strings.TrimPrefix(r.URL.Path, "/"+testBucket+"/")
	switch r.Method {
	case http.MethodPut:
		f.objects[key] = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		if _, ok := f.objects[key]; !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"version":"1.0"}`))
	case http.MethodDelete:
		delete(f.objects, key)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeS3) seen() ([]string, map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	objects := make(map[string]string, len(f.objects))
	for k, v := range f.objects {
		objects[k] = v
	}
	return append([]string(nil), f.requests...), objects
}

func newTestStorage(t *testing.T) (FileStorage, *fakeS3) {
	t.Helper()
	fake := &fakeS3{objects: map[string]string{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	fs, err := NewS3Storage(context.Background(), config.S3Config{
		Endpoint:        srv.URL,
		Region:          "us-east-1",
		AccessKeyID:     "test",
		SecretAccessKey: "test",
		BucketName:      testBucket,
	})
	require.NoError(t, err)
	return fs, fake
}

func TestNewS3Storage_RequiresBucket(t *testing.T) {
	_, err := NewS3Storage(context.Background(), config.S3Config{Region: "us-east-1"})
	assert.Error(t, err)
}

func TestS3Storage_PutGetDelete(t *testing.T) {
	fs, fake := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, fs.PutObject(ctx, "backups/a.json", "application/json", []byte(`{"version":"1.0"}`)))
	_, objects := fake.seen()
	assert.Equal(t, "application/json", objects["backups/a.json"])

	data, err := fs.GetObject(ctx, "backups/a.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"1.0"}`, string(data))

	require.NoError(t, fs.DeleteObject(ctx, "backups/a.json"))
	requests, objects := fake.seen()
	assert.Empty(t, objects)
	assert.Equal(t, []string{
		"PUT /" + testBucket + "/backups/a.json",
		"GET /" + testBucket + "/backups/a.json",
		"DELETE /" + testBucket + "/backups/a.json",
	}, requests)
}

func TestS3Storage_GetMissingObject(t *testing.T) {
	fs, _ := newTestStorage(t)

	_, err := fs.GetObject(context.Background(), "backups/missing.json")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestS3Storage_PresignedDownloadURL(t *testing.T) {
	fs, fake := newTestStorage(t)

	url, err := fs.GeneratePresignedDownloadURL(context.Background(), "backups/a.json", 0)
	require.NoError(t, err)
	assert.Contains(t, url, "/"+testBucket+"/backups/a.json")
	assert.Contains(t, url, "X-Amz-Expires=900")
	assert.Contains(t, url, "X-Amz-Signature=")

	url, err = fs.GeneratePresignedDownloadURL(context.Background(), "backups/a.json", time.Hour)
	require.NoError(t, err)
	assert.Contains(t, url, "X-Amz-Expires=3600")

	requests, _ := fake.seen()
	assert.Empty(t, requests, "presigning is offline")
}
