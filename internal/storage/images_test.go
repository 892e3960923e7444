package storage

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wenje/internal/config"
	"wenje/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"resty.dev/v3"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestStore points a cloudinary store at a local test server.
func newTestStore(serverURL string) *cloudinaryStore {
	return &cloudinaryStore{
		cloud:  "testcloud",
		key:    "test-key",
		secret: "test-secret",
		client: resty.New().
			SetBaseURL(serverURL).
			SetTimeout(5 * time.Second),
		logger: discardLogger(),
	}
}

func TestNewImageStoreWithoutCredentialsIsNoop(t *testing.T) {
	store := NewImageStore(&config.Config{}, discardLogger())

	_, ok := store.(*noopImageStore)
	assert.True(t, ok)
	assert.NoError(t, store.Release(context.Background(), "anything"))
}

func TestNewImageStoreWithCredentials(t *testing.T) {
	store := NewImageStore(&config.Config{
		CloudinaryCloud:  "testcloud",
		CloudinaryKey:    "key",
		CloudinarySecret: "secret",
	}, discardLogger())

	_, ok := store.(*cloudinaryStore)
	assert.True(t, ok)
}

func TestReleaseSendsSignedDestroyRequest(t *testing.T) {
	var gotPath string
	var gotForm map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"public_id": r.PostFormValue("public_id"),
			"api_key":   r.PostFormValue("api_key"),
			"timestamp": r.PostFormValue("timestamp"),
			"signature": r.PostFormValue("signature"),
		}
		fmt.Fprint(w, `{"result":"ok"}`)
	}))
	defer srv.Close()

	store := newTestStore(srv.URL)
	require.NoError(t, store.Release(context.Background(), "user-image-42"))

	assert.Equal(t, "/testcloud/image/destroy", gotPath)
	assert.Equal(t, "user-image-42", gotForm["public_id"])
	assert.Equal(t, "test-key", gotForm["api_key"])

	payload := fmt.Sprintf("public_id=%s&timestamp=%s%s", "user-image-42", gotForm["timestamp"], "test-secret")
	sum := sha1.Sum([]byte(payload))
	assert.Equal(t, hex.EncodeToString(sum[:]), gotForm["signature"])
}

func TestReleaseSkipsDefaultAvatar(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("the shared default avatar must never be destroyed")
	}))
	defer srv.Close()

	store := newTestStore(srv.URL)
	assert.NoError(t, store.Release(context.Background(), models.DefaultAvatarPublicID))
	assert.NoError(t, store.Release(context.Background(), ""))
}

func TestReleaseReportsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := newTestStore(srv.URL)
	err := store.Release(context.Background(), "user-image-42")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "release failed")
}
