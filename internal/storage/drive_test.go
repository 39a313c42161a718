package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
)

func TestDrive_EnsureFolder(t *testing.T) {
	t.Run("Creates folder and returns its id", func(t *testing.T) {
		var gotPath, gotAuth string
		var gotBody struct {
			Name     string `json:"name"`
			MimeType string `json:"mimeType"`
		}

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"id":"folder-123"}`)
		}))
		defer srv.Close()

		d := NewDrive(option.WithEndpoint(srv.URL))
		token := &oauth2.Token{AccessToken: "abc", TokenType: "Bearer"}

		folderID, err := d.EnsureFolder(context.Background(), token, "Case Files")

		assert.NoError(t, err)
		assert.Equal(t, "folder-123", folderID)
		assert.Equal(t, "/files", gotPath)
		assert.Equal(t, "Bearer abc", gotAuth)
		assert.Equal(t, "Case Files", gotBody.Name)
		assert.Equal(t, "application/vnd.google-apps.folder", gotBody.MimeType)
	})

	t.Run("Each call creates a fresh folder", func(t *testing.T) {
		calls := 0

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w, `{"id":"folder-%d"}`, calls)
		}))
		defer srv.Close()

		d := NewDrive(option.WithEndpoint(srv.URL))
		token := &oauth2.Token{AccessToken: "abc", TokenType: "Bearer"}

		first, err := d.EnsureFolder(context.Background(), token, "Case Files")
		assert.NoError(t, err)
		second, err := d.EnsureFolder(context.Background(), token, "Case Files")
		assert.NoError(t, err)

		assert.Equal(t, 2, calls)
		assert.NotEqual(t, first, second)
	})

	t.Run("Provider rejection propagates", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusForbidden)
		}))
		defer srv.Close()

		d := NewDrive(option.WithEndpoint(srv.URL))
		token := &oauth2.Token{AccessToken: "abc", TokenType: "Bearer"}

		_, err := d.EnsureFolder(context.Background(), token, "Case Files")

		assert.Error(t, err)
	})
}

func TestDrive_UploadFile(t *testing.T) {
	t.Run("Streams file into folder", func(t *testing.T) {
		var gotPath, gotAuth, gotRawBody string

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")

			body, err := io.ReadAll(r.Body)
			assert.NoError(t, err)
			gotRawBody = string(body)

			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"id":"file-456"}`)
		}))
		defer srv.Close()

		d := NewDrive(option.WithEndpoint(srv.URL))
		token := &oauth2.Token{AccessToken: "abc", TokenType: "Bearer"}

		fileID, err := d.UploadFile(context.Background(), token, "folder-123", "evidence.pdf", "application/pdf", strings.NewReader("file contents"))

		assert.NoError(t, err)
		assert.Equal(t, "file-456", fileID)
		assert.Contains(t, gotPath, "upload")
		assert.Equal(t, "Bearer abc", gotAuth)

		// The multipart/related body carries the metadata and the bytes.
		assert.Contains(t, gotRawBody, `"evidence.pdf"`)
		assert.Contains(t, gotRawBody, `"folder-123"`)
		assert.Contains(t, gotRawBody, "file contents")
	})

	t.Run("Provider rejection propagates", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":{"message":"invalid mime"}}`, http.StatusBadRequest)
		}))
		defer srv.Close()

		d := NewDrive(option.WithEndpoint(srv.URL))
		token := &oauth2.Token{AccessToken: "abc", TokenType: "Bearer"}

		_, err := d.UploadFile(context.Background(), token, "folder-123", "evidence.pdf", "application/pdf", strings.NewReader("file contents"))

		assert.Error(t, err)
	})
}
