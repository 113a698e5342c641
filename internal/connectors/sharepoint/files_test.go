package sharepoint

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadastral-labs/pointhist-cli/internal/core/domain"
)

func TestClient_FindTextFile(t *testing.T) {
	t.Run("returns first txt file ignoring case", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Contains(t, r.URL.Path, "GetFolderByServerRelativeUrl")
			_, _ = w.Write([]byte(`{"d":{"results":[
				{"Name":"survey.pdf","ServerRelativeUrl":"/sites/surveys/Point History/1234/survey.pdf"},
				{"Name":"POINT 1234.TXT","ServerRelativeUrl":"/sites/surveys/Point History/1234/POINT 1234.TXT"}
			]}}`))
		}))

		info, err := client.FindTextFile(context.Background(), "1234")

		require.NoError(t, err)
		assert.Equal(t, "POINT 1234.TXT", info.Name)
		assert.Equal(t, "/sites/surveys/Point History/1234/POINT 1234.TXT", info.ServerRelativePath)
	})

	t.Run("no text file in folder", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"d":{"results":[{"Name":"survey.pdf"}]}}`))
		}))

		_, err := client.FindTextFile(context.Background(), "1234")

		assert.ErrorIs(t, err, domain.ErrNoTextFile)
	})

	t.Run("missing folder surfaces transport error", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))

		_, err := client.FindTextFile(context.Background(), "1234")

		assert.True(t, IsNotFound(err))
	})
}

func TestClient_FileContent(t *testing.T) {
	t.Run("fetches raw text", func(t *testing.T) {
		const content = "history\nlines\n"
		var gotPath string
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			_, _ = w.Write([]byte(content))
		}))

		text, err := client.FileContent(context.Background(), "1234", "Point 1234.txt")

		require.NoError(t, err)
		assert.Equal(t, content, text)
		assert.Contains(t, gotPath, "GetFileByServerRelativeUrl")
		assert.Contains(t, gotPath, "$value")
	})
}

func TestClient_CreateFile(t *testing.T) {
	t.Run("posts content to Files/Add", func(t *testing.T) {
		var gotMethod, gotPath, gotBody string
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotPath = r.URL.Path
			body, _ := io.ReadAll(r.Body)
			gotBody = string(body)
			w.WriteHeader(http.StatusOK)
		}))

		err := client.CreateFile(context.Background(), "1234", "Point 1234.txt", "new content")

		require.NoError(t, err)
		assert.Equal(t, http.MethodPost, gotMethod)
		assert.Contains(t, gotPath, "Files/Add(url='Point%201234.txt')")
		assert.Equal(t, "new content", gotBody)
	})
}

func TestClient_UpdateFile(t *testing.T) {
	t.Run("overwrites with method override and match-any", func(t *testing.T) {
		var gotHeaders http.Header
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotHeaders = r.Header.Clone()
			w.WriteHeader(http.StatusOK)
		}))

		err := client.UpdateFile(context.Background(), "1234", "Point 1234.txt", "updated")

		require.NoError(t, err)
		assert.Equal(t, "PUT", gotHeaders.Get("X-HTTP-Method"))
		assert.Equal(t, "*", gotHeaders.Get("If-Match"))
		assert.Equal(t, "text/plain;charset=utf-8", gotHeaders.Get("Content-Type"))
	})
}

func TestClient_RenameFile(t *testing.T) {
	t.Run("moves with overwrite flag", func(t *testing.T) {
		var gotPath string
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.String()
			w.WriteHeader(http.StatusOK)
		}))

		err := client.RenameFile(context.Background(), "1234", "old name.txt", "Point 1234.txt")

		require.NoError(t, err)
		assert.Contains(t, gotPath, "MoveTo(newUrl='/sites/surveys/Point%20History/1234/Point%201234.txt',flags=1)")
	})

	t.Run("failed move surfaces error", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))

		err := client.RenameFile(context.Background(), "1234", "old.txt", "Point 1234.txt")

		assert.True(t, IsForbidden(err))
	})
}
