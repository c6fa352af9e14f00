package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_UploadAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir, "http://localhost:8080/files/")
	require.NoError(t, err)

	url, err := store.Upload(context.Background(), "leave-attachments", "user-1/note.pdf", strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/files/leave-attachments/user-1/note.pdf", url)

	content, err := os.ReadFile(filepath.Join(dir, "leave-attachments", "user-1", "note.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))

	require.NoError(t, store.Delete(context.Background(), "leave-attachments", "user-1/note.pdf"))
	require.NoError(t, store.Delete(context.Background(), "leave-attachments", "user-1/note.pdf"))
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "http://localhost/files")
	require.NoError(t, err)

	cases := []struct {
		bucket string
		key    string
	}{
		{"leave-attachments", "../../etc/passwd"},
		{"leave-attachments", "../other-bucket/x"},
		{"..", "x"},
		{"a/b", "x"},
		{"leave-attachments", ""},
	}
	for _, c := range cases {
		_, err := store.Upload(context.Background(), c.bucket, c.key, strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrInvalidKey, "bucket=%q key=%q", c.bucket, c.key)
	}
}

func TestLocalStorage_PublicURLEscapes(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "http://localhost/files")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost/files/leave-attachments/u1/my%20file.pdf", store.PublicURL("leave-attachments", "u1/my file.pdf"))
}
