package filestorage

import (
	"bytes"
	"context"
	"io/fs"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) (*LocalStorage, string) {
	t.Helper()
	dir := t.TempDir()
	ls, err := NewLocalStorage(dir)
	require.NoError(t, err)
	return ls, dir
}

func TestLocalStorage_WriteReadExists(t *testing.T) {
	ls, dir := newTestStorage(t)
	ctx := context.Background()

	ok, err := ls.Exists(ctx, "admission/a.pdf")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, ls.WriteFile(ctx, "admission/a.pdf", []byte("one")))
	require.NoError(t, ls.WriteFile(ctx, "admission/a.pdf", []byte("two")))

	ok, err = ls.Exists(ctx, "admission/a.pdf")
	require.NoError(t, err)
	assert.True(t, ok)

	data, err := ls.ReadFile(ctx, "admission/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	entries, err := os.ReadDir(filepath.Join(dir, "admission"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestLocalStorage_ReadMissing(t *testing.T) {
	ls, _ := newTestStorage(t)
	_, err := ls.ReadFile(context.Background(), "fee/none.pdf")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLocalStorage_RejectsEscapingPaths(t *testing.T) {
	ls, _ := newTestStorage(t)
	ctx := context.Background()

	for _, p := range []string{"../x.pdf", "fee/../../x.pdf", ""} {
		_, err := ls.ReadFile(ctx, p)
		assert.ErrorIs(t, err, ErrInvalidPath, p)
	}
}

func TestLocalStorage_RemoveAndList(t *testing.T) {
	ls, _ := newTestStorage(t)
	ctx := context.Background()

	files, err := ls.List(ctx, "fee")
	require.NoError(t, err)
	assert.Empty(t, files)

	require.NoError(t, ls.WriteFile(ctx, "fee/b.pdf", []byte("bb")))
	require.NoError(t, ls.WriteFile(ctx, "fee/a.pdf", []byte("a")))

	files, err = ls.List(ctx, "fee")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a.pdf", files[0].Name)
	assert.Equal(t, int64(2), files[1].Size)

	require.NoError(t, ls.Remove(ctx, "fee/a.pdf"))
	require.NoError(t, ls.Remove(ctx, "fee/a.pdf"))
	files, err = ls.List(ctx, "fee")
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestLocalStorage_CancelledContext(t *testing.T) {
	ls, _ := newTestStorage(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, ls.WriteFile(ctx, "x.pdf", nil), context.Canceled)
}

func uploadHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/upload", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestLocalStorage_SaveFileWithPath(t *testing.T) {
	ls, _ := newTestStorage(t)
	ls.now = func() time.Time { return time.Unix(1760515200, 0) }

	name, err := ls.SaveFileWithPath(uploadHeader(t, "Medical Lab Fees 2026.PDF", []byte("%PDF")), "fee")
	require.NoError(t, err)
	assert.Equal(t, "1760515200_Medical_Lab_Fees_2026.pdf", name)

	data, err := ls.ReadFile(context.Background(), "fee/"+name)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))
}
