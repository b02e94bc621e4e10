package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go-hrdocs/internal/config"
	"go-hrdocs/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_Put(t *testing.T) {
	dir := t.TempDir()
	blob, err := storage.New(context.Background(), config.StorageConfig{Driver: storage.DriverLocal, LocalDir: dir})
	require.NoError(t, err)
	defer blob.Close()

	key := storage.DocumentKey("t1", "PAYSLIP", "s1", "doc", "pdf")
	assert.Equal(t, "tenants/t1/documents/PAYSLIP/s1/doc.pdf", key)

	loc, err := blob.Put(context.Background(), key, []byte("%PDF"), "application/pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(loc, "file://"))

	got, err := os.ReadFile(filepath.Join(dir, "tenants", "t1", "documents", "PAYSLIP", "s1", "doc.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(got))
}

func TestLocal_RejectsEscapingKeys(t *testing.T) {
	blob, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)

	_, err = blob.Put(context.Background(), "../../etc/passwd", []byte("x"), "text/plain")
	assert.Error(t, err)
}

func TestLocal_CancelledContext(t *testing.T) {
	blob, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = blob.Put(ctx, "a.pdf", []byte("x"), "application/pdf")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_UnknownDriver(t *testing.T) {
	_, err := storage.New(context.Background(), config.StorageConfig{Driver: "s3"})
	assert.Error(t, err)
}
