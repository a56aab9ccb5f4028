package upload

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	bucket      string
	objectKey   string
	contentType string
	size        int64
	data        []byte
}

func (f *fakePutter) Put(_ context.Context, bucket string, objectKey string, reader io.Reader, size int64, contentType string) error {
	f.bucket = bucket
	f.objectKey = objectKey
	f.contentType = contentType
	f.size = size
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.data = data
	return nil
}

func multipartFile(t *testing.T, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	fw, err := writer.CreateFormFile("resume", "cv.pdf")
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	header := form.File["resume"][0]
	file, err := header.Open()
	require.NoError(t, err)
	t.Cleanup(func() { _ = file.Close() })

	return file, header
}

func TestStoreResumeAcceptsPDF(t *testing.T) {
	putter := &fakePutter{}
	svc := NewResumeService(putter, "resumes", 1<<20, zerolog.Nop())

	content := []byte("%PDF-1.7\nfake pdf body")
	file, header := multipartFile(t, content)

	stored, err := svc.Store(context.Background(), file, header)
	require.NoError(t, err)

	assert.Equal(t, "resumes", stored.Bucket)
	assert.Equal(t, "pdf", stored.Format)
	assert.Equal(t, int64(len(content)), stored.SizeBytes)
	assert.True(t, strings.HasSuffix(stored.ObjectKey, ".pdf"), "object key %q", stored.ObjectKey)

	assert.Equal(t, "application/pdf", putter.contentType)
	assert.Equal(t, content, putter.data)
}

func TestStoreResumeRejectsUnknownType(t *testing.T) {
	putter := &fakePutter{}
	svc := NewResumeService(putter, "resumes", 1<<20, zerolog.Nop())

	file, header := multipartFile(t, []byte("just a plain text cover letter"))

	_, err := svc.Store(context.Background(), file, header)
	assert.ErrorIs(t, err, ErrUnknownType)
	assert.Empty(t, putter.objectKey, "nothing must be stored")
}

func TestStoreResumeRejectsOversize(t *testing.T) {
	putter := &fakePutter{}
	svc := NewResumeService(putter, "resumes", 16, zerolog.Nop())

	file, header := multipartFile(t, []byte("%PDF-1.7 this body is longer than sixteen bytes"))

	_, err := svc.Store(context.Background(), file, header)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestStoreResumeUncapped(t *testing.T) {
	putter := &fakePutter{}
	svc := NewResumeService(putter, "resumes", 0, zerolog.Nop())

	content := append([]byte("%PDF-1.7\n"), bytes.Repeat([]byte("x"), 4096)...)
	file, header := multipartFile(t, content)

	stored, err := svc.Store(context.Background(), file, header)
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), stored.SizeBytes)
	assert.Equal(t, content, putter.data)
}

func TestStoreResumeRejectsEmpty(t *testing.T) {
	putter := &fakePutter{}
	svc := NewResumeService(putter, "resumes", 1<<20, zerolog.Nop())

	file, header := multipartFile(t, nil)

	_, err := svc.Store(context.Background(), file, header)
	assert.ErrorIs(t, err, ErrEmptyFile)
}
