package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"time"

	"github.com/rs/zerolog"

	"brightpath/site/internal/ids"
)

var (
	ErrEmptyFile    = errors.New("empty file")
	ErrFileTooLarge = errors.New("file too large")
)

type ObjectPutter interface {
	Put(ctx context.Context, bucket string, objectKey string, reader io.Reader, size int64, contentType string) error
}

type StoredResume struct {
	Bucket    string
	ObjectKey string
	Format    string
	SizeBytes int64
}

// ResumeService validates and stores uploaded resumes.
type ResumeService struct {
	store    ObjectPutter
	bucket   string
	maxBytes int64
	log      zerolog.Logger
}

func NewResumeService(store ObjectPutter, bucket string, maxBytes int64, log zerolog.Logger) *ResumeService {
	return &ResumeService{
		store:    store,
		bucket:   bucket,
		maxBytes: maxBytes,
		log:      log,
	}
}

func (s *ResumeService) Store(ctx context.Context, file multipart.File, header *multipart.FileHeader) (StoredResume, error) {
	if file == nil || header == nil {
		return StoredResume{}, errors.New("invalid file payload")
	}
	if s.maxBytes > 0 && header.Size > s.maxBytes {
		return StoredResume{}, ErrFileTooLarge
	}

	// Non-positive maxBytes means uncapped; the limit reader only applies
	// when a cap is set.
	reader := io.Reader(file)
	if s.maxBytes > 0 {
		reader = io.LimitReader(file, s.maxBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return StoredResume{}, fmt.Errorf("read file: %w", err)
	}
	if len(data) == 0 {
		return StoredResume{}, ErrEmptyFile
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return StoredResume{}, ErrFileTooLarge
	}

	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	result, err := DetectHead(head)
	if err != nil {
		return StoredResume{}, fmt.Errorf("detect type: %w", err)
	}

	objectKey := s.buildObjectKey(string(result.Type))
	if err := s.store.Put(ctx, s.bucket, objectKey, bytes.NewReader(data), int64(len(data)), result.MIME); err != nil {
		return StoredResume{}, err
	}

	s.log.Debug().
		Str("object_key", objectKey).
		Int("size", len(data)).
		Msg("resume stored")

	return StoredResume{
		Bucket:    s.bucket,
		ObjectKey: objectKey,
		Format:    string(result.Type),
		SizeBytes: int64(len(data)),
	}, nil
}

func (s *ResumeService) buildObjectKey(ext string) string {
	datePrefix := time.Now().UTC().Format("2006/01/02")
	return path.Join(datePrefix, fmt.Sprintf("%s.%s", ids.New(), ext))
}
