package file

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
)

type FileService interface {
	// UploadLeaveAttachment stores a leave attachment and returns its public URL
	UploadLeaveAttachment(ctx context.Context, userID string, file io.Reader, filename string) (string, error)
}

type fileServiceImpl struct {
	store storage.ObjectStore
	now   func() time.Time
}

func NewFileService(store storage.ObjectStore) FileService {
	return &fileServiceImpl{
		store: store,
		now:   time.Now,
	}
}

// UploadLeaveAttachment uploads leave request attachment
func (s *fileServiceImpl) UploadLeaveAttachment(ctx context.Context, userID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	isValid := false
	for _, allowed := range leave.AllowedAttachmentExts {
		if ext == allowed {
			isValid = true
			break
		}
	}
	if !isValid {
		return "", leave.ErrFileTypeNotAllowed
	}

	// Never trust the client filename beyond its extension.
	body := io.LimitReader(file, leave.MaxAttachmentSize+1)
	counter := &countingReader{r: body}

	key := path.Join(userID, fmt.Sprintf("%s-%d%s", uuid.New().String(), s.now().Unix(), ext))
	url, err := s.store.Upload(ctx, leave.AttachmentBucket, key, counter)
	if err != nil {
		return "", fmt.Errorf("failed to upload leave attachment: %w", err)
	}
	if counter.n > leave.MaxAttachmentSize {
		_ = s.store.Delete(ctx, leave.AttachmentBucket, key)
		return "", leave.ErrFileSizeExceeds
	}

	return url, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
