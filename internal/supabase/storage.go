package supabase

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	storage "github.com/supabase-community/storage-go"
	"github.com/supabase-community/supabase-go"
)

// StorageClient stores product images in a public Supabase bucket.
type StorageClient struct {
	client  *storage.Client
	bucket  string
	baseURL string
	now     func() time.Time
}

func NewStorageClient(supabaseURL, serviceRoleKey, bucket string) (*StorageClient, error) {
	baseURL := strings.TrimRight(supabaseURL, "/")

	sb, err := supabase.NewClient(baseURL, serviceRoleKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	return newStorageClient(sb.Storage, baseURL, bucket), nil
}

func newStorageClient(client *storage.Client, baseURL, bucket string) *StorageClient {
	return &StorageClient{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
		now:     time.Now,
	}
}

// Upload stores data under folder/<unix ms>-<random>.<ext> and returns the
// object path and its public URL.
func (s *StorageClient) Upload(folder, ext, contentType string, data []byte) (string, string, error) {
	name := fmt.Sprintf("%d-%s.%s", s.now().UnixMilli(), uuid.NewString()[:8], strings.TrimPrefix(ext, "."))
	storagePath := name
	if folder = strings.Trim(folder, "/"); folder != "" {
		storagePath = folder + "/" + name
	}

	upsert := false
	_, err := s.client.UploadFile(s.bucket, storagePath, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload file: %w", err)
	}

	return storagePath, s.PublicURL(storagePath), nil
}

func (s *StorageClient) PublicURL(storagePath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, storagePath)
}

// PathFromURL returns the object path of a public URL in this bucket.
// URLs pointing anywhere else report false.
func (s *StorageClient) PathFromURL(publicURL string) (string, bool) {
	prefix := s.PublicURL("")
	if !strings.HasPrefix(publicURL, prefix) {
		return "", false
	}
	path := strings.TrimPrefix(publicURL, prefix)
	return path, path != ""
}

func (s *StorageClient) Delete(storagePath string) error {
	if _, err := s.client.RemoveFile(s.bucket, []string{storagePath}); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
