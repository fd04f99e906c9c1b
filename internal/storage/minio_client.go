package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"comparsaGora/internal/config"
)

// Storage - удалённый хост изображений: принимает встроенное изображение,
// возвращает стабильную публичную ссылку; удаление тоже идёт по ссылке
type Storage interface {
	UploadImage(ctx context.Context, dataURL string) (string, error)
	DeleteImage(ctx context.Context, imageURL string) error
}

type MinIOClient struct {
	client *minio.Client
	cfg    *config.Config
}

func NewMinIOClient(cfg *config.Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации MinIO: %w", err)
	}

	return &MinIOClient{client: client, cfg: cfg}, nil
}

var extByMime = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// parseDataURL - "data:image/png;base64,...." -> тип и байты
func parseDataURL(dataURL string) (string, []byte, error) {
	if !strings.HasPrefix(dataURL, "data:image") {
		return "", nil, fmt.Errorf("не встроенное изображение")
	}

	idx := strings.Index(dataURL, ";base64,")
	if idx < 0 {
		return "", nil, fmt.Errorf("не base64 data-URL")
	}

	contentType := dataURL[len("data:"):idx]

	raw, err := base64.StdEncoding.DecodeString(dataURL[idx+len(";base64,"):])
	if err != nil {
		return "", nil, fmt.Errorf("ошибка декодирования base64: %w", err)
	}

	return contentType, raw, nil
}

func (m *MinIOClient) UploadImage(ctx context.Context, dataURL string) (string, error) {
	contentType, raw, err := parseDataURL(dataURL)
	if err != nil {
		return "", err
	}

	ext, ok := extByMime[contentType]
	if !ok {
		ext = ".jpg"
	}

	now := time.Now()
	objectName := fmt.Sprintf("uploads/%d/%02d/%s%s",
		now.Year(),
		now.Month(),
		uuid.New().String(),
		ext)

	_, err = m.client.PutObject(ctx, m.cfg.MinIO.BucketName, objectName,
		bytes.NewReader(raw), int64(len(raw)),
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"uploaded-at": now.Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки в MinIO: %w", err)
	}

	scheme := "http"
	if m.cfg.MinIO.UseSSL {
		scheme = "https"
	}

	imageURL := fmt.Sprintf("%s://%s/%s/%s",
		scheme,
		m.cfg.MinIO.Endpoint,
		m.cfg.MinIO.BucketName,
		objectName)

	return imageURL, nil
}

// DeleteImage - удаляет объект по его публичной ссылке. Ссылки на чужие
// хосты молча пропускаются.
func (m *MinIOClient) DeleteImage(ctx context.Context, imageURL string) error {
	scheme := "http"
	if m.cfg.MinIO.UseSSL {
		scheme = "https"
	}
	prefix := fmt.Sprintf("%s://%s/%s/", scheme, m.cfg.MinIO.Endpoint, m.cfg.MinIO.BucketName)

	if !strings.HasPrefix(imageURL, prefix) {
		return nil
	}

	objectName := strings.TrimPrefix(imageURL, prefix)

	err := m.client.RemoveObject(ctx, m.cfg.MinIO.BucketName, objectName,
		minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("ошибка удаления из MinIO: %w", err)
	}
	return nil
}
