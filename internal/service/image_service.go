package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"log"
	"strings"

	xdraw "golang.org/x/image/draw"

	"comparsaGora/internal/storage"
)

// ImagePreset - параметры оптимизации для конкретной коллекции: коллекции с
// множеством фото на запись жмутся сильнее, одиночные портреты - мягче
type ImagePreset struct {
	MaxWidth  int
	MaxHeight int
	Quality   float64
}

// ImageService - конвейер подготовки изображений перед записью в хранилище:
// сначала Optimize, затем Upload, строго в этом порядке. Cleanup убирает
// хостовую копию, когда запись с изображением удалена.
type ImageService interface {
	Optimize(img string, maxWidth, maxHeight int, quality float64) string
	Upload(ctx context.Context, img string) string
	Process(ctx context.Context, img string, preset ImagePreset) string
	Cleanup(ctx context.Context, img string)
}

type imageService struct {
	storage storage.Storage // nil - хост изображений не настроен
}

func NewImageService(storage storage.Storage) ImageService {
	return &imageService{storage: storage}
}

const dataURLPrefix = "data:image"

// Optimize - уменьшает и пережимает встроенное изображение. Никогда не
// увеличивает. Любая ошибка декодирования возвращает вход без изменений,
// чтобы неудачная оптимизация не ломала сохранение записи.
func (s *imageService) Optimize(img string, maxWidth, maxHeight int, quality float64) string {
	if !strings.HasPrefix(img, dataURLPrefix) {
		return img
	}

	src, err := decodeDataURL(img)
	if err != nil {
		return img
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return img
	}

	// только уменьшение, пропорции сохраняются
	scale := 1.0
	if maxWidth > 0 && float64(maxWidth)/float64(width) < scale {
		scale = float64(maxWidth) / float64(width)
	}
	if maxHeight > 0 && float64(maxHeight)/float64(height) < scale {
		scale = float64(maxHeight) / float64(height)
	}

	newWidth, newHeight := width, height
	if scale < 1.0 {
		newWidth = int(float64(width) * scale)
		newHeight = int(float64(height) * scale)
		if newWidth < 1 {
			newWidth = 1
		}
		if newHeight < 1 {
			newHeight = 1
		}
	}

	// белая подложка вместо прозрачности, как при выводе на canvas
	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)

	var buf bytes.Buffer
	opts := &jpeg.Options{Quality: int(quality * 100)}
	if err := jpeg.Encode(&buf, dst, opts); err != nil {
		return img
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

// Upload - отправляет встроенное изображение на хост и возвращает ссылку.
// Значения, которые уже являются ссылками, проходят без изменений; при
// ненастроенном хосте или любой ошибке загрузки возвращается вход как есть.
func (s *imageService) Upload(ctx context.Context, img string) string {
	if !strings.HasPrefix(img, dataURLPrefix) {
		return img
	}

	if s.storage == nil {
		return img
	}

	url, err := s.storage.UploadImage(ctx, img)
	if err != nil {
		log.Printf("Не удалось загрузить изображение на хост, оставляем встроенным: %v", err)
		return img
	}

	return url
}

func (s *imageService) Process(ctx context.Context, img string, preset ImagePreset) string {
	optimized := s.Optimize(img, preset.MaxWidth, preset.MaxHeight, preset.Quality)
	return s.Upload(ctx, optimized)
}

// Cleanup - удаляет хостовую копию изображения удалённой записи. Встроенные
// значения и ненастроенный хост пропускаются; ошибка удаления только
// логируется - сама запись к этому моменту уже удалена.
func (s *imageService) Cleanup(ctx context.Context, img string) {
	if img == "" || strings.HasPrefix(img, dataURLPrefix) {
		return
	}

	if s.storage == nil {
		return
	}

	if err := s.storage.DeleteImage(ctx, img); err != nil {
		log.Printf("Не удалось удалить изображение с хоста: %v", err)
	}
}

func decodeDataURL(dataURL string) (image.Image, error) {
	idx := strings.Index(dataURL, ";base64,")
	if idx < 0 {
		return nil, fmt.Errorf("не data-URL с base64")
	}

	raw, err := base64.StdEncoding.DecodeString(dataURL[idx+len(";base64,"):])
	if err != nil {
		return nil, fmt.Errorf("ошибка декодирования base64: %w", err)
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("ошибка декодирования изображения: %w", err)
	}

	return src, nil
}
