package catalog

import (
	"context"
	"fmt"
	"io"

	"catalog-service/core/apperr"

	"github.com/minio/minio-go/v7"
)

// imageObjectName builds the storage key for a product image.
func imageObjectName(productID uint) string {
	return fmt.Sprintf("products/%d", productID)
}

// ProductImage is a downloaded product image stream plus its metadata. The
// caller owns Body and must close it.
type ProductImage struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// AttachImage uploads a product image and records the storage key on the
// row. Re-uploading replaces the previous object under the same key.
func (s *Service) AttachImage(ctx context.Context, id uint, body io.Reader, size int64, contentType string) error {
	if s.client == nil {
		return apperr.Validation("image storage is not configured")
	}
	if size <= 0 {
		return apperr.Validation("image body is empty")
	}
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}

	object := imageObjectName(id)
	_, err := s.client.PutObject(ctx, s.bucket, object, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return apperr.Persistence(err, "uploading image for product %d", id)
	}

	if _, err := s.products.Updates(ctx, id, map[string]any{"image_object": object}); err != nil {
		return err
	}
	return nil
}

// GetImage streams a product image from storage.
func (s *Service) GetImage(ctx context.Context, id uint) (*ProductImage, error) {
	if s.client == nil {
		return nil, apperr.Validation("image storage is not configured")
	}
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.ImageObject == "" {
		return nil, apperr.NotFound("product %d has no image", id)
	}

	stat, err := s.client.StatObject(ctx, s.bucket, product.ImageObject, minio.StatObjectOptions{})
	if err != nil {
		return nil, apperr.NotFound("image of product %d not found", id)
	}
	body, err := s.client.GetObject(ctx, s.bucket, product.ImageObject, minio.GetObjectOptions{})
	if err != nil {
		return nil, apperr.Persistence(err, "downloading image of product %d", id)
	}
	return &ProductImage{Body: body, ContentType: stat.ContentType, Size: stat.Size}, nil
}

// RemoveImage deletes the product image object and clears the key on the
// row.
func (s *Service) RemoveImage(ctx context.Context, id uint) error {
	if s.client == nil {
		return apperr.Validation("image storage is not configured")
	}
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if product.ImageObject == "" {
		return apperr.NotFound("product %d has no image", id)
	}

	if err := s.client.RemoveObject(ctx, s.bucket, product.ImageObject, minio.RemoveObjectOptions{}); err != nil {
		return apperr.Persistence(err, "removing image of product %d", id)
	}
	if _, err := s.products.Updates(ctx, id, map[string]any{"image_object": ""}); err != nil {
		return err
	}
	return nil
}
