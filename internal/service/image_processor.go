package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/media"
)

var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

type preparedImage struct {
	reader      io.Reader
	size        int64
	contentType string
}

// prepareImageForUpload enforces the byte limit and declared type, then lets
// the processor inspect the payload. Rejections come back as field "image"
// validation errors.
func prepareImageForUpload(ctx context.Context, processor media.Processor, upload media.Upload, maxBytes int64, maxDimension int) (*preparedImage, error) {
	if upload.Reader == nil || upload.Size == 0 {
		return nil, newValidationError("image", "image file is required")
	}
	if maxBytes > 0 && upload.Size > maxBytes {
		return nil, newValidationError("image", fmt.Sprintf("image exceeds the %d byte limit", maxBytes))
	}
	contentType := media.NormalizeContentType(upload.ContentType, upload.FileName)
	if _, ok := allowedImageTypes[contentType]; !ok {
		return nil, newValidationError("image", "image must be a JPEG, PNG or WebP file")
	}
	if maxBytes > 0 {
		upload.Reader = io.LimitReader(upload.Reader, maxBytes+1)
	}
	upload.ContentType = contentType

	if processor == nil {
		return &preparedImage{reader: upload.Reader, size: upload.Size, contentType: contentType}, nil
	}
	result, err := processor.Process(ctx, upload, maxDimension)
	if err != nil {
		switch {
		case errors.Is(err, media.ErrEmptyImage):
			return nil, newValidationError("image", "image file is empty")
		case errors.Is(err, media.ErrUnsupportedImage):
			return nil, newValidationError("image", "image could not be decoded as JPEG, PNG or WebP")
		case errors.Is(err, media.ErrImageTooLarge):
			return nil, newValidationError("image", fmt.Sprintf("image dimensions exceed %dpx", maxDimension))
		}
		return nil, err
	}
	if maxBytes > 0 && int64(len(result.Bytes)) > maxBytes {
		return nil, newValidationError("image", fmt.Sprintf("image exceeds the %d byte limit", maxBytes))
	}
	return &preparedImage{
		reader:      bytes.NewReader(result.Bytes),
		size:        int64(len(result.Bytes)),
		contentType: result.ContentType,
	}, nil
}
