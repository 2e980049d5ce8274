package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/mansaluxe/realty-backend/internal/dto"
	"github.com/mansaluxe/realty-backend/internal/storage"
)

const maxUploadBytes = 10 << 20 // 10 MB

type UploadHandler struct {
	store *storage.LocalStore
}

func NewUploadHandler(store *storage.LocalStore) *UploadHandler {
	return &UploadHandler{store: store}
}

// Upload accepts a multipart file and stores it under the bucket named
// in the path. Returns the public URL of the stored blob.
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	bucket := c.Params("bucket")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "File is required",
		})
	}
	if fileHeader.Size > maxUploadBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{
			Error: true, Message: "File too large",
		})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to read file",
		})
	}
	defer f.Close()

	url, err := h.store.Upload(bucket, fileHeader.Filename, f)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidBucket) || errors.Is(err, storage.ErrEmptyFileName) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		slog.Error("upload failed", "bucket", bucket, "file", fileHeader.Filename, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to store file",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
}
