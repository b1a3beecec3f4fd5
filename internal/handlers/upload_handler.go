package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"hirelytics/backend/internal/models"
	"hirelytics/backend/internal/services"
)

type UploadHandler struct {
	storageService services.StorageService
	extractor      services.TextExtractor
	maxFileSize    int64
}

func NewUploadHandler(
	storageService services.StorageService,
	extractor services.TextExtractor,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		storageService: storageService,
		extractor:      extractor,
		maxFileSize:    maxFileSize,
	}
}

// HandleUploadCV handles POST /upload-cv: stores the file and returns its
// extracted text so the client can feed it into /analyze.
func (h *UploadHandler) HandleUploadCV(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "no file uploaded (expected multipart field 'file')",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storageService.SaveCV(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save file: %v", err),
		})
	}

	content, err := h.extractor.Extract(filePath)
	if err != nil {
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to extract text: %v", err),
		})
	}

	return c.JSON(models.UploadResponse{
		Filename: file.Filename,
		Content:  content,
	})
}
