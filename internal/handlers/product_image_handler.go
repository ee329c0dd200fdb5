package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/arjunvn/shopstack/internal/docserv"
	"github.com/arjunvn/shopstack/internal/storage"
	"github.com/arjunvn/shopstack/internal/store"
)

// ProductImages uploads product images to object storage and records the
// resulting URL on the product document.
type ProductImages struct {
	svc    *docserv.Service
	images *storage.ImageStore
	log    *zap.Logger
}

func NewProductImages(svc *docserv.Service, images *storage.ImageStore, log *zap.Logger) *ProductImages {
	return &ProductImages{svc: svc, images: images, log: log}
}

func (h *ProductImages) Upload(c *fiber.Ctx) error {
	id := c.Params("id")

	found := h.svc.FindByID(c.Context(), "products", id)
	if found.Status != fiber.StatusOK {
		return c.Status(found.Status).JSON(fiber.Map{"message": found.Message})
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "failed to retrieve image"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "failed to open image"})
	}
	defer file.Close()

	url, err := h.images.PutProductImage(c.Context(), id, fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"), file, fileHeader.Size)
	if err != nil {
		h.log.Error("image upload failed", zap.String("productId", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to upload image"})
	}

	if res := h.svc.UpdateByID(c.Context(), "products", id, store.Document{"image": url}); res.Status != fiber.StatusOK {
		return c.Status(res.Status).JSON(fiber.Map{"message": res.Message})
	}

	return c.JSON(fiber.Map{
		"message": "image uploaded successfully",
		"image":   url,
	})
}
