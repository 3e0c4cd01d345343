package handler

import (
	"errors"
	"io"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/mizukif/photo-diary/apperr"
	"github.com/mizukif/photo-diary/auth"
	"github.com/mizukif/photo-diary/diary"
)

const serviceName = "photo-diary"

type Handler struct {
	diaries *diary.Service
	auth    *auth.Service
}

func New(diaries *diary.Service, authService *auth.Service) *Handler {
	return &Handler{diaries: diaries, auth: authService}
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": serviceName,
	})
}

// AnalyzeAndSave handles POST /analyze-and-save: multipart image file
// plus a user_id form field, through the full ingest workflow.
func (h *Handler) AnalyzeAndSave(c *fiber.Ctx) error {
	userID := c.FormValue("user_id")

	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "image file is required",
		})
	}

	blob, err := file.Open()
	if err != nil {
		log.Printf("open uploaded file: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "failed to read uploaded file",
		})
	}
	defer blob.Close()

	data, err := io.ReadAll(blob)
	if err != nil {
		log.Printf("read uploaded file: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "failed to read uploaded file",
		})
	}

	result, err := h.diaries.Ingest(c.Context(), diary.IngestInput{
		UserID:      userID,
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"comment":   result.Comment,
		"image_url": result.ImageURL,
		"diary_id":  result.DiaryID,
	})
}

// ListPhotos handles GET /photos and GET /api/photos.
func (h *Handler) ListPhotos(c *fiber.Ctx) error {
	userID := c.Query("user_id")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "user_id is required",
		})
	}

	photos, err := h.diaries.List(c.Context(), userID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(photos)
}

// UserStats handles GET /user-stats.
func (h *Handler) UserStats(c *fiber.Ctx) error {
	userID := c.Query("user_id")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "user_id is required",
		})
	}

	stats, err := h.diaries.Stats(c.Context(), userID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(stats)
}

// errorResponse maps tagged error kinds to HTTP responses. The client
// gets the short message only; the detailed cause goes to the server
// log.
func errorResponse(c *fiber.Ctx, err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		log.Printf("%s: %v", c.Path(), err)
		status := fiber.StatusInternalServerError
		if appErr.Kind == apperr.InvalidInput {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{"detail": appErr.Message})
	}

	log.Printf("%s: unexpected error: %v", c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"detail": "internal server error",
	})
}
