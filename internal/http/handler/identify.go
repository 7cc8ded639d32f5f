package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"wastevision/internal/http/middleware"
	"wastevision/internal/service"
)

// Identify godoc
// @Summary Identify waste in an image
// @Description Runs both detectors on the uploaded image and classifies each detected item.
// @Tags identify
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image to analyse"
// @Success 200 {object} model.IdentifyResult
// @Failure 500 {object} identifyError
// @Router /identify [post]
func Identify(svc service.IdentifyService, log logrus.FieldLogger) fiber.Handler {
	fail := func(c *fiber.Ctx, err error) error {
		log.WithFields(logrus.Fields{
			"component":  "handler",
			"event":      "identify_failed",
			"request_id": middleware.GetRequestID(c),
		}).WithError(err).Error("identify failed")
		return c.Status(fiber.StatusInternalServerError).JSON(identifyError{Error: err.Error()})
	}

	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return fail(c, fmt.Errorf("read upload: %w", err))
		}

		f, err := fh.Open()
		if err != nil {
			return fail(c, fmt.Errorf("open upload: %w", err))
		}
		defer f.Close()

		res, err := svc.Identify(c.UserContext(), f)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(res)
	}
}

// ListLabels godoc
// @Summary Classification table
// @Description Returns every known label and the waste category it maps to.
// @Tags labels
// @Produce json
// @Success 200 {array} service.LabelEntry
// @Router /labels [get]
func ListLabels(svc service.IdentifyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(svc.Labels())
	}
}
