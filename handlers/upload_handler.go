package handlers

import (
	"net/url"
	"strconv"
	"time"

	config "github.com/anjiri1684/english_academy/configs"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
)

// GenerateUploadSignature creates a secure signature for a frontend upload
// (course covers and profile pictures go straight to Cloudinary).
func GenerateUploadSignature(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cld, err := cloudinary.NewFromURL(cfg.Cloudinary.URL)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to initialize Cloudinary"})
		}

		parsedURL, err := url.Parse(cfg.Cloudinary.URL)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to parse Cloudinary URL"})
		}
		secret, _ := parsedURL.User.Password()

		paramsToSign, err := api.StructToParams(uploader.UploadParams{
			Folder: "english_academy_uploads",
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to prepare signature params"})
		}

		timestamp := time.Now().Unix()
		paramsToSign.Set("timestamp", strconv.FormatInt(timestamp, 10))

		signature, err := api.SignParameters(paramsToSign, secret)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to sign upload params"})
		}

		return c.JSON(fiber.Map{
			"signature": signature,
			"timestamp": timestamp,
			"api_key":   cld.Config.Cloud.APIKey,
			"folder":    "english_academy_uploads",
		})
	}
}
