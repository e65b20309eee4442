package handlers

import (
	"context"
	"errors"

	"github.com/anjiri1684/english_academy/payments"
	"github.com/gofiber/fiber/v2"
)

// Stripe caps event payloads well below this; anything larger is not a
// webhook we ever sent a secret for.
const maxWebhookBodyBytes = 65536

type WebhookProcessor interface {
	ProcessEvent(ctx context.Context, payload []byte, sigHeader string) (*payments.WebhookResult, error)
}

// HandleStripeWebhook adapts the reconciler to Stripe's delivery contract:
// 2xx acknowledges the event, anything else makes Stripe redeliver it later.
// The raw body is handed to the processor untouched because the signature is
// computed over exact bytes.
func HandleStripeWebhook(processor WebhookProcessor) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if len(c.Body()) > maxWebhookBodyBytes {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload too large"})
		}

		result, err := processor.ProcessEvent(c.Context(), c.Body(), c.Get("Stripe-Signature"))
		if err != nil {
			switch {
			case errors.Is(err, payments.ErrMissingSignature):
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No signature"})
			case errors.Is(err, payments.ErrInvalidSignature):
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid signature"})
			case errors.Is(err, payments.ErrMalformedMetadata):
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid metadata", "details": err.Error()})
			case errors.Is(err, payments.ErrStudentNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error creating enrollment", "details": err.Error()})
			}
		}

		switch result.Outcome {
		case payments.OutcomeAlreadyEnrolled:
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"message":    "Enrollment already exists",
				"enrollment": result.Enrollment,
			})
		case payments.OutcomeEnrolled:
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"success":    true,
				"enrollment": result.Enrollment,
				"message":    "Enrollment created successfully",
			})
		default:
			return c.Status(fiber.StatusOK).JSON(fiber.Map{"received": true})
		}
	}
}
