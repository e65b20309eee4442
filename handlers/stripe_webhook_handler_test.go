package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anjiri1684/english_academy/handlers"
	"github.com/anjiri1684/english_academy/models"
	"github.com/anjiri1684/english_academy/payments"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProcessor struct {
	result *payments.WebhookResult
	err    error

	gotPayload []byte
	gotSig     string
}

func (s *stubProcessor) ProcessEvent(ctx context.Context, payload []byte, sigHeader string) (*payments.WebhookResult, error) {
	s.gotPayload = payload
	s.gotSig = sigHeader
	return s.result, s.err
}

func webhookApp(p handlers.WebhookProcessor) *fiber.App {
	app := fiber.New()
	app.Post("/api/v1/payments/stripe/webhook", handlers.HandleStripeWebhook(p))
	return app
}

func postWebhook(t *testing.T, app *fiber.App, body, sig string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/v1/payments/stripe/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if sig != "" {
		req.Header.Set("Stripe-Signature", sig)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return resp.StatusCode, decoded
}

func TestHandleStripeWebhook_MissingSignature(t *testing.T) {
	app := webhookApp(&stubProcessor{err: payments.ErrMissingSignature})

	status, body := postWebhook(t, app, `{"type":"checkout.session.completed"}`, "")

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "No signature", body["error"])
}

func TestHandleStripeWebhook_InvalidSignature(t *testing.T) {
	app := webhookApp(&stubProcessor{err: payments.ErrInvalidSignature})

	status, body := postWebhook(t, app, `{"type":"checkout.session.completed"}`, "t=1,v1=bad")

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Invalid signature", body["error"])
}

func TestHandleStripeWebhook_StudentNotFound(t *testing.T) {
	app := webhookApp(&stubProcessor{err: payments.ErrStudentNotFound})

	status, body := postWebhook(t, app, `{}`, "sig")

	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Student not found", body["error"])
}

func TestHandleStripeWebhook_UnhandledEventAcknowledged(t *testing.T) {
	app := webhookApp(&stubProcessor{result: &payments.WebhookResult{Outcome: payments.OutcomeIgnored}})

	status, body := postWebhook(t, app, `{"type":"invoice.paid"}`, "sig")

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["received"])
}

func TestHandleStripeWebhook_EnrollmentCreated(t *testing.T) {
	enrollment := &models.Enrollment{ID: 1, StudentID: 5, CourseID: 42}
	stub := &stubProcessor{result: &payments.WebhookResult{Outcome: payments.OutcomeEnrolled, Enrollment: enrollment}}
	app := webhookApp(stub)

	status, body := postWebhook(t, app, `{"type":"checkout.session.completed"}`, "sig")

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Enrollment created successfully", body["message"])
	assert.NotNil(t, body["enrollment"])

	// The processor must receive the raw bytes and the header value unmodified.
	assert.Equal(t, `{"type":"checkout.session.completed"}`, string(stub.gotPayload))
	assert.Equal(t, "sig", stub.gotSig)
}

func TestHandleStripeWebhook_EnrollmentAlreadyExists(t *testing.T) {
	enrollment := &models.Enrollment{ID: 1, StudentID: 5, CourseID: 42}
	app := webhookApp(&stubProcessor{result: &payments.WebhookResult{Outcome: payments.OutcomeAlreadyEnrolled, Enrollment: enrollment}})

	status, body := postWebhook(t, app, `{"type":"checkout.session.completed"}`, "sig")

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Enrollment already exists", body["message"])
	assert.NotNil(t, body["enrollment"])
}

func TestHandleStripeWebhook_PersistenceFailure(t *testing.T) {
	app := webhookApp(&stubProcessor{err: payments.ErrPersistence})

	status, body := postWebhook(t, app, `{"type":"checkout.session.completed"}`, "sig")

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Error creating enrollment", body["error"])
	assert.NotEmpty(t, body["details"])
}
