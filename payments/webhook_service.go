package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/anjiri1684/english_academy/models"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
)

var (
	ErrMissingSignature  = errors.New("missing signature header")
	ErrInvalidSignature  = errors.New("invalid webhook signature")
	ErrMalformedMetadata = errors.New("malformed event metadata")
	ErrStudentNotFound   = errors.New("student not found")
	ErrPersistence       = errors.New("enrollment persistence failed")

	// Repo-level sentinels.
	ErrEnrollmentNotFound  = errors.New("enrollment not found")
	ErrDuplicateEnrollment = errors.New("enrollment already exists")
)

type Outcome string

const (
	OutcomeIgnored             Outcome = "ignored"
	OutcomeFailureAcknowledged Outcome = "failure_acknowledged"
	OutcomeAlreadyEnrolled     Outcome = "already_enrolled"
	OutcomeEnrolled            Outcome = "enrolled"
)

type WebhookResult struct {
	Outcome    Outcome
	Enrollment *models.Enrollment
}

// SignatureVerifier authenticates a raw webhook payload against its signature
// header. Verification must run over the exact request bytes, before any JSON
// decoding.
type SignatureVerifier interface {
	Verify(payload []byte, sigHeader string) (stripe.Event, error)
}

// EnrollmentRepo is the persistence surface the reconciler needs.
// FindUserWithStudent returns (nil, nil) when no such user exists.
// FindEnrollment returns ErrEnrollmentNotFound when no row exists.
// CreateEnrollment returns ErrDuplicateEnrollment on a unique-index violation.
type EnrollmentRepo interface {
	FindUserWithStudent(ctx context.Context, userID uint) (*models.User, error)
	FindEnrollment(ctx context.Context, studentID, courseID uint) (*models.Enrollment, error)
	CreateEnrollment(ctx context.Context, enrollment *models.Enrollment) error
}

// WebhookService reconciles Stripe payment events against enrollments: for
// every completed checkout session exactly one active enrollment must exist
// for the paying (student, course) pair, no matter how often Stripe
// redelivers the event.
type WebhookService struct {
	verifier   SignatureVerifier
	repo       EnrollmentRepo
	onEnrolled func(userID uint)
	log        *logrus.Entry
}

func NewWebhookService(verifier SignatureVerifier, repo EnrollmentRepo) *WebhookService {
	return &WebhookService{
		verifier: verifier,
		repo:     repo,
		log:      logrus.WithField("component", "stripe_webhook"),
	}
}

// OnEnrolled registers a callback fired after a brand-new enrollment is
// persisted. Redeliveries and lost races do not fire it.
func (s *WebhookService) OnEnrolled(fn func(userID uint)) {
	s.onEnrolled = fn
}

func (s *WebhookService) ProcessEvent(ctx context.Context, payload []byte, sigHeader string) (*WebhookResult, error) {
	if sigHeader == "" {
		s.log.Warn("webhook rejected: no Stripe-Signature header")
		return nil, ErrMissingSignature
	}

	event, err := s.verifier.Verify(payload, sigHeader)
	if err != nil {
		s.log.WithError(err).Warn("webhook rejected: signature verification failed")
		return nil, ErrInvalidSignature
	}

	switch event.Type {
	case "checkout.session.completed":
		return s.reconcileCheckoutSession(ctx, event)

	case "payment_intent.payment_failed":
		var pi stripe.PaymentIntent
		failLog := s.log.WithField("event_type", event.Type)
		if err := json.Unmarshal(event.Data.Raw, &pi); err == nil {
			failLog = failLog.WithField("payment_intent_id", pi.ID)
			if pi.LastPaymentError != nil {
				failLog = failLog.WithField("failure_message", pi.LastPaymentError.Msg)
			}
		}
		failLog.Info("payment failed, acknowledged without state change")
		return &WebhookResult{Outcome: OutcomeFailureAcknowledged}, nil

	default:
		s.log.WithField("event_type", event.Type).Debug("unhandled event type acknowledged")
		return &WebhookResult{Outcome: OutcomeIgnored}, nil
	}
}

func (s *WebhookService) reconcileCheckoutSession(ctx context.Context, event stripe.Event) (*WebhookResult, error) {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return nil, fmt.Errorf("%w: decoding checkout session: %v", ErrMalformedMetadata, err)
	}

	courseID, err := metadataID(session.Metadata, "course_id")
	if err != nil {
		return nil, err
	}
	userID, err := metadataID(session.Metadata, "user_id")
	if err != nil {
		return nil, err
	}

	log := s.log.WithFields(logrus.Fields{
		"event_type": event.Type,
		"session_id": session.ID,
		"course_id":  courseID,
		"user_id":    userID,
	})

	user, err := s.repo.FindUserWithStudent(ctx, userID)
	if err != nil {
		log.WithError(err).Error("user lookup failed")
		return nil, fmt.Errorf("%w: looking up user %d: %v", ErrPersistence, userID, err)
	}
	if user == nil || user.Student == nil {
		log.Warn("paid checkout session has no matching student record")
		return nil, ErrStudentNotFound
	}
	studentID := user.Student.ID
	log = log.WithField("student_id", studentID)

	existing, err := s.repo.FindEnrollment(ctx, studentID, courseID)
	if err != nil && !errors.Is(err, ErrEnrollmentNotFound) {
		log.WithError(err).Error("enrollment lookup failed")
		return nil, fmt.Errorf("%w: looking up enrollment: %v", ErrPersistence, err)
	}
	if existing != nil {
		log.Info("enrollment already exists, redelivery acknowledged")
		return &WebhookResult{Outcome: OutcomeAlreadyEnrolled, Enrollment: existing}, nil
	}

	enrollment := &models.Enrollment{
		StudentID:     studentID,
		CourseID:      courseID,
		EnrolledAt:    time.Now(),
		Status:        models.EnrollmentStatusActive,
		PaymentStatus: models.PaymentStatusPaid,
		Notes:         fmt.Sprintf("Paid via Stripe checkout session %s. Amount: %s.", session.ID, formatAmount(session.AmountTotal)),
	}

	if err := s.repo.CreateEnrollment(ctx, enrollment); err != nil {
		if errors.Is(err, ErrDuplicateEnrollment) {
			// Lost the check-then-act race to a concurrent delivery. The
			// unique index held, so this is the same idempotent success.
			existing, ferr := s.repo.FindEnrollment(ctx, studentID, courseID)
			if ferr != nil || existing == nil {
				log.WithError(ferr).Error("enrollment exists but could not be fetched")
				return nil, fmt.Errorf("%w: refetching enrollment: %v", ErrPersistence, ferr)
			}
			log.Info("concurrent delivery already enrolled the student")
			return &WebhookResult{Outcome: OutcomeAlreadyEnrolled, Enrollment: existing}, nil
		}
		log.WithError(err).Error("enrollment creation failed")
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	log.Info("enrollment created")
	if s.onEnrolled != nil {
		go s.onEnrolled(userID)
	}
	return &WebhookResult{Outcome: OutcomeEnrolled, Enrollment: enrollment}, nil
}

func metadataID(metadata map[string]string, key string) (uint, error) {
	raw, ok := metadata[key]
	if !ok || raw == "" {
		return 0, fmt.Errorf("%w: metadata field %q is missing", ErrMalformedMetadata, key)
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: metadata field %q is not an integer: %q", ErrMalformedMetadata, key, raw)
	}
	return uint(id), nil
}

// formatAmount renders Stripe's smallest-currency-unit total as a human
// readable dollar string for the enrollment audit note.
func formatAmount(amountTotal int64) string {
	return fmt.Sprintf("$%.2f", float64(amountTotal)/100)
}
