package payments_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/anjiri1684/english_academy/models"
	"github.com/anjiri1684/english_academy/payments"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v74"
)

type mockVerifier struct {
	mock.Mock
}

func (m *mockVerifier) Verify(payload []byte, sigHeader string) (stripe.Event, error) {
	args := m.Called(payload, sigHeader)
	return args.Get(0).(stripe.Event), args.Error(1)
}

type mockEnrollmentRepo struct {
	mock.Mock
}

func (m *mockEnrollmentRepo) FindUserWithStudent(ctx context.Context, userID uint) (*models.User, error) {
	args := m.Called(ctx, userID)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEnrollmentRepo) FindEnrollment(ctx context.Context, studentID, courseID uint) (*models.Enrollment, error) {
	args := m.Called(ctx, studentID, courseID)
	if e := args.Get(0); e != nil {
		return e.(*models.Enrollment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEnrollmentRepo) CreateEnrollment(ctx context.Context, enrollment *models.Enrollment) error {
	args := m.Called(ctx, enrollment)
	return args.Error(0)
}

func checkoutEvent(t *testing.T, sessionID string, amountTotal int64, metadata map[string]string) stripe.Event {
	t.Helper()
	raw, err := json.Marshal(map[string]interface{}{
		"id":           sessionID,
		"amount_total": amountTotal,
		"metadata":     metadata,
	})
	require.NoError(t, err)
	return stripe.Event{
		Type: "checkout.session.completed",
		Data: &stripe.EventData{Raw: raw},
	}
}

func userWithStudent(userID, studentID uint) *models.User {
	return &models.User{
		ID:      userID,
		Student: &models.Student{ID: studentID, UserID: userID},
	}
}

func TestProcessEvent_MissingSignature(t *testing.T) {
	verifier := new(mockVerifier)
	repo := new(mockEnrollmentRepo)
	svc := payments.NewWebhookService(verifier, repo)

	result, err := svc.ProcessEvent(context.Background(), []byte(`{}`), "")

	assert.ErrorIs(t, err, payments.ErrMissingSignature)
	assert.Nil(t, result)
	verifier.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "CreateEnrollment", mock.Anything, mock.Anything)
}

func TestProcessEvent_InvalidSignature(t *testing.T) {
	verifier := new(mockVerifier)
	repo := new(mockEnrollmentRepo)
	svc := payments.NewWebhookService(verifier, repo)

	payload := []byte(`{"type":"checkout.session.completed"}`)
	verifier.On("Verify", payload, "t=1,v1=bad").
		Return(stripe.Event{}, errors.New("signature mismatch")).Once()

	result, err := svc.ProcessEvent(context.Background(), payload, "t=1,v1=bad")

	assert.ErrorIs(t, err, payments.ErrInvalidSignature)
	assert.Nil(t, result)
	repo.AssertNotCalled(t, "FindUserWithStudent", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "CreateEnrollment", mock.Anything, mock.Anything)
}

func TestProcessEvent_UnhandledEventType(t *testing.T) {
	verifier := new(mockVerifier)
	repo := new(mockEnrollmentRepo)
	svc := payments.NewWebhookService(verifier, repo)

	payload := []byte(`{"type":"invoice.paid"}`)
	verifier.On("Verify", payload, "sig").
		Return(stripe.Event{Type: "invoice.paid", Data: &stripe.EventData{Raw: []byte(`{}`)}}, nil).Once()

	result, err := svc.ProcessEvent(context.Background(), payload, "sig")

	require.NoError(t, err)
	assert.Equal(t, payments.OutcomeIgnored, result.Outcome)
	repo.AssertNotCalled(t, "CreateEnrollment", mock.Anything, mock.Anything)
}

func TestProcessEvent_PaymentFailedIsLogOnly(t *testing.T) {
	verifier := new(mockVerifier)
	repo := new(mockEnrollmentRepo)
	svc := payments.NewWebhookService(verifier, repo)

	payload := []byte(`{"type":"payment_intent.payment_failed"}`)
	verifier.On("Verify", payload, "sig").
		Return(stripe.Event{
			Type: "payment_intent.payment_failed",
			Data: &stripe.EventData{Raw: []byte(`{"id":"pi_123"}`)},
		}, nil).Once()

	result, err := svc.ProcessEvent(context.Background(), payload, "sig")

	require.NoError(t, err)
	assert.Equal(t, payments.OutcomeFailureAcknowledged, result.Outcome)
	repo.AssertNotCalled(t, "FindUserWithStudent", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "CreateEnrollment", mock.Anything, mock.Anything)
}

func TestProcessEvent_MalformedMetadata(t *testing.T) {
	cases := []struct {
		name     string
		metadata map[string]string
	}{
		{"non-integer course id", map[string]string{"course_id": "abc", "user_id": "7"}},
		{"missing user id", map[string]string{"course_id": "42"}},
		{"empty course id", map[string]string{"course_id": "", "user_id": "7"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			verifier := new(mockVerifier)
			repo := new(mockEnrollmentRepo)
			svc := payments.NewWebhookService(verifier, repo)

			payload := []byte(`irrelevant`)
			verifier.On("Verify", payload, "sig").
				Return(checkoutEvent(t, "sess_bad", 1000, tc.metadata), nil).Once()

			result, err := svc.ProcessEvent(context.Background(), payload, "sig")

			assert.ErrorIs(t, err, payments.ErrMalformedMetadata)
			assert.Nil(t, result)
			repo.AssertNotCalled(t, "FindUserWithStudent", mock.Anything, mock.Anything)
		})
	}
}

func TestProcessEvent_StudentNotFound(t *testing.T) {
	verifier := new(mockVerifier)
	repo := new(mockEnrollmentRepo)
	svc := payments.NewWebhookService(verifier, repo)

	payload := []byte(`irrelevant`)
	verifier.On("Verify", payload, "sig").
		Return(checkoutEvent(t, "sess_abc", 19900, map[string]string{"course_id": "42", "user_id": "7"}), nil).Once()

	// User exists but has no linked student record.
	repo.On("FindUserWithStudent", mock.Anything, uint(7)).
		Return(&models.User{ID: 7}, nil).Once()

	result, err := svc.ProcessEvent(context.Background(), payload, "sig")

	assert.ErrorIs(t, err, payments.ErrStudentNotFound)
	assert.Nil(t, result)
	repo.AssertNotCalled(t, "CreateEnrollment", mock.Anything, mock.Anything)
}

func TestProcessEvent_CreatesEnrollment(t *testing.T) {
	verifier := new(mockVerifier)
	repo := new(mockEnrollmentRepo)
	svc := payments.NewWebhookService(verifier, repo)

	payload := []byte(`irrelevant`)
	verifier.On("Verify", payload, "sig").
		Return(checkoutEvent(t, "sess_abc", 19900, map[string]string{"course_id": "42", "user_id": "7"}), nil).Once()

	repo.On("FindUserWithStudent", mock.Anything, uint(7)).
		Return(userWithStudent(7, 5), nil).Once()
	repo.On("FindEnrollment", mock.Anything, uint(5), uint(42)).
		Return(nil, payments.ErrEnrollmentNotFound).Once()
	repo.On("CreateEnrollment", mock.Anything, mock.AnythingOfType("*models.Enrollment")).
		Return(nil).Once()

	result, err := svc.ProcessEvent(context.Background(), payload, "sig")

	require.NoError(t, err)
	assert.Equal(t, payments.OutcomeEnrolled, result.Outcome)
	require.NotNil(t, result.Enrollment)
	assert.Equal(t, uint(5), result.Enrollment.StudentID)
	assert.Equal(t, uint(42), result.Enrollment.CourseID)
	assert.Equal(t, models.EnrollmentStatusActive, result.Enrollment.Status)
	assert.Equal(t, models.PaymentStatusPaid, result.Enrollment.PaymentStatus)
	assert.False(t, result.Enrollment.EnrolledAt.IsZero())
	assert.Contains(t, result.Enrollment.Notes, "sess_abc")
	assert.Contains(t, result.Enrollment.Notes, "$199.00")
	repo.AssertExpectations(t)
}

func TestProcessEvent_RedeliveryIsIdempotent(t *testing.T) {
	verifier := new(mockVerifier)
	repo := new(mockEnrollmentRepo)
	svc := payments.NewWebhookService(verifier, repo)

	existing := &models.Enrollment{ID: 11, StudentID: 5, CourseID: 42, Status: models.EnrollmentStatusActive}

	payload := []byte(`irrelevant`)
	verifier.On("Verify", payload, "sig").
		Return(checkoutEvent(t, "sess_abc", 19900, map[string]string{"course_id": "42", "user_id": "7"}), nil).Once()

	repo.On("FindUserWithStudent", mock.Anything, uint(7)).
		Return(userWithStudent(7, 5), nil).Once()
	repo.On("FindEnrollment", mock.Anything, uint(5), uint(42)).
		Return(existing, nil).Once()

	result, err := svc.ProcessEvent(context.Background(), payload, "sig")

	require.NoError(t, err)
	assert.Equal(t, payments.OutcomeAlreadyEnrolled, result.Outcome)
	assert.Equal(t, existing, result.Enrollment)
	repo.AssertNotCalled(t, "CreateEnrollment", mock.Anything, mock.Anything)
}

func TestProcessEvent_LostRaceConvertsToIdempotentSuccess(t *testing.T) {
	verifier := new(mockVerifier)
	repo := new(mockEnrollmentRepo)
	svc := payments.NewWebhookService(verifier, repo)

	winner := &models.Enrollment{ID: 12, StudentID: 5, CourseID: 42, Status: models.EnrollmentStatusActive}

	payload := []byte(`irrelevant`)
	verifier.On("Verify", payload, "sig").
		Return(checkoutEvent(t, "sess_abc", 19900, map[string]string{"course_id": "42", "user_id": "7"}), nil).Once()

	repo.On("FindUserWithStudent", mock.Anything, uint(7)).
		Return(userWithStudent(7, 5), nil).Once()
	// First read races a concurrent delivery: nothing found, then the insert
	// hits the unique index, then the refetch sees the winner's row.
	repo.On("FindEnrollment", mock.Anything, uint(5), uint(42)).
		Return(nil, payments.ErrEnrollmentNotFound).Once()
	repo.On("CreateEnrollment", mock.Anything, mock.AnythingOfType("*models.Enrollment")).
		Return(payments.ErrDuplicateEnrollment).Once()
	repo.On("FindEnrollment", mock.Anything, uint(5), uint(42)).
		Return(winner, nil).Once()

	result, err := svc.ProcessEvent(context.Background(), payload, "sig")

	require.NoError(t, err)
	assert.Equal(t, payments.OutcomeAlreadyEnrolled, result.Outcome)
	assert.Equal(t, winner, result.Enrollment)
	repo.AssertExpectations(t)
}

func TestProcessEvent_PersistenceFailure(t *testing.T) {
	verifier := new(mockVerifier)
	repo := new(mockEnrollmentRepo)
	svc := payments.NewWebhookService(verifier, repo)

	payload := []byte(`irrelevant`)
	verifier.On("Verify", payload, "sig").
		Return(checkoutEvent(t, "sess_abc", 19900, map[string]string{"course_id": "42", "user_id": "7"}), nil).Once()

	repo.On("FindUserWithStudent", mock.Anything, uint(7)).
		Return(userWithStudent(7, 5), nil).Once()
	repo.On("FindEnrollment", mock.Anything, uint(5), uint(42)).
		Return(nil, payments.ErrEnrollmentNotFound).Once()
	repo.On("CreateEnrollment", mock.Anything, mock.AnythingOfType("*models.Enrollment")).
		Return(errors.New("connection reset")).Once()

	result, err := svc.ProcessEvent(context.Background(), payload, "sig")

	assert.ErrorIs(t, err, payments.ErrPersistence)
	assert.Nil(t, result)
}

func TestStripeVerifier_RejectsBadSignature(t *testing.T) {
	verifier := payments.NewStripeVerifier("whsec_test")

	_, err := verifier.Verify([]byte(`{"type":"checkout.session.completed"}`), "t=123,v1=deadbeef")

	assert.Error(t, err)
}
