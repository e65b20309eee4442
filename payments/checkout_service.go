package payments

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/anjiri1684/english_academy/models"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/checkout/session"
)

// CheckoutService creates Stripe Checkout Sessions for course purchases. The
// course and user ids ride along as session metadata so the webhook
// reconciler can map the payment back to an enrollment.
type CheckoutService struct {
	frontendURL string
}

func NewCheckoutService(secretKey, frontendURL string) *CheckoutService {
	stripe.Key = secretKey
	return &CheckoutService{frontendURL: strings.TrimRight(frontendURL, "/")}
}

func (s *CheckoutService) CreateCourseSession(course *models.Course, userID uint) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(course.Currency)),
					UnitAmount: stripe.Int64(course.PriceCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(course.Title),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(fmt.Sprintf("%s/courses/%s?payment=success", s.frontendURL, course.Slug)),
		CancelURL:  stripe.String(fmt.Sprintf("%s/courses/%s?payment=cancelled", s.frontendURL, course.Slug)),
	}
	params.AddMetadata("course_id", strconv.FormatUint(uint64(course.ID), 10))
	params.AddMetadata("user_id", strconv.FormatUint(uint64(userID), 10))

	return session.New(params)
}
