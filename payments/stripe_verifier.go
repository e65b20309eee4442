package payments

import (
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/webhook"
)

// StripeVerifier verifies webhook payloads with the endpoint's signing secret.
type StripeVerifier struct {
	endpointSecret string
}

func NewStripeVerifier(endpointSecret string) *StripeVerifier {
	return &StripeVerifier{endpointSecret: endpointSecret}
}

func (v *StripeVerifier) Verify(payload []byte, sigHeader string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, sigHeader, v.endpointSecret)
}
