package billing

import (
	"context"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"github.com/aiagencydirectory/api/internal/public/application"
)

// StripeGateway implements application.CheckoutGateway against Stripe
// Checkout in subscription mode.
type StripeGateway struct {
	client     *client.API
	priceID    string
	successURL string
	cancelURL  string
}

// NewStripeGateway creates a gateway bound to one price and redirect pair.
func NewStripeGateway(apiKey, priceID, successURL, cancelURL string) *StripeGateway {
	sc := &client.API{}
	sc.Init(apiKey, nil)
	return &StripeGateway{
		client:     sc,
		priceID:    priceID,
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

func (g *StripeGateway) CreateSession(ctx context.Context, customerEmail, clientReferenceID string) (*application.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		CustomerEmail:     stripe.String(customerEmail),
		ClientReferenceID: stripe.String(clientReferenceID),
		SuccessURL:        stripe.String(g.successURL),
		CancelURL:         stripe.String(g.cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(g.priceID),
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx

	session, err := g.client.CheckoutSessions.New(params)
	if err != nil {
		return nil, err
	}
	return mapSession(session), nil
}

func (g *StripeGateway) GetSession(ctx context.Context, sessionID string) (*application.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	session, err := g.client.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, err
	}
	return mapSession(session), nil
}

func mapSession(session *stripe.CheckoutSession) *application.CheckoutSession {
	return &application.CheckoutSession{
		ID:                session.ID,
		URL:               session.URL,
		PaymentStatus:     string(session.PaymentStatus),
		ClientReferenceID: session.ClientReferenceID,
	}
}
