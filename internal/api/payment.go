package api

import (
	"context"
	"fmt"
	"net/http"
)

type checkoutResponse struct {
	Success     bool   `json:"success"`
	CheckoutURL string `json:"checkout_url"`
}

// opens a hosted checkout session and returns its URL
func (c *Backend) CreateCheckoutSession(ctx context.Context) (string, error) {
	var resp checkoutResponse
	if err := c.doJSON(ctx, http.MethodPost, "/stripe/create-checkout-session", nil, &resp); err != nil {
		return "", err
	}

	if !resp.Success || resp.CheckoutURL == "" {
		return "", fmt.Errorf("checkout session rejected")
	}

	return resp.CheckoutURL, nil
}

// confirms a completed checkout session against the backend
func (c *Backend) VerifyPayment(ctx context.Context, sessionID string) error {
	var resp successResponse
	if err := c.doJSON(ctx, http.MethodGet, "/stripe/verify-payment/"+sessionID, nil, &resp); err != nil {
		return err
	}

	if !resp.Success {
		return fmt.Errorf("payment not verified")
	}

	return nil
}

// grants premium without payment; only honored outside production
func (c *Backend) ActivatePremiumTest(ctx context.Context) error {
	var resp successResponse
	if err := c.doJSON(ctx, http.MethodPost, "/stripe/activate-premium-test", nil, &resp); err != nil {
		return err
	}

	if !resp.Success {
		return fmt.Errorf("test activation rejected")
	}

	return nil
}
