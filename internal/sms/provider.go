package sms

import "context"

// Provider is the outbound-SMS contract consumed by the verification flows.
// Implementations: Eskiz (production), Mock (development without gateway
// credentials).
type Provider interface {
	SendSMS(ctx context.Context, phone, message string) (*GatewayResponse, error)
	SendOTP(ctx context.Context, phone, code string) (*GatewayResponse, error)
}

// GatewayResponse is the gateway's decoded success payload.
type GatewayResponse struct {
	ID      string `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
	Status  string `json:"status,omitempty"`
}
