package sms

import (
	"context"
	"fmt"
	"log"
)

// Mock prints messages to the log instead of calling the gateway. Used in
// development when no Eskiz credentials are configured.
type Mock struct{}

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SendSMS(ctx context.Context, phone, message string) (*GatewayResponse, error) {
	log.Printf("[SMS] MOCK to=%s message=%q", phone, message)
	return &GatewayResponse{Status: "sent", Message: "mock"}, nil
}

func (m *Mock) SendOTP(ctx context.Context, phone, code string) (*GatewayResponse, error) {
	return m.SendSMS(ctx, phone, fmt.Sprintf("Sizning tasdiqlash kodingiz: %s", code))
}
