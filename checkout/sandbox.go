package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Magic nonces the sandbox recognises, mirroring the processor's own test
// tokens.
const (
	SandboxDeclinedNonce = "fake-processor-declined-nonce"
	SandboxErrorNonce    = "fake-gateway-failure-nonce"
)

// SandboxGateway approves every sale without leaving the process. Used in
// dev/sandbox mode so the full flow works without processor credentials.
type SandboxGateway struct{}

func NewSandboxGateway() *SandboxGateway {
	return &SandboxGateway{}
}

func (g *SandboxGateway) GenerateClientToken(ctx context.Context) (string, error) {
	return "sandbox-" + uuid.NewString(), nil
}

func (g *SandboxGateway) Sale(ctx context.Context, req SaleRequest) (*SaleResult, error) {
	switch req.PaymentMethodNonce {
	case SandboxErrorNonce:
		return nil, fmt.Errorf("sandbox gateway unavailable")
	case SandboxDeclinedNonce:
		return &SaleResult{Success: false, Message: "Processor Declined"}, nil
	default:
		return &SaleResult{
			Success:       true,
			TransactionID: uuid.NewString(),
		}, nil
	}
}
