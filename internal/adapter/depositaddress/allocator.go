// Package depositaddress provides a deterministic stand-in for the
// out-of-scope deposit-address allocator (spec.md §1). A production
// deployment wires this port to a custodial wallet/HSM service; no
// such SDK appears anywhere in this repo's dependency pack, so this
// adapter is a minimal, self-contained implementation rather than a
// fabricated client for a service that doesn't exist here (see
// DESIGN.md).
package depositaddress

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"stablegate/internal/core/ports"
)

// DeterministicAllocator mints a fresh pseudo-address per call by
// hashing random bytes — it never reuses an address within a process
// lifetime, so the matcher's deposit-address tie-break rule (spec.md
// §4.1) only ever engages across allocator restarts or explicit
// address recycling done outside this repo.
type DeterministicAllocator struct{}

// NewDeterministicAllocator creates a new DeterministicAllocator.
func NewDeterministicAllocator() ports.DepositAddressAllocator {
	return &DeterministicAllocator{}
}

// Allocate returns a new address for chain/token. EVM-family chains
// get a 0x-prefixed 20-byte hex address; anything else gets a bare
// 32-byte hex string, since this repo has no chain-specific address
// encoding library to reach for (see DESIGN.md).
func (a *DeterministicAllocator) Allocate(ctx context.Context, chain, token string) (string, error) {
	switch chain {
	case "ethereum", "polygon", "arbitrum":
		raw := make([]byte, 20)
		if _, err := rand.Read(raw); err != nil {
			return "", fmt.Errorf("depositaddress: generating address bytes: %w", err)
		}
		return "0x" + hex.EncodeToString(raw), nil
	default:
		raw := make([]byte, 32)
		if _, err := rand.Read(raw); err != nil {
			return "", fmt.Errorf("depositaddress: generating address bytes: %w", err)
		}
		return hex.EncodeToString(raw), nil
	}
}
