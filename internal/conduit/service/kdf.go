package service

import (
	"context"

	"github.com/aussiebroadwan/conduit/internal/conduit/metrics"
	"github.com/aussiebroadwan/conduit/pkg/cryptox"
	"golang.org/x/sync/semaphore"
)

// KDFPool bounds how many Argon2id derivations run at once. Each run holds
// ~19 MiB, so an unbounded login burst could exhaust memory.
//
// Waiting for a slot honours ctx; once a derivation starts it runs to
// completion. A nil *KDFPool imposes no limit.
type KDFPool struct {
	sem     *semaphore.Weighted
	metrics *metrics.Metrics
}

// NewKDFPool allows up to n concurrent derivations. n <= 0 means unbounded.
func NewKDFPool(n int, m *metrics.Metrics) *KDFPool {
	p := &KDFPool{metrics: m}
	if n > 0 {
		p.sem = semaphore.NewWeighted(int64(n))
	}
	return p
}

// Do runs fn once a slot is free.
func (p *KDFPool) Do(ctx context.Context, op string, fn func()) error {
	if p != nil && p.sem != nil {
		if err := p.sem.Acquire(ctx, 1); err != nil {
			return err
		}
		defer p.sem.Release(1)
	}

	var done func()
	if p != nil {
		done = p.metrics.ObserveKDF(op)
	}
	fn()
	if done != nil {
		done()
	}
	return nil
}

// decoy is verified against when a login names an unknown email, so both
// failure paths cost one KDF run.
var decoy = cryptox.Credential{
	Hash: make([]byte, 32),
	Salt: make([]byte, cryptox.SaltLength),
}
