package gateway

import (
	"context"
	"math/rand/v2"
	"sync"
)

// RandomResolver accepts a charge with probability SuccessRate.
type RandomResolver struct {
	mu          sync.Mutex
	rng         *rand.Rand
	successRate float64
}

func NewRandomResolver(successRate float64, seed uint64) *RandomResolver {
	return &RandomResolver{
		rng:         rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		successRate: successRate,
	}
}

func (r *RandomResolver) Resolve(context.Context, *Charge) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64() < r.successRate
}

// FixedResolver always returns the same outcome.
type FixedResolver bool

func (f FixedResolver) Resolve(context.Context, *Charge) bool {
	return bool(f)
}
