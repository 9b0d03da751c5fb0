// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package random provides the seedable index source used to pick between
// rule alternatives.
package random

import (
	"math/rand/v2"
	"time"
)

// Source draws uniformly distributed indexes.
type Source interface {
	// Seed resets the sequence. Equal seeds yield equal sequences.
	Seed(seed uint64)
	// Intn returns an index in [0, n). It returns 0 when n <= 1.
	Intn(n int) int
}

// stream is the second PCG word; only the first one is user supplied.
const stream = 0x9e3779b97f4a7c15

// PCG is a Source backed by math/rand/v2's PCG generator.
type PCG struct {
	pcg *rand.PCG
	rnd *rand.Rand
}

// NewPCG creates a PCG source with the given seed.
func NewPCG(seed uint64) *PCG {
	pcg := rand.NewPCG(seed, stream)
	return &PCG{pcg: pcg, rnd: rand.New(pcg)}
}

// NewTimeSeeded creates a PCG source seeded from the clock.
func NewTimeSeeded() *PCG {
	return NewPCG(uint64(time.Now().UnixNano()))
}

// Seed resets the generator.
func (p *PCG) Seed(seed uint64) {
	p.pcg.Seed(seed, stream)
}

// Intn returns an index in [0, n).
func (p *PCG) Intn(n int) int {
	if n <= 1 {
		return 0
	}
	return p.rnd.IntN(n)
}
