package randutil

import (
	"encoding/binary"
	"io"
	rand "math/rand/v2"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Every component derives its generator here so that a single seed replays a
// whole run.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Derive returns an independent seed for a sub-stream of seed, e.g. one per
// game or one per seat. Equal inputs always give equal seeds.
func Derive(seed int64, stream ...int64) int64 {
	x := mix(uint64(seed))
	for _, s := range stream {
		x = mix(x ^ mix(uint64(s)+goldenRatio64))
	}
	return int64(x)
}

// NewReader returns a deterministic byte stream for seed
func NewReader(seed int64) io.Reader {
	var key [32]byte
	x := uint64(seed)
	for i := 0; i < len(key); i += 8 {
		x = mix(x + goldenRatio64)
		binary.LittleEndian.PutUint64(key[i:], x)
	}
	return rand.NewChaCha8(key)
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
