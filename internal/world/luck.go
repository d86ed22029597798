package world

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"strings"
)

// Luck maps a key to a reproducible value in [0,1).
//
// The key parts are joined into a string ("row:col:tag") and hashed with
// FNV-64a; the hash seeds a PCG stream whose first word becomes the value.
// Saved games depend on this mapping, so it must never change.
func Luck(parts ...any) float64 {
	seed := luckSeed(LuckKey(parts...))
	// #nosec G404 -- deterministic world generation, not security.
	src := rand.NewPCG(seed, seed>>16|3)
	return float64(src.Uint64()>>11) / (1 << 53)
}

// LuckKey returns the string form Luck hashes for the given parts.
func LuckKey(parts ...any) string {
	var sb strings.Builder
	for i, p := range parts {
		if i > 0 {
			sb.WriteByte(':')
		}
		fmt.Fprint(&sb, p)
	}
	return sb.String()
}

func luckSeed(key string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return h.Sum64()
}
