package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// SolutionKey builds the cache key for a planning run. The parts (problem
// fingerprint, planner name, space mode, seed, tuning parameters) are
// JSON-encoded and hashed so any configuration change produces a new key.
func SolutionKey(parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("solution:%s", hex.EncodeToString(sum[:]))
}

// Hash returns the full hex SHA-256 of data. Problem TOML files are hashed
// this way to fingerprint parameterized problems.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
