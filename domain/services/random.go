package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"rollf/domain/entities"
)

// randomRollValue draws uniformly from [1,100].
//
// crypto/rand rather than a seeded PRNG: roll outcomes must be unpredictable
// and must not repeat across process restarts.
func randomRollValue() (int, error) {
	span := int64(entities.MaxRollValue - entities.MinRollValue + 1)
	n, err := rand.Int(rand.Reader, big.NewInt(span))
	if err != nil {
		return 0, fmt.Errorf("random generation failed: %w", err)
	}
	return entities.MinRollValue + int(n.Int64()), nil
}

// RandomDelay draws a uniform duration in [0, max)
func RandomDelay(max time.Duration) (time.Duration, error) {
	if max <= 0 {
		return 0, nil
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0, fmt.Errorf("random generation failed: %w", err)
	}
	return time.Duration(n.Int64()), nil
}

// RandomBelow draws a uniform integer in [0, n)
func RandomBelow(n int) (int, error) {
	if n <= 0 {
		return 0, nil
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("random generation failed: %w", err)
	}
	return int(v.Int64()), nil
}
