package code

import (
	"fmt"
	"math/rand/v2"

	"tablereservation/internal/domain"
)

type randomGenerator struct{}

// NewRandomGenerator returns a CodeGenerator producing 4-digit zero-padded
// codes drawn uniformly from 0000-9999. Codes carry no uniqueness guarantee;
// they are only compared within a single reservation at visit confirmation.
func NewRandomGenerator() domain.CodeGenerator {
	return randomGenerator{}
}

func (randomGenerator) Generate() string {
	return fmt.Sprintf("%04d", rand.IntN(10000))
}
