package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator creates opaque IDs suitable for naming leagues and their snapshots.
type Generator interface {
	NewID() (string, error)
}

type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewID() (string, error) {
	value, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}

	return value.String(), nil
}

// FixedGenerator always returns the same ID. It keeps league creation
// deterministic in tests and scripted sessions.
type FixedGenerator struct {
	ID string
}

func (g FixedGenerator) NewID() (string, error) {
	if g.ID == "" {
		return "", fmt.Errorf("fixed id is empty")
	}
	return g.ID, nil
}
