package orchestration

import (
	"github.com/agbru/karatsuba/internal/multiplier"
)

// GetMultipliersToRun resolves an algorithm selection to multipliers. "all"
// selects every registered multiplier in sorted name order; any other value
// selects the multiplier of that name, or none if it is unknown.
//
// Parameters:
//   - algo: The algorithm name, or "all".
//   - factory: The registry to resolve names against.
//
// Returns:
//   - []multiplier.Multiplier: The multipliers to execute.
func GetMultipliersToRun(algo string, factory multiplier.Factory) []multiplier.Multiplier {
	if algo == "all" {
		names := factory.List()
		multipliers := make([]multiplier.Multiplier, 0, len(names))
		for _, name := range names {
			if m, err := factory.Get(name); err == nil {
				multipliers = append(multipliers, m)
			}
		}
		return multipliers
	}
	if m, err := factory.Get(algo); err == nil {
		return []multiplier.Multiplier{m}
	}
	return nil
}
