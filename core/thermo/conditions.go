// core/thermo/conditions.go
package thermo

import (
	"fmt"
	"math"
	"strings"
)

// Conditions holds the PCR solution knobs every thermodynamic property is
// evaluated under. All concentrations are mol/L.
type Conditions struct {
	AnnealC float64 // annealing temperature, °C
	NaM     float64 // monovalent cations
	MgM     float64 // Mg2+
	DNTPM   float64 // total dNTP (chelates Mg2+)
	PrimerM float64 // single primer concentration
}

// DefaultConditions are common multiplex PCR defaults.
func DefaultConditions() Conditions {
	return Conditions{
		AnnealC: 55,
		NaM:     50e-3,
		MgM:     1.5e-3,
		DNTPM:   0.2e-3,
		PrimerM: 250e-9,
	}
}

// Validate rejects non-physical values.
func (c Conditions) Validate() error {
	switch {
	case c.NaM <= 0 && c.MgM <= 0:
		return fmt.Errorf("conditions: at least one of Na+ or Mg2+ must be > 0")
	case c.NaM < 0 || c.MgM < 0 || c.DNTPM < 0:
		return fmt.Errorf("conditions: concentrations must be ≥ 0")
	case c.PrimerM <= 0:
		return fmt.Errorf("conditions: primer concentration must be > 0")
	case c.AnnealC < -50 || c.AnnealC > 120:
		return fmt.Errorf("conditions: annealing temperature %.1f °C out of range", c.AnnealC)
	}
	return nil
}

// EffectiveMonovalent returns the Na+-equivalent fed into salt corrections:
// Na_eq = Na + 120·sqrt(Mg − dNTP) in mM (von Ahsen et al. 2001). Free Mg2+
// below zero (excess dNTP) contributes nothing.
func (c Conditions) EffectiveMonovalent() float64 {
	na := c.NaM
	if free := c.MgM - c.DNTPM; free > 0 {
		na += 120 * math.Sqrt(free*1e3) * 1e-3
	}
	if na <= 0 {
		return 1e-6
	}
	return na
}

// ParseConc parses "50mM", "250nM", "3uM", "0.05" → mol/L.
func ParseConc(s string) (float64, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, fmt.Errorf("empty concentration")
	}
	unit := ""
	val := 0.0
	n, err := fmt.Sscanf(s, "%f%s", &val, &unit)
	if err != nil && n != 1 {
		return 0, fmt.Errorf("invalid conc %q: %w", s, err)
	}
	switch unit {
	case "m", "":
		return val, nil
	case "mm":
		return val * 1e-3, nil
	case "um", "μm":
		return val * 1e-6, nil
	case "nm":
		return val * 1e-9, nil
	default:
		return 0, fmt.Errorf("unknown unit %q in %q", unit, s)
	}
}
