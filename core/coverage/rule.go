// core/coverage/rule.go
package coverage

import (
	"fmt"

	"primerset/core/model"
	"primerset/core/primer"
	"primerset/core/settings"
	"primerset/core/thermo"
)

// TerminalMismatchFactor scales the amplification probability when the
// 3'-terminal base of the primer is mismatched.
const TerminalMismatchFactor = 0.1

// Rule decides whether one in-region binding counts as coverage. It returns
// the verdict and the probability behind it (1 for boolean rules).
type Rule interface {
	Model() settings.CoverageModel
	Covered(p *model.Primer, b model.Binding) (bool, float64)
}

// gate is implemented by rules that can reject a primer as a whole based on
// its off-target ratio.
type gate interface {
	Admit(offTargetRatio float64) bool
}

// NewRule builds the rule selected by s.
func NewRule(s settings.Spec) (Rule, error) {
	switch s.Coverage.Model {
	case settings.Identity:
		return IdentityRule{}, nil
	case settings.Mismatch:
		return MismatchRule{Max: s.Options.MaxMismatches, MaxOtherRatio: s.Options.MaxOtherBindingRatio}, nil
	case settings.Probabilistic:
		return ProbabilisticRule{Threshold: s.Coverage.Threshold, AnnealC: s.PCR.AnnealC}, nil
	}
	return nil, fmt.Errorf("%w: unknown coverage model %q", settings.ErrInvalidSettings, s.Coverage.Model)
}

// IdentityRule covers on a perfect match.
type IdentityRule struct{}

func (IdentityRule) Model() settings.CoverageModel { return settings.Identity }

func (IdentityRule) Covered(_ *model.Primer, b model.Binding) (bool, float64) {
	if b.Mismatches == 0 {
		return true, 1
	}
	return false, 0
}

// MismatchRule covers up to Max mismatches. When MaxOtherRatio < 1, a primer
// whose off-target ratio exceeds it covers nothing.
type MismatchRule struct {
	Max           int
	MaxOtherRatio float64
}

func (MismatchRule) Model() settings.CoverageModel { return settings.Mismatch }

func (r MismatchRule) Covered(_ *model.Primer, b model.Binding) (bool, float64) {
	if b.Mismatches <= r.Max {
		return true, 1
	}
	return false, 0
}

func (r MismatchRule) Admit(ratio float64) bool {
	return r.MaxOtherRatio >= 1 || ratio <= r.MaxOtherRatio
}

// ProbabilisticRule estimates the relative amplification efficiency from the
// position-weighted mismatch ΔΔG and covers when it reaches Threshold.
type ProbabilisticRule struct {
	Threshold float64
	AnnealC   float64
}

func (ProbabilisticRule) Model() settings.CoverageModel { return settings.Probabilistic }

func (r ProbabilisticRule) Covered(p *model.Primer, b model.Binding) (bool, float64) {
	prob := Probability(p.Seq, b, r.AnnealC)
	return prob >= r.Threshold, prob
}

// Probability is the estimated amplification probability of a binding
// relative to a perfect duplex. Zero mismatches ⇒ 1.
func Probability(seq string, b model.Binding, annealC float64) float64 {
	if b.Mismatches == 0 {
		return 1
	}
	ddG := thermo.MismatchDeltaG(seq, b.Site, b.MismatchPos, func(c byte) []byte {
		return primer.MaskOf(c).Bases()
	})
	prob := thermo.RelativeEfficiency(ddG, annealC)
	for _, i := range b.MismatchPos {
		if i == len(seq)-1 {
			prob *= TerminalMismatchFactor
			break
		}
	}
	return prob
}
