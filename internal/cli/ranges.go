package cli

import (
	"fmt"
	"strconv"
	"strings"

	"primerset/core/model"
	"primerset/core/settings"
	"primerset/internal/config"
)

// parseRange reads "prop=min:max"; either side may be empty for an open
// bound. "prop=" removes the property.
func parseRange(s string) (model.Property, *model.Range, error) {
	name, spec, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return "", nil, fmt.Errorf("want prop=min:max, got %q", s)
	}
	p := model.Property(strings.ToLower(strings.TrimSpace(name)))
	if !p.Known() {
		return "", nil, fmt.Errorf("unknown property %q", name)
	}
	if strings.TrimSpace(spec) == "" {
		return p, nil, nil
	}
	lo, hi, ok := strings.Cut(spec, ":")
	if !ok {
		return "", nil, fmt.Errorf("%s: want min:max, got %q", p, spec)
	}
	var r model.Range
	for _, side := range []struct {
		in  string
		dst **float64
	}{{lo, &r.Min}, {hi, &r.Max}} {
		in := strings.TrimSpace(side.in)
		if in == "" {
			continue
		}
		x, err := strconv.ParseFloat(in, 64)
		if err != nil {
			return "", nil, fmt.Errorf("%s: %w", p, err)
		}
		*side.dst = &x
	}
	return p, &r, nil
}

// applyRanges overlays --constraint and --relax flags on the loaded
// settings and revalidates them.
func applyRanges(cfg *config.Config, constraints, relaxations []string) error {
	if len(constraints) == 0 && len(relaxations) == 0 {
		return nil
	}
	s := cfg.Spec.Clone()
	if s.Constraints == nil {
		s.Constraints = map[model.Property]model.Range{}
	}
	if s.Relaxation == nil {
		s.Relaxation = map[model.Property]model.Range{}
	}
	for _, c := range constraints {
		p, r, err := parseRange(c)
		if err != nil {
			return fmt.Errorf("%w: --constraint %v", settings.ErrInvalidSettings, err)
		}
		if r == nil {
			delete(s.Constraints, p)
			delete(s.Relaxation, p)
			continue
		}
		s.Constraints[p] = *r
	}
	for _, c := range relaxations {
		p, r, err := parseRange(c)
		if err != nil {
			return fmt.Errorf("%w: --relax %v", settings.ErrInvalidSettings, err)
		}
		if r == nil {
			delete(s.Relaxation, p)
			continue
		}
		s.Relaxation[p] = *r
	}
	if err := s.Validate(); err != nil {
		return err
	}
	cfg.Spec = s
	return nil
}
