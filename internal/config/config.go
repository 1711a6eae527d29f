// Package config loads run settings from a file, PRIMERSET_* environment
// variables and bound command-line flags through viper, on top of the
// built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"primerset/core/candidates"
	"primerset/core/design"
	"primerset/core/model"
	"primerset/core/setcover"
	"primerset/core/settings"
	"primerset/core/thermo"
)

// EnvPrefix namespaces environment overrides, e.g. PRIMERSET_DESIGN_REQUIRED.
const EnvPrefix = "PRIMERSET"

// File mirrors the on-disk layout. Concentrations are strings with units
// ("50mM", "250nM").
type File struct {
	Constraints   map[string]model.Range `mapstructure:"constraints"`
	Relaxation    map[string]model.Range `mapstructure:"relaxation"`
	RelaxSteps    int                    `mapstructure:"relax_steps"`
	MaxIterations int                    `mapstructure:"max_iterations"`
	Coverage      struct {
		Model     string  `mapstructure:"model"`
		Threshold float64 `mapstructure:"threshold"`
	} `mapstructure:"coverage"`
	Options struct {
		MaxMismatches        int     `mapstructure:"max_mismatches"`
		MaxOtherBindingRatio float64 `mapstructure:"max_other_binding_ratio"`
		Region               string  `mapstructure:"region"`
		TerminalWindow       int     `mapstructure:"terminal_window"`
	} `mapstructure:"options"`
	PCR struct {
		AnnealTemp float64 `mapstructure:"anneal_temp"`
		Na         string  `mapstructure:"na"`
		Mg         string  `mapstructure:"mg"`
		DNTP       string  `mapstructure:"dntp"`
		Primer     string  `mapstructure:"primer"`
	} `mapstructure:"pcr"`
	Sweep struct {
		Width float64 `mapstructure:"width"`
		Step  float64 `mapstructure:"step"`
	} `mapstructure:"sweep"`
	Design struct {
		Direction     string        `mapstructure:"direction"`
		Required      float64       `mapstructure:"required"`
		Initializer   string        `mapstructure:"initializer"`
		Optimizer     string        `mapstructure:"optimizer"`
		MinLen        int           `mapstructure:"min_len"`
		MaxLen        int           `mapstructure:"max_len"`
		MaxDegeneracy int           `mapstructure:"max_degeneracy"`
		GroupSpecific bool          `mapstructure:"group_specific"`
		Timeout       time.Duration `mapstructure:"timeout"`
		Workers       int           `mapstructure:"workers"`
		CacheSize     int           `mapstructure:"cache_size"`
	} `mapstructure:"design"`
	Log struct {
		Mode  string `mapstructure:"mode"`
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

// Config is the resolved configuration of one run.
type Config struct {
	Spec      settings.Spec
	Request   design.Request
	Workers   int
	CacheSize int
	LogMode   string
	LogLevel  string
	Source    string // config file used, empty when none
}

// New returns a viper instance seeded with defaults and environment
// binding. Callers bind their flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// SetDefaults registers every scalar key so that environment variables
// resolve. Constraint maps are defaulted in Load.
func SetDefaults(v *viper.Viper) {
	s := settings.Default()
	r := design.DefaultRequest()
	v.SetDefault("relax_steps", s.RelaxSteps)
	v.SetDefault("max_iterations", s.MaxIterations)
	v.SetDefault("coverage.model", string(s.Coverage.Model))
	v.SetDefault("coverage.threshold", s.Coverage.Threshold)
	v.SetDefault("options.max_mismatches", s.Options.MaxMismatches)
	v.SetDefault("options.max_other_binding_ratio", s.Options.MaxOtherBindingRatio)
	v.SetDefault("options.region", string(s.Options.Region))
	v.SetDefault("options.terminal_window", s.Options.TerminalWindow)
	v.SetDefault("pcr.anneal_temp", s.PCR.AnnealC)
	v.SetDefault("pcr.na", concString(s.PCR.NaM))
	v.SetDefault("pcr.mg", concString(s.PCR.MgM))
	v.SetDefault("pcr.dntp", concString(s.PCR.DNTPM))
	v.SetDefault("pcr.primer", concString(s.PCR.PrimerM))
	v.SetDefault("sweep.width", s.Sweep.Width)
	v.SetDefault("sweep.step", s.Sweep.Step)
	v.SetDefault("design.direction", string(r.Direction))
	v.SetDefault("design.required", r.Required)
	v.SetDefault("design.initializer", string(r.Initializer))
	v.SetDefault("design.optimizer", string(r.Optimizer))
	v.SetDefault("design.min_len", r.MinLen)
	v.SetDefault("design.max_len", r.MaxLen)
	v.SetDefault("design.max_degeneracy", r.MaxDegeneracy)
	v.SetDefault("design.group_specific", r.GroupSpecific)
	v.SetDefault("design.timeout", r.Timeout)
	v.SetDefault("design.workers", 0)
	v.SetDefault("design.cache_size", 0)
	v.SetDefault("log.mode", "dev")
	v.SetDefault("log.level", "info")
}

func concString(mol float64) string {
	switch {
	case mol >= 1e-3:
		return fmt.Sprintf("%gmM", mol*1e3)
	case mol >= 1e-6:
		return fmt.Sprintf("%guM", mol*1e6)
	default:
		return fmt.Sprintf("%gnM", mol*1e9)
	}
}

// Load reads path (if non-empty) into v and resolves the run
// configuration. Every problem wraps settings.ErrInvalidSettings.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("%w: read %s: %v", settings.ErrInvalidSettings, path, err)
		}
	}
	var f File
	if err := v.Unmarshal(&f); err != nil {
		return Config{}, fmt.Errorf("%w: decode: %v", settings.ErrInvalidSettings, err)
	}
	cfg, err := resolve(f, v.IsSet("constraints"), v.IsSet("relaxation"))
	if err != nil {
		return Config{}, err
	}
	cfg.Source = v.ConfigFileUsed()
	return cfg, nil
}

func resolve(f File, hasConstraints, hasRelaxation bool) (Config, error) {
	var errs []error
	add := func(field, format string, args ...any) {
		errs = append(errs, &settings.ConfigError{Field: field, Msg: fmt.Sprintf(format, args...)})
	}

	s := settings.Default()
	if hasConstraints {
		s.Constraints = ranges(f.Constraints)
		if !hasRelaxation {
			// keep default boundaries only for properties still constrained
			for p := range s.Relaxation {
				if _, ok := s.Constraints[p]; !ok {
					delete(s.Relaxation, p)
				}
			}
		}
	}
	if hasRelaxation {
		s.Relaxation = ranges(f.Relaxation)
	}
	s.RelaxSteps = f.RelaxSteps
	s.MaxIterations = f.MaxIterations
	s.Coverage = settings.Coverage{Model: settings.CoverageModel(strings.ToLower(f.Coverage.Model)), Threshold: f.Coverage.Threshold}
	s.Options = settings.Options{
		MaxMismatches:        f.Options.MaxMismatches,
		MaxOtherBindingRatio: f.Options.MaxOtherBindingRatio,
		Region:               settings.Region(strings.ToLower(f.Options.Region)),
		TerminalWindow:       f.Options.TerminalWindow,
	}
	s.Sweep = settings.Sweep{Width: f.Sweep.Width, Step: f.Sweep.Step}

	s.PCR = thermo.Conditions{AnnealC: f.PCR.AnnealTemp}
	for _, c := range []struct {
		field string
		in    string
		dst   *float64
	}{
		{"pcr.na", f.PCR.Na, &s.PCR.NaM},
		{"pcr.mg", f.PCR.Mg, &s.PCR.MgM},
		{"pcr.dntp", f.PCR.DNTP, &s.PCR.DNTPM},
		{"pcr.primer", f.PCR.Primer, &s.PCR.PrimerM},
	} {
		x, err := thermo.ParseConc(c.in)
		if err != nil {
			add(c.field, "%v", err)
			continue
		}
		*c.dst = x
	}

	r := design.Request{
		Required:      f.Design.Required,
		MinLen:        f.Design.MinLen,
		MaxLen:        f.Design.MaxLen,
		MaxDegeneracy: f.Design.MaxDegeneracy,
		GroupSpecific: f.Design.GroupSpecific,
		Timeout:       f.Design.Timeout,
	}
	var err error
	if r.Direction, err = model.ParseDirection(f.Design.Direction); err != nil {
		add("design.direction", "%v", err)
	}
	if r.Initializer, err = candidates.ParseStrategy(f.Design.Initializer); err != nil {
		add("design.initializer", "%v", err)
	}
	if r.Optimizer, err = setcover.ParseStrategy(f.Design.Optimizer); err != nil {
		add("design.optimizer", "%v", err)
	}
	if f.Design.Workers < 0 {
		add("design.workers", "must be ≥ 0, got %d", f.Design.Workers)
	}
	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	if err := s.Validate(); err != nil {
		return Config{}, err
	}
	return Config{
		Spec:      s,
		Request:   r,
		Workers:   f.Design.Workers,
		CacheSize: f.Design.CacheSize,
		LogMode:   f.Log.Mode,
		LogLevel:  f.Log.Level,
	}, nil
}

func ranges(in map[string]model.Range) map[model.Property]model.Range {
	out := make(map[model.Property]model.Range, len(in))
	for k, r := range in {
		out[model.Property(strings.ToLower(k))] = r.Clone()
	}
	return out
}
