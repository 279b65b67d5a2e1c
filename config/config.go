// Package config loads the analysis configuration shared by the commands.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/decibelcooper/rsnmix/mixing"
)

// Config is the root analysis configuration. Fields omitted from a YAML file
// keep the values of Default.
type Config struct {
	Pair        Pair        `yaml:"pair"`
	Pool        Pool        `yaml:"pool"`
	Selection   Selection   `yaml:"selection"`
	Correlation Correlation `yaml:"correlation"`
	Histograms  Histograms  `yaml:"histograms"`
}

// Pair holds the mass hypotheses. Defaults describe φ(1020) → K⁺K⁻.
type Pair struct {
	DaughterMasses [2]float64 `yaml:"daughter_masses"`
	ReferenceMass  float64    `yaml:"reference_mass"`
	MotherPDG      int32      `yaml:"mother_pdg"`
}

type Pool struct {
	VertexZEdges    []float64 `yaml:"vertex_z_edges"`
	CentralityEdges []float64 `yaml:"centrality_edges"`
	Capacity        int       `yaml:"capacity"`
	MinOccupancy    int       `yaml:"min_occupancy"`
}

type Selection struct {
	MinPt        float64 `yaml:"min_pt"`
	MaxAbsEta    float64 `yaml:"max_abs_eta"`
	TriggerMinPt float64 `yaml:"trigger_min_pt"`
	// SecondaryRadius is the transverse production radius (mm) beyond which
	// a particle not from a weak decay is flagged as from material.
	SecondaryRadius float64 `yaml:"secondary_radius"`
	// ReferenceMultiplicity maps accepted multiplicity onto a centrality
	// percentile, 0% at or above it.
	ReferenceMultiplicity float64 `yaml:"reference_multiplicity"`
}

type Correlation struct {
	PhiMin float64 `yaml:"phi_min"`
	PhiMax float64 `yaml:"phi_max"`
}

type Histograms struct {
	MassBins int        `yaml:"mass_bins"`
	MassMin  float64    `yaml:"mass_min"`
	MassMax  float64    `yaml:"mass_max"`
	Sideband [2]float64 `yaml:"sideband"`
}

const (
	kaonMass = 0.493677
	phiMass  = 1.019461
	phiPDG   = 333
)

func Default() Config {
	return Config{
		Pair: Pair{
			DaughterMasses: [2]float64{kaonMass, kaonMass},
			ReferenceMass:  phiMass,
			MotherPDG:      phiPDG,
		},
		Pool: Pool{
			VertexZEdges:    []float64{-100, -50, 0, 50, 100},
			CentralityEdges: []float64{0, 10, 30, 50, 80, 100},
			Capacity:        mixing.DefaultCapacity,
			MinOccupancy:    mixing.DefaultMinOccupancy,
		},
		Selection: Selection{
			MinPt:                 0.15,
			MaxAbsEta:             4,
			TriggerMinPt:          2,
			SecondaryRadius:       10,
			ReferenceMultiplicity: 50,
		},
		Correlation: Correlation{
			PhiMin: -math.Pi / 2,
			PhiMax: 3 * math.Pi / 2,
		},
		Histograms: Histograms{
			MassBins: 100,
			MassMin:  0.98,
			MassMax:  1.1,
			Sideband: [2]float64{1.05, 1.1},
		},
	}
}

// Load reads a YAML configuration on top of Default and validates it.
func Load(path string) (Config, error) {
	cfg := Default()

	clean := filepath.Clean(path)
	switch ext := filepath.Ext(clean); ext {
	case ".yaml", ".yml":
	default:
		return cfg, fmt.Errorf("config file must have .yaml or .yml extension, got %q", ext)
	}

	raw, err := os.ReadFile(clean)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", clean, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config file %s: %w", clean, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	for i, m := range c.Pair.DaughterMasses {
		if m < 0 {
			errs = append(errs, fmt.Errorf("pair.daughter_masses[%d] is negative", i))
		}
	}
	if c.Pair.ReferenceMass < 0 {
		errs = append(errs, errors.New("pair.reference_mass is negative"))
	}
	if _, err := mixing.NewManager(c.MixingConfig()); err != nil {
		errs = append(errs, fmt.Errorf("pool: %w", err))
	}
	if c.Selection.MinPt < 0 || c.Selection.MaxAbsEta <= 0 {
		errs = append(errs, errors.New("selection: min_pt must be >= 0 and max_abs_eta > 0"))
	}
	if c.Selection.ReferenceMultiplicity <= 0 {
		errs = append(errs, errors.New("selection.reference_multiplicity must be positive"))
	}
	if !(c.Correlation.PhiMax > c.Correlation.PhiMin) {
		errs = append(errs, errors.New("correlation: phi_max must exceed phi_min"))
	}
	h := c.Histograms
	if h.MassBins <= 0 || !(h.MassMax > h.MassMin) {
		errs = append(errs, errors.New("histograms: need mass_bins > 0 and mass_max > mass_min"))
	}
	if !(h.Sideband[1] > h.Sideband[0]) {
		errs = append(errs, errors.New("histograms.sideband must be an increasing pair"))
	}
	return errors.Join(errs...)
}

func (c Config) MixingConfig() mixing.Config {
	return mixing.Config{
		VertexZEdges:    c.Pool.VertexZEdges,
		CentralityEdges: c.Pool.CentralityEdges,
		Capacity:        c.Pool.Capacity,
		MinOccupancy:    c.Pool.MinOccupancy,
	}
}

// SameDaughters reports whether both daughters share one mass hypothesis.
func (p Pair) SameDaughters() bool {
	return p.DaughterMasses[0] == p.DaughterMasses[1]
}
