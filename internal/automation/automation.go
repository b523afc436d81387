package automation

import (
	"context"
	"fmt"
	"os"

	"github.com/san-kum/projshift/internal/config"
	"github.com/san-kum/projshift/internal/logging"
	"github.com/san-kum/projshift/internal/metrics"
	"github.com/san-kum/projshift/internal/sim"
	"github.com/san-kum/projshift/internal/transition"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted sequence of transitions on one camera. Each step
// starts where the previous one ended, so consecutive steps alternate
// direction.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Preset      string         `yaml:"preset"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep overrides the preset for a single transition. Zero values
// keep the preset's setting, except Duration which is taken when Instant is
// set or when it is non-zero.
type ScenarioStep struct {
	Label    string  `yaml:"label"`
	Duration float64 `yaml:"duration"`
	Instant  bool    `yaml:"instant"`
	Dt       float64 `yaml:"dt"`
	Curve    string  `yaml:"curve"`
}

type StepResult struct {
	Label  string
	Curve  string
	Config sim.Config
	Result *sim.Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}

	return &scenario, nil
}

// RunScenario executes all steps in order and returns the per-step results
// gathered so far when a step fails.
func RunScenario(ctx context.Context, scenario *Scenario) ([]StepResult, error) {
	base := config.DefaultConfig()
	if scenario.Preset != "" {
		base = config.GetPreset(scenario.Preset)
		if base == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", scenario.Preset, config.ListPresets())
		}
	}

	tr, _, err := base.NewTransitioner()
	if err != nil {
		return nil, err
	}
	s := sim.New(tr)
	for _, m := range metrics.Default() {
		s.AddMetric(m)
	}

	log := logging.Logger()
	results := make([]StepResult, 0, len(scenario.Steps))
	for i, step := range scenario.Steps {
		cfg := base.SimConfig()
		if step.Duration != 0 || step.Instant {
			cfg.Duration = step.Duration
		}
		if step.Dt > 0 {
			cfg.Dt = step.Dt
		}

		curveName := base.Curve
		if step.Curve != "" {
			curveName = step.Curve
		}
		curve, err := transition.LookupCurve(curveName)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		tr.SetCurve(curve)

		label := step.Label
		if label == "" {
			label = fmt.Sprintf("step-%d", i+1)
		}
		log.Info("scenario step", "scenario", scenario.Name, "step", i+1, "label", label)

		result, err := s.Run(ctx, cfg)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepResult{Label: label, Curve: curveName, Config: cfg, Result: result})
	}

	return results, nil
}
