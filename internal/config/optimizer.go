package config

import (
	"fmt"

	"github.com/iwvelando/cashflow-forecast/pkg/schedule"
)

const (
	defaultMaxIterations = 50
	defaultMaxPrincipal  = 1e12
)

// OptimizerConfig describes a reinvestment whose principal should be sized so
// the cumulative balance never drops below Floor from its start period on.
type OptimizerConfig struct {
	Category      string      `yaml:"category" mapstructure:"category"`
	Floor         float64     `yaml:"floor" mapstructure:"floor"`
	MaxPrincipal  float64     `yaml:"maxPrincipal,omitempty" mapstructure:"maxPrincipal"`
	MaxIterations int         `yaml:"maxIterations,omitempty" mapstructure:"maxIterations"`
	Template      EventConfig `yaml:"template" mapstructure:"template"`
}

// Normalize ensures defaults are applied before validation.
func (o *OptimizerConfig) Normalize() {
	if o == nil {
		return
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = defaultMaxIterations
	}
	if o.MaxPrincipal <= 0 {
		o.MaxPrincipal = defaultMaxPrincipal
	}
}

// Validate checks the optimizer directive.
func (o *OptimizerConfig) Validate() error {
	if o == nil {
		return fmt.Errorf("optimizer configuration cannot be nil")
	}

	o.Normalize()

	if _, err := schedule.ParseCategory(o.Category); err != nil {
		return fmt.Errorf("optimizer: %w", err)
	}
	if o.Template.StartPeriod < 1 {
		return fmt.Errorf("optimizer: template startPeriod must be at least 1, got %d", o.Template.StartPeriod)
	}
	if o.Template.OperationCost <= 0 {
		return fmt.Errorf("optimizer: template operationCost must be positive, got %.2f", o.Template.OperationCost)
	}
	if o.MaxPrincipal < o.Template.OperationCost {
		return fmt.Errorf("optimizer: maxPrincipal %.2f is below one operation cost %.2f", o.MaxPrincipal, o.Template.OperationCost)
	}
	return nil
}
