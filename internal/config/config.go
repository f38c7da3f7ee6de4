// Package config defines the data structures related to configuration and
// includes functions for loading, validating and converting the config.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/iwvelando/cashflow-forecast/pkg/constants"
	"github.com/iwvelando/cashflow-forecast/pkg/datetime"
	"github.com/iwvelando/cashflow-forecast/pkg/schedule"
	"github.com/iwvelando/cashflow-forecast/pkg/validation"
	"github.com/spf13/viper"
)

// DateTimeLayout is the format expected for startDate.
const DateTimeLayout = constants.DateTimeLayout

// Configuration holds all configuration for cashflow-forecast.
type Configuration struct {
	Horizon              int                  `yaml:"horizon,omitempty" mapstructure:"horizon"`
	StartDate            string               `yaml:"startDate,omitempty" mapstructure:"startDate"`
	FixedPeriodicPayment *float64             `yaml:"fixedPeriodicPayment,omitempty" mapstructure:"fixedPeriodicPayment"`
	WithRegulation       bool                 `yaml:"withRegulation" mapstructure:"withRegulation"`
	Initial              EventConfig          `yaml:"initial" mapstructure:"initial"`
	Reinvestments        []ReinvestmentConfig `yaml:"reinvestments,omitempty" mapstructure:"reinvestments"`
	Optimizer            *OptimizerConfig     `yaml:"optimizer,omitempty" mapstructure:"optimizer"`
	Logging              LoggingConfig        `yaml:"logging,omitempty" mapstructure:"logging"`
	Output               OutputConfig         `yaml:"output,omitempty" mapstructure:"output"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format             string `yaml:"format,omitempty" mapstructure:"format"` // pretty, csv
	CurrencyPrefix     string `yaml:"currencyPrefix,omitempty" mapstructure:"currencyPrefix"`
	ThousandsSeparator string `yaml:"thousandsSeparator,omitempty" mapstructure:"thousandsSeparator"`
	Summary            bool   `yaml:"summary,omitempty" mapstructure:"summary"`
}

// EventConfig holds the parameters of one funding event.
type EventConfig struct {
	StartPeriod       int               `yaml:"startPeriod,omitempty" mapstructure:"startPeriod"`
	Principal         float64           `yaml:"principal" mapstructure:"principal"`
	OperationCost     float64           `yaml:"operationCost" mapstructure:"operationCost"`
	InstallmentCount  int               `yaml:"installmentCount" mapstructure:"installmentCount"`
	InstallmentAmount float64           `yaml:"installmentAmount" mapstructure:"installmentAmount"`
	DelayPeriods      int               `yaml:"delayPeriods,omitempty" mapstructure:"delayPeriods"`
	NoncollectionRate float64           `yaml:"noncollectionRate,omitempty" mapstructure:"noncollectionRate"`
	Regulation        *RegulationConfig `yaml:"regulation,omitempty" mapstructure:"regulation"`
}

// RegulationConfig holds the regulation sub-schedule of an event.
type RegulationConfig struct {
	GapPeriods        int     `yaml:"gapPeriods" mapstructure:"gapPeriods"`
	InstallmentCount  int     `yaml:"installmentCount" mapstructure:"installmentCount"`
	InstallmentAmount float64 `yaml:"installmentAmount" mapstructure:"installmentAmount"`
	DistributionPct   int     `yaml:"distributionPct" mapstructure:"distributionPct"`
}

// ReinvestmentConfig is an EventConfig booked under a category.
type ReinvestmentConfig struct {
	Category    string `yaml:"category" mapstructure:"category"`
	EventConfig `yaml:",inline" mapstructure:",squash"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return LoadConfigurationFromReader(bytes.NewReader(data))
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
// Each call uses its own viper instance so concurrent loads do not interfere.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")
	v.AutomaticEnv()
	v.SetDefault("horizon", constants.DefaultHorizon)
	v.SetDefault("withRegulation", true)

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// Validate rejects configurations the projection cannot run with. Every
// problem found is reported.
func (c *Configuration) Validate() error {
	var errs []error

	if c.Horizon <= 0 {
		errs = append(errs, fmt.Errorf("horizon must be positive, got %d", c.Horizon))
	}
	if c.StartDate != "" {
		if _, err := datetime.OffsetDate(c.StartDate, DateTimeLayout, 0); err != nil {
			errs = append(errs, fmt.Errorf("invalid startDate %q: %w", c.StartDate, err))
		}
	}
	if c.FixedPeriodicPayment != nil && *c.FixedPeriodicPayment < 0 {
		errs = append(errs, fmt.Errorf("fixedPeriodicPayment %.2f: %w", *c.FixedPeriodicPayment, validation.ErrNegativeValue))
	}
	if c.Output.Format != "" {
		if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
			errs = append(errs, err)
		}
	}

	if err := validation.ValidateFields("initial", c.Initial.Fields(), false); err != nil {
		errs = append(errs, err)
	}
	for i, reinv := range c.Reinvestments {
		name := reinv.Name(i)
		if _, err := schedule.ParseCategory(reinv.Category); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
		if err := validation.ValidateFields(name, reinv.Fields(), true); err != nil {
			errs = append(errs, err)
		}
	}

	if c.Optimizer != nil {
		if err := c.Optimizer.Validate(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings for settings that are valid but likely unintended.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	warnings = append(warnings, validation.EventWarnings("initial investment", c.Initial.Fields(), c.Horizon)...)
	for i, reinv := range c.Reinvestments {
		warnings = append(warnings, validation.EventWarnings(reinv.Name(i), reinv.Fields(), c.Horizon)...)
	}

	if !c.WithRegulation {
		if c.Initial.Regulation != nil {
			warnings = append(warnings, "initial investment defines a regulation schedule but withRegulation is false")
		}
		for i, reinv := range c.Reinvestments {
			if reinv.Regulation != nil {
				warnings = append(warnings, fmt.Sprintf("%s defines a regulation schedule but withRegulation is false", reinv.Name(i)))
			}
		}
	}

	return warnings
}

// Name identifies the i-th reinvestment in messages, e.g. "compra #2".
func (r ReinvestmentConfig) Name(i int) string {
	category := r.Category
	if c, err := schedule.ParseCategory(r.Category); err == nil {
		category = string(c)
	}
	if category == "" {
		category = "reinvestment"
	}
	return fmt.Sprintf("%s #%d", category, i+1)
}
