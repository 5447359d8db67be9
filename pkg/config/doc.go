// Package config loads a simulation scenario from YAML: which scheduler
// variant to run, its tuning parameters, and the process mix to admit at
// startup. cmd/osim's run and sweep subcommands both build a Dispatcher
// from a Scenario.
package config
