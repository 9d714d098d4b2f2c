// Package config parses the environment variables that configure the
// dispatcher and worker binaries. There is no config file and no backend
// discovery: everything is env vars or hard-wired defaults.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// DefaultBackends is the hard-wired fixed fleet the dispatcher dials. There
// is no discovery mechanism; adding or removing a worker means editing this
// slice.
var DefaultBackends = []string{
	"127.0.0.1:3000",
	"127.0.0.1:3001",
	"127.0.0.1:3002",
}

// Dispatcher holds the dispatcher binary's environment-derived settings.
type Dispatcher struct {
	Port int `env:"PORT" envDefault:"80"`
}

// LoadDispatcher parses the dispatcher's environment variables.
func LoadDispatcher() (Dispatcher, error) {
	var cfg Dispatcher
	if err := env.Parse(&cfg); err != nil {
		return Dispatcher{}, fmt.Errorf("parsing dispatcher config: %w", err)
	}
	return cfg, nil
}

// Environment selects the worker's bind address.
type Environment string

const (
	// Local binds the worker to loopback only.
	Local Environment = "local"
	// DockerCompose binds the worker to all interfaces.
	DockerCompose Environment = "docker-compose"
)

// Worker holds the worker binary's environment-derived settings.
type Worker struct {
	Port        int    `env:"PORT" envDefault:"3000"`
	Environment string `env:"APP_ENVIRONMENT" envDefault:"local"`
}

// LoadWorker parses the worker's environment variables and validates
// APP_ENVIRONMENT. An absent value defaults to Local; any value other than
// "local" or "docker-compose" is a fatal configuration error.
func LoadWorker() (Worker, Environment, error) {
	var cfg Worker
	if err := env.Parse(&cfg); err != nil {
		return Worker{}, "", fmt.Errorf("parsing worker config: %w", err)
	}

	switch Environment(cfg.Environment) {
	case Local:
		return cfg, Local, nil
	case DockerCompose:
		return cfg, DockerCompose, nil
	default:
		return Worker{}, "", fmt.Errorf(
			"invalid environment %q: valid values are %q or %q",
			cfg.Environment, Local, DockerCompose,
		)
	}
}

// BindAddress returns the host to bind the worker's listener to.
func (e Environment) BindAddress() string {
	if e == DockerCompose {
		return "0.0.0.0"
	}
	return "127.0.0.1"
}
