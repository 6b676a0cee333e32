// Package config provides configuration types and loading utilities for the
// reservation client and its demo tooling.
//
// Structured configuration is loaded once through Load (yaml file + .env +
// environment variables via viper). The mock/real backend switch and the
// request timeout override are deliberately NOT part of the structured
// snapshot: they are read from the environment on every call (MockEnabled,
// RequestTimeout) so a late change is always observed.
//
// Usage:
//
//	type MyConfig struct {
//	    App     config.AppConfig     `yaml:"app" mapstructure:"app"`
//	    Backend config.BackendConfig `yaml:"backend" mapstructure:"backend"`
//	    Log     config.LogConfig     `yaml:"log" mapstructure:"log"`
//	}
//
//	cfg := &MyConfig{}
//	if err := config.Load(cfg, config.LoadOptions{EnvPrefix: "RESERVE", AllowNoConfig: true}); err != nil {
//	    log.Fatal(err)
//	}
package config
