// Package config defines the application configuration structure and the
// viper-backed loader that populates it from the environment.
package config
