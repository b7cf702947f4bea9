// Package config handles YAML configuration loading with environment variable substitution.
//
// Configuration files support ${VAR} syntax for environment variable interpolation.
// A .env file, if present, is loaded into the environment before expansion so
// secrets such as the API key can stay out of the YAML.
package config
