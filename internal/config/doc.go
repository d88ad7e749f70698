// Package config provides configuration structures and utilities for sitegrade.
// It defines the options of an evaluation run and the YAML configuration
// file that can replace the built-in rule tables.
package config
