// Package config provides configuration structures and utilities for careermap.
//
// A Config is built in layers, later layers winning:
//  1. NewConfig defaults
//  2. the YAML configuration file (.careermap in the current or home directory)
//  3. a .env file and CAREERMAP_* environment variables
//  4. command line flags
//
// API credentials (endpoint, payload template, headers) are only ever read
// from the file or the environment.
package config
