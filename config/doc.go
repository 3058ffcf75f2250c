// Package config loads client settings from the environment.
//
// Every field maps to one RULE34_* variable and has a default, so an empty
// environment yields a usable configuration pointing at the public API.
package config
