// Package config loads synthesis configuration from the environment.
//
// All values affect naming and tagging only; there is no behavioral
// branching on configuration.
package config

import (
	"github.com/spf13/viper"
)

// Config holds the environment inputs for one synthesis run.
type Config struct {
	// Region is the AWS region used when rendering resource ARNs.
	Region string
	// Stage suffixes every stack, role, and function name.
	Stage string
	// AccountID is the AWS account used when rendering resource ARNs.
	// Empty means "resolve at deploy time" via the AWS::AccountId
	// pseudo parameter.
	AccountID string
	// Project is the value of the project tag on every stack.
	Project string
}

// Load reads configuration from environment variables, applying the
// documented defaults.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("STAGE", "newstg")
	v.SetDefault("AWS_ACCOUNT_ID", "")
	v.SetDefault("PROJECT", "dynamic-modules")

	return &Config{
		Region:    v.GetString("AWS_REGION"),
		Stage:     v.GetString("STAGE"),
		AccountID: v.GetString("AWS_ACCOUNT_ID"),
		Project:   v.GetString("PROJECT"),
	}
}
