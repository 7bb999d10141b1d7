// Package config holds the root command line layout.
package config

import "github.com/Alia5/overdrive/internal/cmd"

type Log struct {
	Level   string `help:"Log level (trace, debug, info, warn, error)" default:"info" enum:"trace,debug,info,warn,error" env:"OVERDRIVE_LOG_LEVEL"`
	File    string `help:"Also write logs to this file" env:"OVERDRIVE_LOG_FILE"`
	RawFile string `help:"Write raw scancode bytes to this file" env:"OVERDRIVE_LOG_RAW_FILE"`
}

type CLI struct {
	ConfigFile string `name:"config" help:"Path to a JSON, YAML or TOML config file" env:"OVERDRIVE_CONFIG" type:"path"`
	Log        Log    `embed:"" prefix:"log."`

	Serve    cmd.Serve         `cmd:"" help:"Run the engine with the control API"`
	Simulate cmd.Simulate      `cmd:"" help:"Feed a matrix event script through the engine and print the output"`
	Check    cmd.Check         `cmd:"" help:"Report keycodes and keymap cells with no set-2 scancode"`
	Ctl      cmd.Ctl           `cmd:"" help:"Control a running serve instance"`
	Config   cmd.ConfigCommand `cmd:"" help:"Configuration helpers"`
}
