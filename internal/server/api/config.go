package api

import "time"

// ServerConfig represents the control API configuration of the serve command.
type ServerConfig struct {
	Addr                 string        `help:"Control API listen address" default:"localhost:3243" env:"OVERDRIVE_API_ADDR"`
	RequireLocalHostAuth bool          `help:"Require the API password for loopback clients too" default:"false" env:"OVERDRIVE_API_REQUIRE_LOCALHOST_AUTH"`
	Password             string        `kong:"-"`
	ConnectionTimeout    time.Duration `kong:"-"`
}
