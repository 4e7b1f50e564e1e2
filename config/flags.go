package config

import "flag"

var CliArgs *CliConfig

type CliConfig struct {
	ConfigFile string
	EnvFile    string
	Debug      bool
	Version    bool
}

func ParseArgs() {
	if CliArgs != nil {
		panic("already defined")
	}
	CliArgs = &CliConfig{}
	flag.StringVar(&CliArgs.ConfigFile, "config", "", "Path to an optional YAML config file")
	flag.StringVar(&CliArgs.EnvFile, "env", ".env", "Path to an optional dotenv file")
	flag.BoolVar(&CliArgs.Debug, "d", false, "Enable debug mode")
	flag.BoolVar(&CliArgs.Debug, "debug", false, "Enable debug mode")
	flag.BoolVar(&CliArgs.Version, "v", false, "Print version and exit")
	flag.Parse()
}
