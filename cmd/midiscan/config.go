package main

import "github.com/BurntSushi/toml"

type config struct {
	Parallel int  `toml:"parallel"`
	Strict   bool `toml:"strict"`
}

func loadConfig(path string) (*config, error) {
	cfg := &config{Parallel: maxGoroutines}
	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
