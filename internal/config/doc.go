// Package config provides configuration loading for undostack.
//
// Configuration comes from three sources, later ones overriding earlier:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← UNDOSTACK_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← TOML or YAML, chosen by extension
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │
//	└─────────────────────────────┘
//
// Every source goes through the same validation, so an invalid history
// limit (negative, fractional or not a number) is rejected here and never
// reaches the undo engine.
//
// # Basic Usage
//
//	cfg, err := config.Load("undostack.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cfg, err = config.ApplyEnv(cfg, nil)
//
// # File Format
//
//	[undo]
//	limit = 200
//
//	[log]
//	level = "debug"
//	no_color = true
//
// # Sub-packages
//
//   - watcher: File watching for live reload
package config
