// Package config loads the editor's settings.
//
// Settings come from three layers, later layers overriding earlier ones:
//
//	1. Built-in defaults
//	2. The user's config file: $XDG_CONFIG_HOME/kestrel/config.toml
//	   (or config.yaml / config.yml), or the file named by -config
//	3. Environment variables: KESTREL_<SECTION>_<KEY>
//
// A missing config file is not an error. A malformed one is reported as a
// *loader.ParseError with the line and column when the decoder knows them.
//
// # Example
//
//	# ~/.config/kestrel/config.toml
//	[editor]
//	tabstop = 4
//	expandtab = true
//	shiftwidth = 4
//	smartcase = true
//	scrolloff = 3
//
//	[finder]
//	algorithm = "fzf"
//	ignore = ["node_modules", ".git", "testdata"]
//
//	[log]
//	level = "debug"
package config
