// Package config loads the optional accessor-generator.yaml settings file.
//
// Example:
//
//	version: "1"
//	output: accessors_gen.go
//	build_tag: accessorgen
//	receiver: self
//	types: [Server, Client]
//	defaults:
//	  getters: {ignore: false}
//	  setters: {into: true}
//
// Values given on the command line are layered over the file with Merge.
package config
