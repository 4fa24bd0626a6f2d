/*
* Copyright (c) 2024-present SpecML project contributors
 */

package main

type compileParams struct {
	RootDir string
	Output  string
	Format  string
}

// rootConfig is the optional specml.yaml at the compilation root. CLI flags
// override file values.
type rootConfig struct {
	Output string `yaml:"output"`
	Format string `yaml:"format"`
}
