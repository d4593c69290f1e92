// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the configuration and file-set types shared by the
// patch and conversion steps.
package types

// Files names every file touched by one conversion run. All names share
// the same base.
type Files struct {
	// Base is the input name without its last four characters.
	Base string `json:"base" yaml:"base"`

	// ITP is the ligand topology produced by the parameter generator.
	ITP string `json:"itp" yaml:"itp"`

	// Top is the patched GROMACS topology.
	Top string `json:"top" yaml:"top"`

	// Gro is the coordinate file. It must already exist next to the input.
	Gro string `json:"gro" yaml:"gro"`

	// Parm7 is the Amber parameter/topology output.
	Parm7 string `json:"parm7" yaml:"parm7"`

	// Rst7 is the Amber restart output.
	Rst7 string `json:"rst7" yaml:"rst7"`
}

// itpExtLen is the length of the ".itp" suffix dropped from the input name.
// The suffix itself is not checked.
const itpExtLen = 4

// FilesFor derives the file set from the input topology path. Names of four
// characters or fewer produce an empty base.
func FilesFor(itpPath string) Files {
	base := ""
	if len(itpPath) > itpExtLen {
		base = itpPath[:len(itpPath)-itpExtLen]
	}
	return Files{
		Base:  base,
		ITP:   itpPath,
		Top:   base + ".top",
		Gro:   base + ".gro",
		Parm7: base + ".parm7",
		Rst7:  base + ".rst7",
	}
}
