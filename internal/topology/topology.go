// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package topology turns a ligand include topology (.itp) into a complete
// GROMACS topology (.top) by splicing in the sections a standalone topology
// needs: a [ defaults ] block before the atom types and a [ system ] /
// [ molecules ] trailer at the end. The input is otherwise copied verbatim.
package topology

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/pdiddy/itp2amber/pkg/types"
)

// Marker is the substring that locates the insertion point for the
// [ defaults ] block.
const Marker = "[ atomtypes ]"

// ErrMarkerNotFound is returned when no input line contains Marker.
var ErrMarkerNotFound = errors.New("marker line " + Marker + " not found")

// moleculetypeHeader matches the [ moleculetype ] section header with any
// inner spacing.
var moleculetypeHeader = regexp.MustCompile(`^\s*\[\s*moleculetype\s*\]`)

// DefaultsBlock returns the four lines inserted before the marker line:
// non-bonded function 1, geometric combination rule 3, generated pairs with
// the OPLS 0.5 fudge factors.
func DefaultsBlock() []string {
	return []string{
		"[ defaults ]\n",
		"; nbfunc        comb-rule       gen-pairs       fudgeLJ fudgeQQ\n",
		"1               3               yes             0.5     0.5\n",
		"\n",
	}
}

// TrailerBlock returns the eight lines appended after the input, declaring
// one copy of residueName in a system titled systemName.
func TrailerBlock(systemName, residueName string) []string {
	return []string{
		"\n",
		"[ system ]\n",
		"; Name\n",
		systemName + "\n",
		"\n",
		"[ molecules ]\n",
		"; Compound        #mols\n",
		residueName + "     1\n",
	}
}

// ReadLines splits r into lines, keeping each line's terminator. A last
// line without a newline is returned as-is.
func ReadLines(r io.Reader) ([]string, error) {
	br := bufio.NewReader(r)
	var lines []string
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			lines = append(lines, line)
		}
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// FindMarker returns the index of the first line containing marker. The
// second result is false when no line matches.
func FindMarker(lines []string, marker string) (int, bool) {
	for i, line := range lines {
		if strings.Contains(line, marker) {
			return i, true
		}
	}
	return 0, false
}

// Patch returns lines with DefaultsBlock inserted before the first marker
// line and TrailerBlock appended. The input slice is not modified.
func Patch(lines []string, cfg types.PatchConfig) ([]string, error) {
	idx, ok := FindMarker(lines, Marker)
	if !ok {
		return nil, ErrMarkerNotFound
	}

	defaults := DefaultsBlock()
	trailer := TrailerBlock(cfg.SystemName, cfg.ResidueName)

	out := make([]string, 0, len(lines)+len(defaults)+len(trailer))
	out = append(out, lines[:idx]...)
	out = append(out, defaults...)
	out = append(out, lines[idx:]...)
	out = append(out, trailer...)
	return out, nil
}

// MoleculeTypeName returns the molecule name declared in the first
// [ moleculetype ] section, skipping blank and comment lines.
func MoleculeTypeName(lines []string) (string, bool) {
	inSection := false
	for _, line := range lines {
		if !inSection {
			inSection = moleculetypeHeader.MatchString(line)
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, ";") {
			continue
		}
		if strings.HasPrefix(trimmed, "[") {
			return "", false
		}
		return strings.Fields(trimmed)[0], true
	}
	return "", false
}

// PatchFile reads the input topology named by files.ITP, patches it and
// writes files.Top, replacing any existing file. A [ moleculetype ] name
// that differs from the configured residue name is reported on w.
func PatchFile(files types.Files, cfg types.PatchConfig, w io.Writer) error {
	f, err := os.Open(files.ITP)
	if err != nil {
		return fmt.Errorf("opening topology %s: %w", files.ITP, err)
	}
	lines, err := ReadLines(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("reading topology %s: %w", files.ITP, err)
	}

	out, err := Patch(lines, cfg)
	if err != nil {
		return fmt.Errorf("patching %s: %w", files.ITP, err)
	}

	if name, ok := MoleculeTypeName(lines); ok && name != cfg.ResidueName {
		fmt.Fprintf(w, "warning: [ moleculetype ] declares %s but [ molecules ] lists %s\n",
			name, cfg.ResidueName)
	}

	if err := os.WriteFile(files.Top, []byte(strings.Join(out, "")), 0o644); err != nil {
		return fmt.Errorf("writing topology %s: %w", files.Top, err)
	}
	return nil
}
