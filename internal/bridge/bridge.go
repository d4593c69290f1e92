// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bridge converts a GROMACS topology and coordinate pair into Amber
// parameter and restart files through an external chemistry toolkit.
// The toolkit is reached through the Toolkit interface; backends differ
// only in where the toolkit runs.
package bridge

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/itp2amber/internal/runner"
	"github.com/pdiddy/itp2amber/pkg/types"
)

// Format names an output representation understood by the toolkit.
type Format string

const (
	// FormatAmber is the Amber parameter/topology file (prmtop, .parm7).
	FormatAmber Format = "amber"
	// FormatRst7 is the Amber restart/coordinate file (.rst7).
	FormatRst7 Format = "rst7"
)

// Structure is a handle to a topology plus coordinates loaded by a Toolkit.
// The toolkit owns the in-memory model; the handle records its sources.
type Structure struct {
	Topology    string
	Coordinates string
}

// Toolkit loads GROMACS structures and saves them in other formats.
type Toolkit interface {
	// Name identifies the backend in progress output.
	Name() string

	// Load reads a GROMACS topology together with a coordinate file.
	Load(ctx context.Context, topologyPath, coordinatePath string) (*Structure, error)

	// Save writes s to path in the given format. When overwrite is false
	// an existing file is an error.
	Save(ctx context.Context, s *Structure, path string, format Format, overwrite bool) error
}

// Convert loads files.Top with files.Gro and saves files.Parm7 and
// files.Rst7, replacing existing outputs. It stops at the first failure and
// leaves any file already written in place. The returned slice names the
// outputs written, also on failure.
func Convert(ctx context.Context, tk Toolkit, files types.Files, w io.Writer) ([]string, error) {
	s, err := tk.Load(ctx, files.Top, files.Gro)
	if err != nil {
		return nil, fmt.Errorf("loading %s with %s: %w", files.Top, files.Gro, err)
	}
	fmt.Fprintf(w, "loaded:  %s + %s (%s)\n", files.Top, files.Gro, tk.Name())

	outputs := []struct {
		path   string
		format Format
	}{
		{files.Parm7, FormatAmber},
		{files.Rst7, FormatRst7},
	}
	var written []string
	for _, out := range outputs {
		if err := tk.Save(ctx, s, out.path, out.format, true); err != nil {
			return written, fmt.Errorf("saving %s as %s: %w", out.path, out.format, err)
		}
		written = append(written, out.path)
		fmt.Fprintf(w, "saved:   %s (%s)\n", out.path, out.format)
	}
	return written, nil
}

// New builds the toolkit selected by cfg.Backend. Backends verify their
// prerequisites (interpreter on PATH, container image present) up front.
func New(cfg types.BridgeConfig, exec runner.Executor) (Toolkit, error) {
	switch cfg.Backend {
	case types.BackendParmEd, "":
		tk, err := NewParmEd(cfg.Python, exec)
		if err != nil {
			return nil, err
		}
		return tk, nil
	case types.BackendContainer:
		rt, err := runner.DetectRuntime(exec)
		if err != nil {
			return nil, err
		}
		tk, err := NewContainer(rt, cfg.Image)
		if err != nil {
			return nil, err
		}
		return tk, nil
	default:
		return nil, fmt.Errorf("unknown toolkit backend %q: use %s or %s",
			cfg.Backend, types.BackendParmEd, types.BackendContainer)
	}
}
