// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs the ligand conversion pipeline: patch the .itp into
// a .top, then hand the .top and .gro to the chemistry toolkit for the
// Amber outputs.
//
// The steps run in a fixed order and stop at the first failure. Outputs
// already written by earlier steps are left on disk. Two runs on the same
// input race on the output files; callers must not run them concurrently.
package convert

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/itp2amber/internal/bridge"
	"github.com/pdiddy/itp2amber/internal/topology"
	"github.com/pdiddy/itp2amber/pkg/types"
)

// Step names a pipeline stage.
type Step string

const (
	StepPatch   Step = "patch-topology"
	StepConvert Step = "amber-conversion"
)

// Result reports what a run produced.
type Result struct {
	Files types.Files
	// Written lists the output files in the order they were written.
	Written []string
}

// StepError records which stage failed.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string { return fmt.Sprintf("%s: %v", e.Step, e.Err) }

func (e *StepError) Unwrap() error { return e.Err }

// Run converts the ligand topology at itpPath. Progress lines are written
// to w. The returned Result lists the outputs written before any failure.
func Run(ctx context.Context, cfg types.Config, itpPath string, tk bridge.Toolkit, w io.Writer) (Result, error) {
	cfg = cfg.WithDefaults()
	res := Result{Files: types.FilesFor(itpPath)}

	if err := topology.PatchFile(res.Files, cfg.Patch, w); err != nil {
		return res, &StepError{Step: StepPatch, Err: err}
	}
	res.Written = append(res.Written, res.Files.Top)
	fmt.Fprintf(w, "patched: %s\n", res.Files.Top)

	written, err := bridge.Convert(ctx, tk, res.Files, w)
	res.Written = append(res.Written, written...)
	if err != nil {
		return res, &StepError{Step: StepConvert, Err: err}
	}
	return res, nil
}
