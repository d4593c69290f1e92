// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bridge

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/itp2amber/internal/runner"
)

// parmedProgram loads argv[1] with coordinates from argv[2]. With three
// more arguments it saves the structure to argv[3] in format argv[4],
// overwriting when argv[5] is "1".
const parmedProgram = `import sys
import parmed
structure = parmed.load_file(sys.argv[1], xyz=sys.argv[2])
if len(sys.argv) > 3:
    structure.save(sys.argv[3], format=sys.argv[4], overwrite=sys.argv[5] == "1")
`

// parmedArgs builds the argument list after the interpreter name.
func parmedArgs(s *Structure, out string, format Format, overwrite bool) []string {
	args := []string{"-c", parmedProgram, s.Topology, s.Coordinates}
	if out == "" {
		return args
	}
	flag := "0"
	if overwrite {
		flag = "1"
	}
	return append(args, out, string(format), flag)
}

// toolkitError attaches the toolkit's diagnostic output to a failed run.
func toolkitError(what string, err error, output *bytes.Buffer) error {
	msg := strings.TrimSpace(output.String())
	if msg == "" {
		return fmt.Errorf("%s: %w", what, err)
	}
	return fmt.Errorf("%s: %w\n%s", what, err, msg)
}

// ParmEd runs ParmEd in a local Python interpreter.
type ParmEd struct {
	python string
	exec   runner.Executor
}

// NewParmEd creates a toolkit that runs ParmEd with the given interpreter.
// It verifies that the interpreter is on PATH before returning.
func NewParmEd(python string, exec runner.Executor) (*ParmEd, error) {
	if _, err := exec.LookPath(python); err != nil {
		return nil, fmt.Errorf("python interpreter %s not available: %w", python, err)
	}
	return &ParmEd{python: python, exec: exec}, nil
}

func (p *ParmEd) Name() string { return "parmed" }

// Load asks ParmEd to parse the topology and coordinates so that load
// failures surface before any output is written.
func (p *ParmEd) Load(ctx context.Context, topologyPath, coordinatePath string) (*Structure, error) {
	s := &Structure{Topology: topologyPath, Coordinates: coordinatePath}
	if err := p.run(ctx, parmedArgs(s, "", "", false)); err != nil {
		return nil, err
	}
	return s, nil
}

func (p *ParmEd) Save(ctx context.Context, s *Structure, path string, format Format, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}
	return p.run(ctx, parmedArgs(s, path, format, overwrite))
}

func (p *ParmEd) run(ctx context.Context, args []string) error {
	var output bytes.Buffer
	c := runner.Command{Name: p.python, Args: args, Stdout: &output, Stderr: &output}
	if err := p.exec.Run(ctx, c); err != nil {
		return toolkitError("running parmed with "+p.python, err, &output)
	}
	return nil
}
