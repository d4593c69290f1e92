// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bridge

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/itp2amber/internal/runner"
)

const (
	// containerWorkdir is where the host directory holding the topology is
	// mounted inside the container.
	containerWorkdir = "/work"
	containerPython  = "python3"
)

// Container runs ParmEd inside a container image. The directory holding the
// topology is bind-mounted as the working directory, so every input and
// output must live in that directory.
type Container struct {
	runtime runner.Runtime
	image   string
}

// NewContainer creates a toolkit that runs image with the given container
// runtime. It verifies that the image exists locally before returning.
func NewContainer(rt runner.Runtime, image string) (*Container, error) {
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("toolkit image not available in %s: %w", rt.Name(), err)
	}
	return &Container{runtime: rt, image: image}, nil
}

func (c *Container) Name() string { return "container:" + c.runtime.Name() }

func (c *Container) Load(ctx context.Context, topologyPath, coordinatePath string) (*Structure, error) {
	s := &Structure{Topology: topologyPath, Coordinates: coordinatePath}
	if err := c.run(ctx, s, "", "", false); err != nil {
		return nil, err
	}
	return s, nil
}

func (c *Container) Save(ctx context.Context, s *Structure, path string, format Format, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}
	return c.run(ctx, s, path, format, overwrite)
}

func (c *Container) run(ctx context.Context, s *Structure, out string, format Format, overwrite bool) error {
	hostDir, err := filepath.Abs(filepath.Dir(s.Topology))
	if err != nil {
		return fmt.Errorf("resolving directory of %s: %w", s.Topology, err)
	}

	inner, err := containerPaths(hostDir, s.Topology, s.Coordinates, out)
	if err != nil {
		return err
	}
	local := &Structure{Topology: inner[0], Coordinates: inner[1]}

	var output bytes.Buffer
	spec := runner.RunSpec{
		Image:   c.image,
		Mounts:  []runner.Mount{{Host: hostDir, Container: containerWorkdir}},
		Workdir: containerWorkdir,
		Cmd:     append([]string{containerPython}, parmedArgs(local, inner[2], format, overwrite)...),
		Stdout:  &output,
		Stderr:  &output,
	}
	if err := c.runtime.Run(ctx, spec); err != nil {
		return toolkitError("running parmed in "+c.image, err, &output)
	}
	return nil
}

// containerPaths maps host paths to names relative to the mounted
// directory. Empty paths stay empty.
func containerPaths(hostDir string, paths ...string) ([]string, error) {
	inner := make([]string, len(paths))
	for i, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}
		if filepath.Dir(abs) != hostDir {
			return nil, fmt.Errorf("%s is outside the mounted directory %s", p, hostDir)
		}
		inner[i] = filepath.Base(abs)
	}
	return inner, nil
}
