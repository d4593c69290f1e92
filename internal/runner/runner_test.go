// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package runner

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool // binary -> whether LookPath succeeds
	runnableCmds  map[string]bool // "bin arg1 arg2" -> whether RunSilent succeeds
	runFunc       func(ctx context.Context, c Command) error
	ran           []Command
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) RunSilent(name string, args ...string) error {
	key := name + " " + strings.Join(args, " ")
	if m.runnableCmds[key] {
		return nil
	}
	return errors.New("command failed: " + key)
}

func (m *mockExecutor) Run(ctx context.Context, c Command) error {
	m.ran = append(m.ran, c)
	if m.runFunc != nil {
		return m.runFunc(ctx, c)
	}
	return nil
}

func TestDetectRuntime(t *testing.T) {
	tests := []struct {
		name     string
		exec     *mockExecutor
		wantName string
		wantErr  bool
	}{
		{
			name: "docker available",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true},
				runnableCmds:  map[string]bool{"docker info": true},
			},
			wantName: "docker",
		},
		{
			name: "podman fallback when docker missing",
			exec: &mockExecutor{
				availableBins: map[string]bool{"podman": true},
				runnableCmds:  map[string]bool{"podman info": true},
			},
			wantName: "podman",
		},
		{
			name:    "neither available",
			exec:    &mockExecutor{},
			wantErr: true,
		},
		{
			name: "docker on PATH but info fails, podman works",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true, "podman": true},
				runnableCmds:  map[string]bool{"podman info": true},
			},
			wantName: "podman",
		},
		{
			name: "both available, docker preferred",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true, "podman": true},
				runnableCmds:  map[string]bool{"docker info": true, "podman info": true},
			},
			wantName: "docker",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, err := DetectRuntime(tt.exec)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "no container runtime available")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, rt.Name())
		})
	}
}

func TestImageExists(t *testing.T) {
	tests := []struct {
		name    string
		mkRT    func(*mockExecutor) Runtime
		cmds    map[string]bool
		wantErr bool
	}{
		{
			name: "docker image exists",
			mkRT: func(e *mockExecutor) Runtime { return newDockerRuntime(e) },
			cmds: map[string]bool{"docker image inspect parmed:latest": true},
		},
		{
			name:    "docker image not found",
			mkRT:    func(e *mockExecutor) Runtime { return newDockerRuntime(e) },
			wantErr: true,
		},
		{
			name: "podman image exists",
			mkRT: func(e *mockExecutor) Runtime { return newPodmanRuntime(e) },
			cmds: map[string]bool{"podman image exists parmed:latest": true},
		},
		{
			name:    "podman image not found",
			mkRT:    func(e *mockExecutor) Runtime { return newPodmanRuntime(e) },
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := tt.mkRT(&mockExecutor{runnableCmds: tt.cmds})
			err := rt.ImageExists("parmed:latest")
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "parmed:latest")
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRun(t *testing.T) {
	exec := &mockExecutor{
		runFunc: func(_ context.Context, c Command) error {
			_, _ = c.Stdout.Write([]byte("ok"))
			return nil
		},
	}
	rt := newPodmanRuntime(exec)

	var out bytes.Buffer
	err := rt.Run(context.Background(), RunSpec{
		Image:   "parmed:latest",
		Mounts:  []Mount{{Host: "/data/ligands", Container: "/work"}},
		Workdir: "/work",
		Cmd:     []string{"python3", "-c", "print(1)"},
		Stdout:  &out,
	})
	require.NoError(t, err)
	require.Len(t, exec.ran, 1)

	got := exec.ran[0]
	assert.Equal(t, "podman", got.Name)
	assert.Equal(t, []string{
		"run", "--rm", "-v", "/data/ligands:/work", "-w", "/work",
		"parmed:latest", "python3", "-c", "print(1)",
	}, got.Args)
	assert.Equal(t, "ok", out.String())
}

func TestRun_Failure(t *testing.T) {
	exec := &mockExecutor{
		runFunc: func(context.Context, Command) error {
			return errors.New("container exited with code 1")
		},
	}
	err := newDockerRuntime(exec).Run(context.Background(), RunSpec{Image: "parmed:latest"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "running docker container parmed:latest")
	assert.Contains(t, err.Error(), "exited with code 1")
}

func TestRuntimeName(t *testing.T) {
	exec := &mockExecutor{}
	assert.Equal(t, "docker", newDockerRuntime(exec).Name())
	assert.Equal(t, "podman", newPodmanRuntime(exec).Name())
}

func TestCommandString(t *testing.T) {
	c := Command{Name: "python3", Args: []string{"-c", "pass"}}
	assert.Equal(t, "python3 -c pass", c.String())
	assert.Equal(t, "true", Command{Name: "true"}.String())
}
