package pve

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner records commands and replays canned responses.
type fakeRunner struct {
	commands []string
	output   string
	err      error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (string, error) {
	f.commands = append(f.commands, name+" "+strings.Join(args, " "))
	return f.output, f.err
}

func TestNextID(t *testing.T) {
	t.Parallel()
	runner := &fakeRunner{output: "105\n"}
	client := NewCLIClient(runner)

	id, err := client.NextID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 105, id)
	assert.Equal(t, []string{"pvesh get /cluster/nextid"}, runner.commands)
}

func TestNextID_BadOutput(t *testing.T) {
	t.Parallel()
	runner := &fakeRunner{output: "not-a-number"}
	client := NewCLIClient(runner)

	_, err := client.NextID(context.Background())
	assert.Error(t, err)
}

func TestCreateContainer_AssemblesArguments(t *testing.T) {
	t.Parallel()
	runner := &fakeRunner{}
	client := NewCLIClient(runner)

	req := CreateRequest{
		Template:     "local:vztmpl/debian-12-standard_12.7-1_amd64.tar.zst",
		Hostname:     "blog",
		Architecture: "amd64",
		Cores:        2,
		MemoryMB:     2048,
		SwapMB:       512,
		Storage:      "local-lvm",
		DiskGB:       16,
		OSType:       "debian",
		Unprivileged: true,
		Bridge:       "vmbr0",
		Mode:         NetworkDHCP,
	}

	err := client.CreateContainer(context.Background(), 105, req)
	require.NoError(t, err)
	require.Len(t, runner.commands, 1)

	cmd := runner.commands[0]
	assert.Contains(t, cmd, "pct create 105 local:vztmpl/debian-12-standard_12.7-1_amd64.tar.zst")
	assert.Contains(t, cmd, "--rootfs local-lvm:16")
	assert.Contains(t, cmd, "--net0 name=eth0,bridge=vmbr0,ip=dhcp")
	assert.Contains(t, cmd, "--unprivileged 1")
}

func TestCreateContainer_StaticNetwork(t *testing.T) {
	t.Parallel()
	runner := &fakeRunner{}
	client := NewCLIClient(runner)

	req := CreateRequest{
		Template:    "local:vztmpl/debian-12-standard_12.7-1_amd64.tar.zst",
		Bridge:      "vmbr0",
		Mode:        NetworkStatic,
		AddressCIDR: "192.168.1.50/24",
		Gateway:     "192.168.1.1",
	}

	require.NoError(t, client.CreateContainer(context.Background(), 200, req))
	assert.Contains(t, runner.commands[0], "--net0 name=eth0,bridge=vmbr0,ip=192.168.1.50/24,gw=192.168.1.1")
}

func TestContainerExists(t *testing.T) {
	t.Parallel()

	t.Run("exists", func(t *testing.T) {
		t.Parallel()
		client := NewCLIClient(&fakeRunner{output: "status: running\n"})
		exists, err := client.ContainerExists(context.Background(), 105)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		client := NewCLIClient(&fakeRunner{
			err: &ExitError{
				Cmd:    "pct status 105",
				Code:   2,
				Output: "Configuration file 'nodes/pve/lxc/105.conf' does not exist\n",
			},
		})
		exists, err := client.ContainerExists(context.Background(), 105)
		require.NoError(t, err)
		assert.False(t, exists)

		_, err = client.ContainerStatus(context.Background(), 105)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("real failure", func(t *testing.T) {
		t.Parallel()
		client := NewCLIClient(&fakeRunner{
			err: &ExitError{Cmd: "pct status 105", Code: 255, Output: "cluster not ready\n"},
		})
		_, err := client.ContainerExists(context.Background(), 105)
		assert.Error(t, err)
	})
}

func TestExec_BuildsPctExec(t *testing.T) {
	t.Parallel()
	runner := &fakeRunner{output: "done\n"}
	client := NewCLIClient(runner)

	out, err := client.Exec(context.Background(), 105, "apt-get update")
	require.NoError(t, err)
	assert.Equal(t, "done\n", out)
	assert.Equal(t, []string{"pct exec 105 -- sh -c apt-get update"}, runner.commands)
}

func TestWriteFile_EncodesContent(t *testing.T) {
	t.Parallel()
	runner := &fakeRunner{}
	client := NewCLIClient(runner)

	err := client.WriteFile(context.Background(), 105, "/etc/apache2/sites-available/blog.conf", []byte("<VirtualHost *:80>"))
	require.NoError(t, err)
	require.Len(t, runner.commands, 1)

	cmd := runner.commands[0]
	assert.Contains(t, cmd, "base64 -d > '/etc/apache2/sites-available/blog.conf'")
	assert.Contains(t, cmd, "mkdir -p '/etc/apache2/sites-available'")
	// Raw content must not appear unencoded.
	assert.NotContains(t, cmd, "<VirtualHost")
}

func TestMissingTools(t *testing.T) {
	t.Parallel()

	t.Run("all present", func(t *testing.T) {
		t.Parallel()
		runner := &fakeRunner{output: "\n"}
		client := NewCLIClient(runner)

		missing, err := client.MissingTools(context.Background())
		require.NoError(t, err)
		assert.Empty(t, missing)
		require.Len(t, runner.commands, 1)
		assert.Contains(t, runner.commands[0], "command -v pct")
		assert.Contains(t, runner.commands[0], "command -v pvesh")
	})

	t.Run("some missing", func(t *testing.T) {
		t.Parallel()
		client := NewCLIClient(&fakeRunner{output: "pveam\npvesh\n"})

		missing, err := client.MissingTools(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"pveam", "pvesh"}, missing)
	})
}

func TestDestroyContainer_Forces(t *testing.T) {
	t.Parallel()
	runner := &fakeRunner{}
	client := NewCLIClient(runner)

	require.NoError(t, client.DestroyContainer(context.Background(), 105))
	assert.Equal(t, []string{"pct destroy 105 --force"}, runner.commands)
}

func TestExitCode(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 100, ExitCode(&ExitError{Cmd: "apt-get install", Code: 100}))
	assert.Equal(t, -1, ExitCode(assert.AnError))
	assert.Equal(t, -1, ExitCode(nil))
}
