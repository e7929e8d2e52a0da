package handlers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/pvelamp/internal/config"
	"github.com/imamik/pvelamp/internal/provisioning"
	"github.com/imamik/pvelamp/internal/pve"
)

// writeTestConfig writes a minimal valid config file and returns its path.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pvelamp.yaml")
	content := `hostname: blog
storage: local-lvm
network:
  mode: dhcp
database:
  name: appdb
  user: appuser
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// healthyMock satisfies a full provisioning run.
func healthyMock() *pve.MockClient {
	return &pve.MockClient{
		ListBridgesFunc: func(ctx context.Context) ([]string, error) {
			return []string{"vmbr0"}, nil
		},
		ListStorageFunc: func(ctx context.Context) ([]pve.StorageStatus, error) {
			return []pve.StorageStatus{
				{Name: "local", Type: "dir", Active: true, AvailBytes: 100 << 30},
				{Name: "local-lvm", Type: "lvmthin", Active: true, AvailBytes: 200 << 30},
			}, nil
		},
		TemplateStoragesFunc: func(ctx context.Context) ([]string, error) {
			return []string{"local"}, nil
		},
		ListTemplatesFunc: func(ctx context.Context, storage string) ([]string, error) {
			return []string{"local:vztmpl/debian-12-standard_12.7-1_amd64.tar.zst"}, nil
		},
		NextIDFunc: func(ctx context.Context) (int, error) {
			return 108, nil
		},
		ContainerIPFunc: func(ctx context.Context, vmid int) (string, error) {
			return "192.168.1.108", nil
		},
	}
}

// fastPhases mirrors the default sequence with readiness timing
// collapsed so tests do not sleep.
func fastPhases() []provisioning.Phase {
	readiness := provisioning.NewReadinessPhase()
	readiness.SettleDelay = 0
	readiness.PollInterval = 0
	return []provisioning.Phase{
		provisioning.NewValidationPhase(),
		provisioning.NewContainerPhase(),
		readiness,
		provisioning.NewAppStackPhase(),
	}
}

func withMockClient(t *testing.T, client pve.Client) {
	t.Helper()
	origClient := newPVEClient
	origPhases := provisionPhases
	t.Cleanup(func() {
		newPVEClient = origClient
		provisionPhases = origPhases
	})
	newPVEClient = func(_ *config.Config) (pve.Client, error) { return client, nil }
	provisionPhases = fastPhases
}

func TestProvision(t *testing.T) {
	client := healthyMock()
	withMockClient(t, client)

	destroyed := false
	client.DestroyContainerFunc = func(ctx context.Context, vmid int) error {
		destroyed = true
		return nil
	}

	err := Provision(context.Background(), writeTestConfig(t), true, true)
	require.NoError(t, err)
	assert.False(t, destroyed)
}

func TestProvisionCleansUpOnFailure(t *testing.T) {
	client := healthyMock()
	withMockClient(t, client)

	client.StartContainerFunc = func(ctx context.Context, vmid int) error {
		return &pve.ExitError{Cmd: "pct start 108", Code: 255, Output: "startup failed"}
	}
	client.ContainerExistsFunc = func(ctx context.Context, vmid int) (bool, error) {
		return true, nil
	}

	var destroyedVMID int
	client.DestroyContainerFunc = func(ctx context.Context, vmid int) error {
		destroyedVMID = vmid
		return nil
	}

	err := Provision(context.Background(), writeTestConfig(t), true, true)
	require.Error(t, err)
	assert.Equal(t, 108, destroyedVMID)
	assert.Equal(t, 255, pve.ExitCode(err))
}

func TestProvisionDeclinedConfirmation(t *testing.T) {
	client := healthyMock()
	withMockClient(t, client)

	client.NextIDFunc = func(ctx context.Context) (int, error) {
		t.Fatal("a declined run must not touch the host")
		return 0, nil
	}

	origTTY := interactiveTTY
	origConfirm := confirmPrompt
	t.Cleanup(func() {
		interactiveTTY = origTTY
		confirmPrompt = origConfirm
	})
	interactiveTTY = func() bool { return true }
	confirmPrompt = func(message string) (bool, error) { return false, nil }

	err := Provision(context.Background(), writeTestConfig(t), false, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAborted)
}

func TestProvisionValidationFailureCreatesNothing(t *testing.T) {
	client := healthyMock()
	withMockClient(t, client)

	client.ListBridgesFunc = func(ctx context.Context) ([]string, error) {
		return []string{"vmbr9"}, nil
	}
	client.DestroyContainerFunc = func(ctx context.Context, vmid int) error {
		t.Fatal("nothing was created, nothing must be destroyed")
		return nil
	}

	err := Provision(context.Background(), writeTestConfig(t), true, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation phase failed")
}

func TestProvisionCleanupFailureKeepsOriginalError(t *testing.T) {
	client := healthyMock()
	withMockClient(t, client)

	client.StartContainerFunc = func(ctx context.Context, vmid int) error {
		return errors.New("startup failed")
	}
	client.ContainerExistsFunc = func(ctx context.Context, vmid int) (bool, error) {
		return true, nil
	}
	client.DestroyContainerFunc = func(ctx context.Context, vmid int) error {
		return errors.New("volume is locked")
	}

	err := Provision(context.Background(), writeTestConfig(t), true, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "startup failed")
}

func TestProvisionMissingConfig(t *testing.T) {
	withMockClient(t, healthyMock())

	err := Provision(context.Background(), filepath.Join(t.TempDir(), "absent.yaml"), true, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
