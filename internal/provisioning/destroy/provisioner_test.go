package destroy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/pvelamp/internal/pve"
)

func TestDestroyStopsThenRemoves(t *testing.T) {
	var calls []string
	client := &pve.MockClient{
		ContainerExistsFunc: func(ctx context.Context, vmid int) (bool, error) {
			calls = append(calls, "exists")
			return true, nil
		},
		StopContainerFunc: func(ctx context.Context, vmid int) error {
			calls = append(calls, "stop")
			return nil
		},
		DestroyContainerFunc: func(ctx context.Context, vmid int) error {
			calls = append(calls, "destroy")
			return nil
		},
	}

	p := NewProvisioner(client, nil)
	require.NoError(t, p.Destroy(context.Background(), 108))
	assert.Equal(t, []string{"exists", "stop", "destroy"}, calls)
}

func TestDestroyMissingContainerIsNoop(t *testing.T) {
	destroyed := false
	client := &pve.MockClient{
		ContainerExistsFunc: func(ctx context.Context, vmid int) (bool, error) {
			return false, nil
		},
		DestroyContainerFunc: func(ctx context.Context, vmid int) error {
			destroyed = true
			return nil
		},
	}

	p := NewProvisioner(client, nil)
	require.NoError(t, p.Destroy(context.Background(), 108))
	assert.False(t, destroyed)
}

func TestDestroyToleratesStoppedContainer(t *testing.T) {
	destroyed := false
	client := &pve.MockClient{
		ContainerExistsFunc: func(ctx context.Context, vmid int) (bool, error) {
			return true, nil
		},
		StopContainerFunc: func(ctx context.Context, vmid int) error {
			return &pve.ExitError{Cmd: "pct stop 108", Code: 255, Output: "CT 108 not running"}
		},
		DestroyContainerFunc: func(ctx context.Context, vmid int) error {
			destroyed = true
			return nil
		},
	}

	p := NewProvisioner(client, nil)
	require.NoError(t, p.Destroy(context.Background(), 108))
	assert.True(t, destroyed)
}

func TestDestroyPropagatesStopFailure(t *testing.T) {
	client := &pve.MockClient{
		ContainerExistsFunc: func(ctx context.Context, vmid int) (bool, error) {
			return true, nil
		},
		StopContainerFunc: func(ctx context.Context, vmid int) error {
			return errors.New("lock timeout")
		},
	}

	p := NewProvisioner(client, nil)
	err := p.Destroy(context.Background(), 108)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to stop container 108")
}

func TestDestroyPropagatesRemoveFailure(t *testing.T) {
	client := &pve.MockClient{
		ContainerExistsFunc: func(ctx context.Context, vmid int) (bool, error) {
			return true, nil
		},
		DestroyContainerFunc: func(ctx context.Context, vmid int) error {
			return &pve.ExitError{Cmd: "pct destroy 108", Code: 255, Output: "volume is in use"}
		},
	}

	p := NewProvisioner(client, nil)
	err := p.Destroy(context.Background(), 108)
	require.Error(t, err)
	assert.Equal(t, 255, pve.ExitCode(err))
}
