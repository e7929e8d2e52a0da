package provisioning

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/pvelamp/internal/pve"
)

func TestContainerPhaseCreates(t *testing.T) {
	client := healthyMock()

	var created pve.CreateRequest
	var createdVMID int
	client.CreateContainerFunc = func(ctx context.Context, vmid int, req pve.CreateRequest) error {
		createdVMID = vmid
		created = req
		return nil
	}

	ctx := NewContext(context.Background(), testConfig(t), client, &recordingObserver{})
	ctx.State.TemplateVolID = "local:vztmpl/debian-12-standard_12.7-1_amd64.tar.zst"

	require.NoError(t, NewContainerPhase().Provision(ctx))

	assert.Equal(t, 108, ctx.State.VMID)
	assert.Equal(t, 108, createdVMID)
	assert.Equal(t, "local:vztmpl/debian-12-standard_12.7-1_amd64.tar.zst", created.Template)
	assert.Equal(t, "blog", created.Hostname)
	assert.Equal(t, "amd64", created.Architecture)
	assert.Equal(t, "debian", created.OSType)
	assert.True(t, created.Unprivileged)
	assert.Equal(t, pve.NetworkDHCP, created.Mode)
	assert.Equal(t, "local-lvm:16", created.RootFS())
}

func TestContainerPhaseStaticNetwork(t *testing.T) {
	client := healthyMock()

	var created pve.CreateRequest
	client.CreateContainerFunc = func(ctx context.Context, vmid int, req pve.CreateRequest) error {
		created = req
		return nil
	}

	cfg := testConfig(t)
	cfg.Network.Mode = "static"
	cfg.Network.Address = "192.168.1.50/24"
	cfg.Network.Gateway = "192.168.1.1"
	require.NoError(t, cfg.Validate())

	ctx := NewContext(context.Background(), cfg, client, &recordingObserver{})
	require.NoError(t, NewContainerPhase().Provision(ctx))

	assert.Equal(t, pve.NetworkStatic, created.Mode)
	assert.Equal(t, "192.168.1.50/24", created.AddressCIDR)
	assert.Equal(t, "192.168.1.1", created.Gateway)
	assert.Contains(t, created.Net0(), "ip=192.168.1.50/24,gw=192.168.1.1")
}

func TestContainerPhaseVMIDArmedOnCreateFailure(t *testing.T) {
	client := healthyMock()
	client.CreateContainerFunc = func(ctx context.Context, vmid int, req pve.CreateRequest) error {
		return &pve.ExitError{Cmd: "pct create", Code: 255, Output: "unable to create CT 108"}
	}

	ctx := NewContext(context.Background(), testConfig(t), client, &recordingObserver{})
	err := NewContainerPhase().Provision(ctx)
	require.Error(t, err)

	// Creation can fail half-done; the claimed VMID stays recorded so
	// teardown removes whatever was left behind.
	assert.Equal(t, 108, ctx.State.VMID)
}
