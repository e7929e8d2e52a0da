package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoctorHealthyHost(t *testing.T) {
	withMockClient(t, healthyMock())

	err := Doctor(context.Background(), writeTestConfig(t), false)
	require.NoError(t, err)
}

func TestDoctorUnhealthyHost(t *testing.T) {
	client := healthyMock()
	client.ListBridgesFunc = func(ctx context.Context) ([]string, error) {
		return []string{"vmbr9"}, nil
	}
	withMockClient(t, client)

	err := Doctor(context.Background(), writeTestConfig(t), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not ready")
}

func TestDoctorMissingTools(t *testing.T) {
	client := healthyMock()
	client.MissingToolsFunc = func(ctx context.Context) ([]string, error) {
		return []string{"pveam"}, nil
	}
	withMockClient(t, client)

	err := Doctor(context.Background(), writeTestConfig(t), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not ready")
}

func TestDoctorJSONOutput(t *testing.T) {
	withMockClient(t, healthyMock())

	err := Doctor(context.Background(), writeTestConfig(t), true)
	require.NoError(t, err)
}

func TestDoctorRunsAllChecks(t *testing.T) {
	// Doctor keeps going past a failed check so the report is complete.
	client := healthyMock()
	client.ListBridgesFunc = func(ctx context.Context) ([]string, error) {
		return nil, nil
	}
	templatesListed := false
	client.ListTemplatesFunc = func(ctx context.Context, storage string) ([]string, error) {
		templatesListed = true
		return []string{"local:vztmpl/debian-12-standard_12.7-1_amd64.tar.zst"}, nil
	}
	withMockClient(t, client)

	err := Doctor(context.Background(), writeTestConfig(t), false)
	require.Error(t, err)
	assert.True(t, templatesListed)
}

func TestDoctorIsReadOnly(t *testing.T) {
	client := healthyMock()
	client.ListTemplatesFunc = func(ctx context.Context, storage string) ([]string, error) {
		return nil, nil
	}
	client.AvailableTemplatesFunc = func(ctx context.Context) ([]string, error) {
		return []string{"debian-12-standard_12.7-1_amd64.tar.zst"}, nil
	}
	client.DownloadTemplateFunc = func(ctx context.Context, storage, template string) error {
		t.Fatal("doctor must not download templates")
		return nil
	}
	client.UpdateTemplateIdxFunc = func(ctx context.Context) error {
		t.Fatal("doctor must not refresh the template index")
		return nil
	}
	withMockClient(t, client)

	err := Doctor(context.Background(), writeTestConfig(t), false)
	require.NoError(t, err)
}
