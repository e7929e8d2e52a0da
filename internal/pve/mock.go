package pve

import "context"

// MockClient is a mock implementation of Client for tests. Unset function
// fields return zero values.
type MockClient struct {
	NextIDFunc             func(ctx context.Context) (int, error)
	CreateContainerFunc    func(ctx context.Context, vmid int, req CreateRequest) error
	StartContainerFunc     func(ctx context.Context, vmid int) error
	StopContainerFunc      func(ctx context.Context, vmid int) error
	DestroyContainerFunc   func(ctx context.Context, vmid int) error
	ContainerExistsFunc    func(ctx context.Context, vmid int) (bool, error)
	ContainerStatusFunc    func(ctx context.Context, vmid int) (string, error)
	ExecFunc               func(ctx context.Context, vmid int, command string) (string, error)
	WriteFileFunc          func(ctx context.Context, vmid int, path string, content []byte) error
	ContainerIPFunc        func(ctx context.Context, vmid int) (string, error)
	ListStorageFunc        func(ctx context.Context) ([]StorageStatus, error)
	TemplateStoragesFunc   func(ctx context.Context) ([]string, error)
	ListTemplatesFunc      func(ctx context.Context, storage string) ([]string, error)
	AvailableTemplatesFunc func(ctx context.Context) ([]string, error)
	UpdateTemplateIdxFunc  func(ctx context.Context) error
	DownloadTemplateFunc   func(ctx context.Context, storage, template string) error
	ListBridgesFunc        func(ctx context.Context) ([]string, error)
	MissingToolsFunc       func(ctx context.Context) ([]string, error)
}

func (m *MockClient) NextID(ctx context.Context) (int, error) {
	if m.NextIDFunc != nil {
		return m.NextIDFunc(ctx)
	}
	return 0, nil
}

func (m *MockClient) CreateContainer(ctx context.Context, vmid int, req CreateRequest) error {
	if m.CreateContainerFunc != nil {
		return m.CreateContainerFunc(ctx, vmid, req)
	}
	return nil
}

func (m *MockClient) StartContainer(ctx context.Context, vmid int) error {
	if m.StartContainerFunc != nil {
		return m.StartContainerFunc(ctx, vmid)
	}
	return nil
}

func (m *MockClient) StopContainer(ctx context.Context, vmid int) error {
	if m.StopContainerFunc != nil {
		return m.StopContainerFunc(ctx, vmid)
	}
	return nil
}

func (m *MockClient) DestroyContainer(ctx context.Context, vmid int) error {
	if m.DestroyContainerFunc != nil {
		return m.DestroyContainerFunc(ctx, vmid)
	}
	return nil
}

func (m *MockClient) ContainerExists(ctx context.Context, vmid int) (bool, error) {
	if m.ContainerExistsFunc != nil {
		return m.ContainerExistsFunc(ctx, vmid)
	}
	return false, nil
}

func (m *MockClient) ContainerStatus(ctx context.Context, vmid int) (string, error) {
	if m.ContainerStatusFunc != nil {
		return m.ContainerStatusFunc(ctx, vmid)
	}
	return "", nil
}

func (m *MockClient) Exec(ctx context.Context, vmid int, command string) (string, error) {
	if m.ExecFunc != nil {
		return m.ExecFunc(ctx, vmid, command)
	}
	return "", nil
}

func (m *MockClient) WriteFile(ctx context.Context, vmid int, path string, content []byte) error {
	if m.WriteFileFunc != nil {
		return m.WriteFileFunc(ctx, vmid, path, content)
	}
	return nil
}

func (m *MockClient) ContainerIP(ctx context.Context, vmid int) (string, error) {
	if m.ContainerIPFunc != nil {
		return m.ContainerIPFunc(ctx, vmid)
	}
	return "", nil
}

func (m *MockClient) ListStorage(ctx context.Context) ([]StorageStatus, error) {
	if m.ListStorageFunc != nil {
		return m.ListStorageFunc(ctx)
	}
	return nil, nil
}

func (m *MockClient) TemplateStorages(ctx context.Context) ([]string, error) {
	if m.TemplateStoragesFunc != nil {
		return m.TemplateStoragesFunc(ctx)
	}
	return nil, nil
}

func (m *MockClient) ListTemplates(ctx context.Context, storage string) ([]string, error) {
	if m.ListTemplatesFunc != nil {
		return m.ListTemplatesFunc(ctx, storage)
	}
	return nil, nil
}

func (m *MockClient) AvailableTemplates(ctx context.Context) ([]string, error) {
	if m.AvailableTemplatesFunc != nil {
		return m.AvailableTemplatesFunc(ctx)
	}
	return nil, nil
}

func (m *MockClient) UpdateTemplateIndex(ctx context.Context) error {
	if m.UpdateTemplateIdxFunc != nil {
		return m.UpdateTemplateIdxFunc(ctx)
	}
	return nil
}

func (m *MockClient) DownloadTemplate(ctx context.Context, storage, template string) error {
	if m.DownloadTemplateFunc != nil {
		return m.DownloadTemplateFunc(ctx, storage, template)
	}
	return nil
}

func (m *MockClient) ListBridges(ctx context.Context) ([]string, error) {
	if m.ListBridgesFunc != nil {
		return m.ListBridgesFunc(ctx)
	}
	return nil, nil
}

func (m *MockClient) MissingTools(ctx context.Context) ([]string, error) {
	if m.MissingToolsFunc != nil {
		return m.MissingToolsFunc(ctx)
	}
	return nil, nil
}
