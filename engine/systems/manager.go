package systems

import (
	"github.com/arkestra/spatialscan/engine/provider"
	"github.com/arkestra/spatialscan/engine/renderer"
)

type SystemManager struct {
	jobSystem      *JobSystem
	geometrySystem *GeometrySystem
	importSystem   *MeshImportSystem
}

func NewSystemManager(p provider.Provider, backend renderer.Backend, importConfig *MeshImportConfig) (*SystemManager, error) {
	js, err := NewJobSystem(1, 8)
	if err != nil {
		return nil, err
	}

	gs, err := NewGeometrySystem(&GeometrySystemConfig{
		MaxGeometryCount: 100,
	}, backend)
	if err != nil {
		return nil, err
	}

	mis, err := NewMeshImportSystem(importConfig, p, gs, backend, js)
	if err != nil {
		return nil, err
	}

	return &SystemManager{
		jobSystem:      js,
		geometrySystem: gs,
		importSystem:   mis,
	}, nil
}

// Update advances every system by delta seconds. Finished job results are
// delivered first so an import completion and the next fetch attempt happen
// on the same context in a fixed order.
func (sm *SystemManager) Update(delta float64) {
	sm.jobSystem.Update()
	sm.importSystem.Update(delta)
}

func (sm *SystemManager) ImportSystem() *MeshImportSystem {
	return sm.importSystem
}

func (sm *SystemManager) GeometrySystem() *GeometrySystem {
	return sm.geometrySystem
}

func (sm *SystemManager) Shutdown() error {
	if err := sm.importSystem.Shutdown(); err != nil {
		return err
	}
	// Let any in-flight fetch finish, then deliver its result so the import
	// system can discard it.
	if err := sm.jobSystem.Shutdown(); err != nil {
		return err
	}
	sm.jobSystem.Update()

	if err := sm.geometrySystem.Shutdown(); err != nil {
		return err
	}
	return nil
}
