package instance

// Observer receives lifecycle notifications from the manager. Sign
// boards, round history and other dependents hook in here instead of
// being called inline from teardown.
//
// Callbacks run synchronously on the goroutine driving the lifecycle
// operation; observers must not call back into the Manager.
type Observer interface {
	InstanceCreated(inst *Instance)
	InstanceStateChanged(inst *Instance, from, to State)
	InstanceRemoved(inst *Instance)
}

func (m *Manager) notifyCreated(inst *Instance) {
	m.obsMu.RLock()
	defer m.obsMu.RUnlock()
	for _, o := range m.observers {
		o.InstanceCreated(inst)
	}
}

func (m *Manager) notifyStateChanged(inst *Instance, from, to State) {
	m.obsMu.RLock()
	defer m.obsMu.RUnlock()
	for _, o := range m.observers {
		o.InstanceStateChanged(inst, from, to)
	}
}

func (m *Manager) notifyRemoved(inst *Instance) {
	m.obsMu.RLock()
	defer m.obsMu.RUnlock()
	for _, o := range m.observers {
		o.InstanceRemoved(inst)
	}
}
