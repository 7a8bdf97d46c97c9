package instance

// State is one step of an instance's round lifecycle.
type State int32

const (
	// StateIdle is a freshly created or freshly reset instance. No round
	// activity. Only idle instances may be force-replaced.
	StateIdle State = iota
	// StatePreStart is the countdown phase. Players may still join.
	StatePreStart
	// StateRunning is an active round. Reached from the countdown by the
	// round task, not by the manager.
	StateRunning
	// StatePreEnd is a graceful wind-down: in-flight effects finish
	// before the full stop.
	StatePreEnd
	// StatePostEnd is a finished round awaiting cleanup or reset.
	StatePostEnd
	// StateForceStop is an unconditional stop. Accepted from any state
	// and always leads toward unload.
	StateForceStop
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StatePreStart:
		return "PRE_START"
	case StateRunning:
		return "RUNNING"
	case StatePreEnd:
		return "PRE_END"
	case StatePostEnd:
		return "POST_END"
	case StateForceStop:
		return "FORCE_STOP"
	default:
		return "UNKNOWN"
	}
}

// canAdvanceTo reports whether target is a legal next state. ForceStop
// is an override and is legal from everywhere.
func (s State) canAdvanceTo(target State) bool {
	if target == StateForceStop {
		return true
	}
	switch s {
	case StateIdle:
		return target == StatePreStart
	case StatePreStart:
		return target == StateRunning
	case StateRunning:
		return target == StatePreEnd
	case StatePreEnd:
		return target == StatePostEnd
	case StatePostEnd:
		return target == StateIdle
	case StateForceStop:
		return target == StatePostEnd
	default:
		return false
	}
}
