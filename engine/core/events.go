package core

import "sync"

type SystemEventCode int

// System internal event codes. Application should use codes beyond 255.
const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT SystemEventCode = 0x01

	// Scanning phase started; periodic imports are permitted.
	EVENT_CODE_SCAN_STARTED SystemEventCode = 0x02

	// Scanning phase stopped; periodic imports are suppressed.
	EVENT_CODE_SCAN_STOPPED SystemEventCode = 0x03

	// The displayed mesh was replaced by a freshly imported snapshot.
	/* Context usage:
	 * data = *MeshReplacedEvent
	 */
	EVENT_CODE_MESH_REPLACED SystemEventCode = 0x04

	// A snapshot import failed; the previous mesh is still displayed.
	/* Context usage:
	 * data = *ImportFailedEvent
	 */
	EVENT_CODE_IMPORT_FAILED SystemEventCode = 0x05

	MAX_EVENT_CODE SystemEventCode = 0xFF
)

type EventContext struct {
	Type SystemEventCode
	Data interface{}
}

// MeshReplacedEvent is fired after a successful import replaced the
// displayed geometry.
type MeshReplacedEvent struct {
	SnapshotID  string
	VertexCount uint32
	IndexCount  uint32
}

// ImportFailedEvent is fired when a fetch completed with an error or with
// buffers that failed validation.
type ImportFailedEvent struct {
	Err error
}

type FnOnEvent func(context EventContext)

type eventSystemState struct {
	mutex      sync.RWMutex
	registered map[SystemEventCode][]FnOnEvent
	pending    chan EventContext
	done       chan struct{}
	closed     bool
}

var eventMutex sync.Mutex
var eventState *eventSystemState

// EventSystemInitialize builds the process-wide event state. Calling it
// again after a shutdown starts a fresh state.
func EventSystemInitialize() bool {
	eventMutex.Lock()
	defer eventMutex.Unlock()
	if eventState != nil && !eventState.isClosed() {
		return true
	}
	eventState = &eventSystemState{
		registered: make(map[SystemEventCode][]FnOnEvent),
		pending:    make(chan EventContext, 256),
		done:       make(chan struct{}),
	}
	return true
}

func EventSystemShutdown() error {
	eventMutex.Lock()
	st := eventState
	eventMutex.Unlock()
	if st == nil {
		return nil
	}
	st.mutex.Lock()
	defer st.mutex.Unlock()
	if st.closed {
		return nil
	}
	st.closed = true
	close(st.done)
	st.registered = make(map[SystemEventCode][]FnOnEvent)
	return nil
}

func (st *eventSystemState) isClosed() bool {
	st.mutex.RLock()
	defer st.mutex.RUnlock()
	return st.closed
}

func currentEventState() *eventSystemState {
	eventMutex.Lock()
	defer eventMutex.Unlock()
	return eventState
}

// EventRegister adds a callback for the provided code.
func EventRegister(code SystemEventCode, onEvent FnOnEvent) bool {
	st := currentEventState()
	if st == nil {
		return false
	}
	st.mutex.Lock()
	defer st.mutex.Unlock()
	st.registered[code] = append(st.registered[code], onEvent)
	return true
}

// EventFire queues an event for dispatch. Listeners run on the event
// processing goroutine, not the caller's.
func EventFire(context EventContext) bool {
	st := currentEventState()
	if st == nil {
		return false
	}
	select {
	case st.pending <- context:
		return true
	default:
		LogWarn("event queue full, dropping event code %d", context.Type)
		return false
	}
}

// ProcessEvents dispatches queued events until the event system shuts down.
// Meant to run on its own goroutine.
func ProcessEvents() {
	st := currentEventState()
	if st == nil {
		return
	}
	for {
		select {
		case <-st.done:
			return
		case ctx := <-st.pending:
			st.mutex.RLock()
			listeners := append([]FnOnEvent(nil), st.registered[ctx.Type]...)
			st.mutex.RUnlock()
			for _, l := range listeners {
				l(ctx)
			}
		}
	}
}
