// Defines the Request struct that models an individual disk I/O request in the simulation.
// Tracks target track, arrival and deadline, and the waiting time accrued while ready.

package sim

import (
	"fmt"
)

// RequestClass separates the two scheduling tiers.
type RequestClass string

const (
	ClassBestEffort RequestClass = "best-effort"
	ClassRealTime   RequestClass = "real-time"
)

// RequestState represents the lifecycle state of a request.
type RequestState string

const (
	StateUnreleased    RequestState = "unreleased"
	StateReady         RequestState = "ready"
	StateRealTime      RequestState = "realtime"
	StateRealTimeReady RequestState = "realtime_ready"
	StateCompleted     RequestState = "completed"
	StateMissed        RequestState = "missed"
)

// legalTransitions lists every state a request may move to from a given state.
var legalTransitions = map[RequestState][]RequestState{
	StateUnreleased:    {StateReady},
	StateRealTime:      {StateRealTimeReady, StateMissed},
	StateReady:         {StateCompleted},
	StateRealTimeReady: {StateCompleted, StateMissed},
}

// IsTerminal reports whether no further transition is possible.
func (s RequestState) IsTerminal() bool {
	return s == StateCompleted || s == StateMissed
}

type Request struct {
	ID    int          // Generation index; doubles as the FCFS tie-breaker
	Class RequestClass // best-effort or real-time
	State RequestState

	Track        int   // Target track
	ArrivalTime  int64 // Tick at which the request becomes eligible
	DeadlineTime int64 // Real-time only; zero for best-effort
	WaitingTime  int64 // Ticks spent in a ready set while the clock advanced

	ReadyTime      int64 // Tick at which the request was promoted
	ServiceTime    int64 // Tick at which the head started towards it (or passed over it)
	CompletionTime int64 // Tick at which it reached Completed or Missed
}

// NewRequest creates a request in its initial, unreleased state for the given class.
func NewRequest(id int, class RequestClass, track int, arrival, deadline int64) *Request {
	state := StateUnreleased
	if class == ClassRealTime {
		state = StateRealTime
	} else {
		deadline = 0
	}
	return &Request{
		ID:           id,
		Class:        class,
		State:        state,
		Track:        track,
		ArrivalTime:  arrival,
		DeadlineTime: deadline,
	}
}

// IsRealTime reports whether the request belongs to the real-time tier.
func (req *Request) IsRealTime() bool {
	return req.Class == ClassRealTime
}

// SetState moves the request to a new lifecycle state.
// Panics on a transition the lifecycle does not allow.
func (req *Request) SetState(to RequestState) {
	for _, allowed := range legalTransitions[req.State] {
		if allowed == to {
			req.State = to
			return
		}
	}
	panic(fmt.Sprintf("request %d: illegal transition %s -> %s", req.ID, req.State, to))
}

// This method returns a human-readable string representation of a Request.
func (req Request) String() string {
	return fmt.Sprintf("Request: (ID: %d, Class: %s, State: %s, Track: %d, ArrivalTime: %d)", req.ID, req.Class, req.State, req.Track, req.ArrivalTime)
}
