package booking

type State string

const (
	StateIdle       State = "IDLE"
	StateValidating State = "VALIDATING"
	StateSubmitting State = "SUBMITTING"
	StateSucceeded  State = "SUCCEEDED"
	StateFailed     State = "FAILED"
)

var validNext = map[State]map[State]bool{
	StateIdle:       {StateValidating: true},
	StateValidating: {StateIdle: true, StateSubmitting: true},
	StateSubmitting: {StateSucceeded: true, StateFailed: true},
	StateFailed:     {StateValidating: true},
	StateSucceeded:  {},
}

func CanTransition(from, to State) bool {
	return validNext[from][to]
}
