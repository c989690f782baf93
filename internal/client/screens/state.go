package screens

type Kind int

const (
	Idle Kind = iota
	Loading
	Refreshing
	Loaded
	Failed
)

func (k Kind) String() string {
	switch k {
	case Loading:
		return "loading"
	case Refreshing:
		return "refreshing"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// State is a screen's request state. Data survives Loading, Refreshing and
// Failed so the screen can keep showing what it had.
type State[T any] struct {
	kind   Kind
	data   T
	err    error
	loaded bool
}

func (s State[T]) Kind() Kind { return s.kind }

func (s State[T]) Data() T { return s.data }

func (s State[T]) Err() error { return s.err }

func (s State[T]) Busy() bool { return s.kind == Loading || s.kind == Refreshing }

func (s State[T]) HasData() bool { return s.loaded }

// Begin enters Loading, or Refreshing for a user-initiated reload.
func (s State[T]) Begin(refresh bool) State[T] {
	s.err = nil
	if refresh {
		s.kind = Refreshing
	} else {
		s.kind = Loading
	}
	return s
}

func (s State[T]) Succeed(data T) State[T] {
	return State[T]{kind: Loaded, data: data, loaded: true}
}

func (s State[T]) Fail(err error) State[T] {
	s.kind = Failed
	s.err = err
	return s
}

// Acknowledge leaves Failed for the last stable state: Loaded when data was
// fetched before, Idle otherwise.
func (s State[T]) Acknowledge() State[T] {
	if s.kind != Failed {
		return s
	}
	s.err = nil
	if s.loaded {
		s.kind = Loaded
	} else {
		s.kind = Idle
	}
	return s
}
