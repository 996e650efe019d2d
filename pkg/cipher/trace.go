package cipher

// Request is the input to a [Generator]. Key is optional; an empty Key
// means "not provided".
type Request struct {
	Text string
	Key  string
	Mode Mode
}

// Trace is the complete, eagerly computed output of a generator run.
type Trace struct {
	Cipher ID
	Mode   Mode
	// Input is the normalized text the algorithm actually ran on.
	Input string
	// Key is the normalized key material the algorithm used.
	Key    string
	Steps  []Step
	Result string
}

// Empty reports whether the trace signals insufficient input.
func (t Trace) Empty() bool {
	return len(t.Steps) == 0
}

// Last returns the final step. It panics on an empty trace.
func (t Trace) Last() Step {
	return t.Steps[len(t.Steps)-1]
}

// recorder accumulates steps for one generator run.
type recorder struct {
	steps []Step
}

func (r *recorder) add(description string, v Visual) {
	r.steps = append(r.steps, Step{Description: description, Visual: v})
}

// finish appends the result step and returns the trace.
func (r *recorder) finish(base Trace, description string, result Result) Trace {
	r.add(description, result)

	base.Steps = r.steps
	base.Result = result.Text

	return base
}

// emptyTrace is returned for insufficient input.
func emptyTrace(id ID, mode Mode) Trace {
	return Trace{Cipher: id, Mode: mode}
}
