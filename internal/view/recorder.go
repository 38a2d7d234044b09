package view

// Push is one recorded widget update.
type Push struct {
	Widget  string
	Data    any
	Initial bool // true for Render, false for Update
}

// Recorder is an in-memory Sink for tests. It records every push in order.
type Recorder struct {
	Pushes   []Push
	Disposed bool
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Render(widget string, data any) error {
	r.Pushes = append(r.Pushes, Push{Widget: widget, Data: data, Initial: true})
	return nil
}

func (r *Recorder) Update(widget string, data any) error {
	r.Pushes = append(r.Pushes, Push{Widget: widget, Data: data})
	return nil
}

func (r *Recorder) Dispose() { r.Disposed = true }

// Last returns the most recent push for a widget, or nil.
func (r *Recorder) Last(widget string) *Push {
	for i := len(r.Pushes) - 1; i >= 0; i-- {
		if r.Pushes[i].Widget == widget {
			return &r.Pushes[i]
		}
	}
	return nil
}

// Count returns how many pushes a widget has received.
func (r *Recorder) Count(widget string) int {
	n := 0
	for _, p := range r.Pushes {
		if p.Widget == widget {
			n++
		}
	}
	return n
}
