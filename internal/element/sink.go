package element

import (
	"github.com/demersaj/elements/internal/frame"
)

// Emission is one frame delivered to a named output port.
type Emission struct {
	Port  string
	Frame *frame.Frame
}

// CollectorSink records emissions in the order they are produced. It is used
// by the CLI runner and by tests; the real host supplies its own Sink.
type CollectorSink struct {
	Emissions []Emission
}

// Emit appends the emission to the collector.
func (s *CollectorSink) Emit(port string, f *frame.Frame) error {
	s.Emissions = append(s.Emissions, Emission{Port: port, Frame: f})
	return nil
}

// Ports returns the port names in emission order.
func (s *CollectorSink) Ports() []string {
	ports := make([]string, len(s.Emissions))
	for i, e := range s.Emissions {
		ports[i] = e.Port
	}
	return ports
}

// FuncSink adapts a function to the Sink interface.
type FuncSink func(port string, f *frame.Frame) error

// Emit calls the wrapped function.
func (fn FuncSink) Emit(port string, f *frame.Frame) error {
	return fn(port, f)
}
