package vm

import (
	"github.com/picoshell-dev/picoshell/object"
)

// Frame is the mutable value-slot array an operator invocation works on.
// Slot 0 holds the receiver and slots 1..NArgs hold the arguments. The
// result of an invocation, whatever its type, is communicated by overwriting
// slot 0.
type Frame struct {
	rt    *Runtime
	slots []object.Object
}

// NewFrame builds an invocation frame for the given receiver and arguments.
func (r *Runtime) NewFrame(receiver object.Object, args ...object.Object) *Frame {
	slots := make([]object.Object, 0, len(args)+1)
	slots = append(slots, receiver)
	slots = append(slots, args...)
	return &Frame{rt: r, slots: slots}
}

// Receiver returns slot 0.
func (f *Frame) Receiver() object.Object {
	return f.slots[0]
}

// NArgs returns the number of argument slots.
func (f *Frame) NArgs() int {
	return len(f.slots) - 1
}

// Args returns the argument slots.
func (f *Frame) Args() []object.Object {
	return f.slots[1:]
}

// Slot returns the value at index i, receiver included.
func (f *Frame) Slot(i int) object.Object {
	return f.slots[i]
}

// SetReceiver overwrites slot 0 with obj. The value previously occupying the
// slot is released first, unless it is obj itself, so the prior object is
// never leaked by a result overwrite.
func (f *Frame) SetReceiver(obj object.Object) {
	prev := f.slots[0]
	if prev == obj {
		return
	}
	f.rt.release(prev)
	f.slots[0] = obj
}
