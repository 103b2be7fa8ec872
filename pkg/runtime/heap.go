package runtime

import (
	"github.com/google/uuid"
)

// Heap stores reference-semantic values behind opaque handles. A Heap
// belongs to a single interpreter and is not safe for concurrent use.
type Heap struct {
	slots     map[Handle]Value
	newHandle func() Handle
}

// NewHeap returns an empty heap issuing UUID handles.
func NewHeap() *Heap {
	return &Heap{
		slots: make(map[Handle]Value),
		newHandle: func() Handle {
			return Handle(uuid.NewString())
		},
	}
}

// Allocate stores v under a fresh handle.
func (h *Heap) Allocate(v Value) PointerValue {
	handle := h.newHandle()
	for {
		if _, taken := h.slots[handle]; !taken {
			break
		}
		handle = h.newHandle()
	}
	h.slots[handle] = v
	return PointerValue{Handle: handle}
}

// Get returns the value stored under handle.
func (h *Heap) Get(handle Handle) (Value, error) {
	if v, ok := h.slots[handle]; ok {
		return v, nil
	}
	return nil, &HeapHandleNotFoundError{Handle: handle}
}

// Store replaces the value under an existing handle; every pointer holding
// the handle observes the new value.
func (h *Heap) Store(handle Handle, v Value) error {
	if _, ok := h.slots[handle]; !ok {
		return &HeapHandleNotFoundError{Handle: handle}
	}
	h.slots[handle] = v
	return nil
}

// Deref follows a pointer to its payload; other values are returned as-is.
func (h *Heap) Deref(v Value) (Value, error) {
	ptr, ok := v.(PointerValue)
	if !ok {
		return v, nil
	}
	return h.Get(ptr.Handle)
}

// Len reports the number of live slots.
func (h *Heap) Len() int {
	return len(h.slots)
}
