package Burgers2D

import (
	"gonum.org/v1/gonum/mat"
)

// Frame is the assembled global state at one recorded step
type Frame struct {
	Step int
	Time float64
	U, V *mat.Dense
}

// History keeps the most recent frames, oldest first. A capacity of 0 keeps
// every frame.
type History struct {
	capacity int
	frames   []Frame
	start    int // Index of the oldest frame once the ring is full
}

func NewHistory(capacity int) *History {
	if capacity < 0 {
		capacity = 0
	}
	return &History{capacity: capacity}
}

func (h *History) Push(f Frame) {
	if h.capacity == 0 || len(h.frames) < h.capacity {
		h.frames = append(h.frames, f)
		return
	}
	h.frames[h.start] = f
	h.start = (h.start + 1) % h.capacity
}

func (h *History) Len() int { return len(h.frames) }

func (h *History) Frames() (frames []Frame) {
	frames = make([]Frame, 0, len(h.frames))
	frames = append(frames, h.frames[h.start:]...)
	frames = append(frames, h.frames[:h.start]...)
	return
}

// Last returns the most recent frame, ok is false when empty
func (h *History) Last() (f Frame, ok bool) {
	if len(h.frames) == 0 {
		return
	}
	n := h.start - 1
	if n < 0 {
		n = len(h.frames) - 1
	}
	return h.frames[n], true
}
