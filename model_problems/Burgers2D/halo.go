package Burgers2D

import (
	"github.com/notargets/goburgers/geometry2D"
)

const (
	tagY = 0 // Up / down exchanges
	tagX = 1 // Left / right exchanges
)

/*
haloCache holds the strips of the neighboring blocks adjacent to this one:

	Up, Down    - the row just above / below the block, one value per column
	Left, Right - the column just left / right of the block, one value per row

A side on the physical boundary reads as zeros.
*/
type haloCache struct {
	Up, Down    []float64
	Left, Right []float64
	// Outgoing strips of this block
	myUp, myDown    []float64
	myLeft, myRight []float64
}

func newHaloCache(nr, nc int) *haloCache {
	return &haloCache{
		Up: make([]float64, nc), Down: make([]float64, nc),
		Left: make([]float64, nr), Right: make([]float64, nr),
		myUp: make([]float64, nc), myDown: make([]float64, nc),
		myLeft: make([]float64, nr), myRight: make([]float64, nr),
	}
}

// exchangeHalo refreshes the halo cache from the neighbors of vel's block.
// It blocks until every matching message has arrived.
func (b *Burgers) exchangeHalo(vel Field) (err error) {
	var (
		h      = b.halo
		p      = b.Part
		nr, nc = vel.Nyr, vel.Nxr
	)
	for i := 0; i < nc; i++ {
		h.myUp[i] = vel.Data[i*nr]
		h.myDown[i] = vel.Data[i*nr+nr-1]
	}
	copy(h.myLeft, vel.Data[:nr])
	copy(h.myRight, vel.Data[(nc-1)*nr:])

	// Send down, receive from up, then send up, receive from down
	if err = b.sendrecv(h.myDown, p.Down, h.Up, p.Up, tagY); err != nil {
		return
	}
	if err = b.sendrecv(h.myUp, p.Up, h.Down, p.Down, tagY); err != nil {
		return
	}
	// Send right, receive from left, then send left, receive from right
	if err = b.sendrecv(h.myRight, p.Right, h.Left, p.Left, tagX); err != nil {
		return
	}
	return b.sendrecv(h.myLeft, p.Left, h.Right, p.Right, tagX)
}

// sendrecv skips the send toward a physical boundary, and zero fills the strip
// that would have come from one.
func (b *Burgers) sendrecv(send []float64, dest geometry2D.Neighbor,
	recv []float64, source geometry2D.Neighbor, tag int) (err error) {
	if r, ok := dest.Rank(); ok {
		if err = b.comm.Send(send, r, tag); err != nil {
			return
		}
	}
	if r, ok := source.Rank(); ok {
		return b.comm.Recv(recv, r, tag)
	}
	for i := range recv {
		recv[i] = 0
	}
	return
}
