package comm

import (
	"fmt"
)

// Reserved tags, user tags must be >= 0
const (
	tagReduce = -1 - iota
	tagBcast
	tagGather
)

// Comm is one rank's handle on a World. It must only be used by the goroutine
// the World started for that rank.
type Comm struct {
	world *World
	rank  int
}

func (c *Comm) Rank() int { return c.rank }

func (c *Comm) Size() int { return c.world.size }

// Send copies buf and delivers it to dest's mailbox. It blocks only while
// dest's inbox is full.
func (c *Comm) Send(buf []float64, dest, tag int) error {
	if tag < 0 {
		return fmt.Errorf("%w: %d", ErrBadTag, tag)
	}
	return c.send(buf, dest, tag)
}

// Recv blocks until a message from source with tag arrives and copies it into
// buf. The message must have exactly len(buf) values.
func (c *Comm) Recv(buf []float64, source, tag int) error {
	if tag < 0 {
		return fmt.Errorf("%w: %d", ErrBadTag, tag)
	}
	return c.recv(buf, source, tag)
}

// Sendrecv sends to dest and then receives from source. Because sends are
// buffered, paired calls between two ranks cannot deadlock.
func (c *Comm) Sendrecv(send []float64, dest, sendTag int,
	recv []float64, source, recvTag int) (err error) {
	if err = c.Send(send, dest, sendTag); err != nil {
		return
	}
	return c.Recv(recv, source, recvTag)
}

func (c *Comm) send(buf []float64, dest, tag int) error {
	w := c.world
	if err := w.checkRank(dest); err != nil {
		return err
	}
	msg := make([]float64, len(buf))
	copy(msg, buf)
	w.mb.PostMessage(c.rank, dest, tag, msg)
	if !w.mb.DeliverMyMessages(c.rank, w.abort) {
		return ErrAborted
	}
	return nil
}

func (c *Comm) recv(buf []float64, source, tag int) error {
	w := c.world
	if err := w.checkRank(source); err != nil {
		return err
	}
	msg, ok := w.mb.WaitMessage(c.rank, source, tag, w.abort)
	if !ok {
		return ErrAborted
	}
	if len(msg) != len(buf) {
		return fmt.Errorf("%w: rank %d expected %d values from rank %d, tag %d, got %d",
			ErrMessageLength, c.rank, len(buf), source, tag, len(msg))
	}
	copy(buf, msg)
	return nil
}
