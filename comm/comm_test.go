package comm

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointToPoint(t *testing.T) {
	{ // Ring exchange, FIFO per route and copy on send
		w, err := NewWorld(4)
		require.NoError(t, err)
		got := make([][]float64, 4)
		err = w.Run(func(c *Comm) error {
			var (
				right = (c.Rank() + 1) % c.Size()
				left  = (c.Rank() + c.Size() - 1) % c.Size()
				buf   = []float64{float64(c.Rank()), 0}
				in    = make([]float64, 2)
			)
			for n := 0; n < 3; n++ {
				buf[1] = float64(n)
				if err := c.Send(buf, right, 7); err != nil {
					return err
				}
			}
			buf[0] = -1 // Mutating after send must not affect the queued copies
			for n := 0; n < 3; n++ {
				if err := c.Recv(in, left, 7); err != nil {
					return err
				}
				if in[1] != float64(n) {
					return fmt.Errorf("out of order message %v", in)
				}
			}
			got[c.Rank()] = []float64{in[0], in[1]}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, [][]float64{{3, 2}, {0, 2}, {1, 2}, {2, 2}}, got)
	}
	{ // Paired Sendrecv between two ranks
		w, err := NewWorld(2)
		require.NoError(t, err)
		got := make([]float64, 2)
		err = w.Run(func(c *Comm) error {
			var (
				other = 1 - c.Rank()
				in    = make([]float64, 1)
			)
			if err := c.Sendrecv([]float64{float64(10 + c.Rank())}, other, 0, in, other, 0); err != nil {
				return err
			}
			got[c.Rank()] = in[0]
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []float64{11, 10}, got)
	}
	{ // Argument errors
		w, err := NewWorld(2)
		require.NoError(t, err)
		err = w.Run(func(c *Comm) error {
			if c.Rank() == 0 {
				return c.Send([]float64{1}, 2, 0)
			}
			return nil
		})
		assert.True(t, errors.Is(err, ErrBadRank))
		err = w.Run(func(c *Comm) error {
			return c.Recv(make([]float64, 1), 0, -4)
		})
		assert.True(t, errors.Is(err, ErrBadTag))
		_, err = NewWorld(0)
		assert.True(t, errors.Is(err, ErrBadRank))
	}
	{ // Length mismatch is an error on the receiver
		w, err := NewWorld(2)
		require.NoError(t, err)
		err = w.Run(func(c *Comm) error {
			if c.Rank() == 0 {
				return c.Send([]float64{1, 2, 3}, 1, 0)
			}
			return c.Recv(make([]float64, 2), 0, 0)
		})
		assert.True(t, errors.Is(err, ErrMessageLength))
	}
}

func TestAbort(t *testing.T) {
	{ // A failing rank releases every blocked rank
		w, err := NewWorld(3)
		require.NoError(t, err)
		boom := errors.New("boom")
		blocked := make([]error, 3)
		err = w.Run(func(c *Comm) error {
			if c.Rank() == 2 {
				return boom
			}
			// Never satisfied, rank 2 does not send
			blocked[c.Rank()] = c.Recv(make([]float64, 1), 2, 0)
			return blocked[c.Rank()]
		})
		assert.True(t, errors.Is(err, boom))
		assert.True(t, errors.Is(blocked[0], ErrAborted))
		assert.True(t, errors.Is(blocked[1], ErrAborted))
	}
	{ // Panics are converted into errors
		w, err := NewWorld(2)
		require.NoError(t, err)
		err = w.Run(func(c *Comm) error {
			if c.Rank() == 1 {
				var s []float64
				_ = s[3]
			}
			_, err := c.AllReduceSum(1)
			return err
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rank 1 panicked")
	}
	{ // The world is reusable after an abort
		w, err := NewWorld(2)
		require.NoError(t, err)
		_ = w.Run(func(c *Comm) error { return errors.New("fail") })
		assert.NoError(t, w.Run(func(c *Comm) error { return c.Barrier() }))
	}
}

func TestCollectives(t *testing.T) {
	{ // AllReduceSum is identical on every rank
		for _, np := range []int{1, 2, 5} {
			w, err := NewWorld(np)
			require.NoError(t, err)
			sums := make([]float64, np)
			err = w.Run(func(c *Comm) (err error) {
				sums[c.Rank()], err = c.AllReduceSum(0.1 * float64(c.Rank()+1))
				return
			})
			require.NoError(t, err)
			var want float64
			for r := 0; r < np; r++ {
				want += 0.1 * float64(r+1)
			}
			for r := 0; r < np; r++ {
				assert.Equal(t, want, sums[r])
			}
		}
	}
	{ // Gatherv places blocks by displacement
		var (
			counts = []int{2, 1, 3}
			displs = []int{0, 2, 3}
			recv   = make([]float64, 6)
		)
		w, err := NewWorld(3)
		require.NoError(t, err)
		err = w.Run(func(c *Comm) error {
			send := make([]float64, counts[c.Rank()])
			for i := range send {
				send[i] = float64(10*c.Rank() + i)
			}
			var r []float64
			if c.Rank() == 0 {
				r = recv
			}
			return c.Gatherv(send, r, counts, displs, 0)
		})
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 1, 10, 20, 21, 22}, recv)
	}
	{ // Gatherv with a wrong block size fails
		w, err := NewWorld(2)
		require.NoError(t, err)
		err = w.Run(func(c *Comm) error {
			return c.Gatherv(make([]float64, 2), make([]float64, 3), []int{1, 2}, []int{0, 1}, 0)
		})
		assert.True(t, errors.Is(err, ErrMessageLength))
	}
}
