package comm

import (
	"fmt"
)

const root = 0

// AllReduceSum returns the sum of x over all ranks. Every rank must call it.
// Contributions are added at rank 0 in rank order, so every rank receives the
// same bits regardless of arrival order.
func (c *Comm) AllReduceSum(x float64) (sum float64, err error) {
	var (
		one = []float64{x}
	)
	if c.rank != root {
		if err = c.send(one, root, tagReduce); err != nil {
			return
		}
		if err = c.recv(one, root, tagBcast); err != nil {
			return
		}
		sum = one[0]
		return
	}
	sum = x
	for r := 1; r < c.Size(); r++ {
		if err = c.recv(one, r, tagReduce); err != nil {
			return
		}
		sum += one[0]
	}
	one[0] = sum
	for r := 1; r < c.Size(); r++ {
		if err = c.send(one, r, tagBcast); err != nil {
			return
		}
	}
	return
}

// Barrier returns once every rank has entered it.
func (c *Comm) Barrier() (err error) {
	_, err = c.AllReduceSum(0)
	return
}

/*
Gatherv collects a variable length block from every rank into recv on the root
rank. Rank k's block lands at recv[displs[k]:displs[k]+counts[k]] and must have
exactly counts[k] values. counts, displs and recv are only read on the root;
recv may be nil elsewhere.
*/
func (c *Comm) Gatherv(send, recv []float64, counts, displs []int, rootRank int) (err error) {
	if err = c.world.checkRank(rootRank); err != nil {
		return
	}
	if c.rank != rootRank {
		return c.send(send, rootRank, tagGather)
	}
	if len(counts) != c.Size() || len(displs) != c.Size() {
		return fmt.Errorf("%w: need %d counts and displacements, have %d and %d",
			ErrMessageLength, c.Size(), len(counts), len(displs))
	}
	for r := 0; r < c.Size(); r++ {
		if displs[r] < 0 || displs[r]+counts[r] > len(recv) {
			return fmt.Errorf("%w: block %d [%d,%d) does not fit a receive buffer of %d",
				ErrMessageLength, r, displs[r], displs[r]+counts[r], len(recv))
		}
		block := recv[displs[r] : displs[r]+counts[r]]
		if r == rootRank {
			if len(send) != counts[r] {
				return fmt.Errorf("%w: root block has %d values, expected %d",
					ErrMessageLength, len(send), counts[r])
			}
			copy(block, send)
			continue
		}
		if err = c.recv(block, r, tagGather); err != nil {
			return
		}
	}
	return
}
