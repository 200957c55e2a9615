package utils

import "fmt"

// DynBuffer is a growable FIFO of cells
type DynBuffer[T any] struct {
	cells []T
	head  int
}

func NewDynBuffer[T any](capacity int) *DynBuffer[T] {
	return &DynBuffer[T]{cells: make([]T, 0, capacity)}
}

func (b *DynBuffer[T]) Add(c T)    { b.cells = append(b.cells, c) }
func (b *DynBuffer[T]) Cells() []T { return b.cells[b.head:] }
func (b *DynBuffer[T]) Len() int   { return len(b.cells) - b.head }

// Pop removes and returns the oldest cell
func (b *DynBuffer[T]) Pop() (c T, ok bool) {
	if b.Len() == 0 {
		return
	}
	c, ok = b.cells[b.head], true
	var zero T
	b.cells[b.head] = zero
	b.head++
	if b.head == len(b.cells) {
		b.Reset()
	}
	return
}

func (b *DynBuffer[T]) Reset() {
	b.cells = b.cells[:0]
	b.head = 0
}

// Envelope is a message in transit with its sender and tag
type Envelope[T any] struct {
	From, Tag int
	Msg       T
}

type mailKey struct{ from, tag int }

/*
MailBox moves messages between NP threads. A thread posts messages to its own
outbox, then delivers the outbox; each target receives the batch through its
own channel and sorts it into per (sender, tag) queues.

	for range messages {PostMessage}; DeliverMyMessages; ...; WaitMessage

Every slot indexed by myThread must only be touched by that thread, so the
only shared state is the channels.
*/
type MailBox[T any] struct {
	NP           int
	MessageChans []chan *DynBuffer[Envelope[T]]    // One for each thread
	PostMsgQs    []map[int]*DynBuffer[Envelope[T]] // One for each thread, key is target thread
	ReceiveMsgQs []map[mailKey]*DynBuffer[T]       // One for each thread
	MailFlag     []bool                            // MyThread has messages in outbox
}

// NewMailBox allocates the mailbox. Each thread's channel holds up to depth
// undelivered batches per sender.
func NewMailBox[T any](NP, depth int) *MailBox[T] {
	mb := &MailBox[T]{
		NP:           NP,
		MessageChans: make([]chan *DynBuffer[Envelope[T]], NP),
		PostMsgQs:    make([]map[int]*DynBuffer[Envelope[T]], NP),
		ReceiveMsgQs: make([]map[mailKey]*DynBuffer[T], NP),
		MailFlag:     make([]bool, NP),
	}
	for n := 0; n < NP; n++ {
		mb.MessageChans[n] = make(chan *DynBuffer[Envelope[T]], NP*depth) // Worst case is all-to-all
		mb.PostMsgQs[n] = make(map[int]*DynBuffer[Envelope[T]])
		mb.ReceiveMsgQs[n] = make(map[mailKey]*DynBuffer[T])
	}
	return mb
}

func (mb *MailBox[T]) PostMessage(myThread, targetThread, tag int, msg T) {
	if targetThread < 0 || targetThread > mb.NP-1 {
		panic(fmt.Sprintf("Target thread %d out of bounds", targetThread))
	}
	tgt, exists := mb.PostMsgQs[myThread][targetThread]
	if !exists {
		tgt = NewDynBuffer[Envelope[T]](1)
		mb.PostMsgQs[myThread][targetThread] = tgt
	}
	tgt.Add(Envelope[T]{From: myThread, Tag: tag, Msg: msg})
	mb.MailFlag[myThread] = true
}

// DeliverMyMessages hands every non empty outbox of myThread to its target.
// It blocks while a target's channel is full and gives up, returning false,
// when done is closed.
func (mb *MailBox[T]) DeliverMyMessages(myThread int, done <-chan struct{}) bool {
	if !mb.MailFlag[myThread] {
		return true
	}
	for targetThread, msgBuffer := range mb.PostMsgQs[myThread] {
		if msgBuffer.Len() == 0 {
			continue
		}
		select {
		case mb.MessageChans[targetThread] <- msgBuffer:
		case <-done:
			return false
		}
		// The delivered buffer now belongs to the receiver
		mb.PostMsgQs[myThread][targetThread] = NewDynBuffer[Envelope[T]](1)
	}
	mb.MailFlag[myThread] = false
	return true
}

// WaitMessage returns the oldest message from fromThread with tag, blocking
// until one is delivered. ok is false when done is closed first.
func (mb *MailBox[T]) WaitMessage(myThread, fromThread, tag int, done <-chan struct{}) (msg T, ok bool) {
	key := mailKey{from: fromThread, tag: tag}
	for {
		if q, exists := mb.ReceiveMsgQs[myThread][key]; exists {
			if msg, ok = q.Pop(); ok {
				return
			}
		}
		select {
		case msgBuffer := <-mb.MessageChans[myThread]:
			mb.file(myThread, msgBuffer)
		case <-done:
			return
		}
	}
}

func (mb *MailBox[T]) file(myThread int, msgBuffer *DynBuffer[Envelope[T]]) {
	for _, env := range msgBuffer.Cells() {
		key := mailKey{from: env.From, tag: env.Tag}
		q, exists := mb.ReceiveMsgQs[myThread][key]
		if !exists {
			q = NewDynBuffer[T](1)
			mb.ReceiveMsgQs[myThread][key] = q
		}
		q.Add(env.Msg)
	}
}

type PartitionMap struct {
	MaxIndex       int // MaxIndex is partitioned into ParallelDegree partitions
	ParallelDegree int
	Partitions     [][2]int // Beginning and end index of partitions
}

func NewPartitionMap(ParallelDegree, maxIndex int) (pm *PartitionMap) {
	pm = &PartitionMap{
		MaxIndex:       maxIndex,
		ParallelDegree: ParallelDegree,
		Partitions:     make([][2]int, ParallelDegree),
	}
	for n := 0; n < ParallelDegree; n++ {
		pm.Partitions[n] = pm.Split1D(n)
	}
	return
}

// GetBucket returns the bucket holding index k, or bucketNum = -1 when k is
// outside the map.
func (pm *PartitionMap) GetBucket(k int) (bucketNum, min, max int) {
	if k < 0 || k >= pm.MaxIndex {
		return -1, 0, 0
	}
	// Initial guess
	bucketNum = int(float64(pm.ParallelDegree*k) / float64(pm.MaxIndex))
	for !(pm.Partitions[bucketNum][0] <= k && pm.Partitions[bucketNum][1] > k) {
		if pm.Partitions[bucketNum][0] > k {
			bucketNum--
		} else {
			bucketNum++
		}
	}
	min, max = pm.Partitions[bucketNum][0], pm.Partitions[bucketNum][1]
	return
}

func (pm *PartitionMap) GetBucketRange(bucketNum int) (kMin, kMax int) {
	kMin, kMax = pm.Partitions[bucketNum][0], pm.Partitions[bucketNum][1]
	return
}

func (pm *PartitionMap) GetBucketDimension(bn int) (kMax int) {
	if bn == -1 {
		kMax = pm.MaxIndex
		return
	}
	var (
		k1, k2 = pm.GetBucketRange(bn)
	)
	kMax = k2 - k1
	return
}

// GetLocalK converts a global index into (local index, bucket size, bucket).
func (pm *PartitionMap) GetLocalK(baseK int) (k, Kmax, bn int) {
	var (
		kmin, kmax int
	)
	bn, kmin, kmax = pm.GetBucket(baseK)
	Kmax = kmax - kmin
	k = baseK - kmin
	return
}

func (pm *PartitionMap) GetGlobalK(kLocal, bn int) (kGlobal int) {
	if bn == -1 {
		kGlobal = kLocal
		return
	}
	kGlobal = pm.Partitions[bn][0] + kLocal
	return
}

func (pm *PartitionMap) Split1D(threadNum int) (bucket [2]int) {
	// This routine splits one dimension into pm.ParallelDegree pieces, with a maximum imbalance of one item
	var (
		Npart            = pm.MaxIndex / (pm.ParallelDegree)
		startAdd, endAdd int
		remainder        int
	)
	remainder = pm.MaxIndex % pm.ParallelDegree
	if remainder != 0 { // spread the remainder over the first chunks evenly
		if threadNum+1 > remainder {
			startAdd = remainder
			endAdd = 0
		} else {
			startAdd = threadNum
			endAdd = 1
		}
	}
	bucket[0] = threadNum*Npart + startAdd
	bucket[1] = bucket[0] + Npart + endAdd
	return
}
