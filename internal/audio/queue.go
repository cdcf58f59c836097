package audio

import "sync"

// Chunk is one buffer delivered by the capture callback.
// Seq increases with arrival order within a FrameQueue.
type Chunk struct {
	Seq     uint64
	Samples []float32
}

// FrameQueue is an unbounded, ordered buffer of captured chunks.
// Push is called from the audio callback and never blocks beyond the
// queue's own short critical section. DrainAll is called by the session
// stop path.
type FrameQueue struct {
	mu     sync.Mutex
	chunks []Chunk
	seq    uint64
}

// NewFrameQueue returns an empty queue.
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

// Push appends samples as the next chunk. The queue takes ownership of the
// slice; callers must not reuse it.
func (q *FrameQueue) Push(samples []float32) {
	q.mu.Lock()
	q.seq++
	q.chunks = append(q.chunks, Chunk{Seq: q.seq, Samples: samples})
	q.mu.Unlock()
}

// DrainAll removes and returns every queued chunk in arrival order.
// The returned slice is never nil.
func (q *FrameQueue) DrainAll() []Chunk {
	q.mu.Lock()
	chunks := q.chunks
	q.chunks = nil
	q.mu.Unlock()

	if chunks == nil {
		return []Chunk{}
	}
	return chunks
}

// Len returns the number of queued chunks.
func (q *FrameQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.chunks)
}
