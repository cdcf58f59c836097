package audio

import (
	"sync"
	"testing"
)

func TestFrameQueueDrainAllOrder(t *testing.T) {
	q := NewFrameQueue()
	for i := 0; i < 5; i++ {
		q.Push([]float32{float32(i)})
	}

	chunks := q.DrainAll()
	if len(chunks) != 5 {
		t.Fatalf("DrainAll() returned %d chunks, want 5", len(chunks))
	}
	for i, c := range chunks {
		if c.Samples[0] != float32(i) {
			t.Errorf("chunks[%d].Samples[0] = %v, want %v", i, c.Samples[0], float32(i))
		}
		if i > 0 && c.Seq <= chunks[i-1].Seq {
			t.Errorf("chunks[%d].Seq = %d, not after %d", i, c.Seq, chunks[i-1].Seq)
		}
	}
}

func TestFrameQueueDrainEmpty(t *testing.T) {
	q := NewFrameQueue()
	q.Push([]float32{0.1})
	q.DrainAll()

	chunks := q.DrainAll()
	if chunks == nil {
		t.Fatal("DrainAll() on empty queue returned nil, want empty slice")
	}
	if len(chunks) != 0 {
		t.Errorf("DrainAll() on empty queue returned %d chunks, want 0", len(chunks))
	}
	if q.Len() != 0 {
		t.Errorf("Len() = %d, want 0", q.Len())
	}
}

func TestFrameQueueConcurrentPush(t *testing.T) {
	q := NewFrameQueue()

	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 250; i++ {
				q.Push([]float32{0})
			}
		}()
	}
	wg.Wait()

	chunks := q.DrainAll()
	if len(chunks) != 1000 {
		t.Fatalf("DrainAll() returned %d chunks, want 1000", len(chunks))
	}
	for i := 1; i < len(chunks); i++ {
		if chunks[i].Seq != chunks[i-1].Seq+1 {
			t.Fatalf("chunks[%d].Seq = %d, want %d", i, chunks[i].Seq, chunks[i-1].Seq+1)
		}
	}
}
