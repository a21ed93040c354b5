package priority_queue

import (
	"container/heap"
	"sync"
)

// QueueItem is a wrapper around the item to be stored in the priority queue.
type QueueItem[T any] struct {
	Item     T
	Priority int
	index    int
	seq      uint64
}

// PriorityQueue is a thread-safe priority queue used to rank items, for
// example upstreams by how often they were selected.
type PriorityQueue[T any] struct {
	queue *heapQueue[T]
	mutex sync.Mutex
}

func newPriorityQueue[T any](less func(a, b int) bool) *PriorityQueue[T] {
	pq := &PriorityQueue[T]{
		queue: &heapQueue[T]{
			items: make([]*QueueItem[T], 0),
			less:  less,
		},
	}
	heap.Init(pq.queue)
	return pq
}

// NewMaxPriorityQueue creates a max heap (higher priority values come first)
func NewMaxPriorityQueue[T any]() *PriorityQueue[T] {
	return newPriorityQueue[T](func(a, b int) bool { return a > b })
}

// NewMinPriorityQueue creates a min heap (lower priority values come first)
func NewMinPriorityQueue[T any]() *PriorityQueue[T] {
	return newPriorityQueue[T](func(a, b int) bool { return a < b })
}

// Push adds item with the given priority and returns the new size.
func (pq *PriorityQueue[T]) Push(item T, priority int) int {
	pq.mutex.Lock()
	defer pq.mutex.Unlock()
	heap.Push(pq.queue, &QueueItem[T]{Item: item, Priority: priority})
	return len(pq.queue.items)
}

// Pop removes and returns the first item in priority order. ok is false when
// the queue is empty.
func (pq *PriorityQueue[T]) Pop() (item T, ok bool) {
	pq.mutex.Lock()
	defer pq.mutex.Unlock()
	if len(pq.queue.items) == 0 {
		return item, false
	}
	queueItem := heap.Pop(pq.queue).(*QueueItem[T])
	return queueItem.Item, true
}

// Drain pops every item and returns them in priority order.
func (pq *PriorityQueue[T]) Drain() []QueueItem[T] {
	pq.mutex.Lock()
	defer pq.mutex.Unlock()

	drained := make([]QueueItem[T], 0, len(pq.queue.items))
	for len(pq.queue.items) > 0 {
		drained = append(drained, *heap.Pop(pq.queue).(*QueueItem[T]))
	}
	return drained
}

// Size returns the number of items in the priority queue
func (pq *PriorityQueue[T]) Size() int {
	pq.mutex.Lock()
	defer pq.mutex.Unlock()
	return len(pq.queue.items)
}
