package priority_queue

import "container/heap"

// heapQueue implements heap.Interface over QueueItem elements. Items with equal
// priority come out in insertion order, which keeps rankings reproducible.
type heapQueue[T any] struct {
	items []*QueueItem[T]
	less  func(a, b int) bool
	seq   uint64
}

var _ heap.Interface = &heapQueue[any]{}

func (pq heapQueue[T]) Len() int { return len(pq.items) }
func (pq heapQueue[T]) Less(i, j int) bool {
	a, b := pq.items[i], pq.items[j]
	if a.Priority != b.Priority {
		return pq.less(a.Priority, b.Priority)
	}
	return a.seq < b.seq
}
func (pq heapQueue[T]) Swap(i, j int) {
	pq.items[i], pq.items[j] = pq.items[j], pq.items[i]
	pq.items[i].index = i
	pq.items[j].index = j
}

func (pq *heapQueue[T]) Push(item any) {
	queueItem := item.(*QueueItem[T])
	queueItem.index = len(pq.items)
	queueItem.seq = pq.seq
	pq.seq++
	pq.items = append(pq.items, queueItem)
}

func (pq *heapQueue[T]) Pop() any {
	old := pq.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // don't stop the GC from reclaiming the item eventually
	item.index = -1 // for safety
	pq.items = old[0 : n-1]
	return item
}
