package sim

// EventHeap implements heap.Interface with deterministic ordering.
// Order by: time → kind priority (departure before arrival) → insertion sequence.
// Equal-time events are therefore NOT processed in plain FIFO order.
type EventHeap []Event

// Len implements heap.Interface
func (h EventHeap) Len() int { return len(h) }

// Less implements heap.Interface with deterministic ordering
func (h EventHeap) Less(i, j int) bool {
	ei, ej := h[i], h[j]

	if ei.Time != ej.Time {
		return ei.Time < ej.Time
	}

	priI, priJ := kindPriority[ei.Kind], kindPriority[ej.Kind]
	if priI != priJ {
		return priI < priJ
	}

	return ei.seq < ej.seq
}

// Swap implements heap.Interface
func (h EventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

// Push implements heap.Interface
func (h *EventHeap) Push(x any) {
	*h = append(*h, x.(Event))
}

// Pop implements heap.Interface
func (h *EventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}
