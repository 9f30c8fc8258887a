package huffman

// queueItem is a node waiting to be merged.
type queueItem struct {
	id   int16
	freq uint64
}

// queue is a bounded priority queue of nodes ordered by ascending frequency.
//
// Ties pop in insertion order. Items are stored in descending order, so the
// minimum sits at items[n-1]: pop is O(1) and push shifts the tail after a
// binary search. An item is placed in front of the items of equal frequency
// already queued, which keeps the older ones closer to the tail.
type queue struct {
	items [queueSize]queueItem
	n     int
}

// push inserts id with freq. Returns false if the queue is full.
func (q *queue) push(id int16, freq uint64) bool {
	if q.n == len(q.items) {
		return false
	}
	// first slot whose frequency is <= freq; everything before it is larger
	i, j := 0, q.n
	for i < j {
		h := int(uint(i+j) >> 1)
		if q.items[h].freq > freq {
			i = h + 1
		} else {
			j = h
		}
	}
	copy(q.items[i+1:q.n+1], q.items[i:q.n])
	q.items[i] = queueItem{id: id, freq: freq}
	q.n++
	return true
}

// pop removes and returns the item with the lowest frequency.
func (q *queue) pop() (queueItem, error) {
	if q.n == 0 {
		return queueItem{}, ErrEmptyQueue
	}
	q.n--
	return q.items[q.n], nil
}

func (q *queue) isEmpty() bool { return q.n == 0 }

func (q *queue) len() int { return q.n }

func (q *queue) reset() { q.n = 0 }
