package runtime

import "github.com/aretw0/simchain/pkg/domain"

// event schedules an arrival to run act at time. A nil act means the arrival leaves its
// trajectory at that time.
type event struct {
	time     float64
	priority int
	seq      uint64
	arrival  *Arrival
	act      domain.Activity
}

// eventQueue orders events by time, then by higher priority, then by insertion.
// It implements heap.Interface.
type eventQueue []*event

func (q eventQueue) Len() int { return len(q) }

func (q eventQueue) Less(i, j int) bool {
	if q[i].time != q[j].time {
		return q[i].time < q[j].time
	}
	if q[i].priority != q[j].priority {
		return q[i].priority > q[j].priority
	}
	return q[i].seq < q[j].seq
}

func (q eventQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *eventQueue) Push(x any) { *q = append(*q, x.(*event)) }

func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	ev := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return ev
}
