package crawl

// Queue hands out document ids breadth first. An id is accepted once;
// later pushes of the same id are ignored.
type Queue struct {
	order []string
	seen  map[string]struct{}
	head  int
}

func NewQueue() *Queue {
	return &Queue{seen: map[string]struct{}{}}
}

// Push appends id unless it is empty or already known, and reports
// whether it was appended.
func (q *Queue) Push(id string) bool {
	if id == "" {
		return false
	}
	if _, dup := q.seen[id]; dup {
		return false
	}
	q.seen[id] = struct{}{}
	q.order = append(q.order, id)
	return true
}

// Pop returns the oldest id not yet handed out.
func (q *Queue) Pop() (string, bool) {
	if q.head == len(q.order) {
		return "", false
	}
	id := q.order[q.head]
	q.head++
	return id, true
}

// Popped is how many ids Pop has returned.
func (q *Queue) Popped() int { return q.head }

// Pending is how many accepted ids are still waiting.
func (q *Queue) Pending() int { return len(q.order) - q.head }

// Seen returns every accepted id in the order it was pushed.
func (q *Queue) Seen() []string {
	return append([]string(nil), q.order...)
}
