package event

// Queue is the editor's pending-command FIFO. It is owned by a single
// goroutine and is not safe for concurrent use.
type Queue struct {
	items []Command
}

// Push appends a command.
func (q *Queue) Push(c Command) {
	q.items = append(q.items, c)
}

// Pop removes and returns the oldest command.
func (q *Queue) Pop() (Command, bool) {
	if len(q.items) == 0 {
		return Command{}, false
	}
	c := q.items[0]
	q.items[0] = Command{}
	q.items = q.items[1:]
	return c, true
}

// Len returns the number of pending commands.
func (q *Queue) Len() int { return len(q.items) }

// Drain pops commands in FIFO order until the queue is empty, including any
// that fn pushes while running. It returns how many commands ran.
func (q *Queue) Drain(fn func(Command)) int {
	n := 0
	for {
		c, ok := q.Pop()
		if !ok {
			// Drop the backing array so a long session does not pin it.
			q.items = nil
			return n
		}
		fn(c)
		n++
	}
}
