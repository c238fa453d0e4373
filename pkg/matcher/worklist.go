package matcher

// worklist holds the hospitals that are free and still have students left to propose to
type worklist interface {
	Push(hospital int)
	Pop() int
	Len() int
}

func newWorklist(strategy Strategy, capacity int) worklist {
	if strategy == Stack {
		return &stackWorklist{items: make([]int, 0, capacity)}
	}
	return &queueWorklist{items: make([]int, 0, capacity)}
}

// queueWorklist is a FIFO backed by a slice with a moving head; consumed items are dropped once they make up half the slice
type queueWorklist struct {
	items []int
	head  int
}

func (queue *queueWorklist) Push(hospital int) {
	if queue.head > 0 && queue.head >= len(queue.items)/2 {
		queue.items = append(queue.items[:0], queue.items[queue.head:]...)
		queue.head = 0
	}
	queue.items = append(queue.items, hospital)
}

func (queue *queueWorklist) Pop() int {
	hospital := queue.items[queue.head]
	queue.head++
	return hospital
}

func (queue *queueWorklist) Len() int {
	return len(queue.items) - queue.head
}

type stackWorklist struct {
	items []int
}

func (stack *stackWorklist) Push(hospital int) {
	stack.items = append(stack.items, hospital)
}

func (stack *stackWorklist) Pop() int {
	hospital := stack.items[len(stack.items)-1]
	stack.items = stack.items[:len(stack.items)-1]
	return hospital
}

func (stack *stackWorklist) Len() int {
	return len(stack.items)
}
