package telemetry

import (
	"io"
	"sync"
	"time"
)

// TimingCollector collects timings into a tree that Report prints as a
// nested view. It is safe for concurrent use.
type TimingCollector struct {
	mu      sync.Mutex
	roots   []*timerNode
	current *timerNode
	now     func() time.Time
}

type timerNode struct {
	name     string
	start    time.Time
	end      time.Time
	children []*timerNode
	parent   *timerNode
}

// NewTimingCollector creates a new timing collector.
func NewTimingCollector() *TimingCollector {
	return &TimingCollector{now: time.Now}
}

// Start begins timing an operation. While another timer started by Start is
// still running, the new timer is nested under it.
func (c *TimingCollector) Start(name string) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	node := &timerNode{
		name:   name,
		start:  c.now(),
		parent: c.current,
	}

	if c.current == nil {
		c.roots = append(c.roots, node)
	} else {
		c.current.children = append(c.current.children, node)
	}
	c.current = node

	return &timingTimer{collector: c, node: node, tracked: true}
}

// Report writes the timing tree to w.
func (c *TimingCollector) Report(w io.Writer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, root := range c.roots {
		formatTimingTree(w, root)
	}
}

type timingTimer struct {
	collector *TimingCollector
	node      *timerNode
	tracked   bool // started via Collector.Start and moves the cursor
}

func (t *timingTimer) End() {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	t.node.end = t.collector.now()

	if t.tracked && t.collector.current == t.node {
		t.collector.current = t.node.parent
	}
}

func (t *timingTimer) Child(name string) Timer {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	node := &timerNode{
		name:   name,
		start:  t.collector.now(),
		parent: t.node,
	}
	t.node.children = append(t.node.children, node)

	return &timingTimer{collector: t.collector, node: node}
}
