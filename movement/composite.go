package movement

// CompositeMode selects how a Composite runs its children.
type CompositeMode int

const (
	// Parallel updates every child each tick and averages their velocity
	// writes.
	Parallel CompositeMode = iota
	// Sequential runs one child at a time, advancing on completion.
	Sequential
)

// Composite combines child strategies. Finished children are removed and
// notified; the composite finishes when none remain.
type Composite struct {
	mode     CompositeMode
	children []Strategy
}

func NewComposite(mode CompositeMode, children ...Strategy) *Composite {
	return &Composite{mode: mode, children: children}
}

func (c *Composite) Update(b Body, dt float64) {
	switch c.mode {
	case Sequential:
		if len(c.children) == 0 {
			return
		}
		child := c.children[0]
		child.Update(b, dt)
		if child.Finished() {
			c.children = c.children[1:]
			if done, ok := child.(Completer); ok {
				done.OnFinished()
			}
		}

	case Parallel:
		var sumX, sumY float64
		var writes int
		kept := c.children[:0]
		for _, child := range c.children {
			rec := &velocityRecorder{Body: b}
			child.Update(rec, dt)
			if rec.set {
				sumX += rec.vx
				sumY += rec.vy
				writes++
			}
			if child.Finished() {
				if done, ok := child.(Completer); ok {
					done.OnFinished()
				}
				continue
			}
			kept = append(kept, child)
		}
		c.children = kept
		if writes > 0 {
			b.SetVelocity(sumX/float64(writes), sumY/float64(writes))
		}
	}
}

func (c *Composite) Finished() bool { return len(c.children) == 0 }

// velocityRecorder captures a child's velocity writes so Parallel can
// average them instead of letting the last child win.
type velocityRecorder struct {
	Body
	vx, vy float64
	set    bool
}

func (r *velocityRecorder) SetVelocity(vx, vy float64) {
	r.vx, r.vy = vx, vy
	r.set = true
}

func (r *velocityRecorder) Velocity() (float64, float64) {
	if r.set {
		return r.vx, r.vy
	}
	return r.Body.Velocity()
}
