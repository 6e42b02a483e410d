package warehouse

// Frame is a snapshot of a warehouse environment, passed to a Renderer
type Frame struct {
	Rows, Cols int
	Robot      Position
	Target     Position
	Obstacles  []Position

	// Battery is only meaningful if HasBattery is set
	Battery    int
	HasBattery bool

	// LastAction is only meaningful if Acted is set, i.e. if an action
	// has been taken since the last reset
	LastAction Action
	Acted      bool
}

// IsObstacle returns whether p holds an obstacle in the frame
func (f Frame) IsObstacle(p Position) bool {
	for _, o := range f.Obstacles {
		if o == p {
			return true
		}
	}
	return false
}

// Renderer displays frames of a warehouse environment. Renderers
// control their own frame rate.
type Renderer interface {
	Render(f Frame) error
}

// Option configures a warehouse environment
type Option func(*options)

type options struct {
	seed      uint64
	seeded    bool
	targets   TargetStarter
	obstacles ObstacleStarter
	renderer  Renderer
}

// WithSeed seeds the environment's generator. Without a seed, the
// generator is seeded from the current time.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// WithTarget sets how the target is placed each episode. The default
// is UniformTarget.
func WithTarget(t TargetStarter) Option {
	return func(o *options) {
		o.targets = t
	}
}

// WithObstacles sets how obstacles are placed each episode, overriding
// the obstacle count given to NewAdvanced. It has no effect on Basic
// environments.
func WithObstacles(s ObstacleStarter) Option {
	return func(o *options) {
		o.obstacles = s
	}
}

// WithRenderer sets the Renderer that Render() draws frames with
func WithRenderer(r Renderer) Option {
	return func(o *options) {
		o.renderer = r
	}
}

func collect(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
