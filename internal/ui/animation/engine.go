package animation

import (
	"context"
	"sync"
	"time"
)

// Config contains animation timing values.
type Config struct {
	PeakScale     float32
	HalfPeriod    time.Duration
	FrameInterval time.Duration

	Stiffness      float64
	Damping        float64
	SettleDuration time.Duration
}

// Engine animates a single scale value. Pulse grows and shrinks it between 1
// and PeakScale; Settle springs it back to 1. Starting one cancels the other.
type Engine struct {
	mu     sync.Mutex
	config Config
	apply  func(float32)
	cancel context.CancelFunc
	scale  float32
	runs   sync.WaitGroup
}

// New creates a new animation engine. apply is called from the engine
// goroutine with every frame value.
func New(config Config, apply func(float32)) *Engine {
	if config.FrameInterval <= 0 {
		config.FrameInterval = 16 * time.Millisecond
	}
	if config.HalfPeriod <= 0 {
		config.HalfPeriod = time.Second
	}
	if config.PeakScale <= 0 {
		config.PeakScale = 1
	}
	if config.SettleDuration <= 0 {
		config.SettleDuration = time.Second
	}
	if apply == nil {
		apply = func(float32) {}
	}
	return &Engine{
		config: config,
		apply:  apply,
		scale:  1,
	}
}

// Pulse starts a grow-then-shrink cycle, repeated until stopped when repeat is set.
func (engine *Engine) Pulse(repeat bool) {
	engine.start(context.Background(), func(runCtx context.Context) {
		for {
			if !engine.tween(runCtx, 1, engine.config.PeakScale) {
				return
			}
			if !engine.tween(runCtx, engine.config.PeakScale, 1) {
				return
			}
			if !repeat {
				return
			}
		}
	})
}

// Settle springs the current scale back to 1.
func (engine *Engine) Settle() {
	engine.start(context.Background(), func(runCtx context.Context) {
		state := spring{
			stiffness: engine.config.Stiffness,
			damping:   engine.config.Damping,
			rest:      1,
			value:     float64(engine.Scale()),
		}
		if state.stiffness <= 0 {
			engine.set(1)
			return
		}

		dt := engine.config.FrameInterval.Seconds()
		deadline := time.Now().Add(engine.config.SettleDuration)
		for !state.settled() && time.Now().Before(deadline) {
			state.step(dt)
			engine.set(float32(state.value))
			if !sleepWithContext(runCtx, engine.config.FrameInterval) {
				return
			}
		}
		engine.set(1)
	})
}

// Stop terminates any active animation and leaves the scale where it is.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
}

// Wait blocks until every started animation goroutine has returned.
func (engine *Engine) Wait() {
	engine.runs.Wait()
}

// Scale returns the last applied value.
func (engine *Engine) Scale() float32 {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.scale
}

func (engine *Engine) start(parent context.Context, run func(context.Context)) {
	engine.mu.Lock()
	if engine.cancel != nil {
		engine.cancel()
	}
	runCtx, cancel := context.WithCancel(parent)
	engine.cancel = cancel
	engine.runs.Add(1)
	engine.mu.Unlock()

	go func() {
		defer engine.runs.Done()
		run(runCtx)
	}()
}

func (engine *Engine) tween(ctx context.Context, from, to float32) bool {
	frames := int(engine.config.HalfPeriod / engine.config.FrameInterval)
	if frames < 1 {
		frames = 1
	}
	for frame := 1; frame <= frames; frame++ {
		progress := easeInOut(float64(frame) / float64(frames))
		if ctx.Err() != nil {
			return false
		}
		engine.set(from + (to-from)*float32(progress))
		if !sleepWithContext(ctx, engine.config.FrameInterval) {
			return false
		}
	}
	return true
}

func (engine *Engine) set(scale float32) {
	engine.mu.Lock()
	engine.scale = scale
	apply := engine.apply
	engine.mu.Unlock()
	apply(scale)
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
