// Package visage wires camera capture, face detection, and state
// tracking into a notification-driven watcher.
package visage

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/visagekit/visage/internal/log"
	"github.com/visagekit/visage/pkg/capture"
	"github.com/visagekit/visage/pkg/detect"
	"github.com/visagekit/visage/pkg/facestate"
	"github.com/visagekit/visage/pkg/notify"
)

// ErrAlreadyStarted is returned when Start is called twice.
var ErrAlreadyStarted = errors.New("visage: watcher already started")

// Stats counts what the watch loop has done so far.
type Stats struct {
	FramesProcessed uint64 `json:"frames_processed"`
	EventsEmitted   uint64 `json:"events_emitted"`
	CaptureErrors   uint64 `json:"capture_errors"`
	DetectErrors    uint64 `json:"detect_errors"`
}

// Watcher runs the capture -> detect -> track loop and posts the
// resulting events to a notification sink. Frames are processed one at
// a time on a single goroutine, which satisfies the tracker's
// single-writer contract; capture and detection failures are counted
// and skipped, never fatal.
type Watcher struct {
	config   Config
	provider capture.Provider
	detector detect.Detector
	sink     notify.Sink
	tracker  *facestate.Tracker

	mu      sync.Mutex
	stateMu sync.RWMutex
	cancel  context.CancelFunc
	done    chan struct{}
	stats   Stats
}

// New creates a watcher. The sink receives events synchronously from
// the watch loop; pass a notify.Center and fan out from there.
func New(cfg Config, provider capture.Provider, detector detect.Detector, sink notify.Sink) *Watcher {
	return &Watcher{
		config:   cfg,
		provider: provider,
		detector: detector,
		sink:     sink,
		tracker:  facestate.NewTracker(),
	}
}

// Start launches the watch loop. It returns immediately; the loop runs
// until Stop is called or ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		return ErrAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})

	go w.run(ctx)

	log.Info("watcher started",
		"mode", w.config.Mode.String(),
		"interval", w.config.FrameInterval)
	return nil
}

// Stop halts the watch loop and waits for it to finish.
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.cancel = nil
	w.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	log.Info("watcher stopped")
}

// State returns a read-only snapshot of the tracked facial state.
func (w *Watcher) State() facestate.TrackedState {
	w.stateMu.RLock()
	defer w.stateMu.RUnlock()
	return w.tracker.State()
}

// Stats returns a snapshot of the loop counters.
func (w *Watcher) Stats() Stats {
	w.stateMu.RLock()
	defer w.stateMu.RUnlock()
	return w.stats
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)

	ticker := time.NewTicker(w.config.FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.processFrame()
		}
	}
}

// ProcessFrame captures and processes a single frame immediately.
// The watch loop calls this on every tick; hosts driving their own
// frame cadence can call it directly instead of Start.
func (w *Watcher) ProcessFrame() {
	w.processFrame()
}

func (w *Watcher) processFrame() {
	frame, err := w.provider.CaptureFrame()
	if err != nil {
		w.stateMu.Lock()
		w.stats.CaptureErrors++
		w.stateMu.Unlock()
		log.Warn("capture failed", "error", err)
		return
	}

	obs, err := w.detector.Detect(frame)
	if err != nil {
		w.stateMu.Lock()
		w.stats.DetectErrors++
		w.stateMu.Unlock()
		log.Warn("detection failed", "error", err)
		return
	}

	w.stateMu.Lock()
	events := w.tracker.Process(obs, w.config.Mode)
	w.stats.FramesProcessed++
	w.stats.EventsEmitted += uint64(len(events))
	w.stateMu.Unlock()

	for _, e := range events {
		if w.config.LogEvents {
			log.Debug("event", "name", e.Name())
		}
		w.sink.Post(e)
	}
}
