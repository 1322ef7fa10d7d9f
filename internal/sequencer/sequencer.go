// Package sequencer drives the "data flowing along the tree" execution
// animation: a timed walk from the root card to the first ready task,
// highlighting connections and expanding branches as it goes.
package sequencer

import (
	"sort"
	"sync"
	"time"

	"github.com/adrianrdguez/projects-buddy/internal/graph"
	"github.com/adrianrdguez/projects-buddy/internal/mindmap"
	"github.com/adrianrdguez/projects-buddy/internal/models"
)

// Sequence states, in order of progression.
const (
	StateIdle       = "idle"
	StateCollapsing = "collapsing"
	StateBranchEdge = "branch-edge"
	StateTaskEdge   = "task-edge"
	StateTaskGlow   = "task-glow"
)

// Timing. Each edge runs its moving-particle highlight for ParticleDuration
// before switching to the static processing glow; the whole sequence clears
// ParticleDuration+GlowDuration after the last edge starts animating.
const (
	CollapseDelay    = 500 * time.Millisecond
	ParticleDuration = 3 * time.Second
	GlowDuration     = 2 * time.Second
)

// Scheduler defers a callback. The real implementation wraps time.AfterFunc;
// tests substitute a manual one. Cancellation is not part of the interface:
// every scheduled callback re-checks the sequence epoch and becomes a no-op
// if a reset happened in between.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

type wallClock struct{}

func (wallClock) AfterFunc(d time.Duration, f func()) { time.AfterFunc(d, f) }

// Snapshot is the transient animation state the renderer overlays on the
// mind map: which connections carry particles, which glow, which cards pulse.
type Snapshot struct {
	State                   string   `json:"state"`
	TargetTaskID            string   `json:"targetTaskId,omitempty"`
	AnimatedConnectionIDs   []string `json:"animatedConnectionIds"`
	ProcessingConnectionIDs []string `json:"processingConnectionIds"`
	ProcessingCardIDs       []string `json:"processingCardIds"`
}

// Sequencer owns one project's animation state. Only one sequence runs at a
// time; Start requests while a sequence is in flight are ignored.
type Sequencer struct {
	mu    sync.Mutex
	sched Scheduler

	data  *mindmap.MindMapData
	state string
	epoch int // bumped on every start/cancel; stale timers check it and bail

	targetTaskID    string
	animatedConns   map[string]bool
	processingConns map[string]bool
	processingCards map[string]bool

	onChange func(Snapshot)
}

// New creates a Sequencer over the given mind map view state. A nil
// scheduler uses the wall clock; onChange may be nil.
func New(data *mindmap.MindMapData, sched Scheduler, onChange func(Snapshot)) *Sequencer {
	if sched == nil {
		sched = wallClock{}
	}
	return &Sequencer{
		sched:           sched,
		data:            data,
		state:           StateIdle,
		animatedConns:   make(map[string]bool),
		processingConns: make(map[string]bool),
		processingCards: make(map[string]bool),
		onChange:        onChange,
	}
}

// Start begins an execution sequence toward the first ready task in stable
// list order. It reports whether a sequence started: false when one is
// already in flight (ignored, not queued) or when no task is ready.
func (s *Sequencer) Start(tasks []models.Task) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle {
		return false
	}

	ready := graph.Ready(tasks)
	if len(ready) == 0 {
		return false
	}
	target := ready[0]

	branch := s.data.BranchOf(target.ID)
	if branch == nil {
		return false
	}

	s.epoch++
	epoch := s.epoch
	s.targetTaskID = target.ID
	edge1 := mindmap.Connection{From: s.data.RootID, To: branch.ID}.ID()
	edge2 := mindmap.Connection{From: branch.ID, To: target.ID}.ID()

	s.state = StateCollapsing
	mindmap.CollapseTasks(s.data)
	s.emitLocked()

	s.sched.AfterFunc(CollapseDelay, func() {
		s.step(epoch, func() {
			s.state = StateBranchEdge
			s.animatedConns[edge1] = true
		})
	})
	s.sched.AfterFunc(CollapseDelay+ParticleDuration, func() {
		s.step(epoch, func() {
			s.state = StateTaskEdge
			delete(s.animatedConns, edge1)
			s.processingConns[edge1] = true
			mindmap.ExpandChildren(s.data, branch.ID)
			s.processingCards[branch.ID] = true
			s.animatedConns[edge2] = true
		})
	})
	s.sched.AfterFunc(CollapseDelay+2*ParticleDuration, func() {
		s.step(epoch, func() {
			s.state = StateTaskGlow
			delete(s.animatedConns, edge2)
			s.processingConns[edge2] = true
			s.processingCards[target.ID] = true
		})
	})
	s.sched.AfterFunc(CollapseDelay+2*ParticleDuration+GlowDuration, func() {
		s.step(epoch, func() {
			s.clearLocked()
		})
	})

	return true
}

// Cancel synchronously clears all transient flags and invalidates pending
// timers. Safe to call in any state.
func (s *Sequencer) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	s.clearLocked()
	s.emitLocked()
}

// Snapshot returns the current transient animation state with sorted id
// lists.
func (s *Sequencer) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// State returns the current sequence state.
func (s *Sequencer) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// step runs a sequence transition unless the sequence was cancelled or
// superseded since it was scheduled.
func (s *Sequencer) step(epoch int, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		return
	}
	fn()
	s.emitLocked()
}

func (s *Sequencer) clearLocked() {
	s.state = StateIdle
	s.targetTaskID = ""
	s.animatedConns = make(map[string]bool)
	s.processingConns = make(map[string]bool)
	s.processingCards = make(map[string]bool)
}

func (s *Sequencer) emitLocked() {
	if s.onChange != nil {
		s.onChange(s.snapshotLocked())
	}
}

func (s *Sequencer) snapshotLocked() Snapshot {
	return Snapshot{
		State:                   s.state,
		TargetTaskID:            s.targetTaskID,
		AnimatedConnectionIDs:   sortedKeys(s.animatedConns),
		ProcessingConnectionIDs: sortedKeys(s.processingConns),
		ProcessingCardIDs:       sortedKeys(s.processingCards),
	}
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
