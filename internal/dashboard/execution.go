package dashboard

import (
	"github.com/adrianrdguez/projects-buddy/internal/graph"
	"github.com/adrianrdguez/projects-buddy/internal/mindmap"
	"github.com/adrianrdguez/projects-buddy/internal/sequencer"
	"github.com/adrianrdguez/projects-buddy/internal/store"
)

// execution holds one project's animation state: the mind map the sequence
// mutates and the sequencer driving it.
type execution struct {
	data *mindmap.MindMapData
	seq  *sequencer.Sequencer
}

// executionEvent is broadcast to SSE clients on every sequencer change.
type executionEvent struct {
	ProjectID string             `json:"projectId"`
	Sequence  sequencer.Snapshot `json:"sequence"`
}

// startExecution begins an execution animation for a project. A sequence
// already in flight is left alone and reported with started=false.
func (s *Server) startExecution(projectID string) (*sequencer.Snapshot, bool, error) {
	project, err := store.GetProject(s.db, projectID)
	if err != nil {
		return nil, false, err
	}
	tasks, err := store.LoadTasks(s.db, projectID)
	if err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	if exec, ok := s.executions[projectID]; ok && exec.seq.State() != sequencer.StateIdle {
		s.mu.Unlock()
		snap := exec.seq.Snapshot()
		return &snap, false, nil
	}

	data := mindmap.Build(graph.DeriveAll(tasks), project.Name)
	mindmap.Layout(data, s.canvas)
	seq := sequencer.New(data, s.sched, func(snap sequencer.Snapshot) {
		s.hub.broadcast("execution", executionEvent{ProjectID: projectID, Sequence: snap})
	})
	s.executions[projectID] = &execution{data: data, seq: seq}
	s.mu.Unlock()

	started := seq.Start(tasks)
	snap := seq.Snapshot()
	return &snap, started, nil
}

// cancelExecution stops a project's animation. It reports whether there was
// one to cancel.
func (s *Server) cancelExecution(projectID string) bool {
	s.mu.Lock()
	exec, ok := s.executions[projectID]
	s.mu.Unlock()
	if !ok {
		return false
	}
	exec.seq.Cancel()
	return true
}
