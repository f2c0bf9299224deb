package session

import (
	"sort"
	"sync"
	"time"

	"github.com/echolon-ai/echolon/pkg/models/domain"
)

// Note is a session-scoped collaboration note.
type Note struct {
	Text      string
	CreatedAt time.Time
}

// Session holds the state the host owns for one analysis session:
// collaboration notes, active goals, and the last computed report. The
// engine itself never reaches for this; it is injected where needed.
// Safe for concurrent handler access.
type Session struct {
	mu    sync.RWMutex
	notes []Note
	goals map[domain.MetricKind]domain.Goal
	last  *domain.AnalysisReport
}

func New() *Session {
	return &Session{
		goals: make(map[domain.MetricKind]domain.Goal),
	}
}

func (s *Session) AddNote(text string) Note {
	note := Note{Text: text, CreatedAt: time.Now().UTC()}
	s.mu.Lock()
	s.notes = append(s.notes, note)
	s.mu.Unlock()
	return note
}

func (s *Session) Notes() []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// SetGoal creates or replaces the goal for the metric.
func (s *Session) SetGoal(goal domain.Goal) {
	s.mu.Lock()
	s.goals[goal.Metric] = goal
	s.mu.Unlock()
}

// RemoveGoal discards the goal for the metric, if any.
func (s *Session) RemoveGoal(metric domain.MetricKind) {
	s.mu.Lock()
	delete(s.goals, metric)
	s.mu.Unlock()
}

// Goals returns the active goals in stable metric order.
func (s *Session) Goals() []domain.Goal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Goal, 0, len(s.goals))
	for _, g := range s.goals {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Metric < out[j].Metric })
	return out
}

func (s *Session) SetLastReport(report *domain.AnalysisReport) {
	s.mu.Lock()
	s.last = report
	s.mu.Unlock()
}

// LastReport returns the most recent report, or nil before the first
// analysis.
func (s *Session) LastReport() *domain.AnalysisReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}
