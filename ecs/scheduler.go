package ecs

import (
	"fmt"
	"strings"
)

// System advances one concern of the world by a single tick.
type System interface {
	Update(w *World)
}

type stage struct {
	name   string
	system System
}

// Scheduler runs systems one after another in the order they were added.
// A tick never interleaves two systems.
type Scheduler struct {
	stages []stage
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.stages = append(s.stages, stage{name: stageName(system), system: system})
}

// stageName turns *system.LookSystem into "look".
func stageName(system System) string {
	name := fmt.Sprintf("%T", system)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return strings.ToLower(strings.TrimSuffix(name, "System"))
}

func (s *Scheduler) Update(w *World) {
	if s == nil {
		return
	}
	for _, st := range s.stages {
		st.system.Update(w)
	}
}

// Names lists the stages in run order.
func (s *Scheduler) Names() []string {
	names := make([]string, 0, len(s.stages))
	for _, st := range s.stages {
		names = append(names, st.name)
	}
	return names
}
