package app

import "github.com/dkeye/ctinotify/internal/core"

type BackpressureAction int

const (
	DropFrame BackpressureAction = iota
	CloseSession
)

// ParseBackpressureAction maps the slow_consumer setting; unknown values drop.
func ParseBackpressureAction(s string) BackpressureAction {
	if s == "close" {
		return CloseSession
	}
	return DropFrame
}

// Policy decides what happens to a session whose send queue is full.
type Policy interface {
	OnBackPressure(sess *core.Session) BackpressureAction
}

type SimplePolicy struct {
	Action BackpressureAction
}

func (p SimplePolicy) OnBackPressure(*core.Session) BackpressureAction {
	return p.Action
}
