package tamarack

// syntheticPick represents a single injected pick in viewport pixel
// coordinates, identical to what real mouse input produces.
type syntheticPick struct {
	x, y float32
}

// InjectPick queues a pick at the given viewport pixel coordinates. The pick
// is performed on the next Update call, after transforms and animations have
// advanced, exactly like a real pointer event. Useful for scripted demos and
// automated driving of the viewer.
func (s *Scene) InjectPick(x, y float32) {
	s.injectQueue = append(s.injectQueue, syntheticPick{x: x, y: y})
}

// drainInjected performs all queued synthetic picks in order. The queue is
// detached before the loop: selection listeners may call InjectPick while a
// drained pick runs, and those re-entrant picks must land in a fresh queue
// for the next Update instead of clobbering entries still being drained.
func (s *Scene) drainInjected() {
	if len(s.injectQueue) == 0 {
		return
	}
	queue := s.injectQueue
	s.injectQueue = nil
	for _, ev := range queue {
		if _, err := s.Pick(ev.x, ev.y); err != nil {
			warnf("injected pick at (%v, %v) failed: %v", ev.x, ev.y, err)
		}
	}
}
