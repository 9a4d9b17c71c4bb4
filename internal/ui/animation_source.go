package ui

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
)

// animationSource drives the scroll engine from a never-ending fyne
// animation, so ticks follow fyne's animation runner at the display frame
// rate. The runner ticks from its own goroutine, not the UI thread; redraws
// go through CallOnMain.
type animationSource struct {
	mu   sync.Mutex
	anim *fyne.Animation
}

func newAnimationSource() *animationSource { return &animationSource{} }

func (s *animationSource) Now() time.Time { return time.Now() }

func (s *animationSource) Start(tick func(now time.Time)) {
	a := fyne.NewAnimation(time.Second, func(float32) { tick(time.Now()) })
	a.Curve = fyne.AnimationLinear
	a.RepeatCount = fyne.AnimationRepeatForever

	s.mu.Lock()
	old := s.anim
	s.anim = a
	s.mu.Unlock()
	if old != nil {
		old.Stop()
	}
	a.Start()
}

func (s *animationSource) Stop() {
	s.mu.Lock()
	a := s.anim
	s.anim = nil
	s.mu.Unlock()
	if a != nil {
		a.Stop()
	}
}
