// Package app provides application state, screen navigation, configuration, and events.
package app

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"color-detector/internal/image"
	"color-detector/internal/match"
	"color-detector/internal/palette"
	"color-detector/pkg/colorutil"
)

// Screen identifies which view the shell is showing.
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenCamera
	ScreenUpload
)

func (s Screen) String() string {
	switch s {
	case ScreenDashboard:
		return "Dashboard"
	case ScreenCamera:
		return "Camera"
	case ScreenUpload:
		return "Upload"
	default:
		return fmt.Sprintf("Screen(%d)", int(s))
	}
}

// ErrInvalidTransition is returned when a screen change is not allowed from
// the current screen.
var ErrInvalidTransition = errors.New("invalid screen transition")

// transitions lists the screens reachable from each screen.
var transitions = map[Screen][]Screen{
	ScreenDashboard: {ScreenCamera, ScreenUpload},
	ScreenCamera:    {ScreenDashboard},
	ScreenUpload:    {ScreenDashboard},
}

// State holds the running application's state. The color table and matcher
// are injected at construction and never change afterwards.
type State struct {
	mu sync.RWMutex

	table   *palette.Table
	matcher *match.Matcher
	logger  *log.Logger

	screen     Screen
	picture    *image.Picture
	lastResult *match.Result

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventScreenChanged EventType = iota // data: Screen
	EventImageLoaded                    // data: *image.Picture
	EventColorMatched                   // data: match.Result
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates application state around a loaded color table. A nil
// logger uses the standard logger.
func NewState(table *palette.Table, logger *log.Logger) *State {
	if logger == nil {
		logger = log.Default()
	}
	return &State{
		table:     table,
		matcher:   match.New(table),
		logger:    logger,
		screen:    ScreenDashboard,
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Table returns the reference color table.
func (s *State) Table() *palette.Table {
	return s.table
}

// Screen returns the current screen.
func (s *State) Screen() Screen {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.screen
}

// OpenCamera moves from the dashboard to the camera view.
func (s *State) OpenCamera() error {
	return s.transition(ScreenCamera)
}

// OpenUpload moves from the dashboard to the upload view.
func (s *State) OpenUpload() error {
	return s.transition(ScreenUpload)
}

// BackToDashboard returns to the dashboard and forgets the current picture
// and result.
func (s *State) BackToDashboard() error {
	return s.transition(ScreenDashboard)
}

func (s *State) transition(to Screen) error {
	s.mu.Lock()
	from := s.screen
	allowed := false
	for _, next := range transitions[from] {
		if next == to {
			allowed = true
			break
		}
	}
	if !allowed {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	s.screen = to
	if to == ScreenDashboard {
		s.picture = nil
		s.lastResult = nil
	}
	s.mu.Unlock()

	s.logger.Printf("Screen: %s -> %s", from, to)
	s.Emit(EventScreenChanged, to)
	return nil
}

// LoadPicture decodes the image at path and makes it the current picture.
// Only the upload view accepts pictures.
func (s *State) LoadPicture(path string) (*image.Picture, error) {
	if s.Screen() != ScreenUpload {
		return nil, fmt.Errorf("%w: cannot load image on %s screen", ErrInvalidTransition, s.Screen())
	}
	if err := image.CheckFormat(path); err != nil {
		return nil, err
	}
	pic, err := image.Load(path)
	if err != nil {
		return nil, err
	}
	s.SetPicture(pic)
	return pic, nil
}

// SetPicture makes pic the current picture and clears the previous result.
func (s *State) SetPicture(pic *image.Picture) {
	s.mu.Lock()
	s.picture = pic
	s.lastResult = nil
	s.mu.Unlock()

	s.logger.Printf("Image: loaded %s (%dx%d)", pic.Path, pic.Width(), pic.Height())
	s.Emit(EventImageLoaded, pic)
}

// Picture returns the current picture, or nil.
func (s *State) Picture() *image.Picture {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.picture
}

// LastResult returns the most recent successful match, if any.
func (s *State) LastResult() (match.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastResult == nil {
		return match.Result{}, false
	}
	return *s.lastResult, true
}

// Identify matches rgb against the color table. A rejected sample is logged
// and returned so the caller can skip its display update. On the dashboard
// the result is returned but neither stored nor emitted, so a camera frame
// still in flight after BackToDashboard leaves no trace.
func (s *State) Identify(rgb colorutil.RGB) (match.Result, error) {
	res, err := s.matcher.Match(rgb)
	if err != nil {
		s.logger.Printf("Match: rejected sample: %v", err)
		return match.Result{}, err
	}

	s.mu.Lock()
	if s.screen == ScreenDashboard {
		s.mu.Unlock()
		return res, nil
	}
	s.lastResult = &res
	s.mu.Unlock()

	s.Emit(EventColorMatched, res)
	return res, nil
}

// IdentifyAt samples the current picture at image pixel (x, y) and matches it.
func (s *State) IdentifyAt(x, y int) (match.Result, error) {
	pic := s.Picture()
	if pic == nil {
		return match.Result{}, fmt.Errorf("no image loaded")
	}
	rgb, ok := pic.Sample(x, y)
	if !ok {
		return match.Result{}, fmt.Errorf("point (%d,%d) outside %dx%d image", x, y, pic.Width(), pic.Height())
	}
	return s.Identify(rgb)
}
