package scenario

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session identifies one run of the scene
type Session struct {
	ID      string
	Created time.Time
}

// NewSession creates a session with a random id
func NewSession() Session {
	return Session{ID: uuid.NewString(), Created: time.Now()}
}

// Short returns the first id group, used as a log prefix
func (s Session) Short() string {
	if len(s.ID) < 8 {
		return s.ID
	}
	return s.ID[:8]
}

// NoteKind classifies a narration notification
type NoteKind uint8

const (
	NotePhase NoteKind = iota
	NoteNotice
)

func (k NoteKind) String() string {
	if k == NotePhase {
		return "phase"
	}
	return "notice"
}

// Note is one observational update for the narration surface
type Note struct {
	Session string
	At      time.Duration
	Kind    NoteKind
	Text    string
}

func (n Note) String() string {
	return fmt.Sprintf("%6.1fs %s: %s", n.At.Seconds(), n.Kind, n.Text)
}

// Narrator receives phase changes and notices; it never blocks the scene
type Narrator interface {
	Narrate(n Note)
}

// Transcript keeps the most recent notes for display
// Safe for the front end to read while the scene ticks
type Transcript struct {
	mu    sync.Mutex
	notes []Note
	limit int
}

// NewTranscript creates a transcript bounded to limit notes
func NewTranscript(limit int) *Transcript {
	if limit <= 0 {
		limit = 1
	}
	return &Transcript{limit: limit}
}

func (t *Transcript) Narrate(n Note) {
	log.Printf("[NARRATION] %s %s", n.Kind, n.Text)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.notes = append(t.notes, n)
	if over := len(t.notes) - t.limit; over > 0 {
		t.notes = append(t.notes[:0], t.notes[over:]...)
	}
}

// Notes returns a copy of the retained notes, oldest first
func (t *Transcript) Notes() []Note {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Note, len(t.notes))
	copy(out, t.notes)
	return out
}

// Phases returns the texts of every retained phase note
func (t *Transcript) Phases() []string {
	var out []string
	for _, n := range t.Notes() {
		if n.Kind == NotePhase {
			out = append(out, n.Text)
		}
	}
	return out
}

// Narrators fans a note out to several narrators in order
type Narrators []Narrator

func (ns Narrators) Narrate(n Note) {
	for _, x := range ns {
		if x != nil {
			x.Narrate(n)
		}
	}
}
