package chunker

import (
	"strings"
)

// Options carries the chunking policy knobs, normally filled from config.
type Options struct {
	ScriptureMode  string
	VerseGroupSize int
	ContextChars   int
	AcademyMode    string
}

// Dispatcher selects the chunker for a resource tag. It is immutable after
// construction and safe for concurrent use.
type Dispatcher struct {
	scripture *ScriptureChunker
	notes     *NotesChunker
	words     *WordsChunker
	academy   *AcademyChunker
}

// scriptureTags lists the resource identifiers served by the scripture
// chunker. Everything else is matched exactly.
var scriptureTags = map[string]bool{
	"ult": true, "ust": true, "ulb": true, "udb": true,
	"glt": true, "gst": true, "t4t": true, "f10": true,
	"bible": true, "reg": true,
}

// NewDispatcher builds the per-resource chunkers from policy options.
func NewDispatcher(opts Options) *Dispatcher {
	scripture := NewScriptureChunker()
	if opts.ScriptureMode != "" {
		scripture.Mode = opts.ScriptureMode
	}
	if opts.VerseGroupSize > 0 {
		scripture.GroupSize = opts.VerseGroupSize
	}
	if opts.ContextChars > 0 {
		scripture.ContextChars = opts.ContextChars
	}

	academy := NewAcademyChunker()
	if opts.AcademyMode != "" {
		academy.Mode = opts.AcademyMode
	}

	return &Dispatcher{
		scripture: scripture,
		notes:     NewNotesChunker(),
		words:     NewWordsChunker(),
		academy:   academy,
	}
}

// ForResource returns the chunker responsible for a resource tag, or false
// when the tag maps to no known resource family.
func (d *Dispatcher) ForResource(resource string) (Chunker, bool) {
	switch tag := strings.ToLower(resource); {
	case scriptureTags[tag]:
		return d.scripture, true
	case tag == "tn":
		return d.notes, true
	case tag == "tw":
		return d.words, true
	case tag == "ta":
		return d.academy, true
	default:
		return nil, false
	}
}
