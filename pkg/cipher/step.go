package cipher

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind tags a [Visual] variant. The string values are the "type" field of
// the JSON form.
type Kind string

// Kind constants.
const (
	KindEmpty    Kind = "empty"
	KindText     Kind = "text"
	KindSplit    Kind = "split"
	KindGrid     Kind = "grid"
	KindKeyword  Kind = "keyword"
	KindEncoding Kind = "encoding"
	KindDecoding Kind = "decoding"
	KindBinary   Kind = "binary"
	KindRound    Kind = "round"
	KindResult   Kind = "result"
)

// Visual is the visualization payload of a [Step]. The set of
// implementations is closed; switch on the concrete type or on Kind.
type Visual interface {
	Kind() Kind
	visual()
}

// Step is one renderable snapshot of a cipher's execution.
type Step struct {
	Description string
	Visual      Visual
}

// Empty is the placeholder shown before anything has been run.
type Empty struct{}

// Text shows a plain string, optionally with highlighted positions.
type Text struct {
	Text      string `json:"text"`
	Highlight []int  `json:"highlight,omitempty"`
}

// Split shows a Feistel block split into its two half-blocks.
type Split struct {
	L     string `json:"L"`
	R     string `json:"R"`
	Round int    `json:"round"`
}

// GridView shows a transposition grid. Optional highlights are nil when
// absent.
type GridView struct {
	Grid            Grid   `json:"grid"`
	Keyword         string `json:"keyword,omitempty"`
	Order           []int  `json:"order,omitempty"`
	HighlightRow    *int   `json:"highlightRow,omitempty"`
	HighlightColumn *int   `json:"highlightColumn,omitempty"`
	Route           []Cell `json:"route,omitempty"`
	ShowRoute       bool   `json:"showRoute,omitempty"`
	Current         *Cell  `json:"currentPos,omitempty"`
	Partial         string `json:"partial,omitempty"`
}

// Keyword shows a columnar keyword with the rank of each of its letters.
type Keyword struct {
	Keyword string `json:"keyword"`
	Order   []int  `json:"order"`
}

// LetterCode pairs a plaintext letter with its Bacon code.
type LetterCode struct {
	Letter string `json:"letter"`
	Code   string `json:"code"`
}

// Encoding shows the Bacon codes emitted so far.
type Encoding struct {
	Encodings    []LetterCode `json:"encodings"`
	CurrentIndex int          `json:"currentIndex"`
	Partial      string       `json:"partial"`
}

// Decoding shows the Bacon blocks decoded so far.
type Decoding struct {
	Groups       []LetterCode `json:"groups"`
	CurrentIndex int          `json:"currentIndex"`
	Partial      string       `json:"partial"`
}

// Binary shows a Bacon ciphertext relabelled A=0, B=1.
type Binary struct {
	Encodings  []LetterCode `json:"encodings"`
	Ciphertext string       `json:"ciphertext"`
	Bits       string       `json:"bits"`
}

// Phase names the sub-step of a Feistel round.
type Phase string

// Phase constants.
const (
	PhaseFunction Phase = "function"
	PhaseAdd      Phase = "add"
	PhaseSubtract Phase = "subtract"
	PhaseSwap     Phase = "swap"
	PhaseFinal    Phase = "final"
)

// Round shows one phase of a Feistel round. NewL/NewR are set from the
// combine phase onwards.
type Round struct {
	Round    int    `json:"round"`
	Phase    Phase  `json:"phase"`
	L        string `json:"L"`
	R        string `json:"R"`
	RoundKey string `json:"roundKey,omitempty"`
	FResult  string `json:"fResult,omitempty"`
	NewL     string `json:"newL,omitempty"`
	NewR     string `json:"newR,omitempty"`
}

// Result is the final step of every non-empty trace. Text always equals
// [Trace.Result]; the other fields carry cipher-specific context.
type Result struct {
	Text      string       `json:"text"`
	L         string       `json:"L,omitempty"`
	R         string       `json:"R,omitempty"`
	Route     []Cell       `json:"route,omitempty"`
	Encodings []LetterCode `json:"encodings,omitempty"`
}

func (Empty) Kind() Kind    { return KindEmpty }
func (Text) Kind() Kind     { return KindText }
func (Split) Kind() Kind    { return KindSplit }
func (GridView) Kind() Kind { return KindGrid }
func (Keyword) Kind() Kind  { return KindKeyword }
func (Encoding) Kind() Kind { return KindEncoding }
func (Decoding) Kind() Kind { return KindDecoding }
func (Binary) Kind() Kind   { return KindBinary }
func (Round) Kind() Kind    { return KindRound }
func (Result) Kind() Kind   { return KindResult }

func (Empty) visual()    {}
func (Text) visual()     {}
func (Split) visual()    {}
func (GridView) visual() {}
func (Keyword) visual()  {}
func (Encoding) visual() {}
func (Decoding) visual() {}
func (Binary) visual()   {}
func (Round) visual()    {}
func (Result) visual()   {}

func newVisual(kind Kind) (Visual, bool) {
	switch kind {
	case KindEmpty:
		return &Empty{}, true
	case KindText:
		return &Text{}, true
	case KindSplit:
		return &Split{}, true
	case KindGrid:
		return &GridView{}, true
	case KindKeyword:
		return &Keyword{}, true
	case KindEncoding:
		return &Encoding{}, true
	case KindDecoding:
		return &Decoding{}, true
	case KindBinary:
		return &Binary{}, true
	case KindRound:
		return &Round{}, true
	case KindResult:
		return &Result{}, true
	default:
		return nil, false
	}
}

// deref turns the pointer produced by newVisual back into a value so that
// decoded steps compare equal to generated ones.
func deref(v Visual) Visual {
	switch p := v.(type) {
	case *Empty:
		return *p
	case *Text:
		return *p
	case *Split:
		return *p
	case *GridView:
		return *p
	case *Keyword:
		return *p
	case *Encoding:
		return *p
	case *Decoding:
		return *p
	case *Binary:
		return *p
	case *Round:
		return *p
	case *Result:
		return *p
	default:
		return v
	}
}

type stepJSON struct {
	Description string          `json:"description"`
	VisualData  json.RawMessage `json:"visualData"`
}

// MarshalJSON encodes the step as
// {"description": ..., "visualData": {"type": <kind>, ...fields}}.
func (s Step) MarshalJSON() ([]byte, error) {
	visual := s.Visual
	if visual == nil {
		visual = Empty{}
	}

	fields, err := json.Marshal(visual)
	if err != nil {
		return nil, fmt.Errorf("encode %s visual: %w", visual.Kind(), err)
	}

	tag, err := json.Marshal(map[string]Kind{"type": visual.Kind()})
	if err != nil {
		return nil, err
	}

	data := tag
	if !bytes.Equal(fields, []byte("{}")) {
		// Splice the type tag in front of the variant's own fields.
		data = make([]byte, 0, len(tag)+len(fields))
		data = append(data, tag[:len(tag)-1]...)
		data = append(data, ',')
		data = append(data, fields[1:]...)
	}

	return json.Marshal(stepJSON{Description: s.Description, VisualData: data})
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (s *Step) UnmarshalJSON(data []byte) error {
	var raw stepJSON

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var tag struct {
		Type Kind `json:"type"`
	}

	if len(raw.VisualData) > 0 {
		if err := json.Unmarshal(raw.VisualData, &tag); err != nil {
			return fmt.Errorf("decode visual type: %w", err)
		}
	}

	if tag.Type == "" {
		tag.Type = KindEmpty
	}

	visual, ok := newVisual(tag.Type)
	if !ok {
		return fmt.Errorf("unknown visual type %q", tag.Type)
	}

	if len(raw.VisualData) > 0 {
		if err := json.Unmarshal(raw.VisualData, visual); err != nil {
			return fmt.Errorf("decode %s visual: %w", tag.Type, err)
		}
	}

	s.Description = raw.Description
	s.Visual = deref(visual)

	return nil
}

func intPtr(i int) *int {
	return &i
}

func cellPtr(c Cell) *Cell {
	return &c
}
