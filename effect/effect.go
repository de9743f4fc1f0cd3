package effect

import (
	"encoding/json"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

type Type string

const (
	TypeSequence Type = "sequence"
	TypeRandom   Type = "random"
	TypePulse    Type = "pulse"
	TypeStatic   Type = "static"
)

// HSV is a single colour as [hue 0-360, saturation 0-100, value 0-100].
type HSV [3]int

// Range is an inclusive [min, max] pair.
type Range [2]int

// Options holds the fields every effect needs.
type Options struct {
	Name          string
	Type          Type
	IsCustom      bool
	Enable        bool
	Brightness    int
	DisplayColors []HSV
}

type optional[T any] struct {
	value T
	set   bool
}

func (o *optional[T]) store(v T) {
	o.value = v
	o.set = true
}

// LightEffect describes one lighting effect as sent with set_lighting_effect.
// The required fields are fixed at construction, the tuning parameters are
// added with the With* methods, which modify and return the same effect.
type LightEffect struct {
	id            string
	name          string
	typ           Type
	isCustom      bool
	enable        bool
	brightness    int
	displayColors []HSV

	backgrounds        optional[[]HSV]
	brightnessRange    optional[[]int]
	direction          optional[int]
	duration           optional[int]
	expansionStrategy  optional[int]
	fadeoff            optional[int]
	hueRange           optional[Range]
	initStates         optional[[]HSV]
	randomSeed         optional[int]
	repeatTimes        optional[int]
	runTime            optional[int]
	saturationRange    optional[Range]
	segmentLength      optional[int]
	segments           optional[[]int]
	sequence           optional[[]HSV]
	spread             optional[int]
	transitionRange    optional[Range]
	transitionSequence optional[[]int]
	transition         optional[int]
}

func New(id string, opts Options) *LightEffect {
	return &LightEffect{
		id:            id,
		name:          opts.Name,
		typ:           opts.Type,
		isCustom:      opts.IsCustom,
		enable:        opts.Enable,
		brightness:    opts.Brightness,
		displayColors: opts.DisplayColors,
	}
}

// NewWithRandomID creates an effect with a freshly generated id, used for
// user defined effects.
func NewWithRandomID(opts Options) *LightEffect {
	return New(uuid.New().String(), opts)
}

func (e *LightEffect) ID() string {
	return e.id
}

func (e *LightEffect) Name() string {
	return e.name
}

func (e *LightEffect) Type() Type {
	return e.typ
}

func (e *LightEffect) WithBackgrounds(backgrounds []HSV) *LightEffect {
	e.backgrounds.store(backgrounds)
	return e
}

func (e *LightEffect) WithBrightnessRange(brightnessRange []int) *LightEffect {
	e.brightnessRange.store(brightnessRange)
	return e
}

func (e *LightEffect) WithDirection(direction int) *LightEffect {
	e.direction.store(direction)
	return e
}

func (e *LightEffect) WithDuration(duration int) *LightEffect {
	e.duration.store(duration)
	return e
}

func (e *LightEffect) WithExpansionStrategy(expansionStrategy int) *LightEffect {
	e.expansionStrategy.store(expansionStrategy)
	return e
}

func (e *LightEffect) WithFadeoff(fadeoff int) *LightEffect {
	e.fadeoff.store(fadeoff)
	return e
}

func (e *LightEffect) WithHueRange(hueRange Range) *LightEffect {
	e.hueRange.store(hueRange)
	return e
}

func (e *LightEffect) WithInitStates(initStates []HSV) *LightEffect {
	e.initStates.store(initStates)
	return e
}

func (e *LightEffect) WithRandomSeed(randomSeed int) *LightEffect {
	e.randomSeed.store(randomSeed)
	return e
}

func (e *LightEffect) WithRepeatTimes(repeatTimes int) *LightEffect {
	e.repeatTimes.store(repeatTimes)
	return e
}

func (e *LightEffect) WithRunTime(runTime int) *LightEffect {
	e.runTime.store(runTime)
	return e
}

func (e *LightEffect) WithSaturationRange(saturationRange Range) *LightEffect {
	e.saturationRange.store(saturationRange)
	return e
}

func (e *LightEffect) WithSegmentLength(segmentLength int) *LightEffect {
	e.segmentLength.store(segmentLength)
	return e
}

func (e *LightEffect) WithSegments(segments []int) *LightEffect {
	e.segments.store(segments)
	return e
}

func (e *LightEffect) WithSequence(sequence []HSV) *LightEffect {
	e.sequence.store(sequence)
	return e
}

func (e *LightEffect) WithSpread(spread int) *LightEffect {
	e.spread.store(spread)
	return e
}

func (e *LightEffect) WithTransitionRange(transitionRange Range) *LightEffect {
	e.transitionRange.store(transitionRange)
	return e
}

func (e *LightEffect) WithTransitionSequence(transitionSequence []int) *LightEffect {
	e.transitionSequence.store(transitionSequence)
	return e
}

func (e *LightEffect) WithTransition(transition int) *LightEffect {
	e.transition.store(transition)
	return e
}

type field struct {
	name  string
	value any
}

func appendSet[T any](fields []field, name string, o optional[T]) []field {
	if !o.set {
		return fields
	}

	return append(fields, field{name, o.value})
}

// fields lists every field that is currently set, in declaration order.
func (e *LightEffect) fields() []field {
	fields := []field{
		{"id", e.id},
		{"name", e.name},
		{"type", string(e.typ)},
		{"isCustom", e.isCustom},
		{"enable", e.enable},
		{"brightness", e.brightness},
		{"displayColors", e.displayColors},
	}

	fields = appendSet(fields, "backgrounds", e.backgrounds)
	fields = appendSet(fields, "brightnessRange", e.brightnessRange)
	fields = appendSet(fields, "direction", e.direction)
	fields = appendSet(fields, "duration", e.duration)
	fields = appendSet(fields, "expansionStrategy", e.expansionStrategy)
	fields = appendSet(fields, "fadeoff", e.fadeoff)
	fields = appendSet(fields, "hueRange", e.hueRange)
	fields = appendSet(fields, "initStates", e.initStates)
	fields = appendSet(fields, "randomSeed", e.randomSeed)
	fields = appendSet(fields, "repeatTimes", e.repeatTimes)
	fields = appendSet(fields, "runTime", e.runTime)
	fields = appendSet(fields, "saturationRange", e.saturationRange)
	fields = appendSet(fields, "segmentLength", e.segmentLength)
	fields = appendSet(fields, "segments", e.segments)
	fields = appendSet(fields, "sequence", e.sequence)
	fields = appendSet(fields, "spread", e.spread)
	fields = appendSet(fields, "transitionRange", e.transitionRange)
	fields = appendSet(fields, "transitionSequence", e.transitionSequence)
	fields = appendSet(fields, "transition", e.transition)

	return fields
}

// Wire returns the effect in the form the firmware expects: snake_case keys,
// booleans as 0/1, isCustom renamed to custom and unset fields left out.
func (e *LightEffect) Wire() map[string]any {
	wire := make(map[string]any)

	for _, f := range e.fields() {
		key := snakeCase(f.name)
		if f.name == "isCustom" {
			key = "custom"
		}

		if b, ok := f.value.(bool); ok {
			wire[key] = boolInt(b)
		} else {
			wire[key] = f.value
		}
	}

	return wire
}

func (e *LightEffect) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Wire())
}

func boolInt(b bool) int {
	if b {
		return 1
	}

	return 0
}

func snakeCase(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsUpper(r) {
			b.WriteByte('_')
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}

	return b.String()
}
