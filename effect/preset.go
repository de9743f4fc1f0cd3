package effect

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownPreset = errors.New("unknown lighting effect preset")

// Preset identifies one of the effects built into the light strip firmware.
type Preset int

const (
	Aurora Preset = iota
	BubblingCauldron
	CandyCane
	Christmas
	Flicker
	GrandmasChristmasLights
	Hanukkah
	HauntedMansion
	Icicle
	Lightning
	Ocean
	Rainbow
	Raindrop
	Spring
	Sunrise
	Sunset
	Valentines
)

var presetNames = [...]string{
	Aurora:                  "Aurora",
	BubblingCauldron:        "BubblingCauldron",
	CandyCane:               "CandyCane",
	Christmas:               "Christmas",
	Flicker:                 "Flicker",
	GrandmasChristmasLights: "GrandmasChristmasLights",
	Hanukkah:                "Hanukkah",
	HauntedMansion:          "HauntedMansion",
	Icicle:                  "Icicle",
	Lightning:               "Lightning",
	Ocean:                   "Ocean",
	Rainbow:                 "Rainbow",
	Raindrop:                "Raindrop",
	Spring:                  "Spring",
	Sunrise:                 "Sunrise",
	Sunset:                  "Sunset",
	Valentines:              "Valentines",
}

func (p Preset) String() string {
	if p < 0 || int(p) >= len(presetNames) {
		return fmt.Sprintf("Preset(%d)", int(p))
	}

	return presetNames[p]
}

// Presets returns every preset in catalog order.
func Presets() []Preset {
	presets := make([]Preset, len(presetNames))
	for i := range presets {
		presets[i] = Preset(i)
	}

	return presets
}

var nameNormalizer = strings.NewReplacer(" ", "", "_", "", "-", "", "'", "")

func normalize(name string) string {
	return nameNormalizer.Replace(strings.ToLower(name))
}

var presetLookup = func() map[string]Preset {
	lookup := make(map[string]Preset)
	for _, p := range Presets() {
		lookup[normalize(p.String())] = p
		lookup[normalize(From(p).Name())] = p
	}

	return lookup
}()

// ParsePreset finds a preset by name, ignoring case, spaces, underscores,
// dashes and apostrophes. Both "candy_cane" and "Grandma's Christmas Lights"
// resolve.
func ParsePreset(name string) (Preset, error) {
	p, ok := presetLookup[normalize(name)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}

	return p, nil
}

// From builds a new effect for p. Every call returns a fresh instance so
// callers are free to modify it. Passing a value that is not one of the
// declared presets panics.
func From(p Preset) *LightEffect {
	switch p {
	case Aurora:
		return aurora()
	case BubblingCauldron:
		return bubblingCauldron()
	case CandyCane:
		return candyCane()
	case Christmas:
		return christmas()
	case Flicker:
		return flicker()
	case GrandmasChristmasLights:
		return grandmasChristmasLights()
	case Hanukkah:
		return hanukkah()
	case HauntedMansion:
		return hauntedMansion()
	case Icicle:
		return icicle()
	case Lightning:
		return lightning()
	case Ocean:
		return ocean()
	case Rainbow:
		return rainbow()
	case Raindrop:
		return raindrop()
	case Spring:
		return spring()
	case Sunrise:
		return sunrise()
	case Sunset:
		return sunset()
	case Valentines:
		return valentines()
	}

	panic(fmt.Sprintf("effect: %s is not a preset", p))
}

func preset(id, name string, typ Type, displayColors ...HSV) *LightEffect {
	return New(id, Options{
		Name:          name,
		Type:          typ,
		IsCustom:      false,
		Enable:        true,
		Brightness:    100,
		DisplayColors: displayColors,
	})
}

func aurora() *LightEffect {
	return preset("TapoStrip_1MClvV18i15Jq3bvJVf0eP", "Aurora", TypeSequence,
		HSV{120, 100, 100},
		HSV{240, 100, 100},
		HSV{260, 100, 100},
		HSV{280, 100, 100},
	).
		WithDirection(4).
		WithDuration(0).
		WithExpansionStrategy(1).
		WithRepeatTimes(0).
		WithSegments([]int{0}).
		WithSequence([]HSV{
			{120, 100, 100},
			{240, 100, 100},
			{260, 100, 100},
			{280, 100, 100},
		}).
		WithSpread(7).
		WithTransition(1500)
}

func bubblingCauldron() *LightEffect {
	return preset("TapoStrip_6DlumDwO2NdfHppy50vJtu", "Bubbling Cauldron", TypeRandom,
		HSV{100, 100, 100},
		HSV{270, 100, 100},
	).
		WithBackgrounds([]HSV{{270, 40, 50}}).
		WithBrightnessRange([]int{50, 100}).
		WithInitStates([]HSV{{270, 100, 100}}).
		WithDuration(0).
		WithExpansionStrategy(1).
		WithFadeoff(1000).
		WithHueRange(Range{100, 270}).
		WithRandomSeed(24).
		WithSaturationRange(Range{80, 100}).
		WithSegments([]int{0}).
		WithTransition(200)
}

func candyCane() *LightEffect {
	white := HSV{0, 0, 100}
	red := HSV{360, 81, 100}

	return preset("TapoStrip_6Dy0Nc45vlhFPEzG021Pe9", "Candy Cane", TypeSequence, white, red).
		WithDirection(1).
		WithDuration(700).
		WithExpansionStrategy(1).
		WithRepeatTimes(0).
		WithSegments([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}).
		WithSequence([]HSV{
			white, white, red, white,
			white, red, red, white,
			white, red, red, red,
			red, white, white, red,
		}).
		WithSpread(1).
		WithTransition(500)
}

func christmas() *LightEffect {
	return preset("TapoStrip_5zkiG6avJ1IbhjiZbRlWvh", "Christmas", TypeRandom,
		HSV{136, 98, 100},
		HSV{350, 97, 100},
	).
		WithBackgrounds([]HSV{
			{136, 98, 75},
			{136, 0, 0},
			{350, 0, 100},
			{350, 97, 94},
		}).
		WithBrightnessRange([]int{50, 100}).
		WithInitStates([]HSV{{136, 0, 100}}).
		WithDuration(5000).
		WithExpansionStrategy(1).
		WithFadeoff(2000).
		WithHueRange(Range{136, 146}).
		WithRandomSeed(100).
		WithSaturationRange(Range{90, 100}).
		WithSegments([]int{0}).
		WithTransition(0)
}

func flicker() *LightEffect {
	return preset("TapoStrip_4HVKmMc6vEzjm36jXaGwMs", "Flicker", TypeRandom,
		HSV{30, 81, 100},
		HSV{40, 100, 100},
	).
		WithBrightnessRange([]int{50, 100}).
		WithInitStates([]HSV{{30, 81, 80}}).
		WithDuration(0).
		WithExpansionStrategy(1).
		WithHueRange(Range{30, 40}).
		WithSaturationRange(Range{100, 100}).
		WithSegments([]int{1}).
		WithTransition(0).
		WithTransitionRange(Range{375, 500})
}

func grandmasChristmasLights() *LightEffect {
	return preset("TapoStrip_3Gk6CmXOXbjCiwz9iD543C", "Grandma's Christmas Lights", TypeSequence,
		HSV{30, 100, 100},
		HSV{240, 100, 100},
		HSV{130, 100, 100},
		HSV{0, 100, 100},
	).
		WithDirection(1).
		WithDuration(5000).
		WithExpansionStrategy(1).
		WithRepeatTimes(0).
		WithSegments([]int{0}).
		WithSequence([]HSV{
			{30, 100, 100},
			{30, 0, 0},
			{30, 0, 0},
			{240, 100, 100},
			{240, 0, 0},
			{240, 0, 0},
			{240, 0, 100},
			{240, 0, 0},
			{240, 0, 0},
			{130, 100, 100},
			{130, 0, 0},
			{130, 0, 0},
			{0, 100, 100},
			{0, 0, 0},
			{0, 0, 0},
		})
}

func hanukkah() *LightEffect {
	return preset("TapoStrip_2YTk4wramLKv5XZ9KFDVYm", "Hanukkah", TypeRandom,
		HSV{200, 100, 100},
	).
		WithBrightnessRange([]int{50, 100}).
		WithInitStates([]HSV{{35, 81, 80}}).
		WithDuration(1500).
		WithExpansionStrategy(1).
		WithHueRange(Range{200, 210}).
		WithSaturationRange(Range{0, 100}).
		WithSegments([]int{1}).
		WithTransition(0).
		WithTransitionRange(Range{400, 500})
}

func hauntedMansion() *LightEffect {
	return preset("TapoStrip_4rJ6JwC7I9st3tQ8j4lwlI", "Haunted Mansion", TypeRandom,
		HSV{45, 10, 100},
	).
		WithBackgrounds([]HSV{{45, 10, 100}}).
		WithBrightnessRange([]int{0, 80}).
		WithInitStates([]HSV{{45, 10, 100}}).
		WithDuration(0).
		WithExpansionStrategy(2).
		WithFadeoff(200).
		WithHueRange(Range{45, 45}).
		WithRandomSeed(1).
		WithSaturationRange(Range{10, 10}).
		WithSegments([]int{80}).
		WithTransition(0).
		WithTransitionRange(Range{50, 1500})
}

func icicle() *LightEffect {
	return preset("TapoStrip_7UcYLeJbiaxVIXCxr21tpx", "Icicle", TypeSequence,
		HSV{190, 100, 100},
	).
		WithDirection(4).
		WithDuration(0).
		WithExpansionStrategy(1).
		WithRepeatTimes(0).
		WithSegments([]int{0}).
		WithSequence([]HSV{
			{190, 100, 70},
			{190, 100, 70},
			{190, 30, 50},
			{190, 100, 70},
			{190, 100, 70},
		}).
		WithSpread(3).
		WithTransition(400)
}

func lightning() *LightEffect {
	return preset("TapoStrip_7OGzfSfnOdhoO2ri4gOHWn", "Lightning", TypeRandom,
		HSV{210, 10, 100},
		HSV{200, 50, 100},
		HSV{200, 100, 100},
	).
		WithBackgrounds([]HSV{
			{200, 100, 100},
			{200, 50, 10},
			{210, 10, 50},
			{240, 10, 0},
		}).
		WithBrightnessRange([]int{90, 100}).
		WithInitStates([]HSV{{240, 30, 100}}).
		WithDuration(0).
		WithExpansionStrategy(1).
		WithFadeoff(150).
		WithHueRange(Range{240, 240}).
		WithRandomSeed(600).
		WithSaturationRange(Range{10, 11}).
		WithSegments([]int{7, 20, 23, 32, 34, 35, 49, 65, 66, 74, 80}).
		WithTransition(50)
}

func ocean() *LightEffect {
	return preset("TapoStrip_0fOleCdwSgR0nfjkReeYfw", "Ocean", TypeSequence,
		HSV{198, 84, 100},
	).
		WithDirection(3).
		WithDuration(0).
		WithExpansionStrategy(1).
		WithRepeatTimes(0).
		WithSegments([]int{0}).
		WithSequence([]HSV{{198, 84, 30}, {198, 70, 30}, {198, 10, 30}}).
		WithSpread(16).
		WithTransition(2000)
}

func rainbow() *LightEffect {
	return preset("TapoStrip_7CC5y4lsL8pETYvmz7UOpQ", "Rainbow", TypeSequence,
		HSV{0, 100, 100},
		HSV{100, 100, 100},
		HSV{200, 100, 100},
		HSV{300, 100, 100},
	).
		WithDirection(1).
		WithDuration(0).
		WithExpansionStrategy(1).
		WithRepeatTimes(0).
		WithSegments([]int{0}).
		WithSequence([]HSV{
			{0, 100, 100},
			{100, 100, 100},
			{200, 100, 100},
			{300, 100, 100},
		}).
		WithSpread(12).
		WithTransition(1500)
}

func raindrop() *LightEffect {
	return preset("TapoStrip_1t2nWlTBkV8KXBZ0TWvBjs", "Raindrop", TypeRandom,
		HSV{200, 10, 100},
		HSV{200, 20, 100},
	).
		WithBackgrounds([]HSV{{200, 40, 0}}).
		WithBrightnessRange([]int{10, 30}).
		WithInitStates([]HSV{{200, 40, 100}}).
		WithDuration(0).
		WithExpansionStrategy(1).
		WithFadeoff(1000).
		WithHueRange(Range{200, 200}).
		WithRandomSeed(24).
		WithSaturationRange(Range{10, 20}).
		WithSegments([]int{0}).
		WithTransition(1000)
}

func spring() *LightEffect {
	return preset("TapoStrip_1nL6GqZ5soOxj71YDJOlZL", "Spring", TypeRandom,
		HSV{0, 30, 100},
		HSV{130, 100, 100},
	).
		WithBackgrounds([]HSV{{130, 100, 40}}).
		WithBrightnessRange([]int{90, 100}).
		WithInitStates([]HSV{{80, 30, 100}}).
		WithDuration(600).
		WithExpansionStrategy(1).
		WithFadeoff(1000).
		WithHueRange(Range{0, 90}).
		WithRandomSeed(20).
		WithSaturationRange(Range{30, 100}).
		WithSegments([]int{0}).
		WithTransition(0).
		WithTransitionRange(Range{2000, 6000})
}

func sunrise() *LightEffect {
	return preset("TapoStrip_1OVSyXIsDxrt4j7OxyRvqi", "Sunrise", TypePulse,
		HSV{30, 0, 100},
		HSV{30, 95, 100},
		HSV{0, 100, 100},
	).
		WithDirection(1).
		WithDuration(600).
		WithExpansionStrategy(2).
		WithRepeatTimes(1).
		WithSegments([]int{0}).
		WithSequence([]HSV{
			{0, 100, 5},
			{0, 100, 5},
			{10, 100, 6},
			{15, 100, 7},
			{20, 100, 8},
			{20, 100, 10},
			{30, 100, 12},
			{30, 95, 15},
			{30, 90, 20},
			{30, 80, 25},
			{30, 75, 30},
			{30, 70, 40},
			{30, 60, 50},
			{30, 50, 60},
			{30, 20, 70},
			{30, 0, 100},
		}).
		WithSpread(1).
		WithTransition(60000).
		WithRunTime(0)
}

func sunset() *LightEffect {
	return preset("TapoStrip_5NiN0Y8GAUD78p4neKk9EL", "Sunset", TypePulse,
		HSV{0, 100, 100},
		HSV{30, 95, 100},
		HSV{30, 0, 100},
	).
		WithDirection(1).
		WithDuration(600).
		WithExpansionStrategy(2).
		WithRepeatTimes(1).
		WithSegments([]int{0}).
		WithSequence([]HSV{
			{30, 0, 100},
			{30, 20, 100},
			{30, 50, 99},
			{30, 60, 98},
			{30, 70, 97},
			{30, 75, 95},
			{30, 80, 93},
			{30, 90, 90},
			{30, 95, 85},
			{30, 100, 80},
			{20, 100, 70},
			{20, 100, 60},
			{15, 100, 50},
			{10, 100, 40},
			{0, 100, 30},
			{0, 100, 0},
		}).
		WithSpread(1).
		WithTransition(60000).
		WithRunTime(0)
}

func valentines() *LightEffect {
	return preset("TapoStrip_2q1Vio9sSjHmaC7JS9d30l", "Valentines", TypeRandom,
		HSV{340, 20, 100},
		HSV{20, 50, 100},
		HSV{0, 100, 100},
		HSV{340, 40, 100},
	).
		WithBackgrounds([]HSV{{340, 20, 50}, {20, 50, 50}, {0, 100, 50}}).
		WithBrightnessRange([]int{90, 100}).
		WithInitStates([]HSV{{340, 30, 100}}).
		WithDuration(600).
		WithExpansionStrategy(1).
		WithFadeoff(3000).
		WithHueRange(Range{340, 340}).
		WithRandomSeed(100).
		WithSaturationRange(Range{30, 40}).
		WithSegments([]int{0}).
		WithTransition(2000)
}
