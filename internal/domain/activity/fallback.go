package activity

import (
	"math/rand/v2"
	"sync"
)

type fallbackEntry struct {
	activity Activity
	// width is how many of the requested material names the fallback lists.
	width int
}

var fallbacks = []fallbackEntry{
	{
		width: 3,
		activity: Activity{
			Name:         "Tower Challenge",
			TimeEstimate: "30 minutes",
			Instructions: []string{
				"Lay out all of your materials on a flat table.",
				"Pick the sturdiest pieces to make a wide, steady base.",
				"Stack and join the materials to build your tower as tall as you can.",
				"Gently blow on the tower or tap the table to test how strong it is.",
				"Measure the tower, then try a new design to beat your record!",
			},
			ParentTip:    "Let them knock it down and rebuild. Each try teaches them what makes a structure stable.",
			LearningGoal: "Engineering and structural stability",
		},
	},
	{
		width: 3,
		activity: Activity{
			Name:         "Color Mixing",
			TimeEstimate: "25 minutes",
			Instructions: []string{
				"Fill a few cups with water and set them side by side.",
				"Use markers or anything colorful to tint each cup a different primary color.",
				"Predict what color you will get when you mix two cups together.",
				"Pour a little from two cups into an empty one and watch the new color appear.",
				"Record every mix and name your favorite new color.",
			},
			ParentTip:    "Cover the table with a towel and ask them to guess before every pour.",
			LearningGoal: "Color theory and mixing primary colors",
		},
	},
	{
		width: 4,
		activity: Activity{
			Name:         "Balance Experiment",
			TimeEstimate: "35 minutes",
			Instructions: []string{
				"Make a simple balance beam by resting a flat piece across a small support.",
				"Place one item on each end of the beam.",
				"Move the items closer to or farther from the middle until the beam levels out.",
				"Add a third item and find the new balance point.",
				"Talk about why heavier items need to sit closer to the middle.",
			},
			ParentTip:    "Help them keep the support steady and celebrate every time the beam levels out.",
			LearningGoal: "Balance, weight and the center of mass",
		},
	},
	{
		width: 4,
		activity: Activity{
			Name:         "Catapult",
			TimeEstimate: "45 minutes",
			Instructions: []string{
				"Build a sturdy base that will not tip over when you launch.",
				"Attach a launching arm so it can pivot on the base.",
				"Make a small cup or scoop at the end of the arm to hold a soft object.",
				"Press the arm down, let go and watch your object fly.",
				"Change where the arm pivots and measure how far each launch travels.",
			},
			ParentTip:    "Only launch soft objects and agree on a safe launch zone away from faces.",
			LearningGoal: "Potential and kinetic energy with simple levers",
		},
	},
	{
		width: 3,
		activity: Activity{
			Name:         "Floating Challenge",
			TimeEstimate: "30 minutes",
			Instructions: []string{
				"Fill a sink or large bowl with water.",
				"Guess which of your materials will float and which will sink.",
				"Test each material one at a time and sort them into float and sink piles.",
				"Build a small boat from the floaters and see how much weight it can carry.",
				"Talk about why some shapes float better than others.",
			},
			ParentTip:    "Stay close to the water and keep towels ready for splashes.",
			LearningGoal: "Buoyancy and why things float",
		},
	},
}

// FallbackNames lists the names of the built-in fallback activities.
func FallbackNames() []string {
	names := make([]string, 0, len(fallbacks))
	for _, f := range fallbacks {
		names = append(names, f.activity.Name)
	}
	return names
}

// Rand is the randomness used to pick a fallback.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// FallbackSelector picks a built-in activity uniformly at random.
type FallbackSelector struct {
	mu  sync.Mutex
	rnd Rand
}

// NewFallbackSelector returns a selector drawing from rnd, or from the global source when rnd is nil.
func NewFallbackSelector(rnd Rand) *FallbackSelector {
	if rnd == nil {
		rnd = globalRand{}
	}
	return &FallbackSelector{rnd: rnd}
}

// Select returns a fallback activity listing a prefix of the requested materials.
func (s *FallbackSelector) Select(materials []string) Activity {
	s.mu.Lock()
	idx := s.rnd.IntN(len(fallbacks))
	s.mu.Unlock()

	entry := fallbacks[idx]
	act := entry.activity.clone()
	n := min(entry.width, len(materials))
	act.Materials = append([]string(nil), materials[:n]...)
	return act
}
