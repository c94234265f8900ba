package activity_test

import (
	"testing"

	"github.com/rpggio/labcoats/internal/domain/activity"
	"github.com/stretchr/testify/require"
)

const validJSON = `{
  "name": "Balloon Rocket Race",
  "time_estimate": "30 minutes",
  "materials": ["Balloon", "Tape", "Yarn"],
  "instructions": [
    "Thread the yarn through a straw-sized tube of tape.",
    "Tie the yarn between two chairs.",
    "Blow up the balloon and tape it to the tube.",
    "Let go and watch it zoom!"
  ],
  "parent_tip": "Hold the balloon while they tape it.",
  "learning_goal": "Newton's third law"
}`

func TestExtractActivity_PlainObject(t *testing.T) {
	act, err := activity.ExtractActivity(validJSON)
	require.NoError(t, err)
	require.Equal(t, "Balloon Rocket Race", act.Name)
	require.Equal(t, "30 minutes", act.TimeEstimate)
	require.Equal(t, []string{"Balloon", "Tape", "Yarn"}, act.Materials)
	require.Len(t, act.Instructions, 4)
	require.Equal(t, "Newton's third law", act.LearningGoal)
	require.NoError(t, activity.Validate(act))
}

func TestExtractActivity_SurroundingText(t *testing.T) {
	raw := "Here is a fun project for you!\n\n```json\n" + validJSON + "\n```\nHave fun {and stay safe}."
	act, err := activity.ExtractActivity(raw)
	require.NoError(t, err)
	require.Equal(t, "Balloon Rocket Race", act.Name)
}

func TestExtractActivity_FencedOnly(t *testing.T) {
	act, err := activity.ExtractActivity("```json\n" + validJSON + "\n```")
	require.NoError(t, err)
	require.Equal(t, "Balloon Rocket Race", act.Name)
}

func TestExtractActivity_BracesInsideStrings(t *testing.T) {
	raw := `{"name":"Curly {Brace} Bridge","instructions":["Say \"}\" out loud","b","c","d"]} trailing }`
	act, err := activity.ExtractActivity(raw)
	require.NoError(t, err)
	require.Equal(t, "Curly {Brace} Bridge", act.Name)
	require.Equal(t, `Say "}" out loud`, act.Instructions[0])
}

func TestExtractActivity_Errors(t *testing.T) {
	cases := map[string]string{
		"no object":             "Sorry, I can't help with that.",
		"unterminated":          `{"name": "Half`,
		"invalid json":          `{"name": "x", instructions: []}`,
		"missing name":          `{"instructions": ["a","b","c","d"]}`,
		"blank name":            `{"name": "  ", "instructions": ["a","b","c","d"]}`,
		"missing instructions":  `{"name": "x"}`,
		"instructions string":   `{"name": "x", "instructions": "do it"}`,
		"instructions null":     `{"name": "x", "instructions": null}`,
		"name not string":       `{"name": 42, "instructions": ["a"]}`,
		"materials not strings": `{"name": "x", "instructions": ["a"], "materials": [1, 2]}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := activity.ExtractActivity(raw)
			require.Error(t, err)
			require.ErrorIs(t, err, activity.ErrMalformedResponse)

			var parseErr *activity.ParseError
			require.ErrorAs(t, err, &parseErr)
			require.NotEmpty(t, parseErr.Reason)
		})
	}
}

func TestValidate(t *testing.T) {
	base, err := activity.ExtractActivity(validJSON)
	require.NoError(t, err)

	tooFew := base
	tooFew.Instructions = []string{"a", "b", "c"}
	require.ErrorIs(t, activity.Validate(tooFew), activity.ErrMalformedResponse)

	tooMany := base
	tooMany.Instructions = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}
	require.ErrorIs(t, activity.Validate(tooMany), activity.ErrMalformedResponse)

	noTip := base
	noTip.ParentTip = ""
	require.ErrorIs(t, activity.Validate(noTip), activity.ErrMalformedResponse)

	noMaterials := base
	noMaterials.Materials = nil
	require.ErrorIs(t, activity.Validate(noMaterials), activity.ErrMalformedResponse)

	eight := base
	eight.Instructions = []string{"1", "2", "3", "4", "5", "6", "7", "8"}
	require.NoError(t, activity.Validate(eight))
}
