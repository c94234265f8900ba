package activity

import (
	"fmt"
	"strings"
)

const promptTemplate = `You are a creative STEM educator creating fun, hands-on science experiments for kids ages 5-12.
Create ONE engaging project using some or all of these materials: %[1]s.

Requirements:
- Make it educational and fun, focusing on a clear STEM concept
- Use only the provided materials (plus common household items like water if needed)
- Include 4-8 clear, easy-to-follow steps
- Ensure it's safe for kids with adult supervision
- Time should be 15 minutes to 2 hours
- Focus on discovery and learning through play
- Include a specific learning goal (physics, chemistry, engineering, etc.)
- Make the parent tip practical and encouraging

Available materials: %[1]s

Respond with a single JSON object and nothing else, using exactly these fields:
{
  "name": "Creative, engaging project name",
  "time_estimate": "Time needed (e.g. '30 minutes', '1-2 hours')",
  "materials": ["Materials needed from the provided list"],
  "instructions": ["4-8 clear, step-by-step instructions"],
  "parent_tip": "Helpful supervision tip for parents",
  "learning_goal": "STEM concept being learned (e.g. 'principles of motion', 'chemical reactions')"
}

Make it feel like a real science experiment that kids would be excited to try!`

// BuildPrompt renders the generation prompt for the given material names.
func BuildPrompt(materials []string) string {
	return fmt.Sprintf(promptTemplate, strings.Join(materials, ", "))
}
