package activity

import (
	"encoding/json"
	"strings"
)

// ExtractActivity pulls the first top-level JSON object out of raw generation text and decodes it.
// It requires a name and an instructions array; the remaining shape checks live in Validate.
func ExtractActivity(raw string) (Activity, error) {
	obj, err := firstObject(stripFences(raw))
	if err != nil {
		return Activity{}, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(obj), &fields); err != nil {
		return Activity{}, parseError("decode object", err)
	}

	var act Activity
	if err := decodeString(fields, "name", &act.Name); err != nil {
		return Activity{}, err
	}
	if strings.TrimSpace(act.Name) == "" {
		return Activity{}, parseError("missing name", nil)
	}
	rawInstructions, ok := fields["instructions"]
	if !ok {
		return Activity{}, parseError("missing instructions", nil)
	}
	if err := json.Unmarshal(rawInstructions, &act.Instructions); err != nil || act.Instructions == nil {
		return Activity{}, parseError("instructions is not a list of strings", err)
	}
	if err := decodeString(fields, "time_estimate", &act.TimeEstimate); err != nil {
		return Activity{}, err
	}
	if err := decodeString(fields, "parent_tip", &act.ParentTip); err != nil {
		return Activity{}, err
	}
	if err := decodeString(fields, "learning_goal", &act.LearningGoal); err != nil {
		return Activity{}, err
	}
	if rawMaterials, ok := fields["materials"]; ok {
		if err := json.Unmarshal(rawMaterials, &act.Materials); err != nil {
			return Activity{}, parseError("materials is not a list of strings", err)
		}
	}

	return act, nil
}

// Validate checks the full activity shape returned to callers.
func Validate(act Activity) error {
	switch {
	case strings.TrimSpace(act.Name) == "":
		return parseError("missing name", nil)
	case strings.TrimSpace(act.TimeEstimate) == "":
		return parseError("missing time_estimate", nil)
	case len(act.Materials) == 0:
		return parseError("missing materials", nil)
	case len(act.Instructions) < MinInstructions || len(act.Instructions) > MaxInstructions:
		return parseError("instructions must have 4-8 steps", nil)
	case strings.TrimSpace(act.ParentTip) == "":
		return parseError("missing parent_tip", nil)
	case strings.TrimSpace(act.LearningGoal) == "":
		return parseError("missing learning_goal", nil)
	}
	for _, step := range act.Instructions {
		if strings.TrimSpace(step) == "" {
			return parseError("blank instruction", nil)
		}
	}
	return nil
}

func decodeString(fields map[string]json.RawMessage, key string, dst *string) error {
	raw, ok := fields[key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return parseError(key+" is not a string", err)
	}
	return nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	firstNL := strings.IndexByte(s, '\n')
	if firstNL == -1 {
		return strings.TrimSpace(strings.Trim(s, "`"))
	}
	s = s[firstNL+1:]
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// firstObject returns the first brace-balanced object in s. Braces inside JSON strings are ignored.
func firstObject(s string) (string, error) {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return "", parseError("no JSON object found", nil)
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", parseError("unterminated JSON object", nil)
}
