package rank

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/maivenlabs/relevancy/core"
)

// arrayPattern extracts the outermost JSON array when the judge wraps its
// answer in prose.
var arrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

// scoredItem is the judge's per-policy verdict. Its UnmarshalJSON tolerates
// the shapes small local models actually produce: string-typed ids,
// fractional scores, and string-typed scores.
type scoredItem struct {
	PolicyId core.ID
	Score    int
}

func (s *scoredItem) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	id, err := numberField(raw, "policy_id")
	if err != nil {
		return err
	}
	score, err := numberField(raw, "score")
	if err != nil {
		return err
	}
	if id < 0 {
		return fmt.Errorf("negative policy_id %v", id)
	}

	s.PolicyId = core.ID(uint64(id))
	s.Score = int(math.Round(score))
	return nil
}

func numberField(raw map[string]json.RawMessage, key string) (float64, error) {
	data, ok := raw[key]
	if !ok {
		return 0, fmt.Errorf("missing %q field", key)
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		return n, nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return 0, fmt.Errorf("field %q is neither number nor string", key)
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %q value %q: %w", key, str, err)
	}
	return n, nil
}

// parseScores recovers a score list from a raw judge response. It strips
// markdown fences, repairs common key-quoting mistakes, and falls back to
// extracting the first JSON array embedded in surrounding prose.
func parseScores(response string) ([]scoredItem, error) {
	text := strings.TrimSpace(response)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)
	text = repairJSON(text)

	var items []scoredItem
	if err := json.Unmarshal([]byte(text), &items); err == nil {
		return items, nil
	}

	embedded := arrayPattern.FindString(text)
	if embedded == "" {
		return nil, fmt.Errorf("no JSON array in response")
	}
	if err := json.Unmarshal([]byte(embedded), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// repairJSON fixes a key-quoting mistake local models make: dropping the
// opening quote of an object key, as in `{policy_id": 3}`. Content inside
// string values is left untouched.
func repairJSON(s string) string {
	var out strings.Builder
	out.Grow(len(s) + 16)

	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		ch := s[i]

		if inString {
			out.WriteByte(ch)
			if escaped {
				escaped = false
			} else if ch == '\\' {
				escaped = true
			} else if ch == '"' {
				inString = false
			}
			continue
		}

		if ch == '"' {
			inString = true
			out.WriteByte(ch)
			continue
		}

		if ch == '{' || ch == ',' {
			out.WriteByte(ch)
			j := i + 1
			for j < len(s) && (s[j] == ' ' || s[j] == '\t' || s[j] == '\n' || s[j] == '\r') {
				out.WriteByte(s[j])
				j++
			}
			// A bare identifier followed by ": is a key missing its
			// opening quote
			k := j
			for k < len(s) && (isKeyByte(s[k])) {
				k++
			}
			if k > j && k+1 < len(s) && s[k] == '"' && s[k+1] == ':' {
				out.WriteByte('"')
				out.WriteString(s[j:k])
				out.WriteByte('"')
				i = k
				continue
			}
			i = j - 1
			continue
		}

		out.WriteByte(ch)
	}

	return out.String()
}

func isKeyByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
