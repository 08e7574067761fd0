package markdownparser

import (
	"fmt"
	"math"
	"strings"

	"github.com/goccy/go-yaml"
)

// Settings are the evaluation settings a document declares in its front matter.
type Settings struct {
	Precision *int32         // division precision, nil means the configured default
	Schema    map[string]any // schema for path blocks
	Data      map[string]any // document path blocks resolve against
}

// parseFrontMatter extracts YAML front matter from markdown content. It also
// reports how many lines were cut off so block lines stay file relative.
func parseFrontMatter(content string) (map[string]any, string, int, error) {
	if !strings.HasPrefix(content, "---\n") {
		return make(map[string]any), content, 0, nil
	}

	endIndex := strings.Index(content[4:], "\n---")
	if endIndex == -1 {
		return nil, "", 0, ErrInvalidFrontMatter
	}

	endIndex += 4

	frontMatterContent := content[4:endIndex]
	remainingContent := content[endIndex+4:]
	skipped := strings.Count(content[:endIndex+4], "\n")

	var frontMatter map[string]any

	err := yaml.Unmarshal([]byte(frontMatterContent), &frontMatter)
	if err != nil {
		return nil, "", 0, fmt.Errorf("%w: %w", ErrInvalidFrontMatter, err)
	}

	if frontMatter == nil {
		frontMatter = make(map[string]any)
	}

	return frontMatter, remainingContent, skipped, nil
}

func parseSettings(frontMatter map[string]any) (Settings, error) {
	var settings Settings

	if raw, ok := frontMatter["precision"]; ok && raw != nil {
		n, ok := toInt(raw)
		if !ok || n < 0 || n > math.MaxInt32 {
			return settings, fmt.Errorf("%w: precision must be a non-negative integer, got %v", ErrInvalidSettings, raw)
		}

		p := int32(n)
		settings.Precision = &p
	}

	for _, key := range []string{"schema", "data"} {
		raw, ok := frontMatter[key]
		if !ok || raw == nil {
			continue
		}

		m, ok := normalizeStringMap(raw)
		if !ok {
			return settings, fmt.Errorf("%w: %s must be a map with string keys", ErrInvalidSettings, key)
		}

		if key == "schema" {
			settings.Schema = m
		} else {
			settings.Data = m
		}
	}

	return settings, nil
}

func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}

		return int64(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}

		return int64(n), true
	default:
		return 0, false
	}
}

func normalizeStringMap(value any) (map[string]any, bool) {
	switch m := value.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			key, ok := k.(string)
			if !ok {
				return nil, false
			}

			out[key] = v
		}

		return out, true
	default:
		return nil, false
	}
}
