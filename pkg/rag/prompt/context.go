package prompt

import (
	"fmt"
	"strings"

	"portfolio-chatbot-be/internal/constant"
	"portfolio-chatbot-be/internal/entity"
)

// FormatContext renders matches as numbered blocks for the system prompt.
// Field order within a block is fixed: text, title, organization, period,
// technologies.
func FormatContext(matches []entity.SearchMatch) string {
	if len(matches) == 0 {
		return constant.ContextNoRelevantInformation
	}

	var b strings.Builder
	b.WriteString(constant.ContextHeader)

	for i, m := range matches {
		fmt.Fprintf(&b, "[%d] %s\n", i+1, stringField(m.Metadata, "text"))

		if title := stringField(m.Metadata, "title"); title != "" {
			fmt.Fprintf(&b, "   Title: %s\n", title)
		}

		org := stringField(m.Metadata, "organization")
		if org == "" {
			org = stringField(m.Metadata, "company")
		}
		if org != "" {
			fmt.Fprintf(&b, "   Organization: %s\n", org)
		}

		if period := stringField(m.Metadata, "period"); period != "" {
			fmt.Fprintf(&b, "   Period: %s\n", period)
		}

		if techs := listField(m.Metadata, "technologies"); len(techs) > 0 {
			fmt.Fprintf(&b, "   Technologies: %s\n", strings.Join(techs, ", "))
		}

		b.WriteString("\n")
	}

	return b.String()
}

func stringField(metadata map[string]interface{}, key string) string {
	v, ok := metadata[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// listField accepts both []string and the []interface{} produced by JSON decoding.
func listField(metadata map[string]interface{}, key string) []string {
	switch v := metadata[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	case string:
		if v != "" {
			return []string{v}
		}
	}
	return nil
}
