package output

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// english formats numbers with English grouping (1,234.5).
var english = message.NewPrinter(language.English)

// FormatHeader returns a markdown header line.
func FormatHeader(level int, text string) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("#", level) + " " + text
}

// FormatKeyValue returns a markdown key-value bullet.
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("- **%s:** %s", key, value)
}

// FormatCodeBlock returns a fenced markdown code block.
func FormatCodeBlock(lang, code string) string {
	return "```" + lang + "\n" + strings.TrimRight(code, "\n") + "\n```"
}

// FormatValue renders a record value for tables and detail views.
// Nil and empty values become an em dash; large numbers get thousands
// separators; tiny magnitudes switch to scientific notation.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "—"
	case string:
		if x == "" {
			return "—"
		}
		return x
	case float64:
		return formatFloat(x)
	case float32:
		return formatFloat(float64(x))
	case *float64:
		if x == nil {
			return "—"
		}
		return formatFloat(*x)
	case int:
		return strconv.Itoa(x)
	case *int:
		if x == nil {
			return "—"
		}
		return strconv.Itoa(*x)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// FormatValueUnit renders a value with a unit suffix. Unset values stay
// a bare em dash with no unit.
func FormatValueUnit(v any, unit string) string {
	s := FormatValue(v)
	if s == "—" || unit == "" {
		return s
	}
	return s + " " + unit
}

func formatFloat(v float64) string {
	switch {
	case math.Abs(v) >= 1000:
		return english.Sprintf("%.1f", v)
	case v != 0 && math.Abs(v) < 0.01:
		return fmt.Sprintf("%.2e", v)
	default:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
}
