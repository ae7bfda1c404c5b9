package trio

import (
	"fmt"
	"strconv"
	"strings"
)

// Format renders a value for display. Rendering is a presentation concern;
// nothing in the runtime depends on this shape.
func Format(v Value) string {
	switch v.Tag {
	case TNum:
		return "Num(" + strconv.FormatFloat(v.Num, 'g', -1, 64) + ")"
	case TStr:
		return fmt.Sprintf("Str(%q)", v.Str)
	case TBool:
		return fmt.Sprintf("Bool(%t)", v.Bool)
	case TUnit:
		return "Unit"
	case TColor:
		return fmt.Sprintf("Color(%d,%d,%d)", v.Color.R, v.Color.G, v.Color.B)
	case TArray:
		parts := make([]string, len(v.Arr))
		for i, el := range v.Arr {
			parts[i] = Format(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case TMap:
		parts := make([]string, len(v.Map))
		for i, p := range v.Map {
			parts[i] = Format(p.Key) + ": " + Format(p.Val)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case TFuture:
		switch v.Fut.State() {
		case Resolved:
			return "Future(Resolved(" + Format(v.Fut.Value()) + "))"
		case Rejected:
			return fmt.Sprintf("Future(Rejected(%q))", v.Fut.Reason())
		default:
			return "Future(Pending)"
		}
	case TCont:
		return "Continuation"
	default:
		return "Unknown"
	}
}
