// Package prompt produces the natural-language description paired with
// each example. The text must agree with what the animation actually
// shows: the weights, the totals, the stop line and the highlight.
package prompt

import (
	"fmt"
	"strings"

	"github.com/ivlev/scalegen/internal/scene"
)

func Describe(st *scene.State) string {
	winner := strings.ToUpper(st.HeavierSide.String())
	winTotal, loseTotal := st.TotalLeft, st.TotalRight
	if st.HeavierSide == scene.Right {
		winTotal, loseTotal = st.TotalRight, st.TotalLeft
	}

	return fmt.Sprintf(`Balance scale with weights on both pans:
- LEFT: %s = %d
- RIGHT: %s = %d

The scale starts balanced. The heavier side tips DOWN.
The beam tilts until the lower pan reaches the base level (red dashed line appears).
The heavier pan is highlighted in red.

Answer: %s side tips down (%d > %d).`,
		joinWeights(st.LeftWeights), st.TotalLeft,
		joinWeights(st.RightWeights), st.TotalRight,
		winner, winTotal, loseTotal)
}

func joinWeights(ws []int) string {
	parts := make([]string, len(ws))
	for i, w := range ws {
		parts[i] = fmt.Sprintf("%d", w)
	}
	return strings.Join(parts, " + ")
}
