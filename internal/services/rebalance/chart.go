package rebalance

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/maomaoaichibing/portfolio-advisor/internal/models"
)

// RenderAllocationChart renders a PNG bar chart of the plan's target
// weights, largest first. Returns raw PNG bytes.
func RenderAllocationChart(plan *models.RebalancePlan) ([]byte, error) {
	if plan == nil || len(plan.TargetWeights) == 0 {
		return nil, fmt.Errorf("plan has no target weights to chart")
	}

	symbols := make([]string, 0, len(plan.TargetWeights))
	for symbol := range plan.TargetWeights {
		symbols = append(symbols, symbol)
	}
	sort.SliceStable(symbols, func(i, j int) bool {
		wi, wj := plan.TargetWeights[symbols[i]], plan.TargetWeights[symbols[j]]
		if wi != wj {
			return wi > wj
		}
		return symbols[i] < symbols[j]
	})

	bars := make([]chart.Value, 0, len(symbols))
	for _, symbol := range symbols {
		bars = append(bars, chart.Value{
			Label: symbol,
			Value: plan.TargetWeights[symbol],
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex("2563eb"), // blue-600
				StrokeColor: drawing.ColorFromHex("2563eb"),
			},
		})
	}

	graph := chart.BarChart{
		Title:    fmt.Sprintf("Target Allocation (%s)", plan.Strategy.Name),
		Width:    900,
		Height:   400,
		BarWidth: 48,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f%%", f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render allocation chart: %w", err)
	}
	return buf.Bytes(), nil
}
