package pipeline_test

import (
	"context"
	"fmt"

	"github.com/scaduxx/folio/pkg/justify"
	"github.com/scaduxx/folio/pkg/pipeline"
)

func ExampleRunner_Execute() {
	runner := pipeline.NewRunner(nil, nil, nil)

	result, err := runner.Execute(context.Background(), pipeline.Options{
		AspectRatios: []float64{1, 1},
		Options:      justify.Options{ContainerWidth: 400, TargetRowHeight: 200},
		Formats:      []string{pipeline.FormatSVG},
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("%d items in %d row, %.0f×%.0f\n", result.Stats.Items, result.Stats.Rows,
		result.Layout.ContainerWidth, result.Layout.ContainerHeight)
	fmt.Println("SVG starts with:", string(result.Artifacts["svg"][:4]))
	// Output:
	// 2 items in 1 row, 400×200
	// SVG starts with: <svg
}
