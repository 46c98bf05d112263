package main

import (
	"fmt"
	"io"
	"time"

	"hdlgraph/internal/driver"
	"hdlgraph/internal/pipeline"
)

var stageVerbs = map[pipeline.Stage]string{
	pipeline.StageRestore: "restored",
	pipeline.StageAdjust:  "adjusted",
	pipeline.StageLint:    "linted",
	pipeline.StageSave:    "saved",
}

func printStageTimings(out io.Writer, results []driver.FileResult) {
	for i := range results {
		r := &results[i]
		fmt.Fprintf(out, "%s:", r.Name)
		for _, stage := range pipeline.Stages {
			if r.Timings.Has(stage) {
				fmt.Fprintf(out, " %s %.1f ms", stageVerbs[stage], toMillis(r.Timings.Duration(stage)))
			}
		}
		fmt.Fprintf(out, " (total %.1f ms)\n", toMillis(r.Timings.Sum()))
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
