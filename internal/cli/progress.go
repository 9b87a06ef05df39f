// internal/cli/progress.go
//
// Terminal progress bar for the startup feedback-matrix build.
// The bar is advanced from the matrix builder's serialised progress callback
// and cleared once the build finishes.

package cli

import (
	"io"

	"github.com/schollz/progressbar/v3"

	"github.com/robalobadob/wordle/apps/hint-server/internal/feedback"
	"github.com/robalobadob/wordle/apps/hint-server/internal/words"
)

// BuildMatrix builds the feedback matrix for targets, drawing a progress bar on w.
func BuildMatrix(targets []words.Word, workers int, w io.Writer) *feedback.Matrix {
	bar := progressbar.NewOptions(len(targets),
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("precomputing feedback"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(0),
		progressbar.OptionClearOnFinish(),
	)
	m := feedback.BuildMatrix(targets,
		feedback.WithWorkers(workers),
		feedback.WithProgress(func(done, _ int) { _ = bar.Set(done) }),
	)
	_ = bar.Finish()
	return m
}
