// Package pipeline runs per-file image operations across a bounded worker
// pool and handles image file I/O.
//
// Each file is processed independently: decode, transform, encode. A
// failing file is reported and skipped; the batch continues.
package pipeline

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"sync"

	"github.com/menta2k/print-prep/internal/pathutil"
)

// ProcessFunc transforms one decoded image. The input path is passed
// along for operations that read file metadata.
type ProcessFunc func(img image.Image, path string) (image.Image, error)

// Options configures a batch run.
type Options struct {
	// OutputPattern is the output path pattern, `*` standing for the
	// input base file name.
	OutputPattern string
	// Workers is the pool size. Zero means one worker per CPU.
	Workers int
	// Quality is the JPEG/WebP output quality in percent.
	Quality int
	// Lossless enables lossless WebP output.
	Lossless bool
}

// Result is the outcome for one input file.
type Result struct {
	Input  string
	Output string
	Err    error
}

// Report aggregates the outcomes of a batch run.
type Report struct {
	Results []Result
}

// Succeeded counts the files processed without error.
func (r Report) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil {
			n++
		}
	}
	return n
}

// Failed counts the files that reported an error.
func (r Report) Failed() int {
	return len(r.Results) - r.Succeeded()
}

// FirstError returns the first per-file error, if any.
func (r Report) FirstError() error {
	for _, res := range r.Results {
		if res.Err != nil {
			return res.Err
		}
	}
	return nil
}

// job pairs an input file with its resolved output path.
type job struct {
	input  string
	output string
}

// Run processes all files through the worker pool. Per-file failures are
// collected in the report, they never abort the batch. Cancelling the
// context stops the dispatch of files not yet started.
//
// All output paths are resolved before any file is opened; an error is
// returned when the output pattern is invalid or maps two inputs to the
// same path, which would overwrite results.
func Run(ctx context.Context, files []string, process ProcessFunc, opts Options) (Report, error) {
	jobs := make([]job, len(files))
	outputs := map[string]string{}
	for i, file := range files {
		out, err := pathutil.OutPath(file, opts.OutputPattern)
		if err != nil {
			return Report{}, err
		}
		if prev, clash := outputs[out]; clash {
			return Report{}, fmt.Errorf("output pattern %q maps both %s and %s to %s, use `*` or a directory",
				opts.OutputPattern, prev, file, out)
		}
		outputs[out] = file
		jobs[i] = job{input: file, output: out}
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	tasks := make(chan job)
	results := make(chan Result)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range tasks {
				results <- processFile(j, process, opts)
			}
		}()
	}

	go func() {
		defer close(tasks)
		for _, j := range jobs {
			select {
			case tasks <- j:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	report := Report{}
	for res := range results {
		report.Results = append(report.Results, res)
	}
	return report, nil
}

func processFile(j job, process ProcessFunc, opts Options) Result {
	img, err := OpenImage(j.input)
	if err != nil {
		return Result{Input: j.input, Output: j.output, Err: err}
	}

	processed, err := process(img, j.input)
	if err != nil {
		return Result{Input: j.input, Output: j.output, Err: err}
	}

	if err := SaveImage(processed, j.output, opts.Quality, opts.Lossless); err != nil {
		return Result{Input: j.input, Output: j.output, Err: err}
	}
	return Result{Input: j.input, Output: j.output}
}
