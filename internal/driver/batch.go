package driver

import (
	"context"
	"io"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"jsonfix"
	"jsonfix/internal/diag"
	"jsonfix/internal/dialect"
	"jsonfix/internal/log"
	"jsonfix/internal/observ"
	"jsonfix/internal/source"
)

// DefaultMaxDiagnostics bounds the per-file diagnostic bag.
const DefaultMaxDiagnostics = 100

// Options configures Run.
type Options struct {
	Config jsonfix.Config
	// Jobs bounds parallelism; <= 0 means runtime.NumCPU().
	Jobs           int
	MaxDiagnostics int
	// Stdin is read for the "-" input; nil means os.Stdin.
	Stdin   io.Reader
	BaseDir string
	// Timings records phase durations per file and in Batch.Timer.
	Timings bool
	// Classify fills FileResult.Dialect.
	Classify bool
	Progress ProgressSink
}

// FileResult is the outcome for one input.
type FileResult struct {
	Path   string // путь как передан (или StdinName)
	FileID source.FileID
	// Input is the loaded text: BOM removed, CRLF normalized.
	Input string
	// Output is the formatted text with a trailing newline; empty on failure.
	Output  string
	Changed bool
	Result  jsonfix.Result
	Dialect dialect.Classification
	// Err is a *jsonfix.FormatError or a load error.
	Err   error
	Bag   *diag.Bag
	Timer *observ.Timer
}

// Failed reports whether the input could not be formatted.
func (r *FileResult) Failed() bool {
	return r.Err != nil || (r.Bag != nil && r.Bag.HasErrors())
}

// IsStdin reports whether the result came from standard input.
func (r *FileResult) IsStdin() bool {
	return r.Path == StdinName
}

// Batch holds every result of Run in input order.
type Batch struct {
	Files   *source.FileSet
	Results []FileResult
	// Timer sums per-file phases plus the load step; nil without Options.Timings.
	Timer *observ.Timer
}

// Failed counts inputs that could not be formatted.
func (b *Batch) Failed() int {
	n := 0
	for i := range b.Results {
		if b.Results[i].Failed() {
			n++
		}
	}
	return n
}

// Changed counts inputs whose formatted text differs from the input.
func (b *Batch) Changed() int {
	n := 0
	for i := range b.Results {
		if b.Results[i].Changed {
			n++
		}
	}
	return n
}

// Diagnostics merges every per-file bag into one sorted bag.
func (b *Batch) Diagnostics() *diag.Bag {
	total := 0
	for i := range b.Results {
		total += b.Results[i].Bag.Len()
	}
	out := diag.NewBag(max(total, 1))
	for i := range b.Results {
		out.Merge(b.Results[i].Bag)
	}
	out.Sort()
	return out
}

type loaded struct {
	path string
	id   source.FileID
	err  error
}

// Run loads every input and formats them in parallel. The returned error is
// only a cancellation error; per-file failures are in the results.
func Run(ctx context.Context, inputs []string, opts Options) (*Batch, error) {
	if len(inputs) == 0 {
		return nil, ErrNoInputs
	}
	maxDiagnostics := opts.MaxDiagnostics
	if maxDiagnostics <= 0 {
		maxDiagnostics = DefaultMaxDiagnostics
	}

	batch := &Batch{
		Files:   source.NewFileSetWithBase(opts.BaseDir),
		Results: make([]FileResult, len(inputs)),
	}
	if opts.Timings {
		batch.Timer = observ.NewTimer()
	}

	idx := batch.Timer.Begin("load")
	files := loadInputs(batch.Files, inputs, opts)
	batch.Timer.End(idx, "")

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, in := range files {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			// индекс i уникален для горутины, мьютекс не нужен
			batch.Results[i] = formatOne(batch.Files, in, opts, maxDiagnostics)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return batch, err
	}

	for i := range batch.Results {
		batch.Timer.Merge(batch.Results[i].Timer)
	}
	return batch, nil
}

// loadInputs reads inputs sequentially; FileSet is not safe for concurrent
// mutation. A failed load still gets an empty virtual file so diagnostics
// have a path to point at.
func loadInputs(fs *source.FileSet, inputs []string, opts Options) []loaded {
	out := make([]loaded, len(inputs))
	for i, path := range inputs {
		emit(opts.Progress, path, StageLoad, StatusQueued)

		var (
			id  source.FileID
			err error
		)
		if path == StdinArg {
			stdin := opts.Stdin
			if stdin == nil {
				stdin = os.Stdin
			}
			path = StdinName
			id, err = fs.LoadReader(StdinName, stdin)
		} else {
			id, err = fs.Load(path)
		}
		if err != nil {
			log.Debugf("load %s: %v", path, err)
			id = fs.AddVirtual(path, nil)
		}
		out[i] = loaded{path: path, id: id, err: err}
	}
	return out
}

func formatOne(fs *source.FileSet, in loaded, opts Options, maxDiagnostics int) FileResult {
	res := FileResult{
		Path:   in.path,
		FileID: in.id,
		Bag:    diag.NewBag(maxDiagnostics),
	}
	if in.err != nil {
		res.Err = in.err
		reportLoadError(res.Bag, in.id, in.err)
		emit(opts.Progress, in.path, StageLoad, StatusError)
		return res
	}

	emit(opts.Progress, in.path, StageFormat, StatusWorking)
	res.Input = string(fs.Get(in.id).Content)
	if opts.Timings {
		res.Timer = observ.NewTimer()
	}
	if opts.Classify {
		res.Dialect = dialect.Classify(res.Input)
	}

	out, err := jsonfix.FormatWithTimer(res.Input, opts.Config, res.Timer)
	if err != nil {
		res.Err = err
		reportFormatError(res.Bag, fs.Get(in.id), err)
		log.Debugf("format %s: %v", in.path, err)
		emit(opts.Progress, in.path, StageFormat, StatusError)
		return res
	}

	res.Result = out
	res.Output = out.Formatted + "\n"
	res.Changed = res.Output != res.Input
	reportRepairs(res.Bag, in.id, out.Repairs)
	log.Debugf("format %s: changed=%t repairs=%d", in.path, res.Changed, len(out.Repairs))

	status := StatusDone
	if res.Changed {
		status = StatusChanged
	}
	emit(opts.Progress, in.path, StageFormat, status)
	return res
}
