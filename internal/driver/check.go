package driver

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"linelimit/internal/diag"
	"linelimit/internal/frontend"
	"linelimit/internal/observ"
	"linelimit/internal/rules"
	"linelimit/internal/settings"
	"linelimit/internal/source"
	"linelimit/internal/trace"
)

// Options configures a check run.
type Options struct {
	Rules           []rules.Policy
	Extensions      []string // defaults to every front-end extension
	Exclude         []string
	AdditionalFiles []string // settings candidates, in priority order
	Jobs            int      // <= 0: GOMAXPROCS
	MaxDiagnostics  int      // per file, <= 0: unlimited
	Cache           *DiskCache
	Progress        ProgressSink
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path     string
	FileID   source.FileID
	Bag      *diag.Bag
	Cached   bool
	Settings settings.Config // last resolved configuration, zero if no rule needs one
}

// Result of a check run. Files keep the listing order.
type Result struct {
	FileSet *source.FileSet
	Files   []FileResult
	Timer   *observ.Timer
}

// Diagnostics returns every diagnostic, file by file.
func (r *Result) Diagnostics() []*diag.Diagnostic {
	var out []*diag.Diagnostic
	for _, f := range r.Files {
		if f.Bag != nil {
			out = append(out, f.Bag.Items()...)
		}
	}
	return out
}

// HasErrors reports whether any file produced an error diagnostic.
func (r *Result) HasErrors() bool {
	for _, f := range r.Files {
		if f.Bag != nil && f.Bag.HasErrors() {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any file produced a warning or worse.
func (r *Result) HasWarnings() bool {
	for _, f := range r.Files {
		if f.Bag != nil && f.Bag.HasWarnings() {
			return true
		}
	}
	return false
}

// Check lists the files under target and runs every configured rule on each
// of them in parallel. Per-file failures (unreadable file, syntax errors)
// become diagnostics; only cancellation and invalid settings candidates
// abort the run.
func Check(ctx context.Context, target string, opts Options) (*Result, error) {
	if len(opts.Rules) == 0 {
		return nil, fmt.Errorf("no rules selected")
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = frontend.KnownExtensions()
	}

	tracer := trace.FromContext(ctx)
	run := trace.Begin(tracer, trace.ScopeDriver, "check", 0)
	defer run.End("")

	timer := observ.NewTimer()
	res := &Result{Timer: timer}

	idx := timer.Begin("list")
	files, err := ListFiles(target, opts.Extensions, opts.Exclude)
	timer.End(idx, strconv.Itoa(len(files))+" files")
	if err != nil {
		return nil, err
	}
	run.WithExtra("files", strconv.Itoa(len(files)))

	res.FileSet = source.NewFileSetWithBase(baseDir(target))
	if len(files) == 0 {
		return res, nil
	}
	emitQueued(opts.Progress, files)

	// Предзагружаем все файлы последовательно: FileID детерминированы
	idx = timer.Begin("load")
	loadSpan := trace.Begin(tracer, trace.ScopePass, "load", run.ID())
	fileIDs := make([]source.FileID, len(files))
	loadErrors := make(map[int]error)
	for i, path := range files {
		id, err := res.FileSet.Load(path)
		if err != nil {
			loadErrors[i] = err
			// пустой виртуальный файл, чтобы диагностике было к чему привязаться
			id = res.FileSet.Add(path, nil, source.FileVirtual)
		}
		fileIDs[i] = id
	}
	loadSpan.End("")
	timer.End(idx, "")

	candidates := Candidates(opts.AdditionalFiles...)
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	idx = timer.Begin("scan")
	scanSpan := trace.Begin(tracer, trace.ScopePass, "scan", run.ID())
	res.Files = make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			w := worker{
				opts:       &opts,
				fs:         res.FileSet,
				candidates: candidates,
				tracer:     tracer,
				parent:     scanSpan.ID(),
			}
			fr, err := w.checkFile(gctx, path, fileIDs[i], loadErrors[i])
			// индекс i уникален для горутины, мьютекс не нужен
			res.Files[i] = fr
			return err
		})
	}
	err = g.Wait()
	scanSpan.End("")
	timer.End(idx, "")
	if err != nil {
		return res, err
	}
	return res, nil
}

func baseDir(target string) string {
	abs, err := filepath.Abs(target)
	if err != nil {
		return target
	}
	if ok, _ := isDir(abs); ok {
		return abs
	}
	return filepath.Dir(abs)
}

type worker struct {
	opts       *Options
	fs         *source.FileSet
	candidates []settings.AdditionalText
	tracer     trace.Tracer
	parent     uint64
}

func (w *worker) checkFile(ctx context.Context, path string, id source.FileID, loadErr error) (FileResult, error) {
	start := time.Now()
	sink := w.opts.Progress
	bag := diag.NewBag(w.opts.MaxDiagnostics)
	fr := FileResult{Path: path, FileID: id, Bag: bag}
	file := w.fs.Get(id)

	if loadErr != nil {
		diag.ReportError(diag.BagReporter{Bag: bag}, diag.IOLoadFileError,
			source.Span{File: id}, "failed to load file: "+loadErr.Error()).Emit()
		emit(sink, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr, Elapsed: time.Since(start)})
		return fr, nil
	}

	fe, ok := frontend.For(path)
	if !ok {
		emit(sink, Event{File: path, Stage: StageParse, Status: StatusError, Err: ErrUnsupportedFile})
		return fr, nil
	}

	span := trace.Begin(w.tracer, trace.ScopeFile, "file:"+file.FormatPath("relative", w.fs.BaseDir()), w.parent)
	defer span.End("")

	var key Digest
	if w.opts.Cache != nil {
		var err error
		if key, err = cacheKey(ctx, file, w.opts.Rules, w.candidates); err != nil {
			return fr, err
		}
		var payload DiskPayload
		if hit, err := w.opts.Cache.Get(key, &payload); err == nil && hit {
			fromPayload(&payload, id, bag)
			fr.Cached = true
			span.WithExtra("cache", "hit")
			emit(sink, Event{File: path, Stage: StageScan, Status: StatusDone, Elapsed: time.Since(start)})
			return fr, nil
		}
	}

	emit(sink, Event{File: path, Stage: StageParse, Status: StatusWorking})
	reporter := diag.BagReporter{Bag: bag}
	ix, err := fe.Parse(ctx, file, reporter)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fr, ctxErr
		}
		diag.ReportError(reporter, diag.SynParseError, source.Span{File: id}, err.Error()).Emit()
		emit(sink, Event{File: path, Stage: StageParse, Status: StatusError, Err: err, Elapsed: time.Since(start)})
		return fr, nil
	}

	emit(sink, Event{File: path, Stage: StageScan, Status: StatusWorking})
	unit := rules.Unit{File: file, Tree: ix}
	for _, p := range w.opts.Rules {
		cfg, err := rules.Run(ctx, unit, w.candidates, p, reporter)
		if err != nil {
			emit(sink, Event{File: path, Stage: StageScan, Status: StatusError, Err: err, Elapsed: time.Since(start)})
			return fr, fmt.Errorf("%s: %s: %w", path, p.ID(), err)
		}
		if p.NeedsSettings() {
			fr.Settings = cfg
			trace.Point(w.tracer, trace.ScopeFile, "settings", span.ID(), map[string]string{
				"rule":   p.ID(),
				"max":    strconv.Itoa(cfg.MaximumLineLength),
				"source": cfg.Source,
				"reason": cfg.Reason,
			})
		}
	}
	bag.Sort()

	if w.opts.Cache != nil {
		// ошибки кэша не фатальны
		_ = w.opts.Cache.Put(key, toPayload(path, bag.Items()))
	}
	span.WithExtra("diagnostics", strconv.Itoa(bag.Len()))
	emit(sink, Event{File: path, Stage: StageScan, Status: StatusDone, Elapsed: time.Since(start)})
	return fr, nil
}
