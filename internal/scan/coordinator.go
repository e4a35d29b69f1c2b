package scan

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"movie-catalog/internal/assets"
	"movie-catalog/internal/catalog"
	"movie-catalog/internal/logging"
	"movie-catalog/internal/mediatypes"
	"movie-catalog/internal/metrics"
	"movie-catalog/internal/resolver"
	"movie-catalog/internal/scanner"
	"movie-catalog/internal/workers"
)

// ErrScanInProgress is returned by Scan when another scan is running.
var ErrScanInProgress = errors.New("a scan is already in progress")

// Config configures the coordinator's worker pool.
type Config struct {
	// Workers is the size of the worker pool. Every outstanding lookup or
	// image request belongs to exactly one worker, so this bound is also
	// the cap on concurrent requests to the external services.
	Workers int
	// QueueSize is the work channel buffer. Items beyond it are handed off
	// to a goroutine instead of blocking the enqueueing worker.
	QueueSize int
}

// DefaultConfig sizes the pool for I/O-bound work, capped at 8 workers.
func DefaultConfig() Config {
	return Config{
		Workers:   workers.ForIO(8),
		QueueSize: 256,
	}
}

// Progress is a snapshot of the current (or last) scan's counters. The
// timestamps are pointers so they marshal as absent, not as the zero time,
// before the first scan.
type Progress struct {
	Scanning           bool       `json:"scanning"`
	CandidatesFound    int64      `json:"candidatesFound"`
	Resolved           int64      `json:"resolved"`
	NotFound           int64      `json:"notFound"`
	DirectoriesSkipped int64      `json:"directoriesSkipped"`
	StartedAt          *time.Time `json:"startedAt,omitempty"`
	FinishedAt         *time.Time `json:"finishedAt,omitempty"`
}

// Coordinator drives candidate titles through resolve, fetch, and insert.
type Coordinator struct {
	resolver *resolver.Resolver
	fetcher  *assets.Fetcher
	catalog  *catalog.Catalog
	config   Config

	scanMu     sync.Mutex
	isScanning bool
	startedAt  time.Time
	finishedAt time.Time

	candidatesFound    atomic.Int64
	resolved           atomic.Int64
	notFound           atomic.Int64
	directoriesSkipped atomic.Int64
}

// workItem is one unit of pool work: either a directory to list or a
// candidate title to resolve. Exactly one of the two is set.
type workItem struct {
	dir   string
	title *mediatypes.CandidateTitle
}

// New creates a Coordinator over the given pipeline stages.
func New(res *resolver.Resolver, fetcher *assets.Fetcher, cat *catalog.Catalog, config Config) *Coordinator {
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.QueueSize < 1 {
		config.QueueSize = 1
	}
	return &Coordinator{
		resolver: res,
		fetcher:  fetcher,
		catalog:  cat,
		config:   config,
	}
}

// Scan walks root with the worker pool and catalogs every resolvable title.
// It returns when all dispatched work has finished. Only one scan runs at a
// time; a second call while one is active returns ErrScanInProgress.
func (co *Coordinator) Scan(ctx context.Context, root string) error {
	if err := co.begin(); err != nil {
		return err
	}
	return co.run(ctx, root)
}

// StartScan claims the scan slot synchronously and runs the scan in the
// background. Callers get ErrScanInProgress immediately when another scan
// holds the slot, so two concurrent triggers cannot both report success.
func (co *Coordinator) StartScan(ctx context.Context, root string) error {
	if err := co.begin(); err != nil {
		return err
	}
	go func() {
		if err := co.run(ctx, root); err != nil {
			logging.Error("Background scan failed: %v", err)
		}
	}()
	return nil
}

// begin claims the single scan slot and resets the counters.
func (co *Coordinator) begin() error {
	co.scanMu.Lock()
	if co.isScanning {
		co.scanMu.Unlock()
		return ErrScanInProgress
	}
	co.isScanning = true
	co.startedAt = time.Now()
	co.finishedAt = time.Time{}
	co.scanMu.Unlock()

	co.candidatesFound.Store(0)
	co.resolved.Store(0)
	co.notFound.Store(0)
	co.directoriesSkipped.Store(0)
	return nil
}

// run executes a scan whose slot was already claimed by begin.
func (co *Coordinator) run(ctx context.Context, root string) error {
	metrics.ScansTotal.Inc()
	metrics.ScanWorkers.Set(float64(co.config.Workers))
	logging.Info("Starting scan of %s with %d workers", root, co.config.Workers)

	pending := make(chan workItem, co.config.QueueSize)
	var outstanding sync.WaitGroup

	// enqueue never blocks a worker: when the buffer is full the item is
	// handed to a goroutine. outstanding tracks items, not goroutines, so
	// the closer below fires only when the whole tree has been processed.
	enqueue := func(item workItem) {
		outstanding.Add(1)
		select {
		case pending <- item:
		default:
			go func() { pending <- item }()
		}
	}

	var wg sync.WaitGroup
	for i := 0; i < co.config.Workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logging.Debug("Scan worker %d started", id)
			for item := range pending {
				co.processItem(ctx, item, enqueue)
				outstanding.Done()
			}
			logging.Debug("Scan worker %d finished", id)
		}(i)
	}

	enqueue(workItem{dir: root})

	outstanding.Wait()
	close(pending)
	wg.Wait()

	co.scanMu.Lock()
	co.isScanning = false
	co.finishedAt = time.Now()
	duration := co.finishedAt.Sub(co.startedAt)
	co.scanMu.Unlock()

	logging.Info("Scan complete in %v: %d candidates, %d cataloged, %d not found, %d directories skipped",
		duration,
		co.candidatesFound.Load(),
		co.resolved.Load(),
		co.notFound.Load(),
		co.directoriesSkipped.Load())

	return ctx.Err()
}

// AddManual resolves a single user-entered title synchronously and catalogs
// it. It returns resolver.ErrNotFound when the title has no match, so the
// caller can tell the user instead of failing silently.
func (co *Coordinator) AddManual(ctx context.Context, title string) (*catalog.Entry, error) {
	movie, err := co.resolver.Resolve(ctx, title)
	if err != nil {
		return nil, err
	}

	images := co.fetcher.Fetch(ctx, movie)
	entry := catalog.NewEntry(movie, images, "")
	index := co.catalog.Insert(entry)
	logging.Info("Added %q at position %d", entry.Title(), index)
	return entry, nil
}

// IsScanning reports whether a scan is currently running.
func (co *Coordinator) IsScanning() bool {
	co.scanMu.Lock()
	defer co.scanMu.Unlock()
	return co.isScanning
}

// Progress returns a snapshot of the scan counters.
func (co *Coordinator) Progress() Progress {
	co.scanMu.Lock()
	defer co.scanMu.Unlock()
	return Progress{
		Scanning:           co.isScanning,
		CandidatesFound:    co.candidatesFound.Load(),
		Resolved:           co.resolved.Load(),
		NotFound:           co.notFound.Load(),
		DirectoriesSkipped: co.directoriesSkipped.Load(),
		StartedAt:          timeOrNil(co.startedAt),
		FinishedAt:         timeOrNil(co.finishedAt),
	}
}

func timeOrNil(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// processItem handles one pool work item. Dispatch of new work stops once
// ctx is cancelled; the item itself still drains so outstanding reaches
// zero.
func (co *Coordinator) processItem(ctx context.Context, item workItem, enqueue func(workItem)) {
	if ctx.Err() != nil {
		return
	}

	if item.dir != "" {
		co.processDirectory(ctx, item.dir, enqueue)
		return
	}
	co.processTitle(ctx, *item.title)
}

func (co *Coordinator) processDirectory(ctx context.Context, dir string, enqueue func(workItem)) {
	listing, err := scanner.ListDirectory(dir)
	if err != nil {
		logging.Warn("Skipping unreadable directory: %v", err)
		co.directoriesSkipped.Add(1)
		metrics.ScanDirectoriesSkipped.Inc()
		return
	}

	if ctx.Err() != nil {
		return
	}

	for _, subdir := range listing.Subdirs {
		enqueue(workItem{dir: subdir})
	}
	for i := range listing.Titles {
		co.candidatesFound.Add(1)
		metrics.ScanCandidatesTotal.Inc()
		enqueue(workItem{title: &listing.Titles[i]})
	}
}

func (co *Coordinator) processTitle(ctx context.Context, ct mediatypes.CandidateTitle) {
	movie, err := co.resolver.Resolve(ctx, ct.Title)
	if err != nil {
		// Recoverable per-title outcome; bulk scans log and move on.
		logging.Info("No match for %q (%s)", ct.Title, ct.Path)
		co.notFound.Add(1)
		return
	}

	images := co.fetcher.Fetch(ctx, movie)
	entry := catalog.NewEntry(movie, images, ct.Path)
	index := co.catalog.Insert(entry)
	co.resolved.Add(1)
	logging.Debug("Cataloged %q at position %d (%d images)", entry.Title(), index, len(images))
}
