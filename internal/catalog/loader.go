package catalog

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/spigell/job-matcher/internal/logger"
)

// LoaderConfig configures a memoized catalog loader.
type LoaderConfig struct {
	Path             string
	WelfareWords     []string
	FallbackToSample bool
}

// Loader builds the catalog from a file and memoizes it by the file checksum.
// The cached catalog is rebuilt only when the file content changes or after Invalidate.
type Loader struct {
	path       string
	fallback   bool
	normalizer *Normalizer
	logger     *zap.Logger
	readFile   func(string) ([]byte, error)

	mu     sync.RWMutex
	cached *Catalog
	group  singleflight.Group
}

// NewLoader creates a loader for cfg.
func NewLoader(cfg LoaderConfig, log *zap.Logger) *Loader {
	log = logger.WithCatalog(log, cfg.Path)

	return &Loader{
		path:       cfg.Path,
		fallback:   cfg.FallbackToSample,
		normalizer: NewNormalizer(cfg.WelfareWords, log),
		logger:     log,
		readFile:   os.ReadFile,
	}
}

// Load returns the catalog for the current file content. A source that cannot be read
// or parsed degrades to the sample catalog (when enabled) or an empty catalog; only
// context cancellation is returned as an error.
func (l *Loader) Load(ctx context.Context) (*Catalog, error) {
	data, err := l.readFile(l.path)
	if err != nil {
		return l.degraded(fmt.Errorf("read catalog: %w", err)), nil
	}

	sum := xxhash.Sum64(data)

	l.mu.RLock()
	cached := l.cached
	l.mu.RUnlock()
	if cached != nil && cached.checksum == sum {
		l.logger.Debug("catalog cache hit", zap.Uint64("checksum", sum))
		return cached, nil
	}

	ch := l.group.DoChan(strconv.FormatUint(sum, 16), func() (any, error) {
		return l.build(data, sum)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return l.degraded(res.Err), nil
		}
		return res.Val.(*Catalog), nil
	}
}

// Invalidate drops the memoized catalog.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	l.cached = nil
	l.mu.Unlock()
}

func (l *Loader) build(data []byte, sum uint64) (*Catalog, error) {
	format, err := FormatFromPath(l.path)
	if err != nil {
		return nil, err
	}

	rows, err := ParseRows(data, format)
	if err != nil {
		return nil, err
	}

	cat := Build(rows, l.normalizer, l.logger)
	cat.checksum = sum

	l.mu.Lock()
	l.cached = cat
	l.mu.Unlock()

	l.logger.Info("catalog loaded",
		zap.Int("jobs", cat.Len()),
		zap.Int("issues", len(cat.Issues())),
		zap.Uint64("checksum", sum),
	)
	return cat, nil
}

func (l *Loader) degraded(err error) *Catalog {
	if l.fallback {
		l.logger.Warn("loading catalog failed, using sample catalog", zap.Error(err))
		return Sample()
	}
	l.logger.Error("loading catalog failed, using empty catalog", zap.Error(err))
	return New(nil)
}
