package csvstorage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dszqbsm/wannasurf/report"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type options struct {
	logger *zap.Logger
	dir    string
}

var defaultOptions = options{
	logger: zap.NewNop(),
	dir:    "output_csv",
}

type Option func(opts *options)

func WithLogger(logger *zap.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

// 输出目录，不存在时自动创建
func WithDir(dir string) Option {
	return func(opts *options) {
		opts.dir = dir
	}
}

// 每张平铺表写成一个csv文件
type CSVStore struct {
	options
}

func New(opts ...Option) *CSVStore {
	options := defaultOptions
	for _, opt := range opts {
		opt(&options)
	}
	return &CSVStore{options: options}
}

func (s *CSVStore) Save(tables ...*report.Table) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	var err error
	for _, t := range tables {
		err = multierr.Append(err, s.write(t))
	}
	return err
}

func (s *CSVStore) write(t *report.Table) (err error) {
	path := filepath.Join(s.dir, t.Name+".csv")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	w := csv.NewWriter(f)
	for _, row := range t.Header {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	s.logger.Info("csv saved", zap.String("path", path), zap.Int("rows", len(t.Rows)))
	return nil
}
