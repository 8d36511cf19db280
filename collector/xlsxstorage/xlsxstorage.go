package xlsxstorage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dszqbsm/wannasurf/report"
	"github.com/xuri/excelize/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type options struct {
	logger *zap.Logger
	dir    string
}

var defaultOptions = options{
	logger: zap.NewNop(),
	dir:    "excel_output",
}

type Option func(opts *options)

func WithLogger(logger *zap.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

func WithDir(dir string) Option {
	return func(opts *options) {
		opts.dir = dir
	}
}

// 每个工作簿写成一个xlsx文件，每张报表一个工作表
type XLSXStore struct {
	options
}

func New(opts ...Option) *XLSXStore {
	options := defaultOptions
	for _, opt := range opts {
		opt(&options)
	}
	return &XLSXStore{options: options}
}

/*
输入工作簿，在输出目录下生成<工作簿名>.xlsx

表头加粗，多行文本的单元格自动换行
*/
func (s *XLSXStore) SaveWorkbook(wb *report.Workbook) (err error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	f := excelize.NewFile()
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	bodyStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return err
	}

	first := f.GetSheetName(0)
	for i, t := range wb.Sheets {
		if i == 0 {
			err = f.SetSheetName(first, t.Name)
		} else {
			_, err = f.NewSheet(t.Name)
		}
		if err != nil {
			return fmt.Errorf("sheet %s: %w", t.Name, err)
		}
		if err := writeSheet(f, t, headerStyle, bodyStyle); err != nil {
			return fmt.Errorf("sheet %s: %w", t.Name, err)
		}
	}

	path := filepath.Join(s.dir, wb.Name+".xlsx")
	if err := f.SaveAs(path); err != nil {
		return err
	}
	s.logger.Info("workbook saved", zap.String("path", path), zap.Int("sheets", len(wb.Sheets)))
	return nil
}

func writeSheet(f *excelize.File, t *report.Table, headerStyle, bodyStyle int) error {
	row := 1
	width := 0
	write := func(values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		line := make([]interface{}, len(values))
		for i, v := range values {
			line[i] = v
		}
		if len(values) > width {
			width = len(values)
		}
		row++
		return f.SetSheetRow(t.Name, cell, &line)
	}

	for _, h := range t.Header {
		if err := write(h); err != nil {
			return err
		}
	}
	headerRows := row - 1
	for _, r := range t.Rows {
		if err := write(r); err != nil {
			return err
		}
	}
	if width == 0 {
		return nil
	}

	if headerRows > 0 {
		end, _ := excelize.CoordinatesToCellName(width, headerRows)
		if err := f.SetCellStyle(t.Name, "A1", end, headerStyle); err != nil {
			return err
		}
	}
	if len(t.Rows) > 0 {
		start, _ := excelize.CoordinatesToCellName(1, headerRows+1)
		end, _ := excelize.CoordinatesToCellName(width, row-1)
		if err := f.SetCellStyle(t.Name, start, end, bodyStyle); err != nil {
			return err
		}
	}
	return nil
}
