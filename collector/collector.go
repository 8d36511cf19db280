package collector

import (
	"github.com/dszqbsm/wannasurf/report"
	"go.uber.org/multierr"
)

// 平铺表的存储接口
type Storage interface {
	Save(tables ...*report.Table) error
}

// 工作簿的存储接口
type WorkbookStorage interface {
	SaveWorkbook(wb *report.Workbook) error
}

// 带缓存的存储在导出结束时需要刷新
type Flusher interface {
	Flush() error
}

/*
输入报表结果和各个存储，将平铺表写入每个Storage，将工作簿写入每个WorkbookStorage

某个存储失败不会影响其他存储，全部错误合并后返回
*/
func Export(res *report.Result, tables []Storage, books []WorkbookStorage) error {
	var err error
	for _, s := range tables {
		err = multierr.Append(err, s.Save(res.Flat...))
		if f, ok := s.(Flusher); ok {
			err = multierr.Append(err, f.Flush())
		}
	}
	for _, s := range books {
		for _, wb := range res.Workbooks {
			err = multierr.Append(err, s.SaveWorkbook(wb))
		}
	}
	return err
}
