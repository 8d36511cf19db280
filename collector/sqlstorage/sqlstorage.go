package sqlstorage

// 将平铺的浪点表分批写入MySQL，所有叶子节点的浪点写进同一张表，用continent和zone两列区分来源

import (
	"io"

	"github.com/dszqbsm/wannasurf/parse/wannasurf"
	"github.com/dszqbsm/wannasurf/report"
	"github.com/dszqbsm/wannasurf/sqldb"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type SqlStore struct {
	dataDocker  [][]interface{} // 缓存待插入数据库的行
	columnNames []sqldb.Field   // 表的列信息
	db          sqldb.DBer      // 数据库操作接口
	created     bool            // 表是否已经创建
	closer      io.Closer       // 自行建立的连接，WithDB注入的连接由调用方关闭
	options
}

// SqlStore的构造函数，接受一系列配置选项，返回一个SqlStore实例
func New(opts ...Option) (*SqlStore, error) {
	options := defaultOptions
	for _, opt := range opts {
		opt(&options)
	}
	if options.BatchCount < 1 {
		options.BatchCount = 1
	}
	s := &SqlStore{options: options, columnNames: columns()}
	s.db = options.db
	if s.db == nil {
		db, err := sqldb.New(
			sqldb.WithConnURL(s.sqlUrl),
			sqldb.WithLogger(s.logger),
			sqldb.WithMaxConns(s.maxConns),
		)
		if err != nil {
			return nil, err
		}
		s.db = db
		s.closer = db
	}
	return s, nil
}

// 关闭New中建立的数据库连接
func (s *SqlStore) Close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}

// 按浪点表的列顺序生成列信息，前两列为所属大洲与叶子节点名称
func columns() []sqldb.Field {
	names := []sqldb.Field{
		{Title: "continent", Type: "VARCHAR(255)"},
		{Title: "zone", Type: "VARCHAR(255)"},
		{Title: "surf_spot_name", Type: "VARCHAR(255)"},
	}
	for _, f := range wannasurf.Fields() {
		names = append(names, sqldb.Field{Title: f.String(), Type: "MEDIUMTEXT"})
	}
	return names
}

// 缓存每张表中的行，缓存达到BatchCount时写入数据库
func (s *SqlStore) Save(tables ...*report.Table) error {
	if !s.created {
		if s.recreate {
			if err := s.db.DropTable(sqldb.TableData{TableName: s.table}); err != nil {
				s.logger.Error("drop table failed", zap.String("table", s.table), zap.Error(err))
				return err
			}
		}
		err := s.db.CreateTable(sqldb.TableData{
			TableName:   s.table,
			ColumnNames: s.columnNames,
			AutoKey:     true,
		})
		if err != nil {
			s.logger.Error("create table failed", zap.String("table", s.table), zap.Error(err))
			return err
		}
		s.created = true
	}

	var err error
	for _, t := range tables {
		for _, row := range t.Rows {
			if len(s.dataDocker) >= s.BatchCount {
				err = multierr.Append(err, s.Flush())
			}
			s.dataDocker = append(s.dataDocker, s.values(t, row))
		}
	}
	return err
}

func (s *SqlStore) values(t *report.Table, row []string) []interface{} {
	v := make([]interface{}, 0, len(s.columnNames))
	v = append(v, t.Group, t.Owner)
	for i := 0; i < len(s.columnNames)-2; i++ {
		if i < len(row) {
			v = append(v, row[i])
		} else {
			v = append(v, wannasurf.Sentinel)
		}
	}
	return v
}

// 将缓存中的行批量插入数据库，无论成功与否都会清空缓存
func (s *SqlStore) Flush() error {
	if len(s.dataDocker) == 0 {
		return nil
	}
	defer func() {
		s.dataDocker = nil
	}()

	args := make([]interface{}, 0, len(s.dataDocker)*len(s.columnNames))
	for _, row := range s.dataDocker {
		args = append(args, row...)
	}
	err := s.db.Insert(sqldb.TableData{
		TableName:   s.table,
		ColumnNames: s.columnNames,
		Args:        args,
		DataCount:   len(s.dataDocker),
	})
	if err != nil {
		s.logger.Error("insert data failed", zap.Int("count", len(s.dataDocker)), zap.Error(err))
	}
	return err
}
