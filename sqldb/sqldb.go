package sqldb

// 定义了用于与MySQL数据库进行交互的功能，包括创建表、插入数据

import (
	"database/sql"
	"errors"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

// 为数据库操作统一了规范，包括创建表、插入数据
type DBer interface {
	CreateTable(t TableData) error
	DropTable(t TableData) error
	Insert(t TableData) error
}

// sql数据库实例
type Sqldb struct {
	options
	db *sql.DB
}

// 打开一个MySQL数据库连接，设置最大连接数和最大空闲连接数，通过ping方法测试连接是否正常
func (d *Sqldb) OpenDB() error {
	db, err := sql.Open("mysql", d.sqlUrl)
	if err != nil {
		return err
	}
	db.SetMaxOpenConns(d.maxConns)
	db.SetMaxIdleConns(d.maxConns)
	if err = db.Ping(); err != nil {
		db.Close()
		return err
	}
	d.db = db
	return nil
}

func (d *Sqldb) Close() error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}

// 根据TableData中的列信息创建数据库表，表已存在时不做任何事
func (d *Sqldb) CreateTable(t TableData) error {
	sql, err := createTableSQL(t)
	if err != nil {
		return err
	}
	d.logger.Debug("create table", zap.String("sql", sql))

	_, err = d.db.Exec(sql)
	return err
}

// 根据TableData中的数据删除数据库表
func (d *Sqldb) DropTable(t TableData) error {
	if t.TableName == "" {
		return errors.New("table name can not be empty")
	}

	sql := `DROP TABLE IF EXISTS ` + quote(t.TableName)

	d.logger.Debug("drop table", zap.String("sql", sql))

	_, err := d.db.Exec(sql)

	return err
}

// 构造批量插入语句并执行，形如INSERT INTO t(a,b) VALUES (?,?),(?,?);，问号数量取决于列数与数据条数
func (d *Sqldb) Insert(t TableData) error {
	sql, err := insertSQL(t)
	if err != nil {
		return err
	}
	d.logger.Debug("insert table", zap.String("sql", sql), zap.Int("count", t.DataCount))
	_, err = d.db.Exec(sql, t.Args...)
	return err
}

func createTableSQL(t TableData) (string, error) {
	if len(t.ColumnNames) == 0 {
		return "", errors.New("column can not be empty")
	}
	var b strings.Builder
	b.WriteString(`CREATE TABLE IF NOT EXISTS ` + quote(t.TableName) + " (")
	if t.AutoKey {
		b.WriteString("`id` INT(12) NOT NULL PRIMARY KEY AUTO_INCREMENT,")
	}
	for i, c := range t.ColumnNames {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(quote(c.Title) + ` ` + c.Type)
	}
	b.WriteString(`) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`)
	return b.String(), nil
}

func insertSQL(t TableData) (string, error) {
	if len(t.ColumnNames) == 0 {
		return "", errors.New("empty column")
	}
	if t.DataCount == 0 || len(t.Args) != t.DataCount*len(t.ColumnNames) {
		return "", errors.New("args do not match columns")
	}
	titles := make([]string, 0, len(t.ColumnNames))
	for _, v := range t.ColumnNames {
		titles = append(titles, quote(v.Title))
	}
	sql := `INSERT INTO ` + quote(t.TableName) + `(` + strings.Join(titles, ",") + `) VALUES `

	blank := ",(" + strings.Repeat(",?", len(t.ColumnNames))[1:] + ")"
	sql += strings.Repeat(blank, t.DataCount)[1:] + `;`
	return sql, nil
}

func quote(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// 表示数据库表中的一个字段，包含字段名和字段类型
type Field struct {
	Title string
	Type  string
}

// 表示要操作的数据库表的数据
type TableData struct {
	TableName   string
	ColumnNames []Field       // 标题字段
	Args        []interface{} // 数据
	DataCount   int           // 插入数据的数量
	AutoKey     bool
}

// 创建一个新的Sqldb实例，并根据传入的选项进行配置
func New(opts ...Option) (*Sqldb, error) {
	options := defaultOptions
	for _, opt := range opts {
		opt(&options)
	}
	d := &Sqldb{}
	d.options = options
	if err := d.OpenDB(); err != nil {
		return nil, err
	}
	return d, nil
}
