package sql

import (
	"net"
	"net/url"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/syssam/essence/dialect"
)

const mysqlDefaultPort = "3306"

// MySQL implements dialect.Dialect for MySQL and MariaDB.
type MySQL struct{}

var _ dialect.Dialect = MySQL{}

func (MySQL) Name() string         { return dialect.MySQL }
func (MySQL) DriverName() string   { return "mysql" }
func (MySQL) DriverImport() string { return "github.com/go-sql-driver/mysql" }

func (MySQL) Binding() dialect.Binding  { return dialect.Positional }
func (MySQL) Placeholder(string) string { return "?" }
func (MySQL) TextAsBytes() bool         { return true }
func (MySQL) ReportsInsertID() bool     { return true }
func (MySQL) ConditionalCreate() bool   { return true }

// ColumnDef renders "name TYPE PRIMARY KEY AUTO_INCREMENT".
func (MySQL) ColumnDef(c dialect.Column) string {
	return columnDef(c.Name, c.Type, c, "PRIMARY KEY", "AUTO_INCREMENT")
}

// CreateTable renders "CREATE TABLE IF NOT EXISTS table (...)".
func (d MySQL) CreateTable(table string, cols []dialect.Column) string {
	return "CREATE TABLE IF NOT EXISTS " + table + " (" + columnDefs(d, cols) + ")"
}

// TableExistsQuery is unused: CreateTable is conditional.
func (MySQL) TableExistsQuery(string) string { return "" }

func (MySQL) SelectAll(table string) string {
	return "SELECT * FROM " + table
}

func (MySQL) SelectByID(table string) string {
	return "SELECT * FROM " + table + " WHERE id = ?"
}

func (MySQL) SelectOneBy(table, column string) string {
	return "SELECT * FROM " + table + " WHERE " + column + " = ? LIMIT 1"
}

func (d MySQL) Insert(table string, cols []string) string {
	return insert(d, table, cols)
}

// Conn translates a mysql:// URL into a go-sql-driver DSN with parseTime
// enabled. Input that already is a DSN is normalized; anything else is
// passed through untouched.
func (MySQL) Conn(raw string) dialect.Conn {
	return dialect.Conn{DSN: mysqlDSN(raw)}
}

func mysqlDSN(raw string) string {
	if raw == "" {
		return ""
	}
	if u, err := url.Parse(raw); err == nil && u.Scheme == "mysql" {
		cfg := mysql.NewConfig()
		cfg.User = u.User.Username()
		cfg.Passwd, _ = u.User.Password()
		cfg.Net = "tcp"
		host, port := u.Hostname(), u.Port()
		if host == "" {
			host = "localhost"
		}
		if port == "" {
			port = mysqlDefaultPort
		}
		cfg.Addr = net.JoinHostPort(host, port)
		cfg.DBName = strings.TrimPrefix(u.Path, "/")
		cfg.ParseTime = true
		for k, v := range u.Query() {
			if cfg.Params == nil {
				cfg.Params = make(map[string]string)
			}
			cfg.Params[k] = v[0]
		}
		return cfg.FormatDSN()
	}
	if cfg, err := mysql.ParseDSN(raw); err == nil {
		cfg.ParseTime = true
		return cfg.FormatDSN()
	}
	return raw
}
