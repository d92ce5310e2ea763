package sql

import (
	"net"
	"net/url"
	"strings"

	"github.com/syssam/essence/dialect"
)

// Defaults applied to missing parts of an MSSQL connect URL.
const (
	MSSQLDefaultHost     = "localhost"
	MSSQLDefaultPort     = "1433"
	MSSQLDefaultDatabase = "master"
)

// MSSQL implements dialect.Dialect for Microsoft SQL Server.
type MSSQL struct{}

var _ dialect.Dialect = MSSQL{}

func (MSSQL) Name() string         { return dialect.MSSQL }
func (MSSQL) DriverName() string   { return "sqlserver" }
func (MSSQL) DriverImport() string { return "github.com/microsoft/go-mssqldb" }

func (MSSQL) Binding() dialect.Binding       { return dialect.Named }
func (MSSQL) Placeholder(name string) string { return "@" + name }
func (MSSQL) TextAsBytes() bool              { return false }
func (MSSQL) ReportsInsertID() bool          { return false }
func (MSSQL) ConditionalCreate() bool        { return false }

// ColumnDef renders "[name] TYPE PRIMARY KEY IDENTITY(1,1)".
func (MSSQL) ColumnDef(c dialect.Column) string {
	return columnDef("["+c.Name+"]", c.Type, c, "PRIMARY KEY", "IDENTITY(1,1)")
}

// CreateTable renders a plain "CREATE TABLE table (...)". Callers check
// TableExistsQuery first.
func (d MSSQL) CreateTable(table string, cols []dialect.Column) string {
	return "CREATE TABLE " + table + " (" + columnDefs(d, cols) + ")"
}

// TableExistsQuery counts catalog entries for table.
func (MSSQL) TableExistsQuery(table string) string {
	return "SELECT COUNT(*) FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_NAME = '" + escapeStringValue(table) + "'"
}

func (MSSQL) SelectAll(table string) string {
	return "SELECT * FROM " + table
}

func (MSSQL) SelectByID(table string) string {
	return "SELECT * FROM " + table + " WHERE id = @id"
}

func (MSSQL) SelectOneBy(table, column string) string {
	return "SELECT TOP 1 * FROM " + table + " WHERE " + column + " = @" + column
}

func (d MSSQL) Insert(table string, cols []string) string {
	return insert(d, table, cols)
}

// Conn splits an mssql:// URL into its parts, filling in localhost,
// port 1433 and the master database when missing. Encryption is
// disabled in the resulting DSN.
func (MSSQL) Conn(raw string) dialect.Conn {
	c := dialect.Conn{
		Host:     MSSQLDefaultHost,
		Port:     MSSQLDefaultPort,
		Database: MSSQLDefaultDatabase,
	}
	if u, err := url.Parse(raw); err == nil && raw != "" {
		c.User = u.User.Username()
		c.Password, _ = u.User.Password()
		if h := u.Hostname(); h != "" {
			c.Host = h
		}
		if p := u.Port(); p != "" {
			c.Port = p
		}
		if db := strings.TrimPrefix(u.Path, "/"); db != "" {
			c.Database = db
		}
	}
	c.DSN = MSSQLDSN(c)
	return c
}

// MSSQLDSN formats a sqlserver:// data source name from c.
func MSSQLDSN(c dialect.Conn) string {
	q := url.Values{}
	q.Set("database", c.Database)
	q.Set("encrypt", "disable")
	u := &url.URL{
		Scheme:   "sqlserver",
		Host:     net.JoinHostPort(c.Host, c.Port),
		RawQuery: q.Encode(),
	}
	if c.User != "" || c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}
	return u.String()
}
