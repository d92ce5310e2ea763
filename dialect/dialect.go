package dialect

// Dialect names as written in a db type directive.
const (
	MySQL = "mysql"
	MSSQL = "mssql"
)

// Names lists the supported dialects.
var Names = []string{MySQL, MSSQL}

// Binding is a statement parameter style.
type Binding int

const (
	// Positional binds "?" markers by argument order.
	Positional Binding = iota
	// Named binds "@name" markers with sql.Named arguments.
	Named
)

// Column describes one column of a CREATE TABLE statement.
type Column struct {
	Name       string
	Type       string
	PrimaryKey bool
	Identity   bool
}

// Conn holds the connection settings derived from a connect URL.
// DSN is always set; the remaining fields are filled by dialects that
// assemble the data source name at runtime.
type Conn struct {
	DSN      string
	User     string
	Password string
	Host     string
	Port     string
	Database string
}

// Dialect captures everything generated code and the migration runner
// need to know about a database. Generators branch on these methods
// instead of on the dialect name.
type Dialect interface {
	// Name returns MySQL or MSSQL.
	Name() string
	// DriverName returns the database/sql driver name.
	DriverName() string
	// DriverImport returns the import path registering the driver.
	DriverImport() string

	// Binding returns the parameter marker style.
	Binding() Binding
	// Placeholder returns the marker for the named parameter.
	Placeholder(name string) string

	// TextAsBytes reports whether text columns scan as []byte and must
	// be converted to strings when rows are unwrapped.
	TextAsBytes() bool
	// ReportsInsertID reports whether sql.Result.LastInsertId works.
	ReportsInsertID() bool

	// ConditionalCreate reports whether CreateTable is a no-op when the
	// table exists. When false, TableExistsQuery must be run first.
	ConditionalCreate() bool
	// CreateTable returns the DDL for table.
	CreateTable(table string, cols []Column) string
	// ColumnDef returns the definition of one column.
	ColumnDef(c Column) string
	// TableExistsQuery returns a query yielding a single count of
	// tables named table. It is empty when ConditionalCreate is true.
	TableExistsQuery(table string) string

	// SelectAll selects every row of table.
	SelectAll(table string) string
	// SelectByID selects the row whose id equals the "id" parameter.
	SelectByID(table string) string
	// SelectOneBy selects at most one row whose column equals the
	// parameter of the same name.
	SelectOneBy(table, column string) string
	// Insert inserts one row binding a parameter per column.
	Insert(table string, cols []string) string

	// Conn derives connection settings from a connect URL. It never
	// fails; unusable input is passed through as the DSN.
	Conn(url string) Conn
}
