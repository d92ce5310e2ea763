// Package dialect provides the database dialect abstraction for essence.
//
// A Dialect describes the differences between the two supported
// databases that matter to generated code:
//
//   - parameter binding: "?" markers (MySQL) or "@name" markers (MSSQL)
//   - row unwrapping: MySQL reports text columns as []byte
//   - generated ids: only MySQL reports LastInsertId
//   - table creation: MySQL has CREATE TABLE IF NOT EXISTS, MSSQL needs a
//     catalog lookup first
//   - statement text for select all, select by id, select one and insert
//
// # Dialect Constants
//
//	dialect.MySQL = "mysql"
//	dialect.MSSQL = "mssql"
//
// # Usage
//
//	import (
//	    "github.com/syssam/essence/dialect"
//	    "github.com/syssam/essence/dialect/sql"
//	)
//
//	d, err := sql.For(dialect.MySQL)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(d.SelectAll("items")) // SELECT * FROM items
//
// # Sub-packages
//
//   - dialect/sql: MySQL and MSSQL implementations and the migration runner
package dialect
