// Package sql implements the gen.DialectGenerator rendering a gin service
// on top of database/sql.
//
// Generated code structure:
//
//	{output}/
//	├── go.mod
//	├── app.go          # main: env, db init, middlewares, mount, listen
//	├── db/
//	│   └── db.go       # connection, readiness gate, migrations
//	├── auth/
//	│   └── auth.go     # bearer token middleware and signing
//	└── routes/
//	    ├── index.go    # Mount
//	    ├── auth.go     # /auth/register and /auth/login
//	    └── {group}.go  # one file per route group
//
// db, auth and routes/auth.go are only generated when the source selects
// a database or jwt authentication.
package sql
