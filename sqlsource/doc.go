// Package sqlsource connects lazy lists to SQL tables through gorm.
//
// Rows and Column page through a query with LIMIT/OFFSET, so a
// lazylist.List only runs the queries its operations need:
//
//	db, err := sqlsource.Open(ctx, sqlsource.Config{DSN: "events.db"}, log)
//	l := lazylist.From(sqlsource.Column(db, "events", "name", "id", "", 50))
//	n, err := l.Len(ctx) // every page
//
// Queries are logged through the structured logger via a gorm logger
// adapter.
package sqlsource
