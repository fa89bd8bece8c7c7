// Package mssql implements type resolution and catalog introspection for
// Microsoft SQL Server. Catalog reads go through the sys.* views; constraint
// and index member columns aggregate server-side with STRING_AGG.
package mssql
