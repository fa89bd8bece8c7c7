// Package oracle implements type resolution and catalog introspection for
// Oracle Database. Catalog reads go through the all_* dictionary views;
// member columns aggregate server-side with LISTAGG.
package oracle
