// Package mysql implements type resolution and catalog introspection for
// MySQL and MariaDB. All catalog reads go through information_schema; an
// empty schema option targets the connection's current database.
package mysql
