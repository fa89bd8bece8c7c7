package mssql

// autoIncrement detects identity columns straight from the catalog flag.
type autoIncrement struct{}

func (autoIncrement) Detect(isIdentity bool) bool {
	return isIdentity
}
