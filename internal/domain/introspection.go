package domain

// Schema object kinds as reported by the remote engine's catalog.
const (
	ObjectKindTable = "table"
	ObjectKindView  = "view"
)

// SchemaObject is one entry of a database's schema enumeration.
type SchemaObject struct {
	Name       string
	Kind       string // ObjectKindTable or ObjectKindView
	Definition string // CREATE statement text, may be empty for internal objects
}

// Database is a remote database known to the registry.
type Database struct {
	ID        string
	Name      string
	Version   string
	NumTables *int64
	SizeBytes *int64
}
