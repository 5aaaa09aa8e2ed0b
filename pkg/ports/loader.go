package ports

// DefinitionSource provides raw definition files to the rule loader.
// This allows the storage layer (filesystem, memory) to be decoupled from
// parsing and composition.
type DefinitionSource interface {
	// ReadFile returns the raw content of a definition file.
	// Returns an error wrapping fs.ErrNotExist if the file does not exist.
	ReadFile(name string) ([]byte, error)

	// ListFiles returns the names of all definition files, sorted.
	// This is used for introspection (e.g. 'ruleforge validate' without a manifest).
	ListFiles() ([]string, error)
}
