package depmapper

// ProjectFile is one input file with its content and declared type
type ProjectFile struct {
	Path    string
	Content string
	Type    string
}

// ExternalDependencies groups third-party packages found in manifest files
type ExternalDependencies struct {
	Production  []string `json:"production"`
	Development []string `json:"development"`
	TotalCount  int      `json:"total_count"`
}

// ModuleDeps is one module with its internal imports, in file order
type ModuleDeps struct {
	Path    string
	Imports []string
}

// MostDependent identifies the module with the most internal imports
type MostDependent struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

// Metrics summarizes the dependency structure
type Metrics struct {
	TotalInternalDependencies int            `json:"total_internal_dependencies"`
	TotalExternalDependencies int            `json:"total_external_dependencies"`
	AvgDependenciesPerModule  float64        `json:"avg_dependencies_per_module"`
	MostDependentModule       *MostDependent `json:"most_dependent_module"`
	CouplingLevel             string         `json:"coupling_level"`
}

// DependencyReport is the full result of the dependency mapping
type DependencyReport struct {
	ExternalDependencies ExternalDependencies `json:"external_dependencies"`
	InternalDependencies map[string][]string  `json:"internal_dependencies"`
	CircularDependencies [][]string           `json:"circular_dependencies"`
	Metrics              Metrics              `json:"metrics"`
	DependencyGraph      string               `json:"dependency_graph"`
	Recommendations      []string             `json:"recommendations"`
}
