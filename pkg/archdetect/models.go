package archdetect

// DirWeight is one directory keyword with its confidence contribution
type DirWeight struct {
	Keyword string
	Weight  float64
}

// PatternConfig is the declarative description of one architectural
// pattern. Keyword order is fixed so evidence text is deterministic.
type PatternConfig struct {
	Name          string
	Description   string
	DirWeights    []DirWeight
	FileKeywords  []string
	MinDirMatches int
	Threshold     float64
}

// DetectedPattern is one pattern found in the project structure
type DetectedPattern struct {
	Pattern     string   `json:"pattern"`
	Confidence  float64  `json:"confidence"`
	Evidence    []string `json:"evidence"`
	Description string   `json:"description"`
}

// ArchitectureReport is the full detection result. PrimaryPattern is an
// explicit null when nothing was detected.
type ArchitectureReport struct {
	DetectedPatterns  []DetectedPattern   `json:"detected_patterns"`
	PrimaryPattern    *DetectedPattern    `json:"primary_pattern"`
	SecondaryPatterns []DetectedPattern   `json:"secondary_patterns"`
	ArchitectureType  string              `json:"architecture_type"`
	ComplexityLevel   string              `json:"complexity_level"`
	FrameworkHints    map[string][]string `json:"framework_hints"`
	Recommendations   []string            `json:"recommendations"`
}
