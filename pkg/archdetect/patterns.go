package archdetect

// Declarative pattern catalog. The detectors in detector.go consume this
// data; weights and thresholds are calibrated for real-world layouts
// ranging from pragmatic scripts to enterprise codebases.

var simpleModular = PatternConfig{
	Name:        "Simple Modular Structure",
	Description: "Simple, pragmatic modular structure (src, utils, lib)",
	DirWeights: []DirWeight{
		{"src", 0.3},
		{"utils", 0.15},
		{"lib", 0.15},
		{"helpers", 0.1},
		{"config", 0.1},
		{"common", 0.1},
		{"shared", 0.1},
		{"core", 0.15},
	},
	MinDirMatches: 1,
	Threshold:     0.3,
}

var featureBased = PatternConfig{
	Name:        "Feature-Based Architecture",
	Description: "Organization by features/functional modules",
	DirWeights: []DirWeight{
		{"features", 0.5},
		{"modules", 0.5},
		{"packages", 0.4},
		{"apps", 0.4},
	},
	MinDirMatches: 1,
	Threshold:     0.3,
}

var basicLayered = PatternConfig{
	Name:        "Basic Layered Architecture",
	Description: "Separation into basic layers (services, models, routes)",
	DirWeights: []DirWeight{
		{"routes", 0.2},
		{"api", 0.2},
		{"services", 0.25},
		{"models", 0.2},
		{"database", 0.15},
		{"db", 0.15},
		{"middleware", 0.1},
		{"validators", 0.1},
		{"schemas", 0.1},
	},
	FileKeywords:  []string{"service", "model", "route", "controller"},
	MinDirMatches: 2,
	Threshold:     0.3,
}

var frontendStandard = PatternConfig{
	Name:        "Frontend Standard Structure",
	Description: "Standard frontend project structure",
	DirWeights: []DirWeight{
		{"components", 0.3},
		{"pages", 0.25},
		{"views", 0.25},
		{"hooks", 0.15},
		{"styles", 0.1},
		{"assets", 0.1},
		{"public", 0.1},
		{"static", 0.1},
		{"store", 0.15},
		{"redux", 0.15},
		{"context", 0.1},
	},
	FileKeywords:  []string{".jsx", ".tsx", ".vue", ".svelte", "component", ".css", ".scss", ".sass"},
	MinDirMatches: 1,
	Threshold:     0.3,
}

var backendStandard = PatternConfig{
	Name:        "Backend Standard Structure",
	Description: "Standard backend project structure",
	DirWeights: []DirWeight{
		{"controllers", 0.25},
		{"routes", 0.25},
		{"api", 0.2},
		{"models", 0.2},
		{"middleware", 0.15},
		{"database", 0.15},
		{"migrations", 0.1},
		{"seeders", 0.05},
		{"validators", 0.1},
		{"auth", 0.1},
	},
	FileKeywords:  []string{"server", "app.py", "main.py", "index.js", "app.js"},
	MinDirMatches: 2,
	Threshold:     0.3,
}

var mvc = PatternConfig{
	Name:        "MVC (Model-View-Controller)",
	Description: "Clear separation between Model, View and Controller",
	DirWeights: []DirWeight{
		{"models", 0.2},
		{"views", 0.2},
		{"controllers", 0.2},
		{"model", 0.2},
		{"view", 0.2},
		{"controller", 0.2},
	},
	FileKeywords:  []string{"controller", "model", "view"},
	MinDirMatches: 2,
	Threshold:     0.3,
}

var cleanArchitecture = PatternConfig{
	Name:        "Clean Architecture",
	Description: "Layers with unidirectional dependencies",
	DirWeights: []DirWeight{
		{"domain", 0.25},
		{"application", 0.25},
		{"infrastructure", 0.25},
		{"presentation", 0.15},
		{"entities", 0.2},
		{"usecases", 0.25},
		{"use_cases", 0.25},
	},
	FileKeywords:  []string{"interface", "port", "adapter", "gateway", "boundary"},
	MinDirMatches: 3,
	Threshold:     0.3,
}

var ddd = PatternConfig{
	Name:        "Domain-Driven Design (DDD)",
	Description: "Organization by business domains",
	DirWeights: []DirWeight{
		{"domain", 0.3},
		{"entities", 0.2},
		{"valueobjects", 0.2},
		{"value_objects", 0.2},
		{"aggregates", 0.2},
		{"repositories", 0.1},
		{"services", 0.1},
		{"factories", 0.1},
	},
	FileKeywords:  []string{"entity", "valueobject", "aggregate", "domainservice", "specification"},
	MinDirMatches: 3,
	Threshold:     0.3,
}

var hexagonal = PatternConfig{
	Name:        "Hexagonal Architecture (Ports & Adapters)",
	Description: "Ports and adapters architecture",
	DirWeights: []DirWeight{
		{"ports", 0.4},
		{"adapters", 0.4},
		{"inbound", 0.2},
		{"outbound", 0.2},
		{"primary", 0.2},
		{"secondary", 0.2},
	},
	FileKeywords:  []string{"port", "adapter", "inbound", "outbound"},
	MinDirMatches: 2,
	Threshold:     0.3,
}

var monorepo = PatternConfig{
	Name:        "Monorepo Structure",
	Description: "Multiple projects in a single repository",
	DirWeights: []DirWeight{
		{"packages", 0.5},
		{"apps", 0.5},
		{"libs", 0.4},
		{"services", 0.3},
		{"projects", 0.3},
	},
	MinDirMatches: 1,
	Threshold:     0.3,
}

// Patterns without dir weights use specialized detector logic
var microservices = PatternConfig{
	Name:        "Microservices",
	Description: "Independent, decoupled services",
	Threshold:   0.3,
}

var repositoryPattern = PatternConfig{
	Name:         "Repository Pattern",
	Description:  "Abstraction of the data layer",
	FileKeywords: []string{"repository", "irepository", "repository_interface", "repositoryinterface", "base_repository"},
	Threshold:    0.3,
}

var eventDriven = PatternConfig{
	Name:         "Event-Driven Architecture",
	Description:  "Communication via asynchronous events",
	FileKeywords: []string{"event", "handler", "listener", "subscriber", "publisher", "consumer"},
	Threshold:    0.3,
}

var genericPatterns = []PatternConfig{
	simpleModular,
	featureBased,
	basicLayered,
	frontendStandard,
	backendStandard,
	mvc,
	cleanArchitecture,
	ddd,
	hexagonal,
	monorepo,
}

// frameworkIndicator maps a framework name to the substrings that reveal it
type frameworkIndicator struct {
	Name       string
	Indicators []string
}

type frameworkCategory struct {
	Name       string
	Frameworks []frameworkIndicator
}

var frameworkCategories = []frameworkCategory{
	{"frontend", []frameworkIndicator{
		{"Next.js", []string{"next.config", "next-env"}},
		{"Nuxt.js", []string{"nuxt.config"}},
		{"Vue.js", []string{"vue.config", ".vue"}},
		{"Angular", []string{"angular.json"}},
		{"React", []string{".jsx", ".tsx"}},
		{"Svelte", []string{"svelte.config"}},
	}},
	{"backend", []frameworkIndicator{
		{"Express.js", []string{"express"}},
		{"FastAPI", []string{"fastapi"}},
		{"Django", []string{"django", "manage.py"}},
		{"Flask", []string{"flask"}},
		{"NestJS", []string{"nestjs", "nest-cli"}},
		{"Spring Boot", []string{"spring", "application.properties"}},
	}},
	{"database", []frameworkIndicator{
		{"Prisma", []string{"prisma"}},
		{"TypeORM", []string{"typeorm"}},
		{"Sequelize", []string{"sequelize"}},
		{"Mongoose", []string{"mongoose"}},
		{"SQLAlchemy", []string{"sqlalchemy"}},
	}},
	{"testing", []frameworkIndicator{
		{"Jest", []string{"jest.config", "jest"}},
		{"Pytest", []string{"pytest", "pytest.ini"}},
		{"Vitest", []string{"vitest"}},
		{"Cypress", []string{"cypress"}},
	}},
	{"deployment", []frameworkIndicator{
		{"Docker", []string{"docker"}},
		{"Kubernetes", []string{"kubernetes", "k8s"}},
		{"Terraform", []string{"terraform"}},
		{"Vercel", []string{"vercel.json"}},
		{"Netlify", []string{"netlify"}},
	}},
}

// patternRecommendation matches detected pattern names by substring
type patternRecommendation struct {
	Keyword string
	Recs    []string
}

var patternRecommendations = []patternRecommendation{
	{"Simple Modular", []string{
		"✓ Simple, pragmatic structure. Consider adding layers as the project grows.",
	}},
	{"Repository", []string{
		"✓ Repository Pattern detected. Consider adding Unit of Work if not already present.",
	}},
	{"DDD", []string{
		"✓ DDD detected. Make sure bounded contexts are well defined.",
		"✓ Consider using Value Objects for immutable domain concepts.",
	}},
	{"Clean Architecture", []string{
		"✓ Well-structured Clean Architecture. Keep dependencies pointing toward the domain.",
	}},
	{"Microservices", []string{
		"✓ Microservices architecture. Ensure observability and resilience.",
		"✓ Consider implementing circuit breakers and a service mesh.",
	}},
	{"Frontend Standard", []string{
		"✓ Organized frontend structure. Consider adding state management if needed.",
	}},
	{"Backend Standard", []string{
		"✓ Structured backend. Consider adding robust validation and error handling.",
	}},
	{"Feature-Based", []string{
		"✓ Feature-based organization eases scaling. Avoid circular dependencies between features.",
	}},
	{"Event-Driven", []string{
		"✓ Event-driven architecture. Make event handlers idempotent.",
		"✓ Consider dead letter queues for failed events.",
	}},
}
