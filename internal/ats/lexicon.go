package ats

// Read-only lookup tables shared by every analysis. Nothing here is mutated after
// package init, so concurrent Analyze calls need no locking.

var stopWords = toSet(
	"a", "about", "above", "after", "again", "against", "all", "also", "am", "an", "and",
	"any", "are", "as", "at", "be", "been", "before", "being", "below", "between", "both",
	"but", "by", "can", "could", "did", "do", "does", "doing", "down", "during", "each",
	"etc", "few", "for", "from", "further", "had", "has", "have", "having", "he", "her",
	"here", "hers", "him", "his", "how", "i", "if", "in", "into", "is", "it", "its",
	"itself", "just", "may", "me", "might", "more", "most", "must", "my", "no", "nor",
	"not", "now", "of", "off", "on", "once", "only", "or", "other", "our", "ours", "out",
	"over", "own", "per", "same", "she", "should", "so", "some", "such", "than", "that",
	"the", "their", "theirs", "them", "then", "there", "these", "they", "this", "those",
	"through", "to", "too", "under", "until", "up", "us", "very", "via", "was", "we",
	"were", "what", "when", "where", "which", "while", "who", "whom", "why", "will",
	"with", "within", "would", "you", "your", "yours", "yourself",
)

// fillerWords are frequent in postings but say nothing about the candidate.
var fillerWords = toSet(
	"ability", "able", "apply", "applicant", "applicants", "candidate", "candidates",
	"company", "duties", "environment", "excellent", "experience", "experienced",
	"familiarity", "good", "great", "help", "ideal", "including", "job", "join",
	"knowledge", "like", "looking", "new", "opportunity", "plus", "position", "preferred",
	"qualifications", "related", "required", "requirement", "requirements",
	"responsibilities", "responsibility", "responsible", "role", "seeking", "skill",
	"skills", "strong", "team", "teams", "understanding", "use", "using", "well", "work",
	"working", "year", "years", "least", "minimum", "must-have", "nice-to-have", "bonus",
	"benefits", "salary", "offer", "remote", "hybrid", "onsite", "full-time", "part-time",
	"need", "needs", "want", "wants", "make", "get", "based",
)

// technicalTerms holds normalized hard-skill terms. Multi-word entries are matched
// as contiguous phrases.
var technicalTerms = toSet(
	// languages
	"python", "java", "javascript", "typescript", "go", "golang", "rust", "ruby", "php",
	"cpp", "csharp", "kotlin", "swift", "scala", "r", "matlab", "perl", "bash", "shell",
	"powershell", "sql", "html", "css", "sass", "dart",
	// web and frameworks
	"react", "angular", "vue", "vuejs", "svelte", "nextjs", "nodejs", "express", "django",
	"flask", "fastapi", "spring", "spring boot", "laravel", "rails", "dotnet", "jquery",
	"bootstrap", "tailwind", "graphql", "rest api", "rest", "grpc", "websocket", "redux",
	"webpack", "front-end", "back-end", "frontend", "backend", "full stack", "full-stack",
	"react native", "flutter", "android", "ios",
	// data
	"postgresql", "postgres", "mysql", "sqlite", "mongodb", "redis", "cassandra",
	"dynamodb", "elasticsearch", "oracle", "firebase", "supabase", "kafka", "rabbitmq",
	"spark", "apache spark", "hadoop", "airflow", "snowflake", "bigquery", "tableau",
	"power bi", "excel", "pandas", "numpy", "scikit-learn", "tensorflow", "pytorch",
	"keras", "matplotlib", "machine learning", "deep learning", "data science",
	"data analysis", "data engineering", "artificial intelligence", "nlp", "statistics",
	"computer vision", "etl",
	// infra
	"docker", "kubernetes", "aws", "azure", "gcp", "google cloud", "terraform", "ansible",
	"jenkins", "cicd", "continuous integration", "continuous deployment", "devops", "git",
	"github", "gitlab", "linux", "unix", "nginx", "microservices", "serverless",
	"cloud computing", "networking", "security", "cybersecurity", "prometheus", "grafana",
	// practice
	"agile", "scrum", "kanban", "tdd", "unit testing", "integration testing",
	"test automation", "code review", "version control", "system design", "jest", "cypress",
	"selenium", "jira", "figma", "api", "apis", "oop", "object-oriented", "algorithms",
	"data structures",
	// certifications
	"pmp", "cissp", "comptia", "aws certified", "scrum master", "itil",
)

var softSkills = toSet(
	"leadership", "communication", "teamwork", "collaboration", "collaborative",
	"problem solving", "problem-solving", "critical thinking", "analytical",
	"creativity", "creative", "adaptability", "adaptable", "mentoring", "coaching",
	"time management", "project management", "organization", "organizational",
	"attention to detail", "presentation", "public speaking", "negotiation",
	"interpersonal", "self-motivated", "initiative", "ownership", "stakeholder management",
)

// aliases rewrite spellings whose punctuation would otherwise be lost during
// tokenizing. Applied to lower-cased text, longest first.
var aliases = []struct{ from, to string }{
	{"node.js", "nodejs"},
	{"vue.js", "vuejs"},
	{"next.js", "nextjs"},
	{"react.js", "react"},
	{"asp.net", "dotnet"},
	{".net", "dotnet"},
	{"c++", "cpp"},
	{"c#", "csharp"},
	{"f#", "fsharp"},
	{"ci/cd", "cicd"},
	{"ai/ml", "artificial intelligence machine learning"},
	{"ml/ai", "machine learning artificial intelligence"},
	{"ui/ux", "user interface user experience"},
}

var seniorityWords = map[string]Tier{
	"intern":       TierJunior,
	"internship":   TierJunior,
	"junior":       TierJunior,
	"entry":        TierJunior,
	"entry-level":  TierJunior,
	"graduate":     TierJunior,
	"trainee":      TierJunior,
	"apprentice":   TierJunior,
	"associate":    TierJunior,
	"mid":          TierMid,
	"mid-level":    TierMid,
	"intermediate": TierMid,
	"senior":       TierSenior,
	"sr":           TierSenior,
	"lead":         TierSenior,
	"principal":    TierSenior,
	"staff":        TierSenior,
	"architect":    TierSenior,
	"manager":      TierSenior,
	"director":     TierSenior,
	"head":         TierSenior,
}

// sectionHeaders are words that, alone on a line, mark a résumé section.
var sectionHeaders = toSet(
	"experience", "work experience", "professional experience", "employment",
	"employment history", "education", "skills", "technical skills", "projects",
	"summary", "professional summary", "profile", "objective", "certifications",
	"awards", "publications", "volunteer", "activities", "achievements", "languages",
	"interests", "internships", "coursework", "relevant coursework",
)

var weakPhrases = []string{
	"responsible for", "worked on", "helped with", "involved in", "duties included",
}

func toSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

func isStopWord(w string) bool { return stopWords[w] || fillerWords[w] }

func categorize(term string) Category {
	switch {
	case technicalTerms[term]:
		return CategoryHardSkill
	case softSkills[term]:
		return CategorySoftSkill
	default:
		return CategoryGeneric
	}
}
