package session

import "strings"

// Seniority is the level inferred from the job description.
type Seniority string

const (
	SeniorityJunior Seniority = "Junior"
	SeniorityMid    Seniority = "Mid-level"
	SenioritySenior Seniority = "Senior"
)

// Job holds the role parameters bound at the start of a session. The
// required-skill list feeds the evaluator's relevance sub-score.
type Job struct {
	Role        string
	Company     string
	Description string
	Seniority   Seniority
	Skills      []string
	SoftSkills  []string
}

// defaultSkills is the skill profile assumed when the description names
// nothing recognizable. Skill extraction here is a keyword heuristic,
// not language understanding.
var defaultSkills = []string{
	"Python", "REST APIs", "Microservices", "SQL", "Docker",
	"Unit Testing", "CI/CD",
}

var defaultSoftSkills = []string{
	"Communication", "Teamwork", "Problem Solving", "Ownership",
}

// knownSkills maps lowercase description keywords to canonical skill names.
var knownSkills = []struct {
	keyword string
	name    string
}{
	{"python", "Python"},
	{"go", "Go"},
	{"rest", "REST APIs"},
	{"api", "REST APIs"},
	{"microservice", "Microservices"},
	{"sql", "SQL"},
	{"postgres", "SQL"},
	{"docker", "Docker"},
	{"kubernetes", "Kubernetes"},
	{"test", "Unit Testing"},
	{"ci/cd", "CI/CD"},
	{"aws", "AWS"},
	{"cloud", "AWS"},
}

// BindJob parses role parameters out of a free-form job description.
// It never fails: an empty description yields the default profile.
func BindJob(role, company, description string) Job {
	if role == "" {
		role = "Candidate"
	}

	job := Job{
		Role:        role,
		Company:     company,
		Description: description,
		Seniority:   detectSeniority(description),
		SoftSkills:  defaultSoftSkills,
	}

	job.Skills = extractSkills(description)
	if len(job.Skills) == 0 {
		job.Skills = defaultSkills
	}
	return job
}

// detectSeniority applies the level keywords, defaulting to mid-level.
func detectSeniority(description string) Seniority {
	lower := strings.ToLower(description)
	switch {
	case strings.Contains(lower, "senior") || strings.Contains(lower, "lead"):
		return SenioritySenior
	case strings.Contains(lower, "junior") || strings.Contains(lower, "entry"):
		return SeniorityJunior
	default:
		return SeniorityMid
	}
}

// extractSkills returns the canonical names of recognized skills, in
// keyword-table order without duplicates. Short keywords match whole
// tokens only, so "go" does not fire on "good".
func extractSkills(description string) []string {
	lower := strings.ToLower(description)
	tokens := make(map[string]bool)
	for _, tok := range strings.FieldsFunc(lower, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9') && r != '/' && r != '+' && r != '#'
	}) {
		tokens[tok] = true
	}

	seen := make(map[string]bool)
	var skills []string
	for _, ks := range knownSkills {
		if seen[ks.name] {
			continue
		}
		matched := false
		if len(ks.keyword) <= 3 {
			matched = tokens[ks.keyword]
		} else {
			matched = strings.Contains(lower, ks.keyword)
		}
		if matched {
			seen[ks.name] = true
			skills = append(skills, ks.name)
		}
	}
	return skills
}
