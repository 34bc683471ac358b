package bank

// DefaultQuestions returns the built-in question set used when no bank
// file is supplied. It covers every (type, tier) combination the selector
// can ask for, plus the salary-topic questions for the negotiation phase.
func DefaultQuestions() []Question {
	return []Question{
		// Technical / easy
		{ID: "tech-easy-rest", Text: "What is a REST API, and what makes an endpoint RESTful?", Type: TypeTechnical, Tier: TierEasy, Topic: "apis"},
		{ID: "tech-easy-sql-join", Text: "Explain the difference between an INNER JOIN and a LEFT JOIN in SQL.", Type: TypeTechnical, Tier: TierEasy, Topic: "sql"},
		{ID: "tech-easy-http-codes", Text: "What do the HTTP status codes 200, 404, and 500 indicate?", Type: TypeTechnical, Tier: TierEasy, Topic: "apis"},
		{ID: "tech-easy-docker", Text: "What problem does Docker solve, and how is a container different from a virtual machine?", Type: TypeTechnical, Tier: TierEasy, Topic: "devops"},
		{ID: "tech-easy-unit-test", Text: "What is a unit test, and what makes a good one?", Type: TypeTechnical, Tier: TierEasy, Topic: "testing"},

		// Technical / medium
		{ID: "tech-med-idempotency", Text: "Tell me about a time you had to design an API for reliability. How did you handle retries and idempotency?", Type: TypeTechnical, Tier: TierMedium, Topic: "apis"},
		{ID: "tech-med-slow-query", Text: "Describe a situation where a database query was too slow in production. How did you diagnose and fix it?", Type: TypeTechnical, Tier: TierMedium, Topic: "sql"},
		{ID: "tech-med-migration", Text: "Walk me through a schema migration you performed on a live system. What could have gone wrong?", Type: TypeTechnical, Tier: TierMedium, Topic: "sql"},
		{ID: "tech-med-ci", Text: "Tell me about a time you improved a CI/CD pipeline. What was the impact on the team?", Type: TypeTechnical, Tier: TierMedium, Topic: "devops"},
		{ID: "tech-med-flaky-tests", Text: "Describe a time you dealt with flaky tests. What was the root cause and how did you address it?", Type: TypeTechnical, Tier: TierMedium, Topic: "testing"},

		// Technical / hard
		{ID: "tech-hard-split", Text: "Describe a monolith you helped split into microservices. How did you choose the service boundaries, and what results did you measure?", Type: TypeTechnical, Tier: TierHard, Topic: "microservices"},
		{ID: "tech-hard-outage", Text: "Tell me about the worst production outage you were involved in. What was your role, and what changed afterwards?", Type: TypeTechnical, Tier: TierHard, Topic: "operations"},
		{ID: "tech-hard-consistency", Text: "Describe a situation where you had to reason about data consistency across services. What trade-offs did you make?", Type: TypeTechnical, Tier: TierHard, Topic: "microservices"},
		{ID: "tech-hard-scaling", Text: "Walk me through a time a system you owned hit a scaling limit. How did you find the bottleneck and what was the outcome?", Type: TypeTechnical, Tier: TierHard, Topic: "operations"},

		// Behavioral / easy
		{ID: "beh-easy-proud", Text: "Tell me about a project you are proud of. What was your contribution?", Type: TypeBehavioral, Tier: TierEasy, Topic: "ownership"},
		{ID: "beh-easy-learning", Text: "Describe a time you had to learn a new technology quickly. How did you approach it?", Type: TypeBehavioral, Tier: TierEasy, Topic: "growth"},
		{ID: "beh-easy-feedback", Text: "Tell me about a piece of feedback you received that changed how you work.", Type: TypeBehavioral, Tier: TierEasy, Topic: "growth"},

		// Behavioral / medium
		{ID: "beh-med-conflict", Text: "Describe a disagreement you had with a teammate about a technical decision. How was it resolved?", Type: TypeBehavioral, Tier: TierMedium, Topic: "collaboration"},
		{ID: "beh-med-deadline", Text: "Tell me about a time you had to deliver under a tight deadline. What did you cut, and what was the result?", Type: TypeBehavioral, Tier: TierMedium, Topic: "delivery"},
		{ID: "beh-med-mistake", Text: "Describe a mistake you made that affected other people. What did you do about it?", Type: TypeBehavioral, Tier: TierMedium, Topic: "ownership"},
		{ID: "beh-med-stakeholder", Text: "Tell me about a time you had to explain a technical problem to a non-technical stakeholder.", Type: TypeBehavioral, Tier: TierMedium, Topic: "communication"},

		// Behavioral / hard
		{ID: "beh-hard-unpopular", Text: "Describe a time you pushed for a decision that was unpopular with your team. What happened?", Type: TypeBehavioral, Tier: TierHard, Topic: "leadership"},
		{ID: "beh-hard-ambiguity", Text: "Tell me about a project with ambiguous requirements and no clear owner. How did you move it forward, and what was the outcome?", Type: TypeBehavioral, Tier: TierHard, Topic: "ownership"},
		{ID: "beh-hard-turnaround", Text: "Describe a failing project you helped turn around. What actions did you take and what changed?", Type: TypeBehavioral, Tier: TierHard, Topic: "leadership"},

		// Salary negotiation
		{ID: "salary-expectations", Text: "What are your salary expectations for this role?", Type: TypeBehavioral, Tier: TierMedium, Topic: TopicSalary},
		{ID: "salary-justify", Text: "The budget for this role is below your expectation. How would you justify your number?", Type: TypeBehavioral, Tier: TierMedium, Topic: TopicSalary},
	}
}

// Default returns a Bank built from DefaultQuestions. It panics on error;
// the built-in set is validated by tests.
func Default() *Bank {
	b, err := New(withTierNames(DefaultQuestions()))
	if err != nil {
		panic("bank: invalid built-in question set: " + err.Error())
	}
	return b
}

// withTierNames fills the wire-format Difficulty field from Tier.
func withTierNames(questions []Question) []Question {
	for i := range questions {
		questions[i].Difficulty = questions[i].Tier.String()
	}
	return questions
}
