package config

type GraderConfig struct {
	MaxConcurrency int
	MaxTestCases   int
}

func NewGraderConfig() *GraderConfig {
	maxConcurrency := getIntEnv("GRADER_MAX_CONCURRENCY", 4)
	if maxConcurrency <= 0 {
		maxConcurrency = 4
	}
	maxTestCases := getIntEnv("GRADER_MAX_TEST_CASES", 50)
	if maxTestCases <= 0 {
		maxTestCases = 50
	}
	return &GraderConfig{
		MaxConcurrency: maxConcurrency,
		MaxTestCases:   maxTestCases,
	}
}
