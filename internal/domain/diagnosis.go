package domain

// Diagnosis is a classifier verdict enriched with catalog guidance.
type Diagnosis struct {
	Label           string
	Name            string
	Probability     float64
	Symptoms        []string
	Recommendations []string
}
