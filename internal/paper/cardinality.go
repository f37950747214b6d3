package paper

import "fmt"

// Anomaly describes a section whose item count differs from its quota.
type Anomaly struct {
	Part     string
	Expected int
	Got      int
}

func (a Anomaly) String() string {
	return fmt.Sprintf("%s: expected %d items, got %d", a.Part, a.Expected, a.Got)
}

// CheckCardinality compares a validated paper against the section quotas.
// Anomalies are advisory and never make a paper invalid.
func CheckCardinality(p *QuestionPaper) []Anomaly {
	var out []Anomaly
	check := func(part string, expected, got int) {
		if got != expected {
			out = append(out, Anomaly{Part: part, Expected: expected, Got: got})
		}
	}
	check("partA", PartAQuota, len(p.PartA))
	check("partB", PartBQuota, len(p.PartB))
	check("partC", PartCQuota, len(p.PartC))
	return out
}
