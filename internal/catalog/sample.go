package catalog

import "github.com/spigell/job-matcher/internal/trait"

// Sample returns a small built-in catalog for trying the tool without a data file.
func Sample() *Catalog {
	return New([]Job{
		sampleJob("数据分析师", "15.0-25.0千/月", 20.0, "互联网/电子商务", trait.Investigative,
			map[trait.Type]float64{"R": 0.1, "I": 0.6, "A": 0.1, "S": 0.1, "E": 0.1}),
		sampleJob("销售经理", "20.0-35.0千/月", 27.5, "市场营销", trait.Enterprising,
			map[trait.Type]float64{"I": 0.2, "A": 0.1, "S": 0.2, "E": 0.5}),
		sampleJob("UI设计师", "12.0-20.0千/月", 16.0, "互联网/电子商务", trait.Artistic,
			map[trait.Type]float64{"R": 0.1, "I": 0.1, "A": 0.6, "S": 0.1, "E": 0.1}),
		sampleJob("人力资源专员", "8.0-15.0千/月", 11.5, "人力资源", trait.Social,
			map[trait.Type]float64{"I": 0.1, "A": 0.1, "S": 0.6, "E": 0.1, "C": 0.1}),
		sampleJob("机械工程师", "10.0-18.0千/月", 14.0, "机械/设备/重工", trait.Realistic,
			map[trait.Type]float64{"R": 0.5, "I": 0.3, "E": 0.1, "C": 0.1}),
	})
}

func sampleJob(title, salary string, avg float64, industry string, primary trait.Type, weights map[trait.Type]float64) Job {
	return Job{
		Title:         title,
		SalaryDisplay: salary,
		AverageSalary: avg,
		SalaryKnown:   true,
		Industries:    []string{industry},
		PrimaryType:   primary,
		Traits:        trait.FromMap(weights),
	}
}
