package posting

import "time"

// Record is one cleaned job posting.
type Record struct {
	JobTitle      string   `json:"job_title"`
	State         string   `json:"state"`
	City          string   `json:"city"`
	AverageSalary *float64 `json:"average_salary"`
	Skills        []string `json:"skills"`
}

// HasSalary reports whether the posting carries a salary.
func (r Record) HasSalary() bool {
	return r.AverageSalary != nil
}

// Dataset is the record set loaded for the life of the process.
// Records must not be modified after the dataset is built.
type Dataset struct {
	Records     []Record
	Fingerprint string
	Source      string
	LoadedAt    time.Time
}

func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// Salary is a convenience for building records with a salary.
func Salary(v float64) *float64 {
	return &v
}
