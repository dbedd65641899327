// Package model contains the vaccination data shapes rendered by the dashboard.
package model

// VaccinationDay holds the doses administered on one day.
type VaccinationDay struct {
	Date       string `json:"date"`
	Dose1Count int    `json:"dose1Count"`
	Dose2Count int    `json:"dose2Count"`
}

// AgeGroupCount holds the vaccinations in one age bracket.
type AgeGroupCount struct {
	AgeRange string `json:"ageRange"`
	Count    int    `json:"count"`
}

// GenderCount holds the vaccinations for one gender category.
type GenderCount struct {
	Gender string `json:"gender"`
	Count  int    `json:"count"`
}

// VaccinationData is the mapped result of one upstream fetch. Days keep the
// order received from the source.
type VaccinationData struct {
	Days     []VaccinationDay `json:"days"`
	ByAge    []AgeGroupCount  `json:"byAge"`
	ByGender []GenderCount    `json:"byGender"`
}

// TotalDoses sums dose 1 and dose 2 over all days.
func (d VaccinationData) TotalDoses() (dose1, dose2 int) {
	for _, day := range d.Days {
		dose1 += day.Dose1Count
		dose2 += day.Dose2Count
	}
	return dose1, dose2
}

// Empty reports whether no section carries any entry.
func (d VaccinationData) Empty() bool {
	return len(d.Days) == 0 && len(d.ByAge) == 0 && len(d.ByGender) == 0
}
