package cowin

import "github.com/okian/cowin/internal/domain/model"

// Wire is the JSON body served by the vaccination endpoint.
type Wire struct {
	Last7Days []WireDay    `json:"last_7_days_vaccination"`
	ByAge     []WireAge    `json:"vaccination_by_age"`
	ByGender  []WireGender `json:"vaccination_by_gender"`
}

type WireDay struct {
	VaccineDate string `json:"vaccine_date"`
	Dose1       int    `json:"dose_1"`
	Dose2       int    `json:"dose_2"`
}

type WireAge struct {
	Age   string `json:"age"`
	Count int    `json:"count"`
}

type WireGender struct {
	Gender string `json:"gender"`
	Count  int    `json:"count"`
}

// Remap converts the wire body into domain data. Element order is preserved
// and missing arrays become empty slices.
func Remap(w Wire) model.VaccinationData {
	out := model.VaccinationData{
		Days:     make([]model.VaccinationDay, 0, len(w.Last7Days)),
		ByAge:    make([]model.AgeGroupCount, 0, len(w.ByAge)),
		ByGender: make([]model.GenderCount, 0, len(w.ByGender)),
	}
	for _, d := range w.Last7Days {
		out.Days = append(out.Days, model.VaccinationDay{
			Date:       d.VaccineDate,
			Dose1Count: d.Dose1,
			Dose2Count: d.Dose2,
		})
	}
	for _, a := range w.ByAge {
		out.ByAge = append(out.ByAge, model.AgeGroupCount{AgeRange: a.Age, Count: a.Count})
	}
	for _, g := range w.ByGender {
		out.ByGender = append(out.ByGender, model.GenderCount{Gender: g.Gender, Count: g.Count})
	}
	return out
}
