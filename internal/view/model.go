package view

import (
	"fmt"
	"html/template"

	"github.com/okian/cowin/internal/domain/dashboard"
	"github.com/okian/cowin/internal/domain/model"
	"github.com/okian/cowin/internal/domain/status"
	"github.com/okian/cowin/internal/view/svg"
)

// Page holds the values shared by every rendered dashboard page.
type Page struct {
	SessionID       string
	LogoURL         string
	FailureImageURL string
	// RefreshSeconds is the reload delay while the fetch is pending.
	RefreshSeconds int
}

// Row is one labelled figure shown under a chart.
type Row struct {
	Label string
	Value string
}

// Section is one chart sub-view.
type Section struct {
	Title string
	Chart template.HTML
	Rows  []Row
	Empty bool
}

// Model is everything the dashboard template needs.
type Model struct {
	Page
	Status  string
	Refresh bool
	Loading bool
	Failure bool
	Success bool

	Coverage Section
	ByGender Section
	ByAge    Section
	Totals   []Row
}

var (
	coverageColors = []string{"#5a8dee", "#f54394"}
	genderColors   = []string{"#f54394", "#5a8dee", "#2cc6c6"}
	ageColors      = []string{"#2d87bb", "#a3df9f", "#64c2a6", "#5a8dee", "#f54394"}
)

// Build maps a controller snapshot to the page model. Only Success carries
// chart sections.
func Build(state dashboard.State, page Page) (Model, error) {
	m := Model{Page: page, Status: state.Status.String()}

	switch state.Status {
	case status.Idle:
		m.Refresh = true
	case status.Loading:
		m.Refresh = true
		m.Loading = true
	case status.Failure:
		m.Failure = true
	case status.Success:
		m.Success = true
		if err := m.fill(state.Data); err != nil {
			return Model{}, err
		}
	default:
		return Model{}, fmt.Errorf("view: unknown status %d", int(state.Status))
	}
	return m, nil
}

func (m *Model) fill(data model.VaccinationData) error {
	var err error
	if m.Coverage, err = coverageSection(data.Days); err != nil {
		return err
	}
	if m.ByGender, err = genderSection(data.ByGender); err != nil {
		return err
	}
	if m.ByAge, err = ageSection(data.ByAge); err != nil {
		return err
	}
	d1, d2 := data.TotalDoses()
	m.Totals = []Row{
		{Label: "Dose 1", Value: FormatCount(d1)},
		{Label: "Dose 2", Value: FormatCount(d2)},
	}
	return nil
}

func coverageSection(days []model.VaccinationDay) (Section, error) {
	s := Section{Title: "Vaccination Coverage"}
	if len(days) == 0 {
		s.Empty = true
		return s, nil
	}
	labels := make([]string, len(days))
	dose1 := make([]float64, len(days))
	dose2 := make([]float64, len(days))
	for i, d := range days {
		labels[i] = d.Date
		dose1[i] = float64(d.Dose1Count)
		dose2[i] = float64(d.Dose2Count)
		s.Rows = append(s.Rows, Row{
			Label: d.Date,
			Value: FormatCount(d.Dose1Count) + " / " + FormatCount(d.Dose2Count),
		})
	}
	chart, err := svg.Bars(svg.DefaultWidth, svg.DefaultHeight, dose1, dose2, labels, svg.BarOpts{
		Title:        s.Title,
		Description:  "Dose 1 and Dose 2 administered per day",
		SeriesALabel: "Dose 1",
		SeriesBLabel: "Dose 2",
		ColorA:       coverageColors[0],
		ColorB:       coverageColors[1],
	})
	if err != nil {
		return Section{}, fmt.Errorf("render coverage chart: %w", err)
	}
	s.Chart = chart
	return s, nil
}

func genderSection(groups []model.GenderCount) (Section, error) {
	labels := make([]string, len(groups))
	values := make([]float64, len(groups))
	rows := make([]Row, len(groups))
	for i, g := range groups {
		labels[i], values[i] = g.Gender, float64(g.Count)
		rows[i] = Row{Label: g.Gender, Value: FormatCount(g.Count)}
	}
	return pieSection("Vaccination by gender", labels, values, rows, svg.PieOpts{
		Description: "Share of vaccinations by gender",
		Colors:      genderColors,
		InnerRadius: 60,
	})
}

func ageSection(groups []model.AgeGroupCount) (Section, error) {
	labels := make([]string, len(groups))
	values := make([]float64, len(groups))
	rows := make([]Row, len(groups))
	for i, a := range groups {
		labels[i], values[i] = a.AgeRange, float64(a.Count)
		rows[i] = Row{Label: a.AgeRange, Value: FormatCount(a.Count)}
	}
	return pieSection("Vaccination by Age", labels, values, rows, svg.PieOpts{
		Description: "Share of vaccinations by age group",
		Colors:      ageColors,
	})
}

func pieSection(title string, labels []string, values []float64, rows []Row, opts svg.PieOpts) (Section, error) {
	s := Section{Title: title}
	if len(values) == 0 {
		s.Empty = true
		return s, nil
	}
	opts.Title = title
	chart, err := svg.Pie(svg.DefaultPieSize, values, labels, opts)
	if err != nil {
		return Section{}, fmt.Errorf("render %s chart: %w", title, err)
	}
	s.Chart = chart
	s.Rows = rows
	return s, nil
}
