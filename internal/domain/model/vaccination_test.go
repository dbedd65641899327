package model_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/cowin/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestVaccinationData(t *testing.T) {
	Convey("Given mapped vaccination data", t, func() {
		data := model.VaccinationData{
			Days: []model.VaccinationDay{
				{Date: "01 Sep", Dose1Count: 100, Dose2Count: 40},
				{Date: "02 Sep", Dose1Count: 50, Dose2Count: 60},
			},
			ByAge:    []model.AgeGroupCount{{AgeRange: "18-44", Count: 10}},
			ByGender: []model.GenderCount{{Gender: "Male", Count: 7}},
		}

		Convey("When totalling doses", func() {
			d1, d2 := data.TotalDoses()

			Convey("Then both dose columns are summed", func() {
				So(d1, ShouldEqual, 150)
				So(d2, ShouldEqual, 100)
			})
		})

		Convey("When encoding to JSON", func() {
			raw, err := json.Marshal(data)
			So(err, ShouldBeNil)

			Convey("Then camelCase field names are used", func() {
				s := string(raw)
				So(s, ShouldContainSubstring, `"date":"01 Sep"`)
				So(s, ShouldContainSubstring, `"dose1Count":100`)
				So(s, ShouldContainSubstring, `"dose2Count":40`)
				So(s, ShouldContainSubstring, `"ageRange":"18-44"`)
				So(s, ShouldContainSubstring, `"byGender":[{"gender":"Male","count":7}]`)
			})
		})

		Convey("Then it is not empty", func() {
			So(data.Empty(), ShouldBeFalse)
			So(model.VaccinationData{}.Empty(), ShouldBeTrue)
		})
	})
}
