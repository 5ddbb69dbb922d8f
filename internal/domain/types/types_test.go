package types_test

import (
	"testing"

	"github.com/okian/matchday/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseRole(t *testing.T) {
	Convey("Given raw role strings", t, func() {
		Convey("When parsing recognized roles", func() {
			So(types.ParseRole("developer"), ShouldEqual, types.RoleDeveloper)
			So(types.ParseRole("  Designer "), ShouldEqual, types.RoleDesigner)
			So(types.ParseRole("PM"), ShouldEqual, types.RolePM)

			Convey("Then they are known", func() {
				So(types.ParseRole("developer").Known(), ShouldBeTrue)
			})
		})

		Convey("When parsing an unrecognized role", func() {
			r := types.ParseRole("Data Wizard")

			Convey("Then the value is preserved lowercased but not known", func() {
				So(r.String(), ShouldEqual, "data wizard")
				So(r.Known(), ShouldBeFalse)
			})
		})
	})
}

func TestParseAvailability(t *testing.T) {
	Convey("Given raw availability strings", t, func() {
		Convey("When parsing recognized categories", func() {
			So(types.ParseAvailability("part-time"), ShouldEqual, types.AvailabilityPartTime)
			So(types.ParseAvailability("parttime"), ShouldEqual, types.AvailabilityPartTime)
			So(types.ParseAvailability("Weekend"), ShouldEqual, types.AvailabilityWeekend)
			So(types.ParseAvailability("full-time"), ShouldEqual, types.AvailabilityFullTime)
		})

		Convey("When parsing junk or empty input", func() {
			Convey("Then it defaults to full-time", func() {
				So(types.ParseAvailability(""), ShouldEqual, types.AvailabilityFullTime)
				So(types.ParseAvailability("whenever"), ShouldEqual, types.AvailabilityFullTime)
			})
		})
	})
}
