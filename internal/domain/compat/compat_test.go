package compat_test

import (
	"testing"

	"github.com/okian/matchday/internal/domain/compat"
	"github.com/okian/matchday/internal/domain/model"
	"github.com/okian/matchday/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func profile(id string) model.BuilderProfile {
	return model.BuilderProfile{
		UserID:        id,
		BuilderScore:  300,
		Skills:        []string{"react", "typescript"},
		Timezone:      "UTC+2",
		PreferredRole: types.RoleDeveloper,
		LookingFor:    []types.Role{types.RoleDesigner},
		Language:      "en",
		Availability:  types.AvailabilityFullTime,
	}
}

func TestWeightsValidate(t *testing.T) {
	Convey("Given weight vectors", t, func() {
		Convey("When the defaults are validated", func() {
			So(compat.DefaultWeights().Validate(), ShouldBeNil)
		})

		Convey("When weights do not sum to 1", func() {
			w := compat.Weights{Complementary: 0.5, Role: 0.3}

			Convey("Then validation fails with the sentinel kind", func() {
				So(w.Validate(), ShouldWrap, compat.ErrInvalidWeights)
			})
		})

		Convey("When a weight is negative", func() {
			w := compat.Weights{Complementary: 1.2, Role: -0.2}
			So(w.Validate(), ShouldWrap, compat.ErrInvalidWeights)
		})

		Convey("When the original four-factor scheme is configured", func() {
			w := compat.Weights{Complementary: 0.4, Role: 0.3, Experience: 0.2, Timezone: 0.1}
			So(w.Validate(), ShouldBeNil)
		})
	})
}

func TestScore(t *testing.T) {
	Convey("Given a subject looking for a designer", t, func() {
		subject := profile("subject")
		scorer := compat.NewScorer()

		Convey("When the candidate has identical skills, reputation and timezone", func() {
			candidate := profile("candidate")
			candidate.PreferredRole = types.RoleDesigner
			b := scorer.Score(subject, candidate)

			Convey("Then role match is 1 and complementary score is 0", func() {
				So(b.Role, ShouldEqual, 1.0)
				So(b.Complementary, ShouldAlmostEqual, 0, 1e-9)
				So(b.Experience, ShouldEqual, 1.0)
				So(b.Timezone, ShouldEqual, 1.0)
			})

			Convey("And a same-role candidate with disjoint skills scores strictly higher", func() {
				disjoint := candidate
				disjoint.Skills = []string{"solidity", "hardhat"}
				So(scorer.Score(subject, disjoint).Final, ShouldBeGreaterThan, b.Final)
			})
		})

		Convey("When the candidate's role is not wanted", func() {
			candidate := profile("candidate")
			candidate.PreferredRole = types.RolePM
			b := scorer.Score(subject, candidate)

			So(b.Role, ShouldEqual, 0.0)
		})

		Convey("When reputations differ by the full spread", func() {
			candidate := profile("candidate")
			candidate.BuilderScore = subject.BuilderScore + 500
			b := scorer.Score(subject, candidate)

			Convey("Then experience parity bottoms out at 0", func() {
				So(b.Experience, ShouldEqual, 0)
			})
		})

		Convey("When timezones are unparsable", func() {
			candidate := profile("candidate")
			candidate.Timezone = "somewhere nice"
			subjectTZ := subject
			subjectTZ.Timezone = ""
			b := scorer.Score(subjectTZ, candidate)

			Convey("Then both default to offset 0 and the score is 1", func() {
				So(b.Timezone, ShouldEqual, 1.0)
			})
		})

		Convey("When availability combinations differ", func() {
			candidate := profile("candidate")

			candidate.Availability = types.AvailabilityPartTime
			So(scorer.Score(subject, candidate).Availability, ShouldEqual, 0.7)

			partTime := subject
			partTime.Availability = types.AvailabilityPartTime
			candidate.Availability = types.AvailabilityWeekend
			So(scorer.Score(partTime, candidate).Availability, ShouldEqual, 0.9)
		})

		Convey("When languages differ", func() {
			candidate := profile("candidate")
			candidate.Language = "es"
			So(scorer.Score(subject, candidate).Language, ShouldEqual, 0.5)
		})

		Convey("When a language bonus is configured for a shared minority language", func() {
			bonus := compat.NewScorer(compat.WithLanguageBonus("es", 1.5))
			a := profile("a")
			a.Language = "es"
			c := profile("c")
			c.Language = "es"
			b := bonus.Score(a, c)

			Convey("Then the language sub-score exceeds 1", func() {
				So(b.Language, ShouldEqual, 1.5)
			})

			Convey("And the final score is still clamped to at most 1", func() {
				So(b.Final, ShouldBeLessThanOrEqualTo, 1.0)
			})
		})

		Convey("When all sub-scores are in range", func() {
			candidate := profile("candidate")
			candidate.Skills = []string{"solidity"}
			candidate.BuilderScore = 450
			candidate.Timezone = "UTC-5"
			b := scorer.Score(subject, candidate)

			Convey("Then the final score is inside [0,1]", func() {
				So(b.Final, ShouldBeGreaterThanOrEqualTo, 0)
				So(b.Final, ShouldBeLessThanOrEqualTo, 1)
			})
		})

		Convey("When scoring the same pair twice", func() {
			candidate := profile("candidate")
			first := scorer.Score(subject, candidate)
			second := scorer.Score(subject, candidate)

			Convey("Then the breakdown is identical", func() {
				So(second, ShouldResemble, first)
			})
		})
	})
}

func TestParseUTCOffset(t *testing.T) {
	Convey("Given timezone offset strings", t, func() {
		So(compat.ParseUTCOffset("UTC+5"), ShouldEqual, 5)
		So(compat.ParseUTCOffset("UTC-3:30"), ShouldEqual, -3)
		So(compat.ParseUTCOffset("utc+0"), ShouldEqual, 0)
		So(compat.ParseUTCOffset(""), ShouldEqual, 0)
		So(compat.ParseUTCOffset("PST"), ShouldEqual, 0)
		So(compat.ParseUTCOffset("UTC+garbage"), ShouldEqual, 0)
	})
}
