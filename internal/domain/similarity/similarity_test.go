package similarity_test

import (
	"testing"

	"github.com/okian/matchday/internal/domain/feature"
	"github.com/okian/matchday/internal/domain/similarity"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCosine(t *testing.T) {
	Convey("Given skill vectors", t, func() {
		Convey("When a vector is compared with itself", func() {
			v := feature.SkillVector([]string{"react", "solidity", "figma"})

			Convey("Then cosine similarity is 1", func() {
				So(similarity.Cosine(v, v), ShouldAlmostEqual, 1.0, 1e-9)
			})
		})

		Convey("When vectors occupy disjoint categories", func() {
			a := feature.SkillVector([]string{"react", "css"})
			b := feature.SkillVector([]string{"solidity", "hardhat"})

			Convey("Then cosine similarity is 0", func() {
				So(similarity.Cosine(a, b), ShouldEqual, 0)
			})
		})

		Convey("When either vector is zero", func() {
			zero := feature.SkillVector(nil)
			v := feature.SkillVector([]string{"go"})

			Convey("Then similarity is defined as 0, not NaN", func() {
				So(similarity.Cosine(zero, v), ShouldEqual, 0)
				So(similarity.Cosine(v, zero), ShouldEqual, 0)
				So(similarity.Cosine(zero, zero), ShouldEqual, 0)
			})
		})
	})
}

func TestRatio(t *testing.T) {
	Convey("Given two texts", t, func() {
		Convey("When they are identical after normalization", func() {
			a := "A decentralized NFT marketplace!"
			b := "a decentralized nft   marketplace"

			Convey("Then the ratio is 100", func() {
				So(similarity.Ratio(a, b), ShouldAlmostEqual, 100, 1e-9)
			})
		})

		Convey("When they share nothing", func() {
			So(similarity.Ratio("zzzz", "qqqq"), ShouldEqual, 0)
		})

		Convey("When they partially overlap", func() {
			got := similarity.Ratio("nft marketplace on arbitrum", "nft marketplace on base")

			Convey("Then the ratio is strictly between 0 and 100", func() {
				So(got, ShouldBeGreaterThan, 0)
				So(got, ShouldBeLessThan, 100)
			})

			Convey("And comparison is symmetric", func() {
				So(similarity.Ratio("nft marketplace on base", "nft marketplace on arbitrum"), ShouldAlmostEqual, got, 1e-9)
			})
		})

		Convey("When both texts normalize to empty", func() {
			Convey("Then the ratio is 100 by convention", func() {
				So(similarity.Ratio("http://a.example", "!!!"), ShouldEqual, 100)
			})
		})

		Convey("When exactly one text normalizes to empty", func() {
			So(similarity.Ratio("", "something"), ShouldEqual, 0)
		})
	})
}
