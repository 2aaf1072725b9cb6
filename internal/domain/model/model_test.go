package model_test

import (
	"testing"

	"github.com/okian/ensemble/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRole(t *testing.T) {
	Convey("Given the canonical roles", t, func() {
		Convey("Then all are valid and only accessory is multi-slot", func() {
			for _, r := range []model.Role{
				model.RoleTop, model.RoleBottom, model.RoleShoes,
				model.RoleOuter, model.RoleAccessory, model.RoleUndergarment,
			} {
				So(r.Valid(), ShouldBeTrue)
				So(r.MultiSlot(), ShouldEqual, r == model.RoleAccessory)
			}
		})

		Convey("And anything else is invalid", func() {
			So(model.Role("hat").Valid(), ShouldBeFalse)
			So(model.Role("").Valid(), ShouldBeFalse)
		})
	})
}

func TestIntentExcludes(t *testing.T) {
	Convey("Given an intent excluding leather", t, func() {
		in := model.Intent{HardExclusions: []string{"Leather", " "}}

		Convey("Then matching is case-insensitive and substring based", func() {
			So(in.Excludes("full-grain leather"), ShouldBeTrue)
			So(in.Excludes("LEATHER trim"), ShouldBeTrue)
			So(in.Excludes("canvas"), ShouldBeFalse)
		})

		Convey("And blank exclusion terms never match", func() {
			So(in.Excludes("anything"), ShouldBeFalse)
		})
	})
}

func TestItemAccessors(t *testing.T) {
	Convey("Given an item with partial attributes", t, func() {
		it := model.Item{
			ID:    "x",
			Sizes: []string{"S", "M"},
			Attributes: map[string]string{
				model.DimColor: "navy",
				model.DimStyle: "  ",
			},
			AttributeConfidence: map[string]float64{
				model.DimColor:    0.7,
				model.DimMaterial: 1.8,
				model.DimStyle:    -0.2,
			},
		}

		Convey("Then Attribute treats blank values as absent", func() {
			_, ok := it.Attribute(model.DimStyle)
			So(ok, ShouldBeFalse)
			v, ok := it.Attribute(model.DimColor)
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, "navy")
		})

		Convey("And Confidence clamps to [0,1] with full-confidence default", func() {
			So(it.Confidence(model.DimColor), ShouldEqual, 0.7)
			So(it.Confidence(model.DimMaterial), ShouldEqual, 1)
			So(it.Confidence(model.DimStyle), ShouldEqual, 0)
			So(it.Confidence(model.DimOccasion), ShouldEqual, 1)
		})

		Convey("And size matching is case-insensitive with empty matching all", func() {
			So(it.HasSize("m"), ShouldBeTrue)
			So(it.HasSize("XL"), ShouldBeFalse)
			So(it.HasSize(""), ShouldBeTrue)
		})
	})
}

func TestOutfitCandidate(t *testing.T) {
	Convey("Given an outfit with varied item scores", t, func() {
		o := model.OutfitCandidate{
			Slots: []model.Slot{
				{Role: model.RoleTop, Item: model.Item{ID: "t"}},
				{Role: model.RoleBottom, Item: model.Item{ID: "b"}},
			},
			Breakdown: model.OutfitBreakdown{
				ItemScores: []model.ItemScore{
					{ItemID: "t", Score: 80},
					{ItemID: "b", Score: 55},
				},
			},
		}

		Convey("Then Items preserves slot order", func() {
			items := o.Items()
			So(items, ShouldHaveLength, 2)
			So(items[0].ID, ShouldEqual, "t")
		})

		Convey("And MinItemScore finds the weak link", func() {
			So(o.MinItemScore(), ShouldEqual, 55)
		})

		Convey("And an empty breakdown yields zero", func() {
			So(model.OutfitCandidate{}.MinItemScore(), ShouldEqual, 0)
		})
	})
}
