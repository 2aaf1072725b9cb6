package assembly_test

import (
	"testing"

	"github.com/okian/ensemble/internal/domain/assembly"
	"github.com/okian/ensemble/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func scored(id string, role model.Role, score, price float64, attrs map[string]string) model.ScoredItem {
	return model.ScoredItem{
		Item: model.Item{
			ID:         id,
			Role:       role,
			Price:      price,
			InStock:    true,
			Attributes: attrs,
		},
		Score: model.ItemScore{ItemID: id, Score: score},
	}
}

func lineNames(lines []model.ScoreLine) []string {
	names := make([]string, len(lines))
	for i, l := range lines {
		names[i] = l.Name
	}
	return names
}

func TestAssembler_CrossProduct(t *testing.T) {
	Convey("Given role pools larger than the per-role bound", t, func() {
		a := assembly.New(assembly.WithTopM(2))
		pools := map[model.Role][]model.ScoredItem{
			model.RoleTop: {
				scored("t1", model.RoleTop, 90, 40, nil),
				scored("t2", model.RoleTop, 80, 40, nil),
				scored("t3", model.RoleTop, 10, 40, nil),
			},
			model.RoleBottom: {scored("b1", model.RoleBottom, 70, 60, nil)},
			model.RoleShoes:  {scored("s1", model.RoleShoes, 60, 80, nil)},
		}

		Convey("When assembling", func() {
			out := a.Assemble(pools, model.Intent{}, model.WeightProfile{})

			Convey("Then only the top-M per role enter the product", func() {
				So(out, ShouldHaveLength, 2)
				for _, o := range out {
					for _, s := range o.Slots {
						So(s.Item.ID, ShouldNotEqual, "t3")
					}
				}
			})

			Convey("And every outfit is complete", func() {
				for _, o := range out {
					So(o.Partial, ShouldBeFalse)
					So(o.Slots, ShouldHaveLength, 3)
					So(o.TotalPrice, ShouldEqual, 180)
				}
			})
		})
	})
}

func TestAssembler_DuplicateItem(t *testing.T) {
	Convey("Given the same item ID appearing in two role pools", t, func() {
		a := assembly.New()
		dup := scored("dup", model.RoleTop, 90, 40, nil)
		dupBottom := dup
		dupBottom.Item.Role = model.RoleBottom
		pools := map[model.Role][]model.ScoredItem{
			model.RoleTop:    {dup},
			model.RoleBottom: {dupBottom, scored("b1", model.RoleBottom, 50, 60, nil)},
			model.RoleShoes:  {scored("s1", model.RoleShoes, 60, 80, nil)},
		}

		Convey("When assembling", func() {
			out := a.Assemble(pools, model.Intent{}, model.WeightProfile{})

			Convey("Then no outfit carries the same item twice", func() {
				So(out, ShouldHaveLength, 1)
				ids := map[string]int{}
				for _, s := range out[0].Slots {
					ids[s.Item.ID]++
				}
				So(ids["dup"], ShouldEqual, 1)
				So(ids["b1"], ShouldEqual, 1)
			})
		})
	})
}

func TestAssembler_CohesionCap(t *testing.T) {
	Convey("Given a fully cohesive outfit and a tight profile cap", t, func() {
		a := assembly.New()
		attrs := func() map[string]string {
			return map[string]string{
				model.DimColor:     "olive",
				model.DimStyle:     "minimal",
				model.DimFormality: "casual",
			}
		}
		pools := map[model.Role][]model.ScoredItem{
			model.RoleTop:    {scored("t", model.RoleTop, 50, 40, attrs())},
			model.RoleBottom: {scored("b", model.RoleBottom, 50, 40, attrs())},
			model.RoleShoes:  {scored("s", model.RoleShoes, 50, 40, attrs())},
		}
		p := model.WeightProfile{CohesionBonusCap: 5}

		Convey("When assembling", func() {
			out := a.Assemble(pools, model.Intent{}, p)
			So(out, ShouldHaveLength, 1)

			Convey("Then the summed bonus is clipped at the profile cap", func() {
				So(out[0].Breakdown.CohesionBonus, ShouldEqual, 5)
				So(lineNames(out[0].Breakdown.Bonuses), ShouldContain, "cohesion_cap")
				So(out[0].Score, ShouldAlmostEqual, 55, 0.0001)
			})
		})
	})
}

func TestAssembler_Penalties(t *testing.T) {
	Convey("Given an assembler with default penalties", t, func() {
		a := assembly.New()

		Convey("When non-neutral colors clash", func() {
			pools := map[model.Role][]model.ScoredItem{
				model.RoleTop:    {scored("t", model.RoleTop, 60, 40, map[string]string{model.DimColor: "red"})},
				model.RoleBottom: {scored("b", model.RoleBottom, 60, 40, map[string]string{model.DimColor: "green"})},
				model.RoleShoes:  {scored("s", model.RoleShoes, 60, 40, nil)},
			}
			out := a.Assemble(pools, model.Intent{}, model.WeightProfile{})
			So(out, ShouldHaveLength, 1)

			Convey("Then the clash penalty is itemized", func() {
				So(lineNames(out[0].Breakdown.Penalties), ShouldContain, "color_clash")
				So(out[0].Score, ShouldBeLessThan, 60)
			})
		})

		Convey("When neutral colors mix with anything", func() {
			pools := map[model.Role][]model.ScoredItem{
				model.RoleTop:    {scored("t", model.RoleTop, 60, 40, map[string]string{model.DimColor: "red"})},
				model.RoleBottom: {scored("b", model.RoleBottom, 60, 40, map[string]string{model.DimColor: "black"})},
				model.RoleShoes:  {scored("s", model.RoleShoes, 60, 40, map[string]string{model.DimColor: "white"})},
			}
			out := a.Assemble(pools, model.Intent{}, model.WeightProfile{})
			So(out, ShouldHaveLength, 1)

			Convey("Then no clash penalty applies", func() {
				So(lineNames(out[0].Breakdown.Penalties), ShouldNotContain, "color_clash")
			})
		})

		Convey("When a soft budget is exceeded", func() {
			pools := map[model.Role][]model.ScoredItem{
				model.RoleTop:    {scored("t", model.RoleTop, 60, 80, nil)},
				model.RoleBottom: {scored("b", model.RoleBottom, 60, 80, nil)},
				model.RoleShoes:  {scored("s", model.RoleShoes, 60, 80, nil)},
			}
			intent := model.Intent{BudgetMax: 100}
			out := a.Assemble(pools, intent, model.WeightProfile{})
			So(out, ShouldHaveLength, 1)

			Convey("Then the outfit survives with an over-budget penalty", func() {
				So(lineNames(out[0].Breakdown.Penalties), ShouldContain, "over_budget")
				So(out[0].Score, ShouldAlmostEqual, 57, 0.0001)
			})
		})

		Convey("When no budget is stated and an implicit ceiling is configured", func() {
			a := assembly.New(assembly.WithImplicitBudgetCeiling(150))
			pools := map[model.Role][]model.ScoredItem{
				model.RoleTop:    {scored("t", model.RoleTop, 60, 80, nil)},
				model.RoleBottom: {scored("b", model.RoleBottom, 60, 80, nil)},
				model.RoleShoes:  {scored("s", model.RoleShoes, 60, 80, nil)},
			}
			out := a.Assemble(pools, model.Intent{}, model.WeightProfile{})
			So(out, ShouldHaveLength, 1)

			Convey("Then the lighter implicit penalty applies", func() {
				So(lineNames(out[0].Breakdown.Penalties), ShouldContain, "implicit_over_budget")
			})
		})

		Convey("When the profile values freshness and the outfit is stale", func() {
			pools := map[model.Role][]model.ScoredItem{
				model.RoleTop:    {scored("t", model.RoleTop, 60, 40, nil)},
				model.RoleBottom: {scored("b", model.RoleBottom, 60, 40, nil)},
				model.RoleShoes:  {scored("s", model.RoleShoes, 60, 40, nil)},
			}
			p := model.WeightProfile{Weights: map[string]float64{model.DimRecency: 9}}
			out := a.Assemble(pools, model.Intent{}, p)
			So(out, ShouldHaveLength, 1)

			Convey("Then the staleness penalty is itemized", func() {
				So(lineNames(out[0].Breakdown.Penalties), ShouldContain, "staleness")
			})
		})
	})
}

func TestAssembler_ScoreFloor(t *testing.T) {
	Convey("Given penalties far exceeding the base score", t, func() {
		a := assembly.New(assembly.WithPenalties(assembly.PenaltyValues{ColorClash: 500}))
		pools := map[model.Role][]model.ScoredItem{
			model.RoleTop:    {scored("t", model.RoleTop, 5, 40, map[string]string{model.DimColor: "red"})},
			model.RoleBottom: {scored("b", model.RoleBottom, 5, 40, map[string]string{model.DimColor: "green"})},
			model.RoleShoes:  {scored("s", model.RoleShoes, 5, 40, nil)},
		}

		Convey("When assembling", func() {
			out := a.Assemble(pools, model.Intent{}, model.WeightProfile{})
			So(out, ShouldHaveLength, 1)

			Convey("Then the score is floored at zero, never negative", func() {
				So(out[0].Score, ShouldEqual, 0)
			})
		})
	})
}

func TestAssembler_PartialOutfits(t *testing.T) {
	Convey("Given a pool with no shoes at all", t, func() {
		a := assembly.New()
		pools := map[model.Role][]model.ScoredItem{
			model.RoleTop:    {scored("t", model.RoleTop, 60, 40, nil)},
			model.RoleBottom: {scored("b", model.RoleBottom, 60, 40, nil)},
		}

		Convey("When assembling", func() {
			out := a.Assemble(pools, model.Intent{}, model.WeightProfile{})

			Convey("Then outfits are produced but flagged partial", func() {
				So(out, ShouldHaveLength, 1)
				So(out[0].Partial, ShouldBeTrue)
				So(out[0].MissingRoles, ShouldResemble, []model.Role{model.RoleShoes})
				So(out[0].Slots, ShouldHaveLength, 2)
			})
		})
	})

	Convey("Given no candidates for any required role", t, func() {
		a := assembly.New()

		Convey("When assembling", func() {
			out := a.Assemble(map[model.Role][]model.ScoredItem{}, model.Intent{}, model.WeightProfile{})

			Convey("Then nothing is produced", func() {
				So(out, ShouldBeEmpty)
			})
		})
	})
}

func TestAssembler_OptionalExtension(t *testing.T) {
	Convey("Given a complete core outfit", t, func() {
		a := assembly.New()
		core := map[model.Role][]model.ScoredItem{
			model.RoleTop:    {scored("t", model.RoleTop, 50, 40, nil)},
			model.RoleBottom: {scored("b", model.RoleBottom, 50, 40, nil)},
			model.RoleShoes:  {scored("s", model.RoleShoes, 50, 40, nil)},
		}

		Convey("When a strong outer layer is available", func() {
			pools := map[model.Role][]model.ScoredItem{
				model.RoleTop:    core[model.RoleTop],
				model.RoleBottom: core[model.RoleBottom],
				model.RoleShoes:  core[model.RoleShoes],
				model.RoleOuter:  {scored("o", model.RoleOuter, 95, 90, nil)},
			}
			out := a.Assemble(pools, model.Intent{}, model.WeightProfile{})
			So(out, ShouldHaveLength, 1)

			Convey("Then the outer is added because it improves the score", func() {
				So(out[0].Slots, ShouldHaveLength, 4)
				So(out[0].Score, ShouldBeGreaterThan, 50)
			})
		})

		Convey("When the only outer layer would drag the score down", func() {
			pools := map[model.Role][]model.ScoredItem{
				model.RoleTop:    core[model.RoleTop],
				model.RoleBottom: core[model.RoleBottom],
				model.RoleShoes:  core[model.RoleShoes],
				model.RoleOuter:  {scored("o", model.RoleOuter, 5, 90, nil)},
			}
			out := a.Assemble(pools, model.Intent{}, model.WeightProfile{})
			So(out, ShouldHaveLength, 1)

			Convey("Then the core outfit is kept as is", func() {
				So(out[0].Slots, ShouldHaveLength, 3)
			})
		})

		Convey("When more accessories are available than the cap allows", func() {
			a := assembly.New(assembly.WithMaxAccessories(1))
			pools := map[model.Role][]model.ScoredItem{
				model.RoleTop:       core[model.RoleTop],
				model.RoleBottom:    core[model.RoleBottom],
				model.RoleShoes:     core[model.RoleShoes],
				model.RoleAccessory: {scored("a1", model.RoleAccessory, 95, 20, nil), scored("a2", model.RoleAccessory, 94, 20, nil)},
			}
			out := a.Assemble(pools, model.Intent{}, model.WeightProfile{})
			So(out, ShouldHaveLength, 1)

			Convey("Then at most one accessory is attached", func() {
				var accessories int
				for _, s := range out[0].Slots {
					if s.Role == model.RoleAccessory {
						accessories++
					}
				}
				So(accessories, ShouldEqual, 1)
			})
		})
	})
}

func TestAssembler_Determinism(t *testing.T) {
	Convey("Given fixed pools", t, func() {
		a := assembly.New()
		pools := map[model.Role][]model.ScoredItem{
			model.RoleTop: {
				scored("t1", model.RoleTop, 90, 40, map[string]string{model.DimColor: "navy"}),
				scored("t2", model.RoleTop, 70, 30, map[string]string{model.DimColor: "white"}),
			},
			model.RoleBottom: {scored("b1", model.RoleBottom, 80, 60, map[string]string{model.DimColor: "black"})},
			model.RoleShoes:  {scored("s1", model.RoleShoes, 75, 80, nil)},
			model.RoleOuter:  {scored("o1", model.RoleOuter, 85, 120, map[string]string{model.DimColor: "navy"})},
		}
		intent := model.Intent{Palette: []string{"navy", "white"}}

		Convey("When assembling twice", func() {
			first := a.Assemble(pools, intent, model.WeightProfile{CohesionBonusCap: 20})
			second := a.Assemble(pools, intent, model.WeightProfile{CohesionBonusCap: 20})

			Convey("Then the outputs are identical", func() {
				So(first, ShouldResemble, second)
			})
		})
	})
}
