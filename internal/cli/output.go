package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/okian/ensemble/internal/domain/model"
)

// writeJSON emits the full ranked result for machine consumers.
func writeJSON(w io.Writer, res model.RankedResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// writeTable renders ranked outfits as a terminal table with fallback
// notices underneath.
func writeTable(w io.Writer, res model.RankedResult) error {
	yellow := color.New(color.FgYellow).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	if res.Empty() {
		fmt.Fprintln(w, yellow("no outfits matched the request"))
		for _, n := range res.FallbackNotices {
			fmt.Fprintf(w, "  note: %s\n", noticeText(n))
		}
		return nil
	}

	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{"Rank", "Score", "Price", "Items", "Bonus", "Penalties", "Flags"})

	var data [][]string
	for i, outfit := range res.Outfits {
		flags := ""
		if outfit.Partial {
			flags = "partial: " + rolesText(outfit.MissingRoles)
		}
		data = append(data, []string{
			fmt.Sprintf("%d", i+1),
			green(fmt.Sprintf("%.1f", outfit.Score)),
			fmt.Sprintf("%.2f", outfit.TotalPrice),
			slotsText(outfit.Slots),
			fmt.Sprintf("+%.1f", outfit.Breakdown.CohesionBonus),
			penaltiesText(outfit.Breakdown.Penalties),
			flags,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	for _, n := range res.FallbackNotices {
		fmt.Fprintf(w, "%s %s\n", yellow("note:"), noticeText(n))
	}
	return nil
}

// slotsText summarizes an outfit's items as "role:category" pairs.
func slotsText(slots []model.Slot) string {
	parts := make([]string, len(slots))
	for i, s := range slots {
		label, ok := s.Item.Attribute(model.DimCategory)
		if !ok {
			label = shortID(s.Item.ID)
		}
		parts[i] = fmt.Sprintf("%s:%s", s.Role, label)
	}
	return strings.Join(parts, " ")
}

func penaltiesText(penalties []model.ScoreLine) string {
	if len(penalties) == 0 {
		return "-"
	}
	parts := make([]string, len(penalties))
	for i, p := range penalties {
		parts[i] = fmt.Sprintf("%s -%.1f", p.Name, p.Value)
	}
	return strings.Join(parts, ", ")
}

func rolesText(roles []model.Role) string {
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = string(r)
	}
	return strings.Join(parts, ", ")
}

func noticeText(n model.FallbackNotice) string {
	if n.Role != "" {
		return fmt.Sprintf("[%s] %s", n.Role, n.Reason)
	}
	return n.Reason
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
