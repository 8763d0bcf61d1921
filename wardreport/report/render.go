package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Render writes the report as sectioned text tables. Presentation performs
// no computation beyond percentage formatting.
func Render(w io.Writer, r *Report) error {
	roster := r.Members + r.NonMembers

	sections := []struct {
		title string
		rows  []table.Row
	}{
		{
			"Membership",
			[]table.Row{
				{"Members", r.Members, Percent(r.Members, roster)},
				{"Non-members", r.NonMembers, Percent(r.NonMembers, roster)},
				{"Households", r.Households, ""},
			},
		},
		{
			"Age Groups",
			[]table.Row{
				{"Primary (under 12)", r.Primary, Percent(r.Primary, r.Members)},
				{"Youth (12-17)", r.Youth, Percent(r.Youth, r.Members)},
				{"Adults (18+)", r.Adults, Percent(r.Adults, r.Members)},
			},
		},
		{
			"Brethren",
			[]table.Row{
				{"Brethren", r.Brethren, Percent(r.Brethren, r.Adults)},
				{"With a calling", r.BrethrenWithCalling, Percent(r.BrethrenWithCalling, r.Brethren)},
				{"Without a calling", r.BrethrenWithoutCalling, Percent(r.BrethrenWithoutCalling, r.Brethren)},
				{"Melchizedek", r.BrethrenPriesthood.Melchizedek(), Percent(r.BrethrenPriesthood.Melchizedek(), r.Brethren)},
				{"High Priests", r.BrethrenPriesthood.HighPriest, ""},
				{"Elders", r.BrethrenPriesthood.Elder, ""},
				{"Aaronic", r.BrethrenPriesthood.Aaronic(), Percent(r.BrethrenPriesthood.Aaronic(), r.Brethren)},
				{"Unordained", r.BrethrenPriesthood.Unordained, Percent(r.BrethrenPriesthood.Unordained, r.Brethren)},
			},
		},
		{
			"Sisters",
			[]table.Row{
				{"Sisters", r.Sisters, Percent(r.Sisters, r.Adults)},
				{"With a calling", r.SistersWithCalling, Percent(r.SistersWithCalling, r.Sisters)},
				{"Without a calling", r.SistersWithoutCalling, Percent(r.SistersWithoutCalling, r.Sisters)},
			},
		},
		{
			"Young Men",
			[]table.Row{
				{"Young Men", r.YoungMen, Percent(r.YoungMen, r.Youth)},
				{"Young Women", r.YoungWomen, Percent(r.YoungWomen, r.Youth)},
				{"Priests", r.YoungMenPriesthood.Priest, ""},
				{"Teachers", r.YoungMenPriesthood.Teacher, ""},
				{"Deacons", r.YoungMenPriesthood.Deacon, ""},
				{"Unordained", r.YoungMenPriesthood.Unordained, ""},
			},
		},
		{
			"Primary",
			[]table.Row{
				{"Age 0-2", r.EarlyChildhood, ""},
				{"Age 3-7", r.PreBaptism, ""},
				{"Age 8+", r.BaptismEligible, ""},
			},
		},
		{
			"Single Adults",
			[]table.Row{
				{"Age 18-30", r.Single18To30, ""},
				{"Age 31-45", r.Single31To45, ""},
				{"Age 46+", r.Single46Plus, ""},
			},
		},
		{
			"Temple Recommends",
			[]table.Row{
				{"Endowed adults", r.Endowed, Percent(r.Endowed, r.Adults)},
				{"Not endowed", r.NotEndowed, Percent(r.NotEndowed, r.Adults)},
				{"Current recommends", r.CurrentRecommend, ""},
				{"Active", r.RecommendActive, ""},
				{"Expiring this month", r.RecommendExpiringThisMonth, ""},
				{"Expiring next month", r.RecommendExpiringNextMonth, ""},
				{"Expired recommends", r.ExpiredRecommend, ""},
				{"Expired < 1 month", r.RecommendExpiredLessThan1Mo, ""},
				{"Expired < 3 months", r.RecommendExpiredLessThan3Mos, ""},
				{"Expired > 3 months", r.RecommendExpiredOver3Mos, ""},
				{"Canceled", r.RecommendCanceled, ""},
				{"Lost or stolen", r.RecommendLostOrStolen, ""},
			},
		},
	}

	for _, section := range sections {
		tbl := table.NewWriter()
		tbl.SetStyle(table.StyleLight)
		tbl.Style().Options.SeparateRows = false
		tbl.Style().Options.SeparateColumns = false
		tbl.Style().Options.DrawBorder = false
		tbl.Style().Options.SeparateHeader = false
		for _, row := range section.rows {
			tbl.AppendRow(row)
		}
		if _, err := fmt.Fprintf(w, "%s:\n%s\n\n", section.title, tbl.Render()); err != nil {
			return err
		}
	}

	return nil
}
