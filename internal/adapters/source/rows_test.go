package source

import (
	"testing"

	"github.com/carver/wishforge/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func grid(rows ...[]string) [][]string {
	banner := []string{"Curated Rolls"}
	header := []string{"Name", "Column 1", "Column 2", "Tier"}
	return append([][]string{banner, header}, rows...)
}

func TestParseRows(t *testing.T) {
	Convey("parseRows", t, func() {
		Convey("Parses well-formed rows into entries", func() {
			got := parseRows(grid(
				[]string{"Fatebringer", "Explosive Payload\nFirefly", "Frenzy", "S"},
			))

			So(got, ShouldResemble, []model.RawEntry{{
				Name:      "Fatebringer",
				Tier:      "S",
				ColumnOne: []string{"Explosive Payload", "Firefly"},
				ColumnTwo: []string{"Frenzy"},
			}})
		})

		Convey("Header labels are matched case-insensitively at any position", func() {
			values := [][]string{
				{"banner"},
				{"TIER", "junk", "name", "COLUMN 2", "column 1"},
				{"A", "x", "Fatebringer", "Frenzy", "Firefly"},
			}
			got := parseRows(values)

			So(len(got), ShouldEqual, 1)
			So(got[0].Tier, ShouldEqual, "A")
			So(got[0].ColumnOne, ShouldResemble, []string{"Firefly"})
			So(got[0].ColumnTwo, ShouldResemble, []string{"Frenzy"})
		})

		Convey("A tab missing a required header yields nothing", func() {
			values := [][]string{
				{"banner"},
				{"Name", "Column 1", "Tier"},
				{"Fatebringer", "Firefly", "S"},
			}
			So(parseRows(values), ShouldBeNil)
		})

		Convey("A tab with no data rows yields nothing", func() {
			So(parseRows(grid()), ShouldBeNil)
			So(parseRows(nil), ShouldBeNil)
		})

		Convey("Placeholder rows inside the data region are skipped", func() {
			got := parseRows(grid(
				[]string{"Name", "Column 1", "Column 2", "Tier"},
				[]string{"Weapon", "a", "b", "S"},
				[]string{"Ideal", "a", "b", "S"},
				[]string{"Fatebringer", "a", "b", "/"},
				[]string{"Fatebringer", "Firefly", "Frenzy", "S"},
			))

			So(len(got), ShouldEqual, 1)
			So(got[0].Name, ShouldEqual, "Fatebringer")
		})

		Convey("Rows without a name or tier are skipped", func() {
			got := parseRows(grid(
				[]string{"", "a", "b", "S"},
				[]string{"Fatebringer", "a", "b", ""},
			))
			So(got, ShouldBeNil)
		})

		Convey("Short rows are skipped", func() {
			got := parseRows(grid(
				[]string{"Fatebringer", "Firefly"},
			))
			So(got, ShouldBeNil)
		})

		Convey("Names are truncated at annotations", func() {
			got := parseRows(grid(
				[]string{"Hung Jury SR4\n(Adept)", "a", "b", "S"},
				[]string{"Midnight Coup BRAVE version", "a", "b", "S"},
			))

			So(len(got), ShouldEqual, 2)
			So(got[0].Name, ShouldEqual, "Hung Jury SR4")
			So(got[1].Name, ShouldEqual, "Midnight Coup")
		})

		Convey("Rows with no perks in either column are dropped", func() {
			got := parseRows(grid(
				[]string{"Fatebringer", "", "", "S"},
				[]string{"Fatebringer", "\n \n", "", "S"},
			))
			So(got, ShouldBeNil)
		})
	})
}

func TestSplitPerks(t *testing.T) {
	Convey("splitPerks", t, func() {
		So(splitPerks("Outlaw\nRampage"), ShouldResemble, []string{"Outlaw", "Rampage"})
		So(splitPerks("  Outlaw  \n\n"), ShouldResemble, []string{"Outlaw"})
		So(splitPerks(""), ShouldBeNil)
	})
}
