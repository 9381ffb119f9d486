package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/carver/wishforge/internal/adapters/catalog"
	"github.com/carver/wishforge/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestStore(t *testing.T) {
	Convey("Given an empty snapshot store", t, func() {
		store, err := catalog.OpenStore(":memory:")
		So(err, ShouldBeNil)
		Reset(func() { store.Close() })

		ctx := context.Background()

		Convey("It starts without a version or items", func() {
			version, err := store.Version(ctx)
			So(err, ShouldBeNil)
			So(version, ShouldBeEmpty)

			count, err := store.Count(ctx)
			So(err, ShouldBeNil)
			So(count, ShouldEqual, 0)
		})

		Convey("Replace stores items and records the manifest version", func() {
			items := []*model.ItemDefinition{
				{Hash: 1234, Name: "Fatebringer", TypeDisplayName: "Hand Cannon", ItemType: 3, SubType: 7, TierTypeName: "Legendary", Description: ""},
				{Hash: 5678, Name: "Outlaw", TypeDisplayName: "Trait", ItemType: 19, Description: "Precision final blows decrease reload time."},
			}
			So(store.Replace(ctx, "v100", items), ShouldBeNil)

			version, err := store.Version(ctx)
			So(err, ShouldBeNil)
			So(version, ShouldEqual, "v100")

			count, err := store.Count(ctx)
			So(err, ShouldBeNil)
			So(count, ShouldEqual, 2)

			Convey("SearchName matches case-insensitively on substrings", func() {
				got, err := store.SearchName(ctx, "FATE")
				So(err, ShouldBeNil)
				So(len(got), ShouldEqual, 1)
				So(got[0], ShouldResemble, items[0])
			})

			Convey("SearchName returns nothing for an unknown name", func() {
				got, err := store.SearchName(ctx, "thorn")
				So(err, ShouldBeNil)
				So(got, ShouldBeEmpty)
			})

			Convey("Lookup retrieves an item by hash", func() {
				got, err := store.Lookup(ctx, 5678)
				So(err, ShouldBeNil)
				So(got, ShouldResemble, items[1])
			})

			Convey("Lookup reports a missing hash as ErrNotFound", func() {
				_, err := store.Lookup(ctx, 999)
				So(errors.Is(err, catalog.ErrNotFound), ShouldBeTrue)
			})

			Convey("A later Replace swaps the snapshot wholesale", func() {
				swapped := []*model.ItemDefinition{
					{Hash: 42, Name: "Thorn", TypeDisplayName: "Hand Cannon", ItemType: 3, SubType: 7, TierTypeName: "Exotic"},
				}
				So(store.Replace(ctx, "v101", swapped), ShouldBeNil)

				version, err := store.Version(ctx)
				So(err, ShouldBeNil)
				So(version, ShouldEqual, "v101")

				count, err := store.Count(ctx)
				So(err, ShouldBeNil)
				So(count, ShouldEqual, 1)

				got, err := store.SearchName(ctx, "fate")
				So(err, ShouldBeNil)
				So(got, ShouldBeEmpty)
			})
		})
	})
}
