package service_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"

	service "github.com/carver/wishforge/internal/app"
	"github.com/carver/wishforge/internal/domain/model"
	"github.com/carver/wishforge/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type fakeSource struct {
	entries []model.RawEntry
	err     error
}

func (f *fakeSource) ListEntries(context.Context) ([]model.RawEntry, error) {
	return f.entries, f.err
}

// fakeCatalog answers searches from a fixed item list. Classification is by
// item type code, matching the real catalog's convention.
type fakeCatalog struct {
	items   []*model.ItemDefinition
	openErr error
	opened  bool
}

func (f *fakeCatalog) Open(context.Context) error {
	f.opened = true
	return f.openErr
}

func (f *fakeCatalog) SearchByName(_ context.Context, text string) ([]*model.ItemDefinition, error) {
	var out []*model.ItemDefinition
	needle := strings.ToLower(text)
	for _, item := range f.items {
		if strings.Contains(strings.ToLower(item.Name), needle) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeCatalog) Classify(item *model.ItemDefinition) model.ItemClass {
	switch item.ItemType {
	case 3:
		return model.ClassWeapon
	case 19:
		return model.ClassPerk
	default:
		return model.ClassOther
	}
}

type fakeSink struct {
	mu      sync.Mutex
	content string
	writes  int
	err     error
}

func (f *fakeSink) Write(_ context.Context, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.content = content
	f.writes++
	return f.err
}

func TestServiceRun(t *testing.T) {
	Convey("Given a wired pipeline", t, func() {
		cat := &fakeCatalog{items: []*model.ItemDefinition{
			{Hash: 100, Name: "Fatebringer", TypeDisplayName: "Hand Cannon", ItemType: 3},
			{Hash: 1, Name: "Explosive Payload", TypeDisplayName: "Trait", ItemType: 19},
			{Hash: 2, Name: "Firefly", TypeDisplayName: "Trait", ItemType: 19},
		}}
		src := &fakeSource{entries: []model.RawEntry{
			{Name: "Fatebringer", Tier: "S", ColumnOne: []string{"Explosive Payload"}, ColumnTwo: []string{"Firefly"}},
			{Name: "Imaginary Gun", Tier: "S", ColumnOne: []string{"Explosive Payload"}, ColumnTwo: []string{"Firefly"}},
		}}
		sink := &fakeSink{}

		svc := service.New(
			service.WithSource(src),
			service.WithCatalog(cat),
			service.WithSink(sink),
			service.WithPolicy(model.TierPolicy{"S": model.RequireBothColumns}),
			service.WithOutputPath("out/dim_wishlist.txt"),
			service.WithWorkerCount(2),
		)

		Convey("Run writes the wishlist with matched weapons only", func() {
			So(svc.Run(context.Background()), ShouldBeNil)
			So(cat.opened, ShouldBeTrue)
			So(sink.writes, ShouldEqual, 1)

			So(sink.content, ShouldContainSubstring, "Fatebringer - Tier: S\nitem=100&perks=1,2\n")
			So(sink.content, ShouldNotContainSubstring, "Imaginary Gun")

			Convey("And the header reflects the run", func() {
				So(sink.content, ShouldStartWith, "// Wishlist generated by wishforge\n")
				So(sink.content, ShouldContainSubstring, "// Weapons processed: 1\n")
				So(sink.content, ShouldContainSubstring, "// Format: dim_wishlist.txt\n")
			})
		})

		Convey("A snapshot failure aborts the run before any write", func() {
			cat.openErr = errors.New("manifest unreachable")
			So(svc.Run(context.Background()), ShouldNotBeNil)
			So(sink.writes, ShouldEqual, 0)
		})

		Convey("A source failure aborts the run before any write", func() {
			src.err = errors.New("metadata unreachable")
			So(svc.Run(context.Background()), ShouldNotBeNil)
			So(sink.writes, ShouldEqual, 0)
		})

		Convey("A sink failure surfaces as an error", func() {
			sink.err = errors.New("disk full")
			So(svc.Run(context.Background()), ShouldNotBeNil)
		})

		Convey("A run with no entries still writes the header", func() {
			src.entries = nil
			So(svc.Run(context.Background()), ShouldBeNil)
			So(sink.content, ShouldContainSubstring, "// Weapons processed: 0\n")
		})
	})

	Convey("A service with missing dependencies refuses to run", t, func() {
		svc := service.New()
		So(svc.Run(context.Background()), ShouldNotBeNil)
	})
}
