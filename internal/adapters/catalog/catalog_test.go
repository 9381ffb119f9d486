package catalog_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/carver/wishforge/internal/adapters/catalog"
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

const itemComponentJSON = `{
	"1234": {
		"displayProperties": {"name": "Fatebringer", "description": ""},
		"itemTypeDisplayName": "Hand Cannon",
		"itemType": 3,
		"itemSubType": 7,
		"inventory": {"tierTypeName": "Legendary"}
	},
	"5678": {
		"displayProperties": {"name": "Outlaw", "description": "Precision final blows decrease reload time."},
		"itemTypeDisplayName": "Trait",
		"itemType": 19,
		"itemSubType": 0,
		"inventory": {"tierTypeName": "Common"}
	},
	"9999": {
		"displayProperties": {"name": "", "description": "nameless entry"},
		"itemTypeDisplayName": "Hand Cannon",
		"itemType": 3,
		"itemSubType": 7,
		"inventory": {"tierTypeName": "Legendary"}
	}
}`

// fakeManifest serves the manifest endpoint and the item component, counting
// component downloads so tests can tell a snapshot hit from a rebuild.
type fakeManifest struct {
	version   atomic.Value
	downloads atomic.Int64
	server    *httptest.Server
}

func newFakeManifest(version string) *fakeManifest {
	f := &fakeManifest{}
	f.version.Store(version)
	mux := http.NewServeMux()
	mux.HandleFunc("/Destiny2/Manifest/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-Key") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprintf(w, `{"Response": {
			"version": %q,
			"jsonWorldComponentContentPaths": {
				"en": {"DestinyInventoryItemDefinition": "/common/destiny2_content/json/en/items.json"}
			}
		}}`, f.version.Load())
	})
	mux.HandleFunc("/common/destiny2_content/json/en/items.json", func(w http.ResponseWriter, _ *http.Request) {
		f.downloads.Add(1)
		fmt.Fprint(w, itemComponentJSON)
	})
	f.server = httptest.NewServer(mux)
	return f
}

func (f *fakeManifest) catalog() (*catalog.Catalog, error) {
	return catalog.New("test-key",
		catalog.WithCachePath(":memory:"),
		catalog.WithBaseURLs(f.server.URL, f.server.URL),
		catalog.WithRequestsPerSecond(1000),
	)
}

func TestCatalogOpen(t *testing.T) {
	Convey("Given a manifest service", t, func() {
		fake := newFakeManifest("v1")
		Reset(fake.server.Close)
		ctx := context.Background()

		Convey("Open downloads and stores the snapshot", func() {
			cat, err := fake.catalog()
			So(err, ShouldBeNil)
			Reset(func() { cat.Close() })

			So(cat.Open(ctx), ShouldBeNil)
			So(fake.downloads.Load(), ShouldEqual, 1)

			Convey("Nameless entries are dropped during ingest", func() {
				_, err := cat.LookupByHash(ctx, 9999)
				So(errors.Is(err, catalog.ErrNotFound), ShouldBeTrue)
			})

			Convey("Stored items are searchable and classified", func() {
				got, err := cat.SearchByName(ctx, "outlaw")
				So(err, ShouldBeNil)
				So(len(got), ShouldEqual, 1)
				So(got[0].Hash, ShouldEqual, 5678)
				So(cat.Classify(got[0]), ShouldEqual, model.ClassPerk)
			})

			Convey("Reopening on the same version is a snapshot hit", func() {
				So(cat.Open(ctx), ShouldBeNil)
				So(fake.downloads.Load(), ShouldEqual, 1)
			})

			Convey("A version bump triggers a rebuild", func() {
				fake.version.Store("v2")
				So(cat.Open(ctx), ShouldBeNil)
				So(fake.downloads.Load(), ShouldEqual, 2)
			})
		})

		Convey("A failing manifest endpoint is a snapshot error", func() {
			fake.server.Close()
			cat, err := fake.catalog()
			So(err, ShouldBeNil)
			Reset(func() { cat.Close() })

			err = cat.Open(ctx)
			So(errors.Is(err, catalog.ErrSnapshot), ShouldBeTrue)
		})

		Convey("LookupByHash returns the full definition", func() {
			cat, err := fake.catalog()
			So(err, ShouldBeNil)
			Reset(func() { cat.Close() })
			So(cat.Open(ctx), ShouldBeNil)

			got, err := cat.LookupByHash(ctx, 1234)
			So(err, ShouldBeNil)
			So(got.Name, ShouldEqual, "Fatebringer")
			So(got.TypeDisplayName, ShouldEqual, "Hand Cannon")
			So(got.TierTypeName, ShouldEqual, "Legendary")
			So(cat.Classify(got), ShouldEqual, model.ClassWeapon)
		})
	})
}
