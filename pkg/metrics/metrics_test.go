package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{1, 10, 100}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with empty option values", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the defaults are kept and creation succeeds", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("Recording catalog metrics should not panic", func() {
			So(func() {
				RecordCatalogRequest()
				RecordCatalogRequestError()
				RecordCatalogRequestLatency(12.5)
				RecordSnapshotHit()
				RecordSnapshotRebuild()
				UpdateSnapshotItems(25000)
			}, ShouldNotPanic)
		})

		Convey("Recording matching metrics should not panic", func() {
			So(func() {
				RecordSearchQuery()
				RecordMatchCacheHit()
				RecordWeaponMatched()
				RecordWeaponMissing()
				RecordPerkMatched()
				RecordPerkMissing()
			}, ShouldNotPanic)
		})

		Convey("Recording output metrics should not panic", func() {
			So(func() {
				RecordRollLines(0)
				RecordRollLines(5)
			}, ShouldNotPanic)
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given concurrent metric recording", t, func() {
		done := make(chan bool, 8)
		for i := 0; i < 8; i++ {
			go func() {
				for j := 0; j < 100; j++ {
					RecordSearchQuery()
					RecordCatalogRequestLatency(float64(j))
					UpdateSnapshotItems(j)
				}
				done <- true
			}()
		}
		for i := 0; i < 8; i++ {
			<-done
		}

		Convey("Then it should handle concurrent access without panics", func() {
			So(true, ShouldBeTrue)
		})
	})
}
