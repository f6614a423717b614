package core

import "sync"

const AVG_COUNT uint8 = 30

type MetricsState struct {
	FetchAVGCounter uint8
	FetchMStimes    [AVG_COUNT]float64
	FetchMSavg      float64

	FetchesStarted   int64
	SnapshotsApplied int64
	ImportsFailed    int64
}

var onceMetrics sync.Once
var metricsState *MetricsState = nil

func MetricsInitialize() error {
	onceMetrics.Do(func() {
		metricsState = &MetricsState{
			FetchMStimes: [AVG_COUNT]float64{0},
		}
	})
	return nil
}

// MetricsFetchStarted counts one fetch attempt handed to the provider.
func MetricsFetchStarted() {
	if metricsState == nil {
		return
	}
	metricsState.FetchesStarted++
}

// MetricsFetchCompleted records the wall time of a finished fetch and
// whether its snapshot was applied.
func MetricsFetchCompleted(elapsedSeconds float64, applied bool) {
	if metricsState == nil {
		return
	}
	if applied {
		metricsState.SnapshotsApplied++
	} else {
		metricsState.ImportsFailed++
	}

	// Calculate fetch ms average
	fetchMS := (elapsedSeconds * 1000.0)
	metricsState.FetchMStimes[metricsState.FetchAVGCounter] = fetchMS
	if metricsState.FetchAVGCounter == AVG_COUNT-1 {
		avg := 0.0
		for i := uint8(0); i < AVG_COUNT; i++ {
			avg += metricsState.FetchMStimes[i]
		}
		metricsState.FetchMSavg = avg / float64(AVG_COUNT)
	}
	metricsState.FetchAVGCounter++
	metricsState.FetchAVGCounter %= AVG_COUNT
}

func MetricsFetchTime() float64 {
	return metricsState.FetchMSavg
}

// MetricsImportTotals returns started, applied and failed counts in this order.
func MetricsImportTotals() (int64, int64, int64) {
	return metricsState.FetchesStarted, metricsState.SnapshotsApplied, metricsState.ImportsFailed
}
