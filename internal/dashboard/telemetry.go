package dashboard

// Telemetry constants for counters
const (
	// telemetryRefreshErrors counts failed refresh cycles
	telemetryRefreshErrors = "snapshot.refresh.errors"

	// telemetryFetchErrors counts errors that occur when fetching candles from the source
	telemetryFetchErrors = "snapshot.fetch.errors"

	// telemetryLiveStreamErrors tracks errors reported by the live kline stream
	telemetryLiveStreamErrors = "snapshot.stream.errors"
)

// Telemetry constants for timings
const (
	// telemetryFetchDuration measures the time taken to fetch candles from the source
	telemetryFetchDuration = "snapshot.fetch.duration"

	// telemetryCalculateIndicators measures time spent deriving the indicator series
	telemetryCalculateIndicators = "snapshot.calculate_indicators.duration"
)

// Telemetry constants for gauges
const (
	// telemetryFetchCandlesCount tracks the number of candles fetched from the source
	telemetryFetchCandlesCount = "snapshot.fetch.candles_count"

	// telemetryLastRSI exports the latest RSI value of the tracked pair
	telemetryLastRSI = "snapshot.rsi.last"
)

// Telemetry constants for spans
const (
	// telemetrySpanRefresh represents one full refresh cycle
	telemetrySpanRefresh = "refreshSnapshot"

	// telemetrySpanFetchCandles tracks the operation of fetching candles from a source
	telemetrySpanFetchCandles = "fetchCandles"

	// telemetrySpanBuildSnapshot represents deriving indicators from fetched data
	telemetrySpanBuildSnapshot = "buildSnapshot"

	// telemetrySpanCombinedView tracks an on-demand combined view request
	telemetrySpanCombinedView = "combinedView"
)
