// Package monitor keeps the live view of the wireless link: a Poller that
// samples the connection on a fixed interval, the rolling History behind
// the trend graphs, and the Bubble Tea dashboard that renders both.
//
// # Architecture
//
// The Poller owns acquisition. It calls GetConnectionMetrics every interval
// (default 2s), turns each snapshot into a MetricSample, scores it, evaluates
// alerts and publishes a State to subscribers. Only one acquisition is ever
// in flight. A failed tick keeps the previous data and marks it stale.
//
// The dashboard is a plain consumer. Model subscribes to the poller and
// re-renders whenever a State arrives:
//
//	Poller.Run ──State──▶ subscription ──stateMsg──▶ Model.Update ──▶ View
//
// # History
//
// History is a fixed-size ring buffer (20 samples by default). Pushing into
// a full buffer drops the oldest sample. Series skips samples whose metric
// was unavailable so graphs never plot placeholder values.
//
// # Keyboard Shortcuts
//
//	q, Ctrl+C   - Quit
//	r           - Poll now
//	n           - Scan for networks
//	Tab         - Toggle the network list
//	Enter       - Connection details
//	Esc         - Back
//	?           - Toggle help overlay
package monitor
