// Package wifi holds the normalized wireless link model and the pure
// functions built on it: normalization of parser output into a
// ConnectionSnapshot, estimation of unmeasurable metrics, the health score,
// and the alert rule list.
package wifi
