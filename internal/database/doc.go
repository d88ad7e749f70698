// Package database provides SQLite-based storage for evaluation history.
//
// HistoryDB stores every saved evaluation as a JSON report together with
// its total score, grade and per-category scores, so that the history
// command can list past evaluations and compare the latest two without
// decoding every report.
//
// The database is a single file (sitegrade.db) opened through the CGO-free
// modernc.org/sqlite driver with WAL enabled.
package database
