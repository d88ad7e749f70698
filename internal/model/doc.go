// Package model defines the data structures shared by sitegrade packages.
//
// This package contains the following main types:
//   - PageSample: The fetched page that is being evaluated
//   - CheckRule: A single weighted presence check
//   - CategoryScore: Raw and capped points of one scoring category
//   - Report: The final evaluation with grade and recommendations
//
// The models are serializable to JSON for report output and history storage.
package model
