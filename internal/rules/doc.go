// Package rules implements the line length rules.
//
// All rules share one scan loop and differ only in their Policy:
//
//	CR9000   threshold from stylecop.json, silent until the first namespace line
//	CR9001   fixed threshold 119, reported as 120, active from the first line
//	VCR9000  threshold from stylecop.json, active from the first line,
//	         anonymous methods are exempt as well
//
// Every call to Run or Scan owns its own scan state, so one Policy value can
// be used from any number of goroutines.
package rules
