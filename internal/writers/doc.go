// Package writers turns a classification table into the run's output files.
//
// Design:
//   • Writers own all presentation knowledge (CSV/FASTA/JSON via package output).
//   • Pipeline stays orchestration-only; it hands over a Payload.
//   • Files are written atomically (temp file in the target directory + rename).
package writers
