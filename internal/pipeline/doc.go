// Package pipeline runs one classification pass: parse FASTA into a Store,
// extract feature vectors, predict with a model.Classifier, assemble the
// result table and write the output file set.
//
// The only contract a model has to meet is model.Classifier. Nothing is
// written to disk until assembly has succeeded.
package pipeline
