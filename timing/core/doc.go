// Package core holds the data model shared by the binning, normalization and
// plotting packages: [Series], the named-column [Table], [Range], the error
// taxonomy and the processor options every domain normalizer accepts.
package core
