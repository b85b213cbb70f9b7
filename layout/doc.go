// Package layout turns styled logical lines into width-bounded visual lines
// and indexes them document-wide.
//
// Offsets in this package are character offsets within a logical line, the
// same unit the buffer package uses. Widths are whatever unit the injected
// Measurer reports: terminal cells for CellMeasurer, scaled units for
// ScaledMeasurer.
package layout
