// Package dataprocessing resolves uploaded tabular files into the Dataset
// model consumed by the analysis engine.
//
// Two input formats are supported: Excel workbooks (.xlsx, read with
// excelize) and delimited text (.csv). Both paths produce the same raw
// Table, which is schema-validated by the analysis package and then built
// into a typed Dataset here. The loader guarantees the engine's input
// contract: one row per player, one column per statistic, consistent typing
// per column.
package dataprocessing
