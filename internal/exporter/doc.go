// Package exporter serializes metrics reports for the export boundary:
// ordered plain key/value text, CSV, and Excel workbooks. Output order is
// fixed so repeated exports of the same report are byte-identical.
package exporter
