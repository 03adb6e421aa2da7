// Package renderer turns the result of a fund run into output tables and
// reports: CSV tables, a JSONL trade blotter, a markdown summary and its HTML
// rendering.
package renderer
