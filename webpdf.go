// Package webpdf provides a CLI tool that archives a website as PDF.
// It crawls a site from a seed URL, stays on the seed's host, renders every
// accepted page to its own PDF file, and merges those files into a single
// document in discovery order.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, pdfcpu/).
package webpdf
