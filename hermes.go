// Package hermes provides a local semantic search service for PDF files.
// The user designates a directory of PDFs; a background indexer extracts
// page text, embeds it and stores it in SQLite, and free-text queries are
// answered with the nearest page snippets.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, openai/, pdf/).
package hermes
