// Package synthara provides structured web-data extraction orchestration.
// It turns a semantic query and a target row count into candidate URLs,
// fans them out in batches to an external Crawl4AI extraction backend,
// and aggregates the per-URL results into a unified row set.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., crawl4ai/, sqlite/, gemini/).
package synthara
