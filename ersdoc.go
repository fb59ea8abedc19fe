// Package ersdoc ingests the HMRC Employment-Related Securities Manual
// from www.gov.uk into retrieval-sized chunks and answers natural
// language questions over them. It crawls the manual breadth-first from
// a set of seed pages, extracts page content, splits it into overlapping
// chunks, and persists the result together with the discovery graph and
// a failure manifest.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., http/,
// goquery/, trafilatura/, sqlite/, gemini/).
package ersdoc
