// Package adorn enriches scraped article HTML with auto-placed images and
// auto-generated visual widgets (timelines, key-fact panels, stat cards,
// definition boxes). It parses an article into an addressable outline of
// sections and paragraphs with stable anchor ids, asks an LLM where images
// and widgets belong, resolves slot content via image search and structured
// data extraction, and splices the results back into the original HTML.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, gemini/, sqlite/).
package adorn
