// Package sitemirror provides a website mirroring tool. It fetches one or
// more pages, discovers the static and dynamically-loaded assets those pages
// depend on (including references buried inside JavaScript bundles, CSS, and
// JSON), assigns each remote resource a deterministic local path, and
// rewrites every in-document reference so the mirror works when served from
// a plain file server.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency or concern (e.g., http/, goquery/, crawl/).
package sitemirror
