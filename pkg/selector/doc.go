// Package selector implements the CSS selector subset used by dombili's
// HTML host adapter.
//
// Supported syntax:
//
//   - tag:            "div", "article"
//   - class:          ".content", "div.card.active"
//   - id:             "#main", "section#hero"
//   - attribute:      "[data-id]", "input[type=text]", "a[rel='nofollow']"
//   - descendant:     "article p", "nav ul li"
//   - groups:         "h1, h2, h3"
//
// Selectors are compiled once with Parse and matched many times. Matching
// considers element nodes only; text and comment nodes never match.
package selector
