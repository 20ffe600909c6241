// Package data manages directories and files in the Algorithmia data API.
//
// Directories and files are addressed by data URIs such as
// "data://.my/photos/cat.jpg". Dir and File are immutable handles; all
// network calls take a context and return on first failure.
package data
