// Package xmldoc finds and reads compiler-generated XML documentation files
// (the <doc><members><member name="T:..."> format) and applies their text to
// generated OpenAPI schemas and operations.
package xmldoc
