// Package formats provides encoders and parsers for stored mesh assets and
// prefab documents.
package formats
