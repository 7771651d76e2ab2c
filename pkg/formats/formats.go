// Package formats provides parsers for mesh file formats.
package formats
