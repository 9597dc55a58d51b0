// Package checksum hashes vendor icon sources for the release catalog.
//
// Raster sources are hashed byte for byte. SVG sources are hashed after
// normalization, so a vendor re-export that only changes line endings,
// indentation or the generator comment keeps its checksum.
package checksum
