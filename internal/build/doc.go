// Package build generates the PlantUML icon library from resolved icon
// records.
//
// Every icon is rendered to PNG (SVG sources through a Rasterizer, PNG
// sources copied or cropped), encoded as a PlantUML sprite and written as a
// category/<Target>.puml file embedding the sprite and the base64 images.
// Icons are processed concurrently on an errgroup; external tool failures
// that look like JVM resource exhaustion are retried.
//
// All reads and writes go through a filesystem.FileSystemProvider so that
// the whole pipeline runs against the in-memory provider in tests.
package build
