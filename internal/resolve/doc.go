// Package resolve maps vendor source files to icon records.
//
// Each source file is governed by one release rule. The rule's capture
// patterns derive a temporary category and identifier from the file path;
// the curated configuration then supplies the authoritative name, color and
// group settings. Files without a curated entry are placed in the
// Uncategorized category under their derived identifier.
//
// Pattern mismatches and configuration shape errors abort the whole batch.
// Duplicate identifiers and color fallbacks are recorded as warnings and the
// batch continues, so every input file yields exactly one record.
package resolve
