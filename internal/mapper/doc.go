// Package mapper applies mapping tables to decoded records.
//
// The engine walks a record top-down. At every level it snapshots the
// level's keys and their original values, then builds a fresh output record
// from that plan:
//
//   - Identity keeps key and value.
//   - Rename writes the value under the new key and protects that key from
//     pruning at this level.
//   - Nest merges the value into a one-level container, creating it on first
//     use and protecting it from pruning.
//   - Format replaces the value with the formatter's result.
//   - Keys absent from the table are dropped when the table prunes, unless a
//     target already protected them at this level. When the table keeps
//     them, an input record at a Nest container is merged into it.
//
// A record value mapped by Identity, Rename or Nest is transformed with the
// same table before it is placed, so nested entities share the parent's
// rules and get their own whitelist. Lists, empty records, index-keyed
// records and scalars are leaves and pass through unchanged. The top-level
// record is always mapped, whatever its keys.
//
// The input is never modified. Transforms are reentrant and may run
// concurrently on independent or shared inputs.
package mapper
