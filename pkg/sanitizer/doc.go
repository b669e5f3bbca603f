// Package sanitizer normalizes free-form booking input before validation.
//
// All functions are idempotent. Invalid input is never an error here; it is
// normalized as far as possible and left for the validator to reject.
//
// Normalization includes:
//   - Strings: collapse inner whitespace, trim leading and trailing spaces
//   - Car types and time slots: trimmed only, case is significant
//   - Add-ons: every entry trimmed and kept, so duplicates are priced and
//     blanks reach the validator
//   - Form selections: UniqueAddOns drops blanks and repeats
package sanitizer
