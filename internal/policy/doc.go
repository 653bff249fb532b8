// Package policy holds the portal's authorization and eligibility rules as
// pure functions over models. Services call into it; it never touches storage.
package policy
