// Package querystring parses and stringifies the query component of a URL.
//
// A query is a flat, insertion-ordered mapping from keys to values, where a
// value is nil (a bare key), a string, a number, a boolean, or a flat slice of
// those. Parse turns text such as "a=1&a=2&flag" into a [Query] and Stringify
// turns a [Query] back into text.
//
// Keys carrying several values can be written three ways on the wire, chosen
// with [WithArrayFormat]: repeated keys (a=1&a=2), bracket-suffixed keys
// (a[]=1&a[]=2) or a comma-joined value (a=1,2). Parsed values are strings
// unless a declared type ([WithTypes]) or one of the inference flags
// ([WithParseNumber], [WithParseBoolean], [WithParseNull]) converts them.
// Values failing a declared type are handled by a [TypeErrorPolicy].
//
// Nested objects are not supported: a nested value given to Stringify is
// written as its default textual form.
package querystring
