// Package post defines the post record returned by the rule34 post API and
// decodes it from the API's JSON wire format.
//
// A Post is built once from a JSON object and is not mutated afterwards.
// Every key listed in RequiredFields must be present in the source object;
// a missing key yields a *FieldMissingError rather than a zero value.
package post
