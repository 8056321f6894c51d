// Package fleet holds the screen-orchestration core shared by the TUI and
// the direct CLI commands: list reconciliation, yard grouping, form
// validation, error routing and the post-mutation refresh policy.
//
// The package owns no rendering. Screens feed it load results and user
// input, and read back {data, loading, error}-shaped state plus field-keyed
// validation errors. Loads for the two entities are independent: a failure
// loading vehicles never blocks yards and vice versa.
//
// Reconciliation rule: every load takes a token from ListState.Begin, and
// only the most recently initiated load may apply its result. A reload fired
// while an earlier load is still in flight therefore wins regardless of
// completion order.
package fleet
