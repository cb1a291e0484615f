// Package scoring turns the per-component findings of an analysis run into
// a single bounded validity score and an ordered list of human-readable
// issues.
//
// Every analyzer contributes to a [Signals] value; a [Policy] converts the
// signals into deductions. [DeductionPolicy] is the reference policy (flat,
// independently capped deductions); [LinearPolicy] is an alternative that
// scales penalties with the raw statistics. Both sit behind the same
// interface so callers can swap policies without touching the pipeline.
package scoring
