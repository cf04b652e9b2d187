// Package normalize turns free-form movie titles and distributor credits into
// comparison keys.
//
// Keys are only ever compared, never displayed. Two titles refer to the same
// movie when their keys are equal, which makes punctuation, spacing and case
// differences between the reference list, the box-office source and pool
// entries irrelevant. Distributor credits are split into their individual
// parts here; canonical naming of those parts lives in the aliases package.
package normalize
