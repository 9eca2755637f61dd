package bitvector

import "github.com/zeebo/errs"

// Error is the class for all errors originating in this package.
var Error = errs.Class("bitvector")
