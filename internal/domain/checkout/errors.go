package checkout

import "errors"

var ErrMemberNotApproved = errors.New("member is not approved for purchases")
