package points

import "errors"

// ErrAlreadyRolledOver marks an employee whose balance was already
// snapshotted for the month; the rollover treats it as a skip.
var ErrAlreadyRolledOver = errors.New("points already rolled over for this month")
