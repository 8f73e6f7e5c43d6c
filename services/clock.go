package services

import "time"

// now supplies the timestamps for derived state changes (lesson/module/quiz
// completion, enrollment transitions). Creation timestamps may instead be
// accepted verbatim from caller input; that asymmetry is deliberate, since
// completion history must not be forgeable. Tests override this.
var now = time.Now
