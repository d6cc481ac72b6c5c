package service

import "time"

// nowFunc is swapped out in tests that assert on timestamps.
var nowFunc = time.Now
