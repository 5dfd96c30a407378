package entity

import (
	"time"

	"github.com/google/uuid"
)

// Progress tracks per-video learning state. The engine touches it in two
// places only: the refund policy check and the refund unwind purge.
type Progress struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	VideoId     uuid.UUID
	IsCompleted bool
	WatchedSec  int
	UpdatedAt   time.Time
}
