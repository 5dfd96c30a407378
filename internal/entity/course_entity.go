package entity

import (
	"time"

	"github.com/google/uuid"
)

// Course is read-only to the commerce engine. Content management lives in a
// separate admin surface; the engine only needs price and publication state.
type Course struct {
	Id          uuid.UUID
	Title       string
	Description string
	Price       int // minor currency unit (KRW)
	IsPublished bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Video carries course membership only. The engine uses it to purge learning
// progress on refund; playback itself is an external concern.
type Video struct {
	Id        uuid.UUID
	CourseId  uuid.UUID
	Title     string
	SortOrder int
}
