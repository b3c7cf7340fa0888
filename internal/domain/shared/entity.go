package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is satisfied by anything the repositories persist: a stable
// identity plus audit timestamps.
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// BaseEntity carries the identity and audit fields every persisted
// type embeds. Construct it through NewBaseEntity so the ID and
// timestamps are always populated together.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e *BaseEntity) GetID() uuid.UUID { return e.ID }

func (e *BaseEntity) GetCreatedAt() time.Time { return e.CreatedAt }

func (e *BaseEntity) GetUpdatedAt() time.Time { return e.UpdatedAt }

// NewBaseEntity assigns a fresh UUID and stamps both audit fields
// with the same instant.
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
