package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity carries identity and timestamps
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity assigns a fresh id and stamps both timestamps with now
func NewBaseEntity() BaseEntity {
	now := time.Now().UTC()
	return BaseEntity{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

// Touch sets UpdatedAt to now
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now().UTC()
}

// BaseAggregateRoot adds an optimistic-lock version and a queue of events
// that the application layer publishes after the change is committed.
// Version counts every change; stored is the version the database holds,
// which repositories compare against before overwriting a row.
type BaseAggregateRoot struct {
	BaseEntity
	Version int
	stored  int
	pending []DomainEvent
}

// NewBaseAggregateRoot starts at version 1 with no pending events
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntity(), Version: 1}
}

// RestoreAggregateRoot rebuilds the header of an aggregate loaded at version
func RestoreAggregateRoot(entity BaseEntity, version int) BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: entity, Version: version, stored: version}
}

func (a *BaseAggregateRoot) GetVersion() int { return a.Version }

// StoredVersion is the version held by the database when the aggregate was
// loaded or last saved; zero if it was never persisted.
func (a *BaseAggregateRoot) StoredVersion() int { return a.stored }

// MarkStored records that the database now holds Version
func (a *BaseAggregateRoot) MarkStored() { a.stored = a.Version }

// IncrementVersion records a change: version + 1 and a fresh UpdatedAt
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
	a.Touch()
}

// AddDomainEvent queues an event for publishing
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.pending = append(a.pending, event)
}

// GetDomainEvents returns the queued events without clearing them
func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.pending
}

func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.pending = nil
}

// AuditedAggregateRoot also remembers who created and last changed it
type AuditedAggregateRoot struct {
	BaseAggregateRoot
	CreatedBy *uuid.UUID
	UpdatedBy *uuid.UUID
}

// NewAuditedAggregateRoot stamps createdBy (nil for system-created records)
func NewAuditedAggregateRoot(createdBy *uuid.UUID) AuditedAggregateRoot {
	return AuditedAggregateRoot{BaseAggregateRoot: NewBaseAggregateRoot(), CreatedBy: createdBy}
}

// MarkUpdatedBy records userID as the last editor; nil leaves it unchanged
func (a *AuditedAggregateRoot) MarkUpdatedBy(userID *uuid.UUID) {
	if userID != nil {
		a.UpdatedBy = userID
	}
}
