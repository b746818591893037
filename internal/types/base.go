package types

import "time"

// Status represents the state of a record
type Status string

const (
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
	StatusDeleted   Status = "deleted"
)

// BaseModel carries the columns shared by every tenant scoped record
type BaseModel struct {
	TenantID  string    `db:"tenant_id" json:"tenant_id"`
	Status    Status    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// GetDefaultBaseModel returns a published base model for the tenant in ctx at now
func GetDefaultBaseModel(tenantID string, now time.Time) BaseModel {
	return BaseModel{
		TenantID:  tenantID,
		Status:    StatusPublished,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
