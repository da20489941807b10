package domain

import "time"

// Sync job status values.
const (
	SyncJobPending = "pending"
	SyncJobDone    = "done"
	SyncJobFailed  = "failed"
)

// Sync job kinds.
const (
	SyncKindProduct = "product"
	SyncKindOrder   = "order"
)

// SemanticSyncJob records a semantic index write that could not be applied
// inline. The relational store is the source of truth; index writes are
// best-effort and replayed out-of-band until they succeed.
type SemanticSyncJob struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Kind      string    `gorm:"size:32;index" json:"kind"`
	RefID     string    `gorm:"size:64;index" json:"ref_id"`
	Content   string    `gorm:"type:text" json:"content"`
	Status    string    `gorm:"size:16;index" json:"status"`
	Attempts  int       `json:"attempts"`
	LastError string    `gorm:"size:1024" json:"last_error"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (SemanticSyncJob) TableName() string {
	return "ecom_semantic_sync_job"
}
