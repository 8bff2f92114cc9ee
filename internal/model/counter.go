package model

// SequenceCounter backs human-readable document numbers (PO-YYMM-NNNNN,
// INV-YYMM-NNNNN). One row per scope (e.g. "PO-2609"); the value is bumped
// with an atomic upsert so concurrent creations never collide.
type SequenceCounter struct {
	Scope string `gorm:"type:varchar(20);primaryKey" json:"scope"`
	Value int64  `gorm:"type:bigint;not null;default:0" json:"value"`
}
