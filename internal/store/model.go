// model.go defines the persisted run history
package store

import "time"

// Run is one design or check invocation.
type Run struct {
	ID            uint   `gorm:"primaryKey"`
	RunID         string `gorm:"uniqueIndex;not null"`
	Command       string `gorm:"index;type:varchar(16)"` // "design" | "check"
	Direction     string `gorm:"type:varchar(8)"`
	Required      float64
	TargetMet     bool
	Covered       int
	Total         int
	CoverageRatio float64
	Candidates    int
	Survivors     int
	Iterations    int
	Optimizer     string
	Fallback      bool
	Active        string        `gorm:"type:text"` // JSON of the final constraints
	Elapsed       time.Duration // nanoseconds
	CreatedAt     time.Time     `gorm:"index"`
	Primers       []RunPrimer   `gorm:"foreignKey:RunRef;constraint:OnDelete:CASCADE"`
	Steps         []RelaxStep   `gorm:"foreignKey:RunRef;constraint:OnDelete:CASCADE"`
	Issues        []RunIssue    `gorm:"foreignKey:RunRef;constraint:OnDelete:CASCADE"`
}

// RunPrimer is a selected, unselected or checked primer of a run.
type RunPrimer struct {
	ID        uint   `gorm:"primaryKey"`
	RunRef    uint   `gorm:"index;not null"`
	PrimerID  string `gorm:"index"`
	Direction string `gorm:"type:varchar(4)"`
	Seq       string
	Selected  bool // design: chosen; check: passed every constraint
	Score     float64
	Covers    int
	Values    string `gorm:"type:text"` // JSON property map
}

// RelaxStep is one filtering pass of a design run.
type RelaxStep struct {
	ID          uint `gorm:"primaryKey"`
	RunRef      uint `gorm:"index;not null"`
	Index       int  `gorm:"column:pass"`
	Survivors   int
	Ratio       float64
	Constraints string `gorm:"type:text"`
}

// RunIssue is a non-fatal input problem reported by a run.
type RunIssue struct {
	ID      uint   `gorm:"primaryKey"`
	RunRef  uint   `gorm:"index;not null"`
	Entity  string `gorm:"type:varchar(16)"`
	ItemID  string
	Message string
}
