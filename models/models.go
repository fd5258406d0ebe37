package models

import (
	"database/sql/driver"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// JSON field type for GORM
type JSON []byte

func (j JSON) Value() (driver.Value, error) {
	if j.IsNull() {
		return nil, nil
	}
	return string(j), nil
}

func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	s, ok := value.([]byte)
	if !ok {
		return nil
	}
	*j = append((*j)[0:0], s...)
	return nil
}

func (j JSON) MarshalJSON() ([]byte, error) {
	if j == nil {
		return []byte("null"), nil
	}
	return j, nil
}

func (j *JSON) UnmarshalJSON(data []byte) error {
	if j == nil {
		return nil
	}
	*j = append((*j)[0:0], data...)
	return nil
}

func (j JSON) IsNull() bool {
	return len(j) == 0 || string(j) == "null"
}

// User roles
const (
	RoleSuperUser    = "super_user"
	RoleTeacher      = "teacher"
	RoleJuniorUstadh = "junior_ustadh"
	RoleStudent      = "student"
)

// Fee statuses
const (
	FeeStatusPending = "pending"
	FeeStatusPaid    = "paid"
	FeeStatusOverdue = "overdue"
)

// User model. Phone number doubles as the login handle, so it carries a
// unique index. Archival is a soft off-switch that keeps the row for audit;
// archived users are hidden from management listings, never hard-deleted.
type User struct {
	BaseModel
	FirstName     string     `json:"first_name" gorm:"size:100;not null"`
	LastName      string     `json:"last_name" gorm:"size:100;not null"`
	Phone         string     `json:"phone" gorm:"size:20;not null;uniqueIndex"`
	Email         string     `json:"email" gorm:"size:255"`
	Password      string     `json:"-" gorm:"size:255;not null"`
	Role          string     `json:"role" gorm:"size:50;not null;default:'student';type:enum('super_user','teacher','junior_ustadh','student')"` // super_user, teacher, junior_ustadh, student
	IsActive      bool       `json:"is_active" gorm:"default:true"`
	IsArchived    bool       `json:"is_archived" gorm:"default:false;index"`
	ArchivedAt    *time.Time `json:"archived_at,omitempty"`
	ArchivedBy    *uint      `json:"archived_by,omitempty"`
	ArchiveReason string     `json:"archive_reason,omitempty" gorm:"size:255"`
	LastLogin     *time.Time `json:"last_login"`

	// Relationships
	Batches []Batch `json:"batches,omitempty" gorm:"many2many:user_batches;"`
	Fees    []Fee   `json:"fees,omitempty" gorm:"foreignKey:UserID"`
}

// DisplayName returns the combined name used in API payloads.
func (u *User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Batch model - a class/cohort with a fixed recurring monthly fee
type Batch struct {
	BaseModel
	Name        string          `json:"name" gorm:"size:255;not null"`
	Description string          `json:"description" gorm:"type:text"`
	FeeAmount   decimal.Decimal `json:"fee_amount" gorm:"type:decimal(10,2);not null"`
	StartDate   time.Time       `json:"start_date"`
	IsActive    bool            `json:"is_active" gorm:"default:true"`

	// Relationships
	Students []User `json:"students,omitempty" gorm:"many2many:user_batches;"`
	Fees     []Fee  `json:"fees,omitempty" gorm:"foreignKey:BatchID"`
}

// Fee model - one billing obligation per (student, batch, period).
// The composite unique index keeps the period key honest. LateFee is a
// surcharge on top of Amount and never enters the base aggregations.
type Fee struct {
	BaseModel
	UserID        uint            `json:"user_id" gorm:"not null;uniqueIndex:idx_fee_period"`
	BatchID       uint            `json:"batch_id" gorm:"not null;uniqueIndex:idx_fee_period"`
	Month         int             `json:"month" gorm:"not null;uniqueIndex:idx_fee_period"`
	Year          int             `json:"year" gorm:"not null;uniqueIndex:idx_fee_period"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	DueDate       time.Time       `json:"due_date" gorm:"not null;index"`
	Status        string          `json:"status" gorm:"size:50;not null;default:'pending';type:enum('pending','paid','overdue')"` // pending, paid, overdue
	PaidDate      *time.Time      `json:"paid_date"`
	LateFee       decimal.Decimal `json:"late_fee" gorm:"type:decimal(10,2);default:0"`
	PaymentMethod string          `json:"payment_method" gorm:"size:50"`
	Notes         string          `json:"notes" gorm:"type:text"`

	// Relationships
	User  User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Batch Batch `json:"batch,omitempty" gorm:"foreignKey:BatchID"`
}

// Expense model - a standalone outflow record, not tied to any fee
type Expense struct {
	BaseModel
	Category      string          `json:"category" gorm:"size:50;not null;index"`
	Description   string          `json:"description" gorm:"type:text;not null"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	Date          time.Time       `json:"date" gorm:"not null;index"`
	PaymentMethod string          `json:"payment_method" gorm:"size:50;default:'Cash'"`
	Recipient     string          `json:"recipient" gorm:"size:255"`
	Notes         string          `json:"notes" gorm:"type:text"`
	ReceiptURL    string          `json:"receipt_url" gorm:"size:500"`
	CreatedBy     uint            `json:"created_by"`

	// Relationships
	Creator User `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
}

// Log model for activity tracking
type ActivityLog struct {
	BaseModel
	UserID     uint   `json:"user_id"`
	Action     string `json:"action" gorm:"size:100;not null"`
	Resource   string `json:"resource" gorm:"size:100;not null"`
	ResourceID uint   `json:"resource_id"`
	Details    JSON   `json:"details" gorm:"type:json"`
	IPAddress  string `json:"ip_address" gorm:"size:45"`
	UserAgent  string `json:"user_agent" gorm:"size:500"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// LogArchive model for tracking archived logs
type LogArchive struct {
	BaseModel
	FileName    string    `json:"file_name" gorm:"size:255;not null"`
	S3Key       string    `json:"s3_key" gorm:"size:500;not null"`
	StartDate   time.Time `json:"start_date" gorm:"not null"`
	EndDate     time.Time `json:"end_date" gorm:"not null"`
	RecordCount int       `json:"record_count" gorm:"not null"`
	FileSize    int64     `json:"file_size" gorm:"not null"`
	Status      string    `json:"status" gorm:"size:50;not null;default:'pending';type:enum('pending','completed','failed')"` // pending, completed, failed
	Error       string    `json:"error" gorm:"type:text"`
}
