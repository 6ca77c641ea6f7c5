package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the set of principal roles known to the platform.
type Role string

const (
	RoleUser       Role = "user"
	RoleSuperadmin Role = "superadmin"
)

// CanAdminister reports whether the role grants access to admin routes.
func (r Role) CanAdminister() bool { return r == RoleSuperadmin }

type User struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         Role      `gorm:"not null;default:'user'" json:"role"`
	IsActive     bool      `gorm:"not null" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

type Session struct {
	JTI       string     `gorm:"primaryKey;size:64" json:"jti"`
	UserID    string     `gorm:"type:uuid;index;not null" json:"user_id"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Setting is a singleton configuration value keyed by name. At most one row
// per key; absence means the caller falls back to a default.
type Setting struct {
	Key       string    `gorm:"primaryKey;size:100" json:"key"`
	Value     JSONB     `gorm:"type:jsonb" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CronJobLog struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	JobName   string    `gorm:"not null;index" json:"job_name"`
	Status    string    `gorm:"not null" json:"status"`
	Details   JSONB     `gorm:"type:jsonb" json:"details"`
	StartedAt time.Time `gorm:"not null;index" json:"started_at"`
}

type Tool struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *Tool) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// ToolIcon holds either an opaque icon name / URL in IconURL or a raw payload
// in IconData, never both. One row per (tool, icon type).
type ToolIcon struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ToolID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_tool_icons_tool_type,priority:1" json:"tool_id"`
	IconType  string    `gorm:"size:20;not null;uniqueIndex:idx_tool_icons_tool_type,priority:2" json:"icon_type"`
	IconURL   string    `gorm:"not null" json:"icon_url"`
	IconData  []byte    `json:"-"`
	UpdatedAt time.Time `json:"updated_at"`
}

type DashboardItem struct {
	ID            string     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        string     `gorm:"type:uuid;not null;index" json:"user_id"`
	Title         string     `gorm:"not null" json:"title"`
	Description   string     `json:"description"`
	Type          string     `gorm:"not null" json:"type"`
	DueDate       *time.Time `json:"due_date"`
	ScheduledDate *time.Time `json:"scheduled_date"`
	Priority      *string    `gorm:"size:10" json:"priority"`
	Status        string     `gorm:"not null;default:'pending'" json:"status"`
	Metadata      JSONB      `gorm:"type:jsonb" json:"metadata"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (d *DashboardItem) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// UserDashboardKpi toggles a single KPI tile for a user. Upserted as a whole
// row on (user_id, tool_id, kpi_key).
type UserDashboardKpi struct {
	ID     int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID string `gorm:"type:uuid;not null;uniqueIndex:idx_user_dashboard_kpis_key,priority:1" json:"user_id"`
	ToolID string `gorm:"type:uuid;not null;uniqueIndex:idx_user_dashboard_kpis_key,priority:2" json:"tool_id"`
	KpiKey string `gorm:"size:100;not null;uniqueIndex:idx_user_dashboard_kpis_key,priority:3" json:"kpi_key"`
	// no column default: a default would make gorm omit the zero value from
	// inserts, so a disabled toggle could never be stored
	IsEnabled bool      `gorm:"not null" json:"is_enabled"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ImportantDocument struct {
	ID               string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Title            string    `gorm:"not null" json:"title"`
	RequiresPassword bool      `gorm:"not null;default:false" json:"requires_password"`
	PasswordHash     *string   `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (d *ImportantDocument) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

type Note struct {
	ID               string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Title            string    `gorm:"not null" json:"title"`
	RequiresPassword bool      `gorm:"not null;default:false" json:"requires_password"`
	PasswordHash     *string   `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
