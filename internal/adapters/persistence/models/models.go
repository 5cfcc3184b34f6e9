package models

import (
	"time"

	"gorm.io/gorm"

	"nomadtax/internal/core/domain"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table
type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Username    string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email       string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password    string         `gorm:"size:255;not null" json:"-"`
	FullName    string         `gorm:"size:100" json:"full_name"`
	HomeCountry string         `gorm:"size:2" json:"home_country"`
	Role        string         `gorm:"size:20;default:'USER'" json:"role"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID          uint      `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	HomeCountry string    `json:"home_country"`
	Role        string    `json:"role"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FullName:    u.FullName,
		HomeCountry: u.HomeCountry,
		Role:        u.Role,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Travel Tables
// ============================================================

// TravelRecord ตารางการเดินทาง — one stretch of presence in a country.
// A NULL exit_date means the stay is ongoing.
type TravelRecord struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Country   string         `gorm:"size:2;not null;index" json:"country"`
	City      string         `gorm:"size:100" json:"city"`
	EntryDate time.Time      `gorm:"type:date;not null" json:"entry_date"`
	ExitDate  *time.Time     `gorm:"type:date" json:"exit_date"`
	Purpose   string         `gorm:"size:20" json:"purpose"`
	Notes     string         `gorm:"type:text" json:"notes"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (TravelRecord) TableName() string {
	return "travel_records"
}

// IsOpen reports whether the record has no exit date yet
func (t *TravelRecord) IsOpen() bool {
	return t.ExitDate == nil
}

// TravelRecordResponse DTO
type TravelRecordResponse struct {
	ID        uint       `json:"id"`
	Country   string     `json:"country"`
	City      string     `json:"city"`
	EntryDate time.Time  `json:"entry_date"`
	ExitDate  *time.Time `json:"exit_date"`
	Purpose   string     `json:"purpose"`
	Notes     string     `json:"notes,omitempty"`
	IsOpen    bool       `json:"is_open"`
	CreatedAt time.Time  `json:"created_at"`
}

func (t *TravelRecord) ToResponse() *TravelRecordResponse {
	return &TravelRecordResponse{
		ID:        t.ID,
		Country:   t.Country,
		City:      t.City,
		EntryDate: t.EntryDate,
		ExitDate:  t.ExitDate,
		Purpose:   t.Purpose,
		Notes:     t.Notes,
		IsOpen:    t.IsOpen(),
		CreatedAt: t.CreatedAt,
	}
}

// ============================================================
// Document Tables
// ============================================================

// Document เอกสารประจำตัว — passports, visas, permits and the rest.
// FileKey is an opaque reference into external storage; this service never
// touches file bytes.
type Document struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `gorm:"not null;index" json:"user_id"`
	Type           string         `gorm:"size:30;not null;index" json:"type"`
	Title          string         `gorm:"size:200" json:"title"`
	IssuingCountry string         `gorm:"size:2;index" json:"issuing_country"`
	Status         string         `gorm:"size:20;not null;default:'ACTIVE'" json:"status"`
	IssueDate      *time.Time     `gorm:"type:date" json:"issue_date"`
	ExpiryDate     *time.Time     `gorm:"type:date;index" json:"expiry_date"`
	FileKey        string         `gorm:"size:500" json:"file_key,omitempty"`
	Notes          string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	User   *User           `gorm:"foreignKey:UserID" json:"-"`
	Shares []DocumentShare `gorm:"foreignKey:DocumentID" json:"shares,omitempty"`
}

func (Document) TableName() string {
	return "documents"
}

// IsActive reports whether the document participates in risk computation
func (d *Document) IsActive() bool {
	return d.Status == string(domain.DocStatusActive)
}

// DocumentResponse DTO
type DocumentResponse struct {
	ID             uint       `json:"id"`
	Type           string     `json:"type"`
	Title          string     `json:"title"`
	IssuingCountry string     `json:"issuing_country"`
	Status         string     `json:"status"`
	IssueDate      *time.Time `json:"issue_date"`
	ExpiryDate     *time.Time `json:"expiry_date"`
	FileKey        string     `json:"file_key,omitempty"`
	SharedWith     []string   `json:"shared_with,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (d *Document) ToResponse() *DocumentResponse {
	resp := &DocumentResponse{
		ID:             d.ID,
		Type:           d.Type,
		Title:          d.Title,
		IssuingCountry: d.IssuingCountry,
		Status:         d.Status,
		IssueDate:      d.IssueDate,
		ExpiryDate:     d.ExpiryDate,
		FileKey:        d.FileKey,
		CreatedAt:      d.CreatedAt,
	}
	for _, s := range d.Shares {
		if s.RevokedAt == nil {
			resp.SharedWith = append(resp.SharedWith, s.Email)
		}
	}
	return resp
}

// DocumentShare grants read access to one document for an outside party
type DocumentShare struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	DocumentID uint       `gorm:"not null;index" json:"document_id"`
	Email      string     `gorm:"size:100;not null" json:"email"`
	ShareToken string     `gorm:"size:36;uniqueIndex;not null" json:"share_token"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt  *time.Time `gorm:"index" json:"revoked_at"`

	Document *Document `gorm:"foreignKey:DocumentID" json:"-"`
}

func (DocumentShare) TableName() string {
	return "document_shares"
}

// ============================================================
// Reference Tables
// ============================================================

// CountryRule ข้อมูลกฎภาษีรายประเทศ (Master, seeded)
type CountryRule struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	CountryCode        string         `gorm:"size:2;uniqueIndex;not null" json:"country_code"`
	Name               string         `gorm:"size:100;not null" json:"name"`
	ResidencyThreshold int            `gorm:"not null;default:0" json:"residency_threshold"`
	SpecialRules       string         `gorm:"type:text" json:"special_rules,omitempty"`
	TaxYearStart       string         `gorm:"size:5" json:"tax_year_start,omitempty"`
	TaxTreaties        string         `gorm:"type:text" json:"tax_treaties,omitempty"`
	IsActive           bool           `gorm:"default:true" json:"is_active"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (CountryRule) TableName() string {
	return "country_rules"
}

// TaxStatus สถานะภาษีของผู้ใช้ต่อประเทศต่อปีภาษี
type TaxStatus struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	UserID           uint           `gorm:"not null;index:idx_tax_status_scope,unique" json:"user_id"`
	CountryCode      string         `gorm:"size:2;not null;index:idx_tax_status_scope,unique" json:"country_code"`
	TaxYear          int            `gorm:"not null;index:idx_tax_status_scope,unique" json:"tax_year"`
	RequiredPresence int            `gorm:"default:0" json:"required_presence"`
	ResidencyStatus  string         `gorm:"size:30" json:"residency_status"`
	Notes            string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (TaxStatus) TableName() string {
	return "tax_statuses"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Auth
		&User{},
		&RefreshToken{},
		// Travel & documents
		&TravelRecord{},
		&Document{},
		&DocumentShare{},
		// Reference data
		&CountryRule{},
		&TaxStatus{},
	)
}
