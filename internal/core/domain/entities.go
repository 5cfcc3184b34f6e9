package domain

// Role represents user role in the system
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// DocumentType represents the kind of identity/financial document
type DocumentType string

const (
	DocPassport        DocumentType = "PASSPORT"
	DocVisa            DocumentType = "VISA"
	DocTouristVisa     DocumentType = "TOURIST_VISA"
	DocResidencyPermit DocumentType = "RESIDENCY_PERMIT"
	DocDriversLicense  DocumentType = "DRIVERS_LICENSE"
	DocInsurance       DocumentType = "INSURANCE"
	DocTaxReturn       DocumentType = "TAX_RETURN"
	DocBankStatement   DocumentType = "BANK_STATEMENT"
	DocOther           DocumentType = "OTHER"
)

// IsValidDocumentType checks whether t is a known document type
func IsValidDocumentType(t DocumentType) bool {
	switch t {
	case DocPassport, DocVisa, DocTouristVisa, DocResidencyPermit,
		DocDriversLicense, DocInsurance, DocTaxReturn, DocBankStatement, DocOther:
		return true
	}
	return false
}

// DocumentStatus represents document lifecycle status.
// Only ACTIVE documents participate in risk computation.
type DocumentStatus string

const (
	DocStatusActive   DocumentStatus = "ACTIVE"
	DocStatusInactive DocumentStatus = "INACTIVE"
)

// TravelPurpose is an informational tag on a travel record.
// It never affects the risk math.
type TravelPurpose string

const (
	PurposeHomeBase   TravelPurpose = "home_base"
	PurposeTourism    TravelPurpose = "tourism"
	PurposeBusiness   TravelPurpose = "business"
	PurposeRemoteWork TravelPurpose = "remote_work"
	PurposeRelocation TravelPurpose = "relocation"
)

// IsValidPurpose checks whether p is a known travel purpose
func IsValidPurpose(p TravelPurpose) bool {
	switch p {
	case PurposeHomeBase, PurposeTourism, PurposeBusiness, PurposeRemoteWork, PurposeRelocation:
		return true
	}
	return false
}

// ResidencyStatus represents a user's declared residency status in a country
type ResidencyStatus string

const (
	ResidencyNone      ResidencyStatus = ""
	ResidencyPermanent ResidencyStatus = "PERMANENT_RESIDENT"
	ResidencyTemporary ResidencyStatus = "TEMPORARY_RESIDENT"
)

// IsResident reports whether the status inverts the presence goal
// (the user wants to meet the threshold, not stay under it).
func (s ResidencyStatus) IsResident() bool {
	return s == ResidencyPermanent || s == ResidencyTemporary
}

// RiskLevel classifies tax-residency exposure for one country
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// AlertSeverity ranks compliance alerts and critical dates
type AlertSeverity string

const (
	SeverityLow    AlertSeverity = "low"
	SeverityMedium AlertSeverity = "medium"
	SeverityHigh   AlertSeverity = "high"
)

// AlertType groups compliance alerts
type AlertType string

const (
	AlertTax      AlertType = "tax"
	AlertVisa     AlertType = "visa"
	AlertEntry    AlertType = "entry"
	AlertExit     AlertType = "exit"
	AlertDocument AlertType = "document"
)

// PeriodKind is the logical reporting period selected by the user
type PeriodKind string

const (
	PeriodCurrentYear PeriodKind = "current_year"
	PeriodLastYear    PeriodKind = "last_year"
	PeriodRollingYear PeriodKind = "rolling_year"
)

// DefaultResidencyThreshold is the statutory day threshold applied when a
// country rule is missing or carries a zero/negative value (the common
// 183-day rule).
const DefaultResidencyThreshold = 183
