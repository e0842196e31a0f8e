package domain

import "time"

// RiskType classifies an occupational risk agent.
type RiskType string

const (
	RiskPhysical   RiskType = "PHYSICAL"
	RiskChemical   RiskType = "CHEMICAL"
	RiskBiological RiskType = "BIOLOGICAL"
	RiskErgonomic  RiskType = "ERGONOMIC"
	RiskAccident   RiskType = "ACCIDENT"
)

// EnvironmentLocationType describes where a work environment is located.
type EnvironmentLocationType string

const (
	LocationEmployerEstablishment   EnvironmentLocationType = "EMPLOYER_ESTABLISHMENT"
	LocationThirdPartyEstablishment EnvironmentLocationType = "THIRD_PARTY_ESTABLISHMENT"
	LocationMobile                  EnvironmentLocationType = "MOBILE"
)

// RiskCategory groups risks for display and filtering.
type RiskCategory struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Color       string    `json:"color,omitempty" bson:"color,omitempty"`
	Icon        string    `json:"icon,omitempty" bson:"icon,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
	RiskCount   int64     `json:"riskCount" bson:"-"`
}

// Risk is a catalogued occupational risk agent.
type Risk struct {
	ID              string    `json:"id" bson:"_id"`
	CategoryID      string    `json:"categoryId" bson:"category_id"`
	Type            RiskType  `json:"type" bson:"type"`
	Code            string    `json:"code,omitempty" bson:"code,omitempty"`
	Name            string    `json:"name" bson:"name"`
	Description     string    `json:"description,omitempty" bson:"description,omitempty"`
	SourceGenerator string    `json:"sourceGenerator,omitempty" bson:"source_generator,omitempty"`
	HealthEffects   string    `json:"healthEffects,omitempty" bson:"health_effects,omitempty"`
	ControlMeasures string    `json:"controlMeasures,omitempty" bson:"control_measures,omitempty"`
	AllowsIntensity bool      `json:"allowsIntensity" bson:"allows_intensity"`
	IsGlobal        bool      `json:"isGlobal" bson:"is_global"`
	Active          bool      `json:"active" bson:"active"`
	CreatedAt       time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" bson:"updated_at"`
}

// Environment is a physical work environment belonging to a company.
type Environment struct {
	ID                  string                  `json:"id" bson:"_id"`
	CompanyID           string                  `json:"companyId" bson:"company_id"`
	Name                string                  `json:"name" bson:"name"`
	Description         string                  `json:"description,omitempty" bson:"description,omitempty"`
	LocationType        EnvironmentLocationType `json:"locationType" bson:"location_type"`
	RegisteredInESocial bool                    `json:"registeredInESocial" bson:"registered_in_esocial"`
	PreviousESocialCode string                  `json:"previousESocialCode,omitempty" bson:"previous_esocial_code,omitempty"`
	ValidityStart       *time.Time              `json:"validityStart,omitempty" bson:"validity_start,omitempty"`
	Active              bool                    `json:"active" bson:"active"`
	CreatedAt           time.Time               `json:"createdAt" bson:"created_at"`
	UpdatedAt           time.Time               `json:"updatedAt" bson:"updated_at"`
}

// Job is a position within a company mapped to the environments it works in.
type Job struct {
	ID                string    `json:"id" bson:"_id"`
	CompanyID         string    `json:"companyId" bson:"company_id"`
	Title             string    `json:"title" bson:"title"`
	CBO               string    `json:"cbo,omitempty" bson:"cbo,omitempty"`
	MainEnvironmentID string    `json:"mainEnvironmentId,omitempty" bson:"main_environment_id,omitempty"`
	EnvironmentIDs    []string  `json:"environmentIds" bson:"environment_ids"`
	Notes             string    `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt         time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt         time.Time `json:"updatedAt" bson:"updated_at"`
}

// ValidRiskType reports whether t is a known risk type.
func ValidRiskType(t RiskType) bool {
	switch t {
	case RiskPhysical, RiskChemical, RiskBiological, RiskErgonomic, RiskAccident:
		return true
	}
	return false
}
