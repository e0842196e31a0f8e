package handler

// successResponse is the envelope returned on every 2xx response.
type successResponse struct {
	Status  string `json:"status" example:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// errorResponse documents the error envelope rendered by the API error
// handler; it is only referenced from swagger annotations.
type errorResponse struct {
	Success bool `json:"success" example:"false"`
	Error   struct {
		Code    string `json:"code" example:"VALIDATION_ERROR"`
		Message string `json:"message"`
	} `json:"error"`
}

// --- Auth ---

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	User  any    `json:"user"`
	Token string `json:"token"`
}

// --- Users ---

type createUserRequest struct {
	Nome     string `json:"nome"     validate:"required"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"omitempty,oneof=ADMIN USER"`
}

// --- Risk mapping ---

type riskCategoryRequest struct {
	Name        string `json:"name"        validate:"required"`
	Description string `json:"description"`
	Color       string `json:"color"       validate:"omitempty,hexcolor"`
	Icon        string `json:"icon"`
}

type updateRiskCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color" validate:"omitempty,hexcolor"`
	Icon        *string `json:"icon"`
}

type riskRequest struct {
	CategoryID      string `json:"categoryId"      validate:"required"`
	Type            string `json:"type"            validate:"required,oneof=PHYSICAL CHEMICAL BIOLOGICAL ERGONOMIC ACCIDENT"`
	Code            string `json:"code"`
	Name            string `json:"name"            validate:"required"`
	Description     string `json:"description"`
	SourceGenerator string `json:"sourceGenerator"`
	HealthEffects   string `json:"healthEffects"`
	ControlMeasures string `json:"controlMeasures"`
	AllowsIntensity bool   `json:"allowsIntensity"`
	IsGlobal        *bool  `json:"isGlobal"`
}

type updateRiskRequest struct {
	Type            *string `json:"type" validate:"omitempty,oneof=PHYSICAL CHEMICAL BIOLOGICAL ERGONOMIC ACCIDENT"`
	Code            *string `json:"code"`
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	SourceGenerator *string `json:"sourceGenerator"`
	HealthEffects   *string `json:"healthEffects"`
	ControlMeasures *string `json:"controlMeasures"`
	AllowsIntensity *bool   `json:"allowsIntensity"`
	IsGlobal        *bool   `json:"isGlobal"`
	Active          *bool   `json:"active"`
}

type environmentRequest struct {
	CompanyID           string `json:"companyId"    validate:"required"`
	Name                string `json:"name"         validate:"required"`
	Description         string `json:"description"`
	LocationType        string `json:"locationType" validate:"omitempty,oneof=EMPLOYER_ESTABLISHMENT THIRD_PARTY_ESTABLISHMENT MOBILE"`
	RegisteredInESocial bool   `json:"registeredInESocial"`
	PreviousESocialCode string `json:"previousESocialCode"`
	// ValidityStart accepts either a date (2006-01-02) or an RFC 3339 timestamp.
	ValidityStart string `json:"validityStart"`
}

type jobRequest struct {
	CompanyID         string   `json:"companyId"         validate:"required"`
	Title             string   `json:"title"             validate:"required"`
	CBO               string   `json:"cbo"`
	MainEnvironmentID string   `json:"mainEnvironmentId"`
	EnvironmentIDs    []string `json:"environmentIds"`
	Notes             string   `json:"notes"`
}

type addEnvironmentRequest struct {
	EnvironmentID string `json:"environmentId" validate:"required"`
}
