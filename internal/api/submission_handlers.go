package api

import (
	"context"
	"encoding/json/v2"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/directstay/directstay-server/internal/domain"
	"github.com/directstay/directstay-server/internal/service"
)

func (s *Server) registerSubmissionRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createSubmission",
		Method:      http.MethodPost,
		Path:        "/api/v1/submissions",
		Summary:     "Submit a listing",
		Description: "Submits a direct booking site for directory review",
		Tags:        []string{"Submissions"},
	}, s.handleCreateSubmission)

	huma.Register(s.api, huma.Operation{
		OperationID: "getSubmission",
		Method:      http.MethodGet,
		Path:        "/api/v1/submissions/{id}",
		Summary:     "Get submission",
		Description: "Returns a submission by ID",
		Tags:        []string{"Submissions"},
	}, s.handleGetSubmission)
}

// === DTOs ===

// CityInput accepts either a bare city name string or an object with an
// optional GeoNames ID. Both decode into the same shape so everything
// past the API boundary sees one format.
type CityInput struct {
	Name      string `json:"name"`
	GeonameID int64  `json:"geoname_id,omitempty"`
}

// UnmarshalJSON decodes either "Lisbon" or {"name": "Lisbon", "geoname_id": 2267057}.
func (c *CityInput) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &c.Name)
	}

	type plain CityInput
	return json.Unmarshal(data, (*plain)(c))
}

// Schema implements huma.SchemaProvider so the OpenAPI spec documents
// both accepted shapes.
func (c CityInput) Schema(_ huma.Registry) *huma.Schema {
	return &huma.Schema{
		OneOf: []*huma.Schema{
			{Type: huma.TypeString, Description: "City or region name"},
			{
				Type: huma.TypeObject,
				Properties: map[string]*huma.Schema{
					"name":       {Type: huma.TypeString, Description: "City or region name"},
					"geoname_id": {Type: huma.TypeInteger, Description: "Known GeoNames ID"},
				},
				Required: []string{"name"},
			},
		},
	}
}

// CreateSubmissionRequest is the request body for a new submission.
type CreateSubmissionRequest struct {
	BrandName     string      `json:"brand_name" doc:"Brand or property name"`
	WebsiteURL    string      `json:"website_url" doc:"Direct booking website URL"`
	Email         string      `json:"email,omitempty" doc:"Contact email"`
	Description   string      `json:"description,omitempty" doc:"Short description of the property"`
	Countries     []string    `json:"countries" doc:"Countries where properties are located"`
	CitiesRegions []CityInput `json:"cities_regions,omitempty" doc:"Cities or regions where properties are located"`
	PlanTier      string      `json:"plan_tier,omitempty" enum:"basic,featured" doc:"Listing plan tier"`
}

// CreateSubmissionInput wraps the request for Huma.
type CreateSubmissionInput struct {
	Body CreateSubmissionRequest
}

// SubmissionResponse contains submission data in API responses.
type SubmissionResponse struct {
	ID            string      `json:"id" doc:"Submission ID"`
	BrandName     string      `json:"brand_name" doc:"Brand or property name"`
	WebsiteURL    string      `json:"website_url" doc:"Direct booking website URL"`
	Email         string      `json:"email,omitempty" doc:"Contact email"`
	Description   string      `json:"description,omitempty" doc:"Short description"`
	Countries     []string    `json:"countries" doc:"Declared countries"`
	CitiesRegions []CityInput `json:"cities_regions,omitempty" doc:"Declared cities or regions"`
	Status        string      `json:"status" doc:"Review status: pending, approved, or rejected"`
	PlanTier      string      `json:"plan_tier" doc:"Listing plan tier"`
	CreatedAt     time.Time   `json:"created_at" doc:"Creation time"`
	UpdatedAt     time.Time   `json:"updated_at" doc:"Last update time"`
}

// SubmissionOutput wraps a single submission for Huma.
type SubmissionOutput struct {
	Body SubmissionResponse
}

// GetSubmissionInput identifies a submission by path parameter.
type GetSubmissionInput struct {
	ID string `path:"id" doc:"Submission ID"`
}

// === Handlers ===

func (s *Server) handleCreateSubmission(ctx context.Context, input *CreateSubmissionInput) (*SubmissionOutput, error) {
	cities := make([]service.CityRegionInput, len(input.Body.CitiesRegions))
	for i, c := range input.Body.CitiesRegions {
		cities[i] = service.CityRegionInput{Name: c.Name, GeonameID: c.GeonameID}
	}

	sub, err := s.services.Submission.CreateSubmission(ctx, service.CreateSubmissionRequest{
		BrandName:     input.Body.BrandName,
		WebsiteURL:    input.Body.WebsiteURL,
		Email:         input.Body.Email,
		Description:   input.Body.Description,
		Countries:     input.Body.Countries,
		CitiesRegions: cities,
		PlanTier:      input.Body.PlanTier,
	})
	if err != nil {
		return nil, err
	}

	return &SubmissionOutput{Body: mapSubmissionResponse(sub)}, nil
}

func (s *Server) handleGetSubmission(ctx context.Context, input *GetSubmissionInput) (*SubmissionOutput, error) {
	sub, err := s.services.Submission.GetSubmission(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &SubmissionOutput{Body: mapSubmissionResponse(sub)}, nil
}

// === Mappers ===

func mapSubmissionResponse(sub *domain.Submission) SubmissionResponse {
	cities := make([]CityInput, len(sub.CitiesRegions))
	for i, c := range sub.CitiesRegions {
		cities[i] = CityInput{Name: c.Name, GeonameID: c.GeonameID}
	}

	return SubmissionResponse{
		ID:            sub.ID,
		BrandName:     sub.BrandName,
		WebsiteURL:    sub.WebsiteURL,
		Email:         sub.Email,
		Description:   sub.Description,
		Countries:     sub.Countries,
		CitiesRegions: cities,
		Status:        string(sub.Status),
		PlanTier:      string(sub.PlanTier),
		CreatedAt:     sub.CreatedAt,
		UpdatedAt:     sub.UpdatedAt,
	}
}
