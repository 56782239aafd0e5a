package web

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	"github.com/HyungjinO/k-novel-dashboard/category"
	"github.com/HyungjinO/k-novel-dashboard/dashboard"
	"github.com/HyungjinO/k-novel-dashboard/engine"
	domainerrors "github.com/HyungjinO/k-novel-dashboard/internal/errors"
	"github.com/HyungjinO/k-novel-dashboard/render"
	"github.com/HyungjinO/k-novel-dashboard/search"
)

// === DTOs ===

// DimensionResponse describes one analysis category.
type DimensionResponse struct {
	Key        string `json:"key" doc:"URL key" example:"plot"`
	Name       string `json:"name" doc:"Korean selector name" example:"전개"`
	Column     string `json:"column" doc:"Data column holding raw codes" example:"primary_plot"`
	Vocabulary int    `json:"vocabulary" doc:"Number of known codes"`
}

// ListDimensionsOutput lists the six categories in selector order.
type ListDimensionsOutput struct {
	Body struct {
		Dimensions []DimensionResponse `json:"dimensions"`
	}
}

// DistributionInput selects a category and optionally a chart kind.
type DistributionInput struct {
	Dimension string `path:"dimension" doc:"Category key, Korean name or column" example:"genre"`
	Chart     string `query:"chart" enum:"donut,treemap,bubble" doc:"Also compute the displayed items of this chart"`
}

// DistributionResponse is a decorated label distribution.
type DistributionResponse struct {
	Dimension string           `json:"dimension"`
	Name      string           `json:"name"`
	Total     int              `json:"total"`
	Buckets   []engine.Bucket  `json:"buckets"`
	Chart     *render.Artifact `json:"chart,omitempty"`
}

// DistributionOutput wraps DistributionResponse.
type DistributionOutput struct {
	Body DistributionResponse
}

// SearchInput is a book search.
type SearchInput struct {
	Query  string `query:"q" maxLength:"200" doc:"Title, author, publisher or ISBN"`
	Source string `query:"source" enum:"catalog,translated" doc:"Restrict to one table"`
	Limit  int    `query:"limit" minimum:"0" maximum:"100" doc:"Max hits (default 20)"`
	Offset int    `query:"offset" minimum:"0" doc:"Pagination offset"`
}

// SearchOutput wraps search.Result.
type SearchOutput struct {
	Body *search.Result
}

// DomesticInput mirrors the page's query parameters.
type DomesticInput struct {
	Category string `query:"category" doc:"Category key or Korean name (default 장르)"`
	Chart    string `query:"chart" enum:"donut,treemap,bubble" doc:"Active chart tab"`
	ISBN     string `query:"isbn" doc:"Selected book"`
	Page     int    `query:"page" minimum:"0" doc:"Ranking page (default 1)"`
}

// DomesticOutput is the whole market overview as JSON.
type DomesticOutput struct {
	Body *dashboard.DomesticPage
}

// === Routes ===

func (s *Server) registerAPIRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listDimensions",
		Method:      http.MethodGet,
		Path:        "/api/v1/dimensions",
		Summary:     "List analysis categories",
		Tags:        []string{"Analysis"},
	}, s.handleListDimensions)

	huma.Register(s.api, huma.Operation{
		OperationID: "getDistribution",
		Method:      http.MethodGet,
		Path:        "/api/v1/distributions/{dimension}",
		Summary:     "Get a category distribution",
		Description: "Counts the decorated labels of one category over the translated books.",
		Tags:        []string{"Analysis"},
	}, s.handleGetDistribution)

	huma.Register(s.api, huma.Operation{
		OperationID: "getDomestic",
		Method:      http.MethodGet,
		Path:        "/api/v1/domestic",
		Summary:     "Get the market overview",
		Tags:        []string{"Dashboard"},
	}, s.handleGetDomestic)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search books",
		Tags:        []string{"Search"},
	}, s.handleSearch)
}

// === Handlers ===

func (s *Server) handleListDimensions(_ context.Context, _ *struct{}) (*ListDimensionsOutput, error) {
	out := &ListDimensionsOutput{}
	for _, d := range category.All() {
		out.Body.Dimensions = append(out.Body.Dimensions, DimensionResponse{
			Key:        d.Key(),
			Name:       d.Name(),
			Column:     d.Column(),
			Vocabulary: category.Size(d),
		})
	}
	return out, nil
}

func (s *Server) handleGetDistribution(_ context.Context, input *DistributionInput) (*DistributionOutput, error) {
	d, err := category.ParseDimension(input.Dimension)
	if err != nil {
		return nil, apiError(err)
	}
	dist, err := s.composer.Distribution(d)
	if err != nil {
		return nil, apiError(err)
	}

	resp := DistributionResponse{
		Dimension: d.Key(),
		Name:      d.Name(),
		Total:     dist.Total(),
		Buckets:   dist.Ranked(),
	}
	if input.Chart != "" {
		kind, err := render.ParseKind(input.Chart)
		if err != nil {
			return nil, apiError(err)
		}
		if resp.Chart, err = s.composer.Chart(d, kind); err != nil {
			return nil, apiError(err)
		}
	}
	return &DistributionOutput{Body: resp}, nil
}

func (s *Server) handleGetDomestic(ctx context.Context, input *DomesticInput) (*DomesticOutput, error) {
	values := url.Values{}
	set := func(k, v string) {
		if v != "" {
			values.Set(k, v)
		}
	}
	set(dashboard.ParamCategory, input.Category)
	set(dashboard.ParamChart, input.Chart)
	set(dashboard.ParamISBN, input.ISBN)
	if input.Page > 0 {
		values.Set(dashboard.ParamPage, strconv.Itoa(input.Page))
	}

	sess, err := dashboard.ParseSession(dashboard.DefaultSession(), values)
	if err != nil {
		return nil, apiError(err)
	}
	page, err := s.composer.Domestic(ctx, sess)
	if err != nil {
		return nil, apiError(err)
	}
	return &DomesticOutput{Body: page}, nil
}

func (s *Server) handleSearch(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	if s.index == nil {
		return nil, apiError(domainerrors.NotFound("search is not enabled"))
	}
	res, err := s.index.Search(ctx, search.Params{
		Query:  input.Query,
		Source: input.Source,
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		return nil, apiError(err)
	}
	return &SearchOutput{Body: res}, nil
}
