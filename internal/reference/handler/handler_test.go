package handler_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"intake/internal/reference"
	"intake/internal/reference/handler"
	"intake/pkg/testutil"
)

type stubSource []reference.ProviderCountry

func (s stubSource) FetchCountries(context.Context) ([]reference.ProviderCountry, error) {
	return s, nil
}

type ReferenceHandlerSuite struct {
	suite.Suite
	resolver *reference.Resolver
	router   chi.Router
}

func TestReferenceHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReferenceHandlerSuite))
}

func (s *ReferenceHandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var err error
	s.resolver, err = reference.New(stubSource{
		{Name: "Bahamas", Root: "+1", Suffixes: []string{"242"}},
		{Name: "Barbados", Root: "+1", Suffixes: []string{"246"}},
		{Name: "Antarctica"},
	}, reference.WithLogger(logger))
	s.Require().NoError(err)

	s.router = chi.NewRouter()
	handler.New(s.resolver, logger).Register(s.router)
}

func (s *ReferenceHandlerSuite) get(path string) *http.Request {
	return testutil.NewRequest(s.T(), http.MethodGet, path)
}

func (s *ReferenceHandlerSuite) TestBeforeLoad() {
	rr := testutil.DoRequest(s.router, s.get("/reference/countries"))
	testutil.AssertStatusOK(s.T(), rr)

	resp := testutil.UnmarshalResponse[handler.ListResponse](s.T(), rr)
	s.Equal(reference.StateUnloaded, resp.State)
	s.Equal(0, resp.Count)
	s.NotNil(resp.Entries)
}

func (s *ReferenceHandlerSuite) TestViews() {
	s.resolver.FetchAll(context.Background())

	s.Run("status", func() {
		rr := testutil.DoRequest(s.router, s.get("/reference/status"))
		testutil.AssertStatusOK(s.T(), rr)
		status := testutil.UnmarshalResponse[reference.Status](s.T(), rr)
		s.Equal(reference.StateLoaded, status.State)
		s.Equal(3, status.Entries)
	})

	s.Run("by name", func() {
		rr := testutil.DoRequest(s.router, s.get("/reference/countries"))
		resp := testutil.UnmarshalResponse[handler.ListResponse](s.T(), rr)
		s.Equal([]reference.CountryEntry{
			{Name: "Antarctica"},
			{Name: "Bahamas", CallingCode: "+1242"},
			{Name: "Barbados", CallingCode: "+1246"},
		}, resp.Entries)
	})

	s.Run("by code", func() {
		rr := testutil.DoRequest(s.router, s.get("/reference/calling-codes"))
		resp := testutil.UnmarshalResponse[handler.ListResponse](s.T(), rr)
		s.Equal([]reference.CountryEntry{
			{Name: "Bahamas", CallingCode: "+1242"},
			{Name: "Barbados", CallingCode: "+1246"},
		}, resp.Entries)
	})
}

func (s *ReferenceHandlerSuite) TestFind() {
	s.resolver.FetchAll(context.Background())

	s.Run("country by name", func() {
		rr := testutil.DoRequest(s.router, s.get("/reference/countries/Barbados"))
		testutil.AssertStatusOK(s.T(), rr)
		testutil.AssertJSONContains(s.T(), rr, "calling_code", "+1246")
	})

	s.Run("code with escaped plus", func() {
		rr := testutil.DoRequest(s.router, s.get("/reference/calling-codes/%2B1242"))
		testutil.AssertStatusOK(s.T(), rr)
		testutil.AssertJSONContains(s.T(), rr, "name", "Bahamas")
	})

	s.Run("code without plus", func() {
		rr := testutil.DoRequest(s.router, s.get("/reference/calling-codes/1246"))
		testutil.AssertStatusOK(s.T(), rr)
		testutil.AssertJSONContains(s.T(), rr, "name", "Barbados")
	})

	s.Run("unknown country", func() {
		rr := testutil.DoRequest(s.router, s.get("/reference/countries/Atlantis"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})
}
