package autofill_test

//go:generate mockgen -source=models.go -destination=mocks/mocks.go -package=mocks Locator,Geocoder,CountryLookup,FieldSink

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"intake/internal/autofill"
	"intake/internal/autofill/metrics"
	"intake/internal/autofill/mocks"
	"intake/internal/form"
	"intake/internal/providers"
	"intake/internal/reference"
	"intake/pkg/platform/circuit"
	"intake/pkg/platform/sentinel"
)

// =============================================================================
// Coordinator Test Suite
// =============================================================================
// Justification for unit tests: the coordinator's cross-referencing rules and
// failure taxonomy are only observable precisely with controlled providers.

type CoordinatorSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	geocoder  *mocks.MockGeocoder
	countries *mocks.MockCountryLookup
	state     *form.State
	logger    *slog.Logger
	coord     *autofill.Coordinator
}

var here = autofill.Coordinate{Latitude: 45.4215, Longitude: -75.6972}

func TestCoordinatorSuite(t *testing.T) {
	suite.Run(t, new(CoordinatorSuite))
}

func (s *CoordinatorSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.geocoder = mocks.NewMockGeocoder(s.ctrl)
	s.countries = mocks.NewMockCountryLookup(s.ctrl)
	s.state = form.NewState(false)
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	var err error
	s.coord, err = autofill.New(s.geocoder, s.countries, s.state, autofill.WithLogger(s.logger))
	s.Require().NoError(err)
}

func (s *CoordinatorSuite) TearDownTest() {
	s.ctrl.Finish()
}

func located(c autofill.Coordinate) autofill.Locator {
	return autofill.LocatorFunc(func(context.Context) (autofill.Coordinate, error) {
		return c, nil
	})
}

// =============================================================================
// Constructor Tests (Invariant Enforcement)
// =============================================================================

func (s *CoordinatorSuite) TestNew() {
	s.Run("nil geocoder returns error", func() {
		_, err := autofill.New(nil, s.countries, s.state)
		s.ErrorContains(err, "geocoder is required")
	})

	s.Run("nil country lookup returns error", func() {
		_, err := autofill.New(s.geocoder, nil, s.state)
		s.ErrorContains(err, "country lookup is required")
	})

	s.Run("nil sink returns error", func() {
		_, err := autofill.New(s.geocoder, s.countries, nil)
		s.ErrorContains(err, "field sink is required")
	})
}

// =============================================================================
// Resolved paths
// =============================================================================

func (s *CoordinatorSuite) TestResolvedWithReferenceMatch() {
	s.geocoder.EXPECT().Reverse(gomock.Any(), here).
		Return([]autofill.Candidate{{Address: "12 Main St", Country: "Canada"}, {Address: "ignored", Country: "France"}}, nil)
	s.countries.EXPECT().FindByName("Canada").
		Return(reference.CountryEntry{Name: "Canada", CallingCode: "+1"}, nil)

	out := s.coord.Autofill(context.Background(), located(here))

	s.Equal(autofill.StateResolved, out.State)
	s.Empty(out.Reason)
	s.Equal(autofill.GeoResolution{Address: "12 Main St", CountryName: "Canada", CallingCode: "+1"}, out.Resolution)
	s.Equal([]autofill.Field{autofill.FieldAddress, autofill.FieldNationality, autofill.FieldPhoneCode}, out.Emitted)
	s.Equal(form.Snapshot{Address: "12 Main St", Nationality: "Canada", PhoneCode: "+1"}, s.state.Snapshot())
}

func (s *CoordinatorSuite) TestResolvedWithoutReferenceMatch() {
	s.state.SetNationality(0, "Chad")
	s.state.SetPhoneCode(0, "+235")

	s.geocoder.EXPECT().Reverse(gomock.Any(), here).
		Return([]autofill.Candidate{{Address: "1 Coral Way", Country: "Atlantis"}}, nil)
	s.countries.EXPECT().FindByName("Atlantis").Return(reference.CountryEntry{}, sentinel.ErrNotFound)

	out := s.coord.Autofill(context.Background(), located(here))

	s.Equal(autofill.StateResolved, out.State)
	s.Equal(autofill.ReasonNoReferenceMatch, out.Reason)
	s.Equal(autofill.GeoResolution{Address: "1 Coral Way"}, out.Resolution)
	s.Equal([]autofill.Field{autofill.FieldAddress}, out.Emitted)
	s.Equal(form.Snapshot{Address: "1 Coral Way", Nationality: "Chad", PhoneCode: "+235"}, s.state.Snapshot())
}

func (s *CoordinatorSuite) TestEmptyCallingCodeLeavesPhoneCode() {
	s.geocoder.EXPECT().Reverse(gomock.Any(), here).
		Return([]autofill.Candidate{{Address: "Research Station", Country: "Antarctica"}}, nil)
	s.countries.EXPECT().FindByName("Antarctica").Return(reference.CountryEntry{Name: "Antarctica"}, nil)

	out := s.coord.Autofill(context.Background(), located(here))

	s.Equal(autofill.StateResolved, out.State)
	s.Equal([]autofill.Field{autofill.FieldAddress, autofill.FieldNationality}, out.Emitted)
	s.Empty(s.state.Snapshot().PhoneCode)
}

func (s *CoordinatorSuite) TestEmptyAddressIsNotEmitted() {
	s.geocoder.EXPECT().Reverse(gomock.Any(), here).
		Return([]autofill.Candidate{{Country: "Canada"}}, nil)
	s.countries.EXPECT().FindByName("Canada").Return(reference.CountryEntry{Name: "Canada", CallingCode: "+1"}, nil)

	out := s.coord.Autofill(context.Background(), located(here))
	s.Equal([]autofill.Field{autofill.FieldNationality, autofill.FieldPhoneCode}, out.Emitted)
}

// =============================================================================
// Failure paths: no field may change
// =============================================================================

func (s *CoordinatorSuite) failing() (*autofill.Coordinator, *mocks.MockFieldSink) {
	sink := mocks.NewMockFieldSink(s.ctrl)
	c, err := autofill.New(s.geocoder, s.countries, sink, autofill.WithLogger(s.logger))
	s.Require().NoError(err)
	return c, sink
}

func (s *CoordinatorSuite) TestDeviceDenied() {
	c, _ := s.failing()
	locator := mocks.NewMockLocator(s.ctrl)
	locator.EXPECT().Locate(gomock.Any()).Return(autofill.Coordinate{}, errors.New("permission denied"))

	out := c.Autofill(context.Background(), locator)

	s.Equal(autofill.StateFailed, out.State)
	s.Equal(autofill.ReasonDeviceError, out.Reason)
	s.Empty(out.Emitted)
}

func (s *CoordinatorSuite) TestCapabilityUnavailable() {
	c, _ := s.failing()

	s.Run("nil locator", func() {
		out := c.Autofill(context.Background(), nil)
		s.Equal(autofill.ReasonCapabilityUnavailable, out.Reason)
	})

	s.Run("locator reports no capability", func() {
		out := c.Autofill(context.Background(), autofill.LocatorFunc(func(context.Context) (autofill.Coordinate, error) {
			return autofill.Coordinate{}, autofill.ErrCapabilityUnavailable
		}))
		s.Equal(autofill.StateFailed, out.State)
		s.Equal(autofill.ReasonCapabilityUnavailable, out.Reason)
	})
}

func (s *CoordinatorSuite) TestProviderError() {
	c, _ := s.failing()
	s.geocoder.EXPECT().Reverse(gomock.Any(), here).
		Return(nil, providers.NewProviderError(providers.ErrorProviderOutage, "geoapify", "status 503", nil))

	out := c.Autofill(context.Background(), located(here))
	s.Equal(autofill.StateFailed, out.State)
	s.Equal(autofill.ReasonProviderError, out.Reason)
}

func (s *CoordinatorSuite) TestNoCandidates() {
	c, _ := s.failing()
	s.geocoder.EXPECT().Reverse(gomock.Any(), here).Return([]autofill.Candidate{}, nil)

	out := c.Autofill(context.Background(), located(here))
	s.Equal(autofill.StateFailed, out.State)
	s.Equal(autofill.ReasonNoCandidates, out.Reason)
}

func (s *CoordinatorSuite) TestGeocoderTimeout() {
	sink := mocks.NewMockFieldSink(s.ctrl)
	c, err := autofill.New(s.geocoder, s.countries, sink,
		autofill.WithLogger(s.logger),
		autofill.WithTimeout(20*time.Millisecond),
	)
	s.Require().NoError(err)

	s.geocoder.EXPECT().Reverse(gomock.Any(), here).
		DoAndReturn(func(ctx context.Context, _ autofill.Coordinate) ([]autofill.Candidate, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})

	out := c.Autofill(context.Background(), located(here))
	s.Equal(autofill.StateFailed, out.State)
	s.Equal(autofill.ReasonProviderError, out.Reason)
}

// =============================================================================
// Re-entrancy
// =============================================================================

// overlap starts invocation 1, lets invocation 2 finish while 1 is still in
// flight, then lets 1 finish.
func (s *CoordinatorSuite) overlap(c *autofill.Coordinator) (first, second autofill.Outcome) {
	older := autofill.Coordinate{Latitude: 1, Longitude: 1}
	newer := autofill.Coordinate{Latitude: 2, Longitude: 2}
	entered := make(chan struct{})
	release := make(chan struct{})

	s.geocoder.EXPECT().Reverse(gomock.Any(), older).
		DoAndReturn(func(context.Context, autofill.Coordinate) ([]autofill.Candidate, error) {
			close(entered)
			<-release
			return []autofill.Candidate{{Address: "old address", Country: "Bahamas"}}, nil
		})
	s.geocoder.EXPECT().Reverse(gomock.Any(), newer).
		Return([]autofill.Candidate{{Address: "new address", Country: "Canada"}}, nil)
	s.countries.EXPECT().FindByName("Bahamas").Return(reference.CountryEntry{Name: "Bahamas", CallingCode: "+1242"}, nil)
	s.countries.EXPECT().FindByName("Canada").Return(reference.CountryEntry{Name: "Canada", CallingCode: "+1"}, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		first = c.Autofill(context.Background(), located(older))
	}()
	<-entered
	second = c.Autofill(context.Background(), located(newer))
	close(release)
	wg.Wait()
	return first, second
}

func (s *CoordinatorSuite) TestOverlappingInvocationsLastWriteWins() {
	first, second := s.overlap(s.coord)

	s.Less(first.Sequence, second.Sequence)
	s.Empty(first.Discarded)
	s.Equal(form.Snapshot{Address: "old address", Nationality: "Bahamas", PhoneCode: "+1242"}, s.state.Snapshot())
}

func (s *CoordinatorSuite) TestOverlappingInvocationsWithStaleGuard() {
	state := form.NewState(true)
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegisterer(reg)
	c, err := autofill.New(s.geocoder, s.countries, state, autofill.WithLogger(s.logger), autofill.WithMetrics(m))
	s.Require().NoError(err)

	first, _ := s.overlap(c)

	s.Equal([]autofill.Field{autofill.FieldAddress, autofill.FieldNationality, autofill.FieldPhoneCode}, first.Discarded)
	s.Empty(first.Emitted)
	s.Equal(form.Snapshot{Address: "new address", Nationality: "Canada", PhoneCode: "+1"}, state.Snapshot())
	s.Equal(3.0, testutil.ToFloat64(m.StaleDiscarded))
	s.Equal(2.0, testutil.ToFloat64(m.Outcomes.WithLabelValues("resolved", "")))
}

// =============================================================================
// Health tracking
// =============================================================================

func (s *CoordinatorSuite) TestBreakerTracksGeocoderHealth() {
	b := circuit.New("geocoder", circuit.WithFailureThreshold(2), circuit.WithSuccessThreshold(1))
	c, err := autofill.New(s.geocoder, s.countries, s.state, autofill.WithLogger(s.logger), autofill.WithBreaker(b))
	s.Require().NoError(err)

	s.geocoder.EXPECT().Reverse(gomock.Any(), here).Return(nil, errors.New("boom")).Times(2)
	c.Autofill(context.Background(), located(here))
	c.Autofill(context.Background(), located(here))
	s.True(b.IsOpen())

	s.geocoder.EXPECT().Reverse(gomock.Any(), here).Return([]autofill.Candidate{}, nil)
	c.Autofill(context.Background(), located(here))
	s.False(b.IsOpen())
}

func (s *CoordinatorSuite) TestCallerCancellationLeavesBreakerClosed() {
	b := circuit.New("geocoder", circuit.WithFailureThreshold(2), circuit.WithSuccessThreshold(1))
	c, err := autofill.New(s.geocoder, s.countries, s.state, autofill.WithLogger(s.logger), autofill.WithBreaker(b))
	s.Require().NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.geocoder.EXPECT().Reverse(gomock.Any(), here).
		DoAndReturn(func(ctx context.Context, _ autofill.Coordinate) ([]autofill.Candidate, error) {
			return nil, ctx.Err()
		}).Times(5)

	for range 5 {
		out := c.Autofill(ctx, located(here))
		s.Equal(autofill.StateFailed, out.State)
		s.Equal(autofill.ReasonProviderError, out.Reason)
	}
	s.False(b.IsOpen())
	s.Equal(circuit.StateClosed, b.State())

	s.Run("geocoder timeouts still count", func() {
		c, err := autofill.New(s.geocoder, s.countries, s.state,
			autofill.WithLogger(s.logger), autofill.WithBreaker(b), autofill.WithTimeout(time.Millisecond))
		s.Require().NoError(err)
		s.geocoder.EXPECT().Reverse(gomock.Any(), here).
			DoAndReturn(func(ctx context.Context, _ autofill.Coordinate) ([]autofill.Candidate, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			}).Times(2)

		c.Autofill(context.Background(), located(here))
		c.Autofill(context.Background(), located(here))
		s.True(b.IsOpen())
	})
}

// =============================================================================
// End to end with a loaded resolver
// =============================================================================

type fixedSource []reference.ProviderCountry

func (f fixedSource) FetchCountries(context.Context) ([]reference.ProviderCountry, error) {
	return f, nil
}

func (s *CoordinatorSuite) TestWithReferenceResolver() {
	resolver, err := reference.New(fixedSource{
		{Name: "United States", Root: "+1", Suffixes: []string{"201", "202"}},
		{Name: "Canada", Root: "+1", Suffixes: []string{""}},
	}, reference.WithLogger(s.logger))
	s.Require().NoError(err)

	c, err := autofill.New(s.geocoder, resolver, s.state, autofill.WithLogger(s.logger))
	s.Require().NoError(err)

	s.Run("unloaded dataset degrades to address only", func() {
		s.geocoder.EXPECT().Reverse(gomock.Any(), here).
			Return([]autofill.Candidate{{Address: "12 Main St", Country: "Canada"}}, nil)
		out := c.Autofill(context.Background(), located(here))
		s.Equal(autofill.ReasonNoReferenceMatch, out.Reason)
		s.Equal("12 Main St", s.state.Snapshot().Address)
		s.Empty(s.state.Snapshot().Nationality)
	})

	resolver.FetchAll(context.Background())

	s.Run("first entry for the name supplies the code", func() {
		s.geocoder.EXPECT().Reverse(gomock.Any(), here).
			Return([]autofill.Candidate{{Address: "1600 Pennsylvania Ave", Country: "United States"}}, nil)
		out := c.Autofill(context.Background(), located(here))
		s.Equal(autofill.StateResolved, out.State)
		s.Equal("+1201", out.Resolution.CallingCode)
		s.Equal(form.Snapshot{Address: "1600 Pennsylvania Ave", Nationality: "United States", PhoneCode: "+1201"}, s.state.Snapshot())
	})
}
