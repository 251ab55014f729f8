package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"intake/internal/records"
	"intake/internal/records/handler/mocks"
	dErrors "intake/pkg/domain-errors"
	"intake/pkg/testutil"
)

type RecordsHandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	service *mocks.MockService
	router  chi.Router
}

func TestRecordsHandlerSuite(t *testing.T) {
	suite.Run(t, new(RecordsHandlerSuite))
}

func (s *RecordsHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)
	s.router = chi.NewRouter()
	New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(s.router)
}

func (s *RecordsHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

var amelia = records.Submission{
	Name:        "Amelia Hart",
	Address:     "221B Baker Street",
	Email:       "amelia@example.com",
	PhoneCode:   "+44",
	Phone:       "2079460000",
	DateOfBirth: "1988-04-12",
	Nationality: "United Kingdom",
	Gender:      records.GenderFemale,
}

func (s *RecordsHandlerSuite) TestSubmit() {
	s.Run("created", func() {
		id := uuid.New()
		s.service.EXPECT().Submit(gomock.Any(), amelia).
			Return(&records.Record{ID: id, Submission: amelia, SubmittedAt: time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)}, nil)

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/records", amelia))

		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		body := testutil.UnmarshalResponse[map[string]any](s.T(), rr)
		s.Equal(id.String(), (*body)["id"])
		s.Equal("+44", (*body)["phoneCode"])
		s.Equal("1988-04-12", (*body)["dateOfBirth"])
		s.Equal("2026-10-16T09:00:00Z", (*body)["submittedAt"])
	})

	s.Run("validation error from service", func() {
		s.service.EXPECT().Submit(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeValidation, "dateOfBirth cannot be in the future"))

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/records", amelia))

		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
		resp := testutil.UnmarshalErrorResponse(s.T(), rr)
		s.Equal("validation_error", resp["error"])
		s.Equal("dateOfBirth cannot be in the future", resp["error_description"])
	})

	s.Run("unknown field never reaches the service", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequestWithBody(s.T(), http.MethodPost, "/records", `{"name":"x","age":4}`))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})
}

func (s *RecordsHandlerSuite) TestList() {
	s.Run("rows in order", func() {
		s.service.EXPECT().List(gomock.Any()).Return([]records.Record{
			{ID: uuid.New(), Submission: amelia},
			{ID: uuid.New(), Submission: records.Submission{Name: "Lucas Moreau"}},
		}, nil)

		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/records"))

		testutil.AssertStatusOK(s.T(), rr)
		resp := testutil.UnmarshalResponse[ListResponse](s.T(), rr)
		s.Require().Len(resp.Records, 2)
		s.Equal("Amelia Hart", resp.Records[0].Name)
		s.Equal("Lucas Moreau", resp.Records[1].Name)
	})

	s.Run("internal errors hide detail", func() {
		s.service.EXPECT().List(gomock.Any()).
			Return(nil, dErrors.Wrap(errors.New("disk full"), dErrors.CodeInternal, "failed to list records"))

		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/records"))

		testutil.AssertStatus(s.T(), rr, http.StatusInternalServerError)
		resp := testutil.UnmarshalErrorResponse(s.T(), rr)
		s.Equal("internal_error", resp["error"])
		s.NotContains(resp, "error_description")
	})
}
