// Package sheets fetches cell grids from Google Sheets.
//
// It calls the Sheets v4 values.get endpoint for one range (usually a
// whole sheet, named by its tab title) and returns the "values" array.
package sheets

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/umd-lib/staffdir/internal/transport"
	"github.com/umd-lib/staffdir/pkg/constants"
	"github.com/umd-lib/staffdir/pkg/errors"
	"github.com/umd-lib/staffdir/pkg/sources"
)

// service names the API in errors.
const service = "sheets"

// valueRange is the values.get response body.
type valueRange struct {
	Range          string  `json:"range"`
	MajorDimension string  `json:"majorDimension"`
	Values         [][]any `json:"values"`
}

// Source reads one sheet of a spreadsheet document.
type Source struct {
	id            sources.ID
	spreadsheetID string
	sheet         string
	baseURL       string

	auth       transport.Authenticator
	credential string
	httpClient *http.Client
	client     *transport.Client
}

// Option configures a Source.
type Option func(*Source)

// WithBaseURL overrides the API base URL.
func WithBaseURL(u string) Option {
	return func(s *Source) {
		s.baseURL = strings.TrimRight(u, "/")
	}
}

// WithAPIKey authenticates with an API key sent as the "key" query parameter.
func WithAPIKey(key string) Option {
	return func(s *Source) {
		s.auth = &transport.QueryAuth{Param: "key"}
		s.credential = key
	}
}

// WithAccessToken authenticates with an OAuth bearer token.
func WithAccessToken(token string) Option {
	return func(s *Source) {
		s.auth = &transport.BearerAuth{}
		s.credential = token
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *Source) {
		s.httpClient = hc
	}
}

// New creates a sheet source. sheet is an A1 range; a bare tab title
// selects the whole sheet.
func New(id sources.ID, spreadsheetID, sheet string, opts ...Option) *Source {
	s := &Source{
		id:            id,
		spreadsheetID: spreadsheetID,
		sheet:         sheet,
		baseURL:       constants.SheetsBaseURL,
	}
	for _, opt := range opts {
		opt(s)
	}

	var topts []transport.Option
	if s.httpClient != nil {
		topts = append(topts, transport.WithHTTPClient(s.httpClient))
	}
	s.client = transport.New(s.auth, s.credential, topts...)
	return s
}

// ID returns the source ID.
func (s *Source) ID() sources.ID {
	return s.id
}

// URL returns the values.get URL for the configured range.
func (s *Source) URL() string {
	return s.baseURL + "/v4/spreadsheets/" + url.PathEscape(s.spreadsheetID) +
		"/values/" + url.PathEscape(s.sheet)
}

// Fetch retrieves the sheet. A sheet with no cells yields a nil grid.
func (s *Source) Fetch(ctx context.Context) ([][]any, error) {
	if s.spreadsheetID == "" || s.sheet == "" {
		return nil, errors.NewFetchError(s.id.String(),
			errors.NewConfigError("sheets", "spreadsheet id and sheet name are required", nil))
	}

	resp, err := s.client.Get(ctx, s.URL())
	if err != nil {
		return nil, errors.WrapFetch(s.id.String(), err)
	}

	var vr valueRange
	if err := transport.DecodeResponse(resp, service, &vr); err != nil {
		return nil, errors.WrapFetch(s.id.String(), err)
	}
	return vr.Values, nil
}
