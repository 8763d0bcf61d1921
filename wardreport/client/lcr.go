package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pborman/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lrnselfreliance/wardreport/conf"
	"github.com/lrnselfreliance/wardreport/wardreport/models"
	"github.com/lrnselfreliance/wardreport/wardreport/utils"
)

var logger *logrus.Logger

// APIClient is the surface the report driver needs from LCR: the four
// collections, already decoded.
type APIClient interface {
	GetMemberList() ([]models.Member, error)
	GetCallings() ([]models.Organization, error)
	GetMinistering() (json.RawMessage, error)
	GetRecommendStatus() ([]models.RecommendStatus, error)
}

// LCRClient talks to lcr.churchofjesuschrist.org using a pre-obtained
// ChurchSSO session cookie. Interactive login is out of scope; the cookie
// comes from configuration.
type LCRClient struct {
	httpClient    *http.Client
	baseURL       string
	unitNumber    string
	sessionCookie string
}

func init() {
	logger = logrus.New()
	logger.Formatter = &logrus.JSONFormatter{}
	filePath := conf.GetEnv("WARDREPORT_LCR_LOG")
	if filePath != "" {
		file, err := os.OpenFile(filepath.Clean(filePath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
		if err == nil {
			logger.SetOutput(file)
		} else {
			logger.Info("Failed to log to file; using default stderr")
		}
	}
}

func NewLCRClient() (*LCRClient, error) {
	sessionCookie := conf.GetEnv("LCR_SESSION_COOKIE")
	if sessionCookie == "" {
		return nil, errors.New("LCR_SESSION_COOKIE must be set; obtain a ChurchSSO cookie from an authenticated browser session")
	}

	unitNumber := conf.GetEnv("LCR_UNIT_NUMBER")
	if unitNumber == "" {
		return nil, errors.New("LCR_UNIT_NUMBER must be set")
	}

	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil
	retryClient.RetryMax = utils.GetEnvInt("LCR_RETRY_MAX", 3)
	retryClient.HTTPClient.Timeout = time.Duration(utils.GetEnvInt("LCR_TIMEOUT_MS", 20000)) * time.Millisecond

	return &LCRClient{
		httpClient:    retryClient.StandardClient(),
		baseURL:       utils.FromEnv("LCR_BASE_URL", "https://lcr.churchofjesuschrist.org"),
		unitNumber:    unitNumber,
		sessionCookie: sessionCookie,
	}, nil
}

// GetMemberList retrieves the full roster for the unit.
func (c *LCRClient) GetMemberList() ([]models.Member, error) {
	params := url.Values{}
	params.Set("lang", "eng")
	params.Set("unitNumber", c.unitNumber)

	var members []models.Member
	if err := c.getJSON("/services/umlu/report/member-list", params, &members); err != nil {
		return nil, errors.Wrap(err, "could not get member list")
	}
	return members, nil
}

// GetCallings retrieves every organization with its sub-orgs and callings.
func (c *LCRClient) GetCallings() ([]models.Organization, error) {
	params := url.Values{}
	params.Set("lang", "eng")

	var orgs []models.Organization
	if err := c.getJSON("/services/orgs/sub-orgs-with-callings", params, &orgs); err != nil {
		return nil, errors.Wrap(err, "could not get callings")
	}
	return orgs, nil
}

// GetMinistering retrieves the full ministering dataset. The payload is kept
// raw; it rides along in the data bundle but is not an aggregation input.
func (c *LCRClient) GetMinistering() (json.RawMessage, error) {
	params := url.Values{}
	params.Set("lang", "eng")
	params.Set("unitNumber", c.unitNumber)

	var ministering json.RawMessage
	if err := c.getJSON("/services/umlu/v1/ministering/data-full", params, &ministering); err != nil {
		return nil, errors.Wrap(err, "could not get ministering data")
	}
	return ministering, nil
}

// GetRecommendStatus retrieves the temple-recommend status for every member
// of the unit.
func (c *LCRClient) GetRecommendStatus() ([]models.RecommendStatus, error) {
	params := url.Values{}
	params.Set("lang", "eng")
	params.Set("unitNumber", c.unitNumber)

	var recommends []models.RecommendStatus
	if err := c.getJSON("/services/recommend/recommend-status", params, &recommends); err != nil {
		return nil, errors.Wrap(err, "could not get recommend status")
	}
	return recommends, nil
}

// GetBundle retrieves all four collections in the order a report run
// consumes them.
func GetBundle(c APIClient) (*models.DataBundle, error) {
	members, err := c.GetMemberList()
	if err != nil {
		return nil, err
	}
	callings, err := c.GetCallings()
	if err != nil {
		return nil, err
	}
	ministering, err := c.GetMinistering()
	if err != nil {
		return nil, err
	}
	recommends, err := c.GetRecommendStatus()
	if err != nil {
		return nil, err
	}
	return &models.DataBundle{
		MemberList:      members,
		Callings:        callings,
		Ministering:     ministering,
		RecommendStatus: recommends,
	}, nil
}

func (c *LCRClient) getJSON(path string, params url.Values, out interface{}) error {
	reqID := uuid.NewRandom()

	req, err := http.NewRequest("GET", c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.URL.RawQuery = params.Encode()
	req.AddCookie(&http.Cookie{Name: "ChurchSSO", Value: c.sessionCookie})
	req.Header.Add("Accept", "application/json")
	req.Header.Add("X-Request-Id", reqID.String())

	resp, err := c.httpClient.Do(req)
	logRequest(req, resp)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code %d from %s", resp.StatusCode, path)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, out)
}

func logRequest(req *http.Request, resp *http.Response) {
	logger.WithFields(logrus.Fields{
		"lcr_request_id": req.Header.Get("X-Request-Id"),
		"lcr_uri":        req.URL.Path,
	}).Infoln("LCR request")

	if resp != nil {
		logger.WithFields(logrus.Fields{
			"resp_code":      resp.StatusCode,
			"lcr_request_id": req.Header.Get("X-Request-Id"),
			"lcr_uri":        req.URL.Path,
			"content_length": resp.ContentLength,
		}).Infoln("LCR response")
	}
}
