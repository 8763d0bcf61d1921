package client

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/stretchr/testify/mock"

	"github.com/lrnselfreliance/wardreport/wardreport/models"
)

type MockLCRClient struct {
	mock.Mock
}

func (c *MockLCRClient) GetMemberList() ([]models.Member, error) {
	args := c.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Member), args.Error(1)
}

func (c *MockLCRClient) GetCallings() ([]models.Organization, error) {
	args := c.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Organization), args.Error(1)
}

func (c *MockLCRClient) GetMinistering() (json.RawMessage, error) {
	args := c.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (c *MockLCRClient) GetRecommendStatus() ([]models.RecommendStatus, error) {
	args := c.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RecommendStatus), args.Error(1)
}

// LoadBundleFixture reads a synthetic data bundle from shared_files. The
// fixture path is resolved relative to the calling test's directory.
func LoadBundleFixture(name string) (*models.DataBundle, error) {
	data, err := os.ReadFile(filepath.Join("../../shared_files/synthetic_ward_data/", filepath.Clean(name)))
	if err != nil {
		data, err = os.ReadFile(filepath.Join("../shared_files/synthetic_ward_data/", filepath.Clean(name)))
		if err != nil {
			return nil, err
		}
	}

	var bundle models.DataBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, err
	}
	return &bundle, nil
}
