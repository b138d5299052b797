package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/candlepad/candlepad/internal/chart"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) TestDefaultIsValid() {
	cfg := Default()
	suite.NoError(cfg.Validate())
	suite.Equal(chart.DefaultHeight, cfg.Chart.Height)
	suite.Equal(":8710", cfg.Server.ListenAddr)
}

func (suite *ConfigTestSuite) TestLoadMissingFileUsesDefaults() {
	cfg, err := Load(filepath.Join(suite.T().TempDir(), "missing.yaml"))
	suite.Require().NoError(err)
	suite.Equal(Default(), cfg)
}

func (suite *ConfigTestSuite) TestLoadOverridesDefaults() {
	path := filepath.Join(suite.T().TempDir(), "config.yaml")
	suite.Require().NoError(os.WriteFile(path, []byte(`
chart:
  height: 20
session:
  capacity: 8
server:
  listen_addr: ":9000"
`), 0o644))

	cfg, err := Load(path)
	suite.Require().NoError(err)
	suite.Equal(20, cfg.Chart.Height)
	suite.Equal(8, cfg.Session.Capacity)
	suite.Equal(":9000", cfg.Server.ListenAddr)
	// Untouched sections keep defaults.
	suite.Equal(Default().Eval.MaxSteps, cfg.Eval.MaxSteps)
}

func (suite *ConfigTestSuite) TestEnvOverrides() {
	suite.T().Setenv("CANDLEPAD_LISTEN_ADDR", ":7777")
	suite.T().Setenv("CANDLEPAD_CHART_HEIGHT", "15")

	cfg, err := Load(filepath.Join(suite.T().TempDir(), "missing.yaml"))
	suite.Require().NoError(err)
	suite.Equal(":7777", cfg.Server.ListenAddr)
	suite.Equal(15, cfg.Chart.Height)
}

func (suite *ConfigTestSuite) TestValidateRejectsBadValues() {
	cfg := Default()
	cfg.Chart.Height = 1
	suite.Error(cfg.Validate())

	cfg = Default()
	cfg.Chart.Bullish = "^^"
	suite.Error(cfg.Validate())

	cfg = Default()
	cfg.Session.Capacity = 0
	suite.Error(cfg.Validate())
}

func (suite *ConfigTestSuite) TestRendererFromConfig() {
	cfg := Default()
	cfg.Chart.Bullish = "#"

	r := cfg.Renderer()
	suite.Equal('#', r.Bullish)
	suite.Equal(cfg.Chart.Height, r.Height)
}
