package dispatch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/candlepad/candlepad/internal/buffer"
	"github.com/candlepad/candlepad/internal/chart"
	"github.com/candlepad/candlepad/internal/dataset"
	"github.com/candlepad/candlepad/internal/logger"
	"github.com/candlepad/candlepad/internal/session"
	"github.com/candlepad/candlepad/internal/version"
)

const testBuffer = `df = pd.DataFrame({
    'Open': [100, 105, 110],
    'High': [108, 112, 115],
    'Low': [98, 103, 107],
    'Close': [105, 110, 108],
    'Volume': [1000, 1200, 900]
})`

type DispatchTestSuite struct {
	suite.Suite

	provider   *buffer.MemoryProvider
	dispatcher *Dispatcher
}

func TestDispatchSuite(t *testing.T) {
	suite.Run(t, new(DispatchTestSuite))
}

func (suite *DispatchTestSuite) SetupTest() {
	suite.provider = buffer.NewMemoryProvider()
	suite.Require().NoError(suite.provider.SetText("doc", testBuffer))

	log := logger.NewNopLogger()
	suite.dispatcher = NewDispatcher(session.NewStore(suite.provider, log), log)
}

func (suite *DispatchTestSuite) payload(d *dataset.Dataset) string {
	data, err := dataset.MarshalInterchange(d)
	suite.Require().NoError(err)

	return string(data)
}

func (suite *DispatchTestSuite) TestRenderSample() {
	out := suite.dispatcher.RenderSample()

	suite.Len(strings.Split(out, "\n"), 10)
	suite.Contains(out, "^")
	suite.Contains(out, "|")
	suite.NotContains(out, "Error:")
}

func (suite *DispatchTestSuite) TestRenderDataset() {
	out := suite.dispatcher.RenderDataset(suite.payload(dataset.SampleDataset()))

	suite.Equal(suite.dispatcher.RenderSample(), out)
}

func (suite *DispatchTestSuite) TestRenderDatasetEmpty() {
	out := suite.dispatcher.RenderDataset("{}")

	suite.Equal(chart.MsgNoData, out)
}

func (suite *DispatchTestSuite) TestRenderDatasetFlat() {
	out := suite.dispatcher.RenderDataset(suite.payload(dataset.FlatSampleDataset()))

	suite.Equal(chart.MsgFlatPriceRange, out)
}

func (suite *DispatchTestSuite) TestRenderDatasetInvalidPayload() {
	out := suite.dispatcher.RenderDataset("not json")

	suite.True(strings.HasPrefix(out, "Error: "))
}

func (suite *DispatchTestSuite) TestDatasetSlice() {
	out := suite.dispatcher.DatasetSlice(suite.payload(dataset.SampleDataset()), 0)

	suite.Equal("Candle 0: Open=100 High=108 Low=98 Close=105 Volume=1000", out)
}

func (suite *DispatchTestSuite) TestDatasetSliceOutOfRange() {
	out := suite.dispatcher.DatasetSlice(suite.payload(dataset.SampleDataset()), 10)

	suite.Equal("Error: candle index 10 out of range [0, 5)", out)
}

func (suite *DispatchTestSuite) TestAdjustCandle() {
	out := suite.dispatcher.AdjustCandle("doc", "df", 0, "open", 1)

	suite.Len(strings.Split(out, "\n"), 10)
	suite.NotContains(out, "Error:")

	text, ok := suite.provider.GetText("doc")
	suite.True(ok)
	suite.Contains(text, "'Open': [101, 105, 110]")
}

func (suite *DispatchTestSuite) TestAdjustCandleInvalidField() {
	out := suite.dispatcher.AdjustCandle("doc", "df", 0, "banana", 1)

	suite.Equal("Error: invalid value type: banana", out)

	text, _ := suite.provider.GetText("doc")
	suite.Equal(testBuffer, text)
}

func (suite *DispatchTestSuite) TestAdjustCandleOutOfRange() {
	out := suite.dispatcher.AdjustCandle("doc", "df", 10, "open", 1)

	suite.True(strings.HasPrefix(out, "Error: "))

	text, _ := suite.provider.GetText("doc")
	suite.Equal(testBuffer, text)
}

func (suite *DispatchTestSuite) TestAdjustCandleMissingBuffer() {
	out := suite.dispatcher.AdjustCandle("nope", "df", 0, "open", 1)

	suite.Equal("Error: buffer 'nope' is not available", out)
}

func (suite *DispatchTestSuite) TestAdjustCandleVariableNotFound() {
	out := suite.dispatcher.AdjustCandle("doc", "prices", 0, "open", 1)

	suite.True(strings.HasPrefix(out, "Error: "))
	suite.Contains(out, "variable 'prices' not found")
}

func (suite *DispatchTestSuite) TestPriceAtRow() {
	d := &dataset.Dataset{
		Columns: dataset.DefaultColumns,
		Rows:    []dataset.Row{{Open: 100, High: 108, Low: 98, Close: 105, Volume: 1000}},
	}

	suite.Equal("108.00", suite.dispatcher.PriceAtRow(suite.payload(d), 0, 0))
	suite.Equal("98.00", suite.dispatcher.PriceAtRow(suite.payload(d), 0, 9))
}

func (suite *DispatchTestSuite) TestPriceAtRowFlatRange() {
	out := suite.dispatcher.PriceAtRow(suite.payload(dataset.FlatSampleDataset()), 0, 5)

	suite.True(strings.HasPrefix(out, "Error: "))
}

func (suite *DispatchTestSuite) TestPriceAtRowOutOfRange() {
	out := suite.dispatcher.PriceAtRow(suite.payload(dataset.SampleDataset()), 99, 0)

	suite.True(strings.HasPrefix(out, "Error: "))
}

func (suite *DispatchTestSuite) TestVersion() {
	suite.Equal(version.GetVersion(), suite.dispatcher.Version())
}

func (suite *DispatchTestSuite) TestCheckCompatibility() {
	suite.Equal("OK", suite.dispatcher.CheckCompatibility(version.GetVersion()))
	suite.True(strings.HasPrefix(suite.dispatcher.CheckCompatibility("not-a-version"), "Error: "))
}
